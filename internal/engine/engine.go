package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"settlement-quote/internal/dateutil"
	"settlement-quote/internal/model"
	"settlement-quote/internal/valuation"
)

type Engine struct {
	calc *valuation.Calculator
	log  zerolog.Logger
}

func New(calc *valuation.Calculator, log zerolog.Logger) *Engine {
	return &Engine{
		calc: calc,
		log:  log.With().Str("component", "engine").Logger(),
	}
}

func (e *Engine) Calculator() *valuation.Calculator { return e.calc }

// Process prices one request. Invalid input yields a FAILURE response carrying
// CRITICAL messages and no quote; configuration and numeric defects panic.
func (e *Engine) Process(req *model.CalculationRequest) *model.CalculationResponse {
	start := time.Now()
	out := model.CalculationOutput{}

	var msgs []model.CalculationMessage
	handler, ok := Get(req.CalculationType)
	if !ok {
		msgs = []model.CalculationMessage{model.Critical(model.CodeUnknownType,
			fmt.Sprintf("Unknown calculation type: %s", req.CalculationType))}
	} else {
		msgs = handler.Apply(e.calc, req, &out)
	}

	outcome := model.OutcomeSuccess
	for i := range msgs {
		msgs[i].ID = i
		if msgs[i].Level == model.LevelCritical {
			outcome = model.OutcomeFailure
		}
	}
	if outcome == model.OutcomeFailure {
		out = model.CalculationOutput{}
	}
	if msgs == nil {
		msgs = []model.CalculationMessage{}
	}
	out.Messages = msgs

	elapsed := time.Since(start)
	now := time.Now().UTC()
	id := uuid.New().String()

	evt := e.log.Info()
	if outcome == model.OutcomeFailure {
		evt = e.log.Warn().Str("messages", model.JoinMessages(msgs))
	}
	evt.Str("calculation_id", id).
		Str("calculation_type", req.CalculationType).
		Str("outcome", outcome).
		Dur("duration", elapsed).
		Msg("calculation processed")

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          id,
			CalculationType:        req.CalculationType,
			ValuationDate:          dateutil.Format(e.calc.Today()),
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		CalculationResult: out,
	}
}

// Validate checks the forms of a request without pricing them.
func (e *Engine) Validate(req *model.CalculationRequest) model.FormCheck {
	handler, ok := Get(req.CalculationType)
	if !ok {
		return model.FormCheck{IsValid: false, Errors: []string{fmt.Sprintf("Unknown calculation type: %s", req.CalculationType)}}
	}
	return model.CheckOf(handler.Validate(e.calc, req))
}
