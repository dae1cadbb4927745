package handler

import (
	"fmt"
	"runtime/debug"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"settlement-quote/internal/engine"
	"settlement-quote/internal/model"
	"settlement-quote/internal/offer"
	"settlement-quote/internal/validation"
)

// Handler serves the quoting surface over fasthttp.
type Handler struct {
	engine *engine.Engine
	log    zerolog.Logger
}

func New(e *engine.Engine, log zerolog.Logger) *Handler {
	return &Handler{
		engine: e,
		log:    log.With().Str("component", "http").Logger(),
	}
}

// ServeHTTP is the fasthttp.RequestHandler for the whole service.
func (h *Handler) ServeHTTP(ctx *fasthttp.RequestCtx) {
	defer func() {
		h.log.Debug().
			Bytes("method", ctx.Method()).
			Bytes("path", ctx.Path()).
			Int("status", ctx.Response.StatusCode()).
			Msg("request")
	}()
	defer h.recoverDefect(ctx)

	switch string(ctx.Path()) {
	case "/health":
		h.handleHealth(ctx)
	case "/rates":
		h.handleRates(ctx)
	case "/calculate":
		post(ctx, h.handleCalculation)
	case "/validate":
		post(ctx, h.handleValidation)
	case "/validate/amount":
		post(ctx, h.handleAmount)
	case "/validate/date-range":
		post(ctx, h.handleDateRange)
	case "/format/currency":
		post(ctx, h.handleCurrency)
	case "/sanitize":
		post(ctx, h.handleSanitize)
	case "/offer/gate":
		post(ctx, h.handleGate)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

// recoverDefect answers 500 for configuration and numeric defects. They are
// logged with a stack and never turned into a quote.
func (h *Handler) recoverDefect(ctx *fasthttp.RequestCtx) {
	if r := recover(); r != nil {
		h.log.Error().
			Str("path", string(ctx.Path())).
			Str("panic", fmt.Sprint(r)).
			Bytes("stack", debug.Stack()).
			Msg("calculation defect")
		ctx.ResetBody()
		writeError(ctx, fasthttp.StatusInternalServerError, "Internal calculation error")
	}
}

func post(ctx *fasthttp.RequestCtx, next fasthttp.RequestHandler) {
	if !ctx.IsPost() {
		ctx.Response.Header.Set("Allow", fasthttp.MethodPost)
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	next(ctx)
}

func (h *Handler) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

type ratesResponse struct {
	BaseDiscountRate  float64            `json:"baseDiscountRate"`
	Spreads           map[string]float64 `json:"spreads"`
	AmountAdjustments any                `json:"amountAdjustments"`
	MinimumOffer      float64            `json:"minimumOffer"`
}

func (h *Handler) handleRates(ctx *fasthttp.RequestCtx) {
	tbl := h.engine.Calculator().Table()
	writeJSON(ctx, fasthttp.StatusOK, ratesResponse{
		BaseDiscountRate:  tbl.BaseRate(),
		Spreads:           tbl.Spreads(),
		AmountAdjustments: tbl.Adjustments(),
		MinimumOffer:      offer.MinimumOffer,
	})
}

func (h *Handler) handleCalculation(ctx *fasthttp.RequestCtx) {
	var req model.CalculationRequest
	if !decode(ctx, &req) {
		return
	}
	if req.CalculationType == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "calculation_type is required")
		return
	}

	resp := h.engine.Process(&req)

	status := fasthttp.StatusOK
	if resp.CalculationMetadata.CalculationOutcome == model.OutcomeFailure {
		status = fasthttp.StatusUnprocessableEntity
	}
	writeJSON(ctx, status, resp)
}

func (h *Handler) handleValidation(ctx *fasthttp.RequestCtx) {
	var req model.CalculationRequest
	if !decode(ctx, &req) {
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, h.engine.Validate(&req))
}

func (h *Handler) handleAmount(ctx *fasthttp.RequestCtx) {
	var req model.AmountRequest
	if !decode(ctx, &req) {
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, validation.ValidateAmount(string(req.Amount)))
}

func (h *Handler) handleDateRange(ctx *fasthttp.RequestCtx) {
	var req model.DateRangeRequest
	if !decode(ctx, &req) {
		return
	}
	today := h.engine.Calculator().Today()
	writeJSON(ctx, fasthttp.StatusOK, validation.ValidateDateRange(req.StartDate, req.EndDate, today))
}

func (h *Handler) handleCurrency(ctx *fasthttp.RequestCtx) {
	var req model.CurrencyRequest
	if !decode(ctx, &req) {
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"formatted": offer.FormatCurrency(req.Value)})
}

func (h *Handler) handleSanitize(ctx *fasthttp.RequestCtx) {
	var req model.SanitizeRequest
	if !decode(ctx, &req) {
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"output": validation.SanitizeNumericInput(req.Input)})
}

func (h *Handler) handleGate(ctx *fasthttp.RequestCtx) {
	var req model.GateRequest
	if !decode(ctx, &req) {
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, offer.Gate(req.MinOffer, req.MaxOffer))
}

func decode(ctx *fasthttp.RequestCtx, v any) bool {
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("handler: encode response: %v", err))
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	b, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}
