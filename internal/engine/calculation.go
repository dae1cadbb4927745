package engine

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"settlement-quote/internal/model"
	"settlement-quote/internal/offer"
	"settlement-quote/internal/valuation"
)

// CalculationHandler defines the contract for every calculation type.
// Validate only checks the forms; Apply prices them and fills out.
type CalculationHandler interface {
	Validate(calc *valuation.Calculator, req *model.CalculationRequest) []model.CalculationMessage
	Apply(calc *valuation.Calculator, req *model.CalculationRequest, out *model.CalculationOutput) []model.CalculationMessage
}

type GuaranteedHandler struct{}

func (h *GuaranteedHandler) Validate(calc *valuation.Calculator, req *model.CalculationRequest) []model.CalculationMessage {
	form, msgs := decodeForm[model.GuaranteedFormData](model.TypeGuaranteed, req.Guaranteed)
	if form == nil {
		return msgs
	}
	return calc.Validate(form)
}

func (h *GuaranteedHandler) Apply(calc *valuation.Calculator, req *model.CalculationRequest, out *model.CalculationOutput) []model.CalculationMessage {
	form, msgs := decodeForm[model.GuaranteedFormData](model.TypeGuaranteed, req.Guaranteed)
	if form == nil {
		return msgs
	}
	res, err := calc.Guaranteed(form)
	if err != nil {
		return messagesOf(err)
	}
	decision := offer.Gate(res.MinPayout, res.MaxPayout)
	out.Quote = res
	out.Offer = &decision
	return nil
}

type LCPHandler struct{}

func (h *LCPHandler) Validate(calc *valuation.Calculator, req *model.CalculationRequest) []model.CalculationMessage {
	form, msgs := decodeForm[model.LCPFormData](model.TypeLCP, req.LCP)
	if form == nil {
		return msgs
	}
	return calc.Validate(form)
}

func (h *LCPHandler) Apply(calc *valuation.Calculator, req *model.CalculationRequest, out *model.CalculationOutput) []model.CalculationMessage {
	form, msgs := decodeForm[model.LCPFormData](model.TypeLCP, req.LCP)
	if form == nil {
		return msgs
	}
	res, err := calc.LCP(form)
	if err != nil {
		return messagesOf(err)
	}
	decision := offer.Gate(res.MinPayout, res.MaxPayout)
	out.Quote = res
	out.Offer = &decision
	return nil
}

type ComparisonHandler struct{}

func (h *ComparisonHandler) Validate(calc *valuation.Calculator, req *model.CalculationRequest) []model.CalculationMessage {
	msgs := (&LCPHandler{}).Validate(calc, req)
	return append(msgs, (&GuaranteedHandler{}).Validate(calc, req)...)
}

func (h *ComparisonHandler) Apply(calc *valuation.Calculator, req *model.CalculationRequest, out *model.CalculationOutput) []model.CalculationMessage {
	lcp, lcpMsgs := decodeForm[model.LCPFormData](model.TypeLCP, req.LCP)
	g, gMsgs := decodeForm[model.GuaranteedFormData](model.TypeGuaranteed, req.Guaranteed)
	if lcp == nil || g == nil {
		return append(lcpMsgs, gMsgs...)
	}
	res, err := calc.Comparison(lcp, g)
	if err != nil {
		return messagesOf(err)
	}
	out.Comparison = res
	out.Offers = &model.ComparisonOffers{
		LCP:        offer.Gate(res.LCP.MinPayout, res.LCP.MaxPayout),
		Guaranteed: offer.Gate(res.Guaranteed.MinPayout, res.Guaranteed.MaxPayout),
	}
	return nil
}

// decodeForm unmarshals one form block. A nil form comes with the message explaining why.
func decodeForm[T any](name string, raw json.RawMessage) (*T, []model.CalculationMessage) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, []model.CalculationMessage{model.Critical(model.CodeMissingFormData,
			fmt.Sprintf("Please complete the form: missing required form data (%s)", name))}
	}
	var form T
	if err := json.Unmarshal(raw, &form); err != nil {
		return nil, []model.CalculationMessage{model.Critical(model.CodeInvalidRequest,
			fmt.Sprintf("Invalid %s form: %v", name, err))}
	}
	return &form, nil
}

func messagesOf(err error) []model.CalculationMessage {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return ve.Messages
	}
	return []model.CalculationMessage{model.Critical(model.CodeInvalidRequest, err.Error())}
}
