package model

import json "github.com/goccy/go-json"

const (
	TypeGuaranteed = "guaranteed"
	TypeLCP        = "lcp"
	TypeComparison = "comparison"
)

// CalculationRequest is the transport envelope. Only the blocks required by
// CalculationType are read; they stay raw until the type is known.
type CalculationRequest struct {
	CalculationType string          `json:"calculation_type"`
	Guaranteed      json.RawMessage `json:"guaranteed,omitempty"`
	LCP             json.RawMessage `json:"lcp,omitempty"`
}

type AmountRequest struct {
	Amount Amount `json:"amount"`
}

type DateRangeRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type CurrencyRequest struct {
	Value float64 `json:"value"`
}

type SanitizeRequest struct {
	Input string `json:"input"`
}

type GateRequest struct {
	MinOffer float64 `json:"minOffer"`
	MaxOffer float64 `json:"maxOffer"`
}
