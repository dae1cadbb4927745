package model

type CalculationResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	CalculationResult   CalculationOutput   `json:"calculation_result"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	CalculationType        string `json:"calculation_type"`
	ValuationDate          string `json:"valuation_date"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

type CalculationOutput struct {
	Messages   []CalculationMessage `json:"messages"`
	Quote      *CalculationResult   `json:"quote,omitempty"`
	Comparison *ComparisonResult    `json:"comparison,omitempty"`
	Offer      *OfferDecision       `json:"offer,omitempty"`
	Offers     *ComparisonOffers    `json:"offers,omitempty"`
}

// ComparisonOffers gates each side of a comparison independently.
type ComparisonOffers struct {
	LCP        OfferDecision `json:"lcp"`
	Guaranteed OfferDecision `json:"guaranteed"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
