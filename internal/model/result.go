package model

// CalculationResult is the quote produced by a valuator. The LCP-only fields
// are empty for guaranteed quotes.
type CalculationResult struct {
	NPV            float64     `json:"npv"`
	MinPayout      float64     `json:"minPayout"`
	MaxPayout      float64     `json:"maxPayout"`
	PaymentMode    PaymentMode `json:"paymentMode"`
	PaymentAmount  float64     `json:"paymentAmount"`
	AnnualIncrease float64     `json:"annualIncrease"`
	StartDate      string      `json:"startDate"`
	EndDate        string      `json:"endDate"`

	FamilyProtectionNPV *float64 `json:"familyProtectionNPV,omitempty"`
	LCPKeys             []string `json:"lcpKeys,omitempty"`
}

// IsLCP reports whether the result was produced by the life-contingent valuator.
func (r *CalculationResult) IsLCP() bool {
	return r.FamilyProtectionNPV != nil
}

// ComparisonResult holds side-by-side quotes for the same stream.
type ComparisonResult struct {
	LCP        *CalculationResult `json:"lcp"`
	Guaranteed *CalculationResult `json:"guaranteed"`
}

// OfferDecision is the outcome of the minimum-offer gate.
type OfferDecision struct {
	ShouldShowOffer bool   `json:"shouldShowOffer"`
	Message         string `json:"message,omitempty"`
}

// FieldCheck is the shape returned by the standalone input helpers.
type FieldCheck struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
}

// FormCheck is the non-throwing form validation result.
type FormCheck struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}
