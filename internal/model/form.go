package model

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// PaymentMode is the cadence of a payment stream.
type PaymentMode string

const (
	ModeMonthly      PaymentMode = "Monthly"
	ModeQuarterly    PaymentMode = "Quarterly"
	ModeSemiannually PaymentMode = "Semiannually"
	ModeAnnually     PaymentMode = "Annually"
	ModeLumpSum      PaymentMode = "LumpSum"
)

// MonthsPerPeriod returns the cadence in months, or 0 for LumpSum and unknown modes.
func (m PaymentMode) MonthsPerPeriod() int {
	switch m {
	case ModeMonthly:
		return 1
	case ModeQuarterly:
		return 3
	case ModeSemiannually:
		return 6
	case ModeAnnually:
		return 12
	}
	return 0
}

func (m PaymentMode) Valid() bool {
	return m == ModeLumpSum || m.MonthsPerPeriod() > 0
}

// Amount is a raw dollar amount as typed by the user. It decodes from a JSON
// string or a JSON number; validation decides whether it is usable.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	if !json.Valid(b) || (len(b) > 0 && (b[0] == '{' || b[0] == '[' || b[0] == 't' || b[0] == 'f')) {
		return fmt.Errorf("amount must be a string or number, got %s", b)
	}
	*a = Amount(b)
	return nil
}

func (a Amount) String() string {
	return string(a)
}

// LumpSumPayment is one explicitly dated payment.
type LumpSumPayment struct {
	Amount Amount `json:"amount"`
	Date   string `json:"date"`
}

// FormData is the closed set of valuation requests: *GuaranteedFormData or *LCPFormData.
type FormData interface {
	formData()
}

// GuaranteedFormData describes a payment stream with no life-contingency.
type GuaranteedFormData struct {
	PaymentAmount  Amount           `json:"paymentAmount"`
	PaymentMode    PaymentMode      `json:"paymentMode"`
	AnnualIncrease float64          `json:"annualIncrease"`
	StartDate      string           `json:"startDate"`
	EndDate        string           `json:"endDate"`
	Payments       []LumpSumPayment `json:"payments,omitempty"`
}

func (*GuaranteedFormData) formData() {}

// LCPFormData describes a life-contingent payment stream together with the
// demographic and health attributes that price its risk.
type LCPFormData struct {
	PaymentData     *LCPPaymentData   `json:"paymentData"`
	DetailsData     *LCPDetailsData   `json:"detailsData"`
	ProfileData     *LCPProfileData   `json:"profileData"`
	LifestyleData   *LCPLifestyleData `json:"lifestyleData"`
	HealthData      *LCPHealthData    `json:"healthData"`
	LumpSumPayments []LumpSumPayment  `json:"lumpSumPayments,omitempty"`
}

func (*LCPFormData) formData() {}

type LCPPaymentData struct {
	PaymentMode PaymentMode `json:"paymentMode"`
	Amount      Amount      `json:"amount"`
}

type LCPDetailsData struct {
	AnnualIncrease float64 `json:"annualIncrease"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
}

type LCPProfileData struct {
	AgeRange  string `json:"ageRange"`
	Gender    string `json:"gender"`
	BodyFrame string `json:"bodyFrame"`
}

type LCPLifestyleData struct {
	Weight string `json:"weight"`
}

type LCPHealthData struct {
	Smoke   string `json:"smoke"`
	Health  string `json:"health"`
	Cardiac string `json:"cardiac"`
}

// Mode returns the payment mode, tolerating an absent paymentData block.
func (f *LCPFormData) Mode() PaymentMode {
	if f.PaymentData == nil {
		return ""
	}
	return f.PaymentData.PaymentMode
}
