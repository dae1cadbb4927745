package validation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"settlement-quote/internal/model"
	"settlement-quote/internal/ratetable"
)

const (
	MinLumpSumPayments = 1
	MaxLumpSumPayments = 10
	MaxAnnualIncrease  = 6.0
)

const missingFormData = "missing required form data"

// Guaranteed returns every problem with a guaranteed form. An empty result means valid.
func Guaranteed(form *model.GuaranteedFormData, today time.Time) []model.CalculationMessage {
	if form == nil {
		return []model.CalculationMessage{model.Critical(model.CodeMissingFormData, "Please complete the form: "+missingFormData)}
	}
	return payment(form.PaymentMode, form.PaymentAmount, form.AnnualIncrease, form.StartDate, form.EndDate, form.Payments, today)
}

// LCP returns every problem with a life-contingent form. Risk attributes are
// mandatory and must be priced by tbl.
func LCP(form *model.LCPFormData, tbl *ratetable.Table, today time.Time) []model.CalculationMessage {
	if form == nil {
		return []model.CalculationMessage{model.Critical(model.CodeMissingFormData, "Please complete the form: "+missingFormData)}
	}

	msgs := riskProfile(form, tbl)

	if form.PaymentData == nil {
		msgs = append(msgs, missing("paymentData"))
		return msgs
	}
	mode := form.PaymentData.PaymentMode
	if mode.Valid() && mode != model.ModeLumpSum && form.DetailsData == nil {
		msgs = append(msgs, missing("detailsData"))
		return msgs
	}

	details := form.DetailsData
	if details == nil {
		details = &model.LCPDetailsData{}
	}
	msgs = append(msgs, payment(mode, form.PaymentData.Amount, details.AnnualIncrease,
		details.StartDate, details.EndDate, form.LumpSumPayments, today)...)
	return msgs
}

// CheckGuaranteed is the non-throwing variant used for live form feedback.
func CheckGuaranteed(form *model.GuaranteedFormData, today time.Time) model.FormCheck {
	return model.CheckOf(Guaranteed(form, today))
}

// CheckLCP is the non-throwing variant used for live form feedback.
func CheckLCP(form *model.LCPFormData, tbl *ratetable.Table, today time.Time) model.FormCheck {
	return model.CheckOf(LCP(form, tbl, today))
}

func riskProfile(form *model.LCPFormData, tbl *ratetable.Table) []model.CalculationMessage {
	var msgs []model.CalculationMessage
	if form.ProfileData == nil {
		msgs = append(msgs, missing("profileData"))
	}
	if form.LifestyleData == nil {
		msgs = append(msgs, missing("lifestyleData"))
	}
	if form.HealthData == nil {
		msgs = append(msgs, missing("healthData"))
	}
	if len(msgs) > 0 {
		return msgs
	}

	values := ratetable.FieldValues(form.ProfileData, form.LifestyleData, form.HealthData)
	for i, f := range ratetable.Factors {
		if strings.TrimSpace(values[i]) == "" {
			msgs = append(msgs, missing(f.Field))
		}
	}
	if len(msgs) > 0 {
		return msgs
	}

	for i, f := range ratetable.Factors {
		if _, ok := tbl.Spread(f.Key(values[i])); !ok {
			msgs = append(msgs, model.Critical(model.CodeUnknownRiskValue,
				fmt.Sprintf("Unrecognized value %q for %s", values[i], f.Field)))
		}
	}
	return msgs
}

func payment(mode model.PaymentMode, amount model.Amount, increase float64, start, end string,
	lumps []model.LumpSumPayment, today time.Time) []model.CalculationMessage {

	if !mode.Valid() {
		return []model.CalculationMessage{model.Critical(model.CodeInvalidMode,
			"Payment mode must be one of Monthly, Quarterly, Semiannually, Annually, LumpSum")}
	}
	if mode == model.ModeLumpSum {
		return append(checkIncrease(increase), lumpSums(lumps)...)
	}

	var msgs []model.CalculationMessage
	if _, msg := checkPaymentAmount(string(amount)); msg != "" {
		msgs = append(msgs, model.Critical(model.CodeInvalidAmount, msg))
	}
	msgs = append(msgs, checkIncrease(increase)...)
	for _, msg := range dateRangeErrors(start, end, today) {
		msgs = append(msgs, model.Critical(model.CodeInvalidDates, msg))
	}
	return msgs
}

func checkIncrease(increase float64) []model.CalculationMessage {
	if math.IsNaN(increase) || increase < 0 || increase > MaxAnnualIncrease {
		return []model.CalculationMessage{model.Critical(model.CodeInvalidIncrease, "Annual increase must be between 0% and 6%")}
	}
	return nil
}

func lumpSums(lumps []model.LumpSumPayment) []model.CalculationMessage {
	if len(lumps) < MinLumpSumPayments {
		return []model.CalculationMessage{model.Critical(model.CodeInvalidLumpSum, "At least one lump sum payment is required")}
	}
	if len(lumps) > MaxLumpSumPayments {
		return []model.CalculationMessage{model.Critical(model.CodeInvalidLumpSum, "No more than 10 lump sum payments are allowed")}
	}

	var msgs []model.CalculationMessage
	for i, p := range lumps {
		if msg := checkLumpSumAmount(i+1, string(p.Amount)); msg != "" {
			msgs = append(msgs, model.Critical(model.CodeInvalidLumpSum, msg))
		}
		if msg := checkLumpSumDate(i+1, p.Date); msg != "" {
			msgs = append(msgs, model.Critical(model.CodeInvalidLumpSum, msg))
		}
	}
	return msgs
}

func missing(field string) model.CalculationMessage {
	return model.Critical(model.CodeMissingFormData, fmt.Sprintf("Please complete all sections: %s (%s)", missingFormData, field))
}
