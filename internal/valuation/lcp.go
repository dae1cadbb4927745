package valuation

import (
	"settlement-quote/internal/model"
	"settlement-quote/internal/pv"
	"settlement-quote/internal/ratetable"
	"settlement-quote/internal/validation"
)

// LCP prices a life-contingent stream at the personalized rate, and values the
// same stream at the base rate as the family protection floor.
func (c *Calculator) LCP(form *model.LCPFormData) (*model.CalculationResult, error) {
	today := c.Today()
	if err := model.NewValidationError(validation.LCP(form, c.table, today)); err != nil {
		return nil, err
	}

	keys := ratetable.DeriveKeys(form.ProfileData, form.LifestyleData, form.HealthData)
	rate := c.table.MustLookupRate(keys)

	details := form.DetailsData
	if details == nil {
		details = &model.LCPDetailsData{}
	}
	st := buildStream(form.PaymentData.PaymentMode, form.PaymentData.Amount, details.AnnualIncrease,
		details.StartDate, details.EndDate, form.LumpSumPayments)

	npv := checkNPV(pv.PresentValue(st.schedule, rate, today))
	familyProtection := checkNPV(pv.PresentValue(st.schedule, c.table.BaseRate(), today))
	minPayout, maxPayout := c.band(npv)

	res := st.result(npv, minPayout, maxPayout)
	res.FamilyProtectionNPV = &familyProtection
	res.LCPKeys = keys
	return res, nil
}
