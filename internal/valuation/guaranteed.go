package valuation

import (
	"settlement-quote/internal/model"
	"settlement-quote/internal/pv"
	"settlement-quote/internal/validation"
)

// Guaranteed prices a stream with no life-contingency at the base rate.
func (c *Calculator) Guaranteed(form *model.GuaranteedFormData) (*model.CalculationResult, error) {
	today := c.Today()
	if err := model.NewValidationError(validation.Guaranteed(form, today)); err != nil {
		return nil, err
	}

	st := buildStream(form.PaymentMode, form.PaymentAmount, form.AnnualIncrease,
		form.StartDate, form.EndDate, form.Payments)

	npv := checkNPV(pv.PresentValue(st.schedule, c.table.BaseRate(), today))
	minPayout, maxPayout := c.band(npv)
	return st.result(npv, minPayout, maxPayout), nil
}
