package pv

import (
	"math"
	"time"

	"settlement-quote/internal/dateutil"
	"settlement-quote/internal/schedule"
)

// PresentValue discounts every flow of s back to asOf at annualRatePct (percent).
//
//	periodic:  pv_i = amount_i / (1 + r/k)^(k * t_i)
//	lump sum:  pv_i = amount_i / (1 + r)^t_i
//
// where k is the schedule's periods per year and t_i the ACT/365.25 years from
// asOf to the flow. Flows on or before asOf are taken at face value.
func PresentValue(s *schedule.Schedule, annualRatePct float64, asOf time.Time) float64 {
	k := s.PeriodsPerYear()
	var total float64
	for cf := range s.Flows() {
		years := dateutil.YearFraction(asOf, cf.Date)
		if years < 0 {
			years = 0
		}
		total += Discount(cf.Amount, annualRatePct, years, k)
	}
	return total
}

// Discount returns the value today of amount paid after years.
// periodsPerYear of 0 means annual effective compounding.
func Discount(amount, annualRatePct, years float64, periodsPerYear int) float64 {
	r := annualRatePct / 100
	if periodsPerYear > 0 {
		k := float64(periodsPerYear)
		return amount / math.Pow(1+r/k, years*k)
	}
	return amount / math.Pow(1+r, years)
}
