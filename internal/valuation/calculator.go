package valuation

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"settlement-quote/internal/dateutil"
	"settlement-quote/internal/model"
	"settlement-quote/internal/ratetable"
	"settlement-quote/internal/schedule"
	"settlement-quote/internal/validation"
)

// Clock supplies the valuation date.
type Clock func() time.Time

// Calculator prices payment streams against an immutable rate table.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	table *ratetable.Table
	clock Clock
}

func NewCalculator(table *ratetable.Table, clock Clock) *Calculator {
	if clock == nil {
		clock = time.Now
	}
	return &Calculator{table: table, clock: clock}
}

func (c *Calculator) Table() *ratetable.Table { return c.table }

// Today is the valuation date: the clock's calendar date at midnight UTC.
func (c *Calculator) Today() time.Time {
	return dateutil.Truncate(c.clock())
}

// Validate runs the validator matching the form's type.
func (c *Calculator) Validate(form model.FormData) []model.CalculationMessage {
	switch f := form.(type) {
	case *model.GuaranteedFormData:
		return validation.Guaranteed(f, c.Today())
	case *model.LCPFormData:
		return validation.LCP(f, c.table, c.Today())
	default:
		panic(fmt.Sprintf("valuation: unhandled form type %T", form))
	}
}

// Calculate dispatches to the valuator matching the form's type.
func (c *Calculator) Calculate(form model.FormData) (*model.CalculationResult, error) {
	switch f := form.(type) {
	case *model.GuaranteedFormData:
		return c.Guaranteed(f)
	case *model.LCPFormData:
		return c.LCP(f)
	default:
		panic(fmt.Sprintf("valuation: unhandled form type %T", form))
	}
}

// stream is a validated form reduced to what the schedule and the echo need.
type stream struct {
	schedule       *schedule.Schedule
	amount         decimal.Decimal
	annualIncrease float64
}

func buildStream(mode model.PaymentMode, amount model.Amount, increase float64, start, end string,
	lumps []model.LumpSumPayment) stream {

	req := schedule.Request{Mode: mode, AnnualIncrease: increase}
	total := decimal.Zero
	if mode == model.ModeLumpSum {
		for _, p := range lumps {
			d := validation.ParseAmount(p.Amount)
			date, _ := dateutil.Parse(p.Date)
			total = total.Add(d)
			req.Payments = append(req.Payments, schedule.CashFlow{Date: date, Amount: d.InexactFloat64()})
		}
	} else {
		total = validation.ParseAmount(amount)
		req.Amount = total.InexactFloat64()
		req.Start, _ = dateutil.Parse(start)
		req.End, _ = dateutil.Parse(end)
	}

	s, err := schedule.Build(req)
	if err != nil {
		panic(fmt.Sprintf("valuation: validated stream rejected by schedule builder: %v", err))
	}
	return stream{schedule: s, amount: total, annualIncrease: increase}
}

// band applies the flat amount adjustments to a risk-adjusted NPV.
func (c *Calculator) band(npv float64) (minPayout, maxPayout float64) {
	adj := c.table.Adjustments()
	return roundCents(npv - adj.Min), roundCents(npv - adj.Max)
}

func (st stream) result(npv, minPayout, maxPayout float64) *model.CalculationResult {
	return &model.CalculationResult{
		NPV:            npv,
		MinPayout:      minPayout,
		MaxPayout:      maxPayout,
		PaymentMode:    st.schedule.Mode(),
		PaymentAmount:  st.amount.InexactFloat64(),
		AnnualIncrease: st.annualIncrease,
		StartDate:      dateutil.Format(st.schedule.Start()),
		EndDate:        dateutil.Format(st.schedule.End()),
	}
}

// checkNPV panics on a value no valid schedule can produce.
func checkNPV(npv float64) float64 {
	if math.IsNaN(npv) || math.IsInf(npv, 0) || npv < 0 {
		panic(fmt.Sprintf("valuation: invalid present value %v", npv))
	}
	return roundCents(npv)
}

func roundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
