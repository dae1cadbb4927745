package schedule

import (
	"fmt"
	"iter"
	"math"
	"sort"
	"time"

	"settlement-quote/internal/dateutil"
	"settlement-quote/internal/model"
)

// CashFlow is a single dated payment in dollars.
type CashFlow struct {
	Date   time.Time
	Amount float64
}

// Request describes the stream to expand. Periodic modes read Amount,
// AnnualIncrease, Start and End; LumpSum reads Payments only.
type Request struct {
	Mode           model.PaymentMode
	Amount         float64
	AnnualIncrease float64
	Start          time.Time
	End            time.Time
	Payments       []CashFlow
}

// Schedule is an immutable description of a cash-flow stream. Flows are
// generated on demand, so a Schedule can be iterated any number of times.
type Schedule struct {
	mode           model.PaymentMode
	stepMonths     int
	amount         float64
	annualIncrease float64
	start, end     time.Time
	payments       []CashFlow
}

// Build checks the request shape and returns the schedule.
func Build(r Request) (*Schedule, error) {
	if r.Mode == model.ModeLumpSum {
		if len(r.Payments) == 0 {
			return nil, fmt.Errorf("lump sum schedule needs at least one payment")
		}
		payments := make([]CashFlow, len(r.Payments))
		copy(payments, r.Payments)
		sort.SliceStable(payments, func(i, j int) bool {
			return payments[i].Date.Before(payments[j].Date)
		})
		return &Schedule{
			mode:     r.Mode,
			start:    payments[0].Date,
			end:      payments[len(payments)-1].Date,
			payments: payments,
		}, nil
	}

	step := r.Mode.MonthsPerPeriod()
	if step == 0 {
		return nil, fmt.Errorf("unknown payment mode %q", r.Mode)
	}
	if r.End.Before(r.Start) {
		return nil, fmt.Errorf("end %s is before start %s", dateutil.Format(r.End), dateutil.Format(r.Start))
	}
	return &Schedule{
		mode:           r.Mode,
		stepMonths:     step,
		amount:         r.Amount,
		annualIncrease: r.AnnualIncrease,
		start:          r.Start,
		end:            r.End,
	}, nil
}

func (s *Schedule) Mode() model.PaymentMode { return s.mode }

// Start is the first payment date for lump sums, the window start otherwise.
func (s *Schedule) Start() time.Time { return s.start }

// End is the last payment date for lump sums, the window end otherwise.
func (s *Schedule) End() time.Time { return s.end }

// PeriodsPerYear is the compounding frequency of the stream; 0 for lump sums.
func (s *Schedule) PeriodsPerYear() int {
	if s.stepMonths == 0 {
		return 0
	}
	return 12 / s.stepMonths
}

// Flows yields the cash flows in date order. Periodic payments fall on every
// period boundary from start to end inclusive; each 12-month cohort pays
// (1 + increase/100) times the previous one.
func (s *Schedule) Flows() iter.Seq[CashFlow] {
	if s.mode == model.ModeLumpSum {
		return func(yield func(CashFlow) bool) {
			for _, p := range s.payments {
				if !yield(p) {
					return
				}
			}
		}
	}
	return func(yield func(CashFlow) bool) {
		growth := 1 + s.annualIncrease/100
		for months := 0; ; months += s.stepMonths {
			d := dateutil.AddMonths(s.start, months)
			if d.After(s.end) {
				return
			}
			amt := s.amount * math.Pow(growth, float64(months/12))
			if !yield(CashFlow{Date: d, Amount: amt}) {
				return
			}
		}
	}
}

// Len returns the number of cash flows.
func (s *Schedule) Len() int {
	n := 0
	for range s.Flows() {
		n++
	}
	return n
}

// Total is the undiscounted sum of all flows.
func (s *Schedule) Total() float64 {
	var total float64
	for cf := range s.Flows() {
		total += cf.Amount
	}
	return total
}
