package schedule

import (
	"math"
	"slices"
	"testing"
	"time"

	"settlement-quote/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodicCadence(t *testing.T) {
	cases := []struct {
		mode model.PaymentMode
		want int
		ppy  int
	}{
		{model.ModeMonthly, 25, 12},
		{model.ModeQuarterly, 9, 4},
		{model.ModeSemiannually, 5, 2},
		{model.ModeAnnually, 3, 1},
	}
	for _, c := range cases {
		s, err := Build(Request{Mode: c.mode, Amount: 1000, Start: date(2027, 1, 15), End: date(2029, 1, 15)})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.mode, err)
		}
		if got := s.Len(); got != c.want {
			t.Fatalf("%s: expected %d flows, got %d", c.mode, c.want, got)
		}
		if got := s.PeriodsPerYear(); got != c.ppy {
			t.Fatalf("%s: expected %d periods per year, got %d", c.mode, c.ppy, got)
		}
	}
}

func TestMonthlyFlowsClampMonthEnd(t *testing.T) {
	s, err := Build(Request{Mode: model.ModeMonthly, Amount: 100, Start: date(2027, 1, 31), End: date(2027, 4, 30)})
	if err != nil {
		t.Fatal(err)
	}
	var dates []time.Time
	for cf := range s.Flows() {
		dates = append(dates, cf.Date)
	}
	want := []time.Time{date(2027, 1, 31), date(2027, 2, 28), date(2027, 3, 31), date(2027, 4, 30)}
	if !slices.EqualFunc(dates, want, time.Time.Equal) {
		t.Fatalf("expected %v, got %v", want, dates)
	}
}

func TestAnnualIncreaseByCohort(t *testing.T) {
	s, err := Build(Request{Mode: model.ModeQuarterly, Amount: 1000, AnnualIncrease: 5, Start: date(2027, 1, 1), End: date(2029, 1, 1)})
	if err != nil {
		t.Fatal(err)
	}
	var amounts []float64
	for cf := range s.Flows() {
		amounts = append(amounts, cf.Amount)
	}
	want := []float64{1000, 1000, 1000, 1000, 1050, 1050, 1050, 1050, 1102.5}
	if len(amounts) != len(want) {
		t.Fatalf("expected %d flows, got %d", len(want), len(amounts))
	}
	for i := range want {
		if math.Abs(amounts[i]-want[i]) > 1e-9 {
			t.Fatalf("flow %d: expected %v, got %v", i, want[i], amounts[i])
		}
	}
}

func TestFlowsAreRestartable(t *testing.T) {
	s, err := Build(Request{Mode: model.ModeMonthly, Amount: 500, Start: date(2027, 1, 1), End: date(2028, 1, 1)})
	if err != nil {
		t.Fatal(err)
	}
	first := s.Total()
	for cf := range s.Flows() {
		_ = cf
		break
	}
	if second := s.Total(); second != first {
		t.Fatalf("expected identical totals, got %v and %v", first, second)
	}
	if first != 13*500 {
		t.Fatalf("expected total 6500, got %v", first)
	}
}

func TestLumpSumSortedByDate(t *testing.T) {
	in := []CashFlow{
		{Date: date(2025, 12, 1), Amount: 30000},
		{Date: date(2025, 7, 1), Amount: 50000},
	}
	s, err := Build(Request{Mode: model.ModeLumpSum, Payments: in})
	if err != nil {
		t.Fatal(err)
	}
	if !s.Start().Equal(date(2025, 7, 1)) || !s.End().Equal(date(2025, 12, 1)) {
		t.Fatalf("expected window 2025-07-01..2025-12-01, got %s..%s", s.Start(), s.End())
	}
	if s.PeriodsPerYear() != 0 {
		t.Fatalf("expected 0 periods per year, got %d", s.PeriodsPerYear())
	}
	if s.Total() != 80000 {
		t.Fatalf("expected total 80000, got %v", s.Total())
	}
	if !in[0].Date.Equal(date(2025, 12, 1)) {
		t.Fatal("expected input slice to be left untouched")
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(Request{Mode: model.ModeLumpSum}); err == nil {
		t.Fatal("expected error for empty lump sum")
	}
	if _, err := Build(Request{Mode: "Weekly", Start: date(2027, 1, 1), End: date(2028, 1, 1)}); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if _, err := Build(Request{Mode: model.ModeMonthly, Start: date(2028, 1, 1), End: date(2027, 1, 1)}); err == nil {
		t.Fatal("expected error for inverted window")
	}
}
