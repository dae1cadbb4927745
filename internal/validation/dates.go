package validation

import (
	"fmt"
	"strings"
	"time"

	"settlement-quote/internal/dateutil"
	"settlement-quote/internal/model"
)

const (
	MinLeadMonths   = 3
	MinPeriodMonths = 6
	MaxPeriodYears  = 30
)

// ValidateDateRange checks a purchase window against today and returns the first problem.
func ValidateDateRange(start, end string, today time.Time) model.FieldCheck {
	if msgs := dateRangeErrors(start, end, today); len(msgs) > 0 {
		return model.FieldCheck{IsValid: false, Error: msgs[0]}
	}
	return model.FieldCheck{IsValid: true}
}

func dateRangeErrors(startRaw, endRaw string, today time.Time) []string {
	var msgs []string
	start, msg := parseDate("Start date", startRaw)
	if msg != "" {
		msgs = append(msgs, msg)
	}
	end, msg := parseDate("End date", endRaw)
	if msg != "" {
		msgs = append(msgs, msg)
	}
	if len(msgs) > 0 {
		return msgs
	}

	if !end.After(start) {
		return []string{"End date must be after start date"}
	}

	if start.Before(dateutil.AddMonths(dateutil.Truncate(today), MinLeadMonths)) {
		msgs = append(msgs, "Start date must be at least 3 months in the future")
	}
	if end.Before(dateutil.AddMonths(start, MinPeriodMonths)) {
		msgs = append(msgs, "End date must be at least 6 months after the start date")
	}
	if dateutil.MonthsBetween(start, end) < MinPeriodMonths {
		msgs = append(msgs, "Payment period must meet the minimum period of 6 months")
	}
	if end.After(dateutil.AddMonths(start, MaxPeriodYears*12)) {
		msgs = append(msgs, "Payment period cannot exceed the maximum period of 30 years")
	}
	return msgs
}

func parseDate(label, raw string) (time.Time, string) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, label + " is required"
	}
	t, ok := dateutil.Parse(s)
	if !ok {
		return time.Time{}, label + " must be a valid date (YYYY-MM-DD)"
	}
	return t, ""
}

func checkLumpSumDate(index int, raw string) string {
	_, msg := parseDate(fmt.Sprintf("Lump sum payment %d: date", index), raw)
	return msg
}
