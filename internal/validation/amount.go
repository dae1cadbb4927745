package validation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"settlement-quote/internal/model"
)

var (
	MinPaymentAmount = decimal.NewFromInt(100)
	MaxPaymentAmount = decimal.NewFromInt(10_000_000)
)

const maxLumpSumDigits = 7

// SanitizeNumericInput strips every character that is not a digit or a dot.
func SanitizeNumericInput(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ValidateAmount checks a single payment amount as typed by the user.
func ValidateAmount(raw string) model.FieldCheck {
	if _, msg := checkPaymentAmount(raw); msg != "" {
		return model.FieldCheck{IsValid: false, Error: msg}
	}
	return model.FieldCheck{IsValid: true}
}

// ParseAmount returns the decimal value of an amount that passed validation.
// It panics on anything else: an unvalidated amount here is a programming error.
func ParseAmount(a model.Amount) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(string(a)))
	if err != nil {
		panic(fmt.Sprintf("validation: unvalidated amount %q: %v", string(a), err))
	}
	return d
}

func checkPaymentAmount(raw string) (decimal.Decimal, string) {
	d, msg := parseAmount("Payment amount", raw)
	if msg != "" {
		return d, msg
	}
	if d.LessThan(MinPaymentAmount) {
		return d, "Payment amount must be at least $100"
	}
	if d.GreaterThan(MaxPaymentAmount) {
		return d, "Payment amount cannot exceed $10,000,000"
	}
	return d, ""
}

// parseAmount enforces the shape rules shared by every amount: digits and a
// single dot, at most two decimal places.
func parseAmount(label, raw string) (decimal.Decimal, string) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, label + " is required"
	}
	dots := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c == '.':
			dots++
		default:
			return decimal.Zero, label + " contains invalid characters"
		}
	}
	if dots > 1 || s == "." {
		return decimal.Zero, label + " contains invalid characters"
	}
	if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 > 2 {
		return decimal.Zero, label + " can have at most 2 decimal places"
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, label + " contains invalid characters"
	}
	return d, ""
}

func checkLumpSumAmount(index int, raw string) string {
	label := fmt.Sprintf("Lump sum payment %d: amount", index)
	d, msg := parseAmount(label, raw)
	if msg != "" {
		return msg
	}
	if !d.IsPositive() {
		return label + " must be greater than $0"
	}
	if len(d.Truncate(0).String()) > maxLumpSumDigits {
		return label + " cannot exceed 7 digits"
	}
	return ""
}
