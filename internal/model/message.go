package model

import (
	"errors"
	"strings"
)

type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

const (
	CodeInvalidAmount    = "INVALID_AMOUNT"
	CodeInvalidDates     = "INVALID_DATES"
	CodeInvalidMode      = "INVALID_PAYMENT_MODE"
	CodeInvalidIncrease  = "INVALID_ANNUAL_INCREASE"
	CodeInvalidLumpSum   = "INVALID_LUMP_SUM"
	CodeMissingFormData  = "MISSING_FORM_DATA"
	CodeUnknownRiskValue = "UNKNOWN_RISK_VALUE"
	CodeUnknownType      = "UNKNOWN_CALCULATION_TYPE"
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeOfferBelowMin    = "OFFER_BELOW_MINIMUM"
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError carries the user-facing messages of a rejected form.
// It is always raised before any numeric work starts.
type ValidationError struct {
	Messages []CalculationMessage
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return ErrValidation.Error()
	}
	return e.Messages[0].Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Texts returns the plain messages in order.
func (e *ValidationError) Texts() []string {
	out := make([]string, 0, len(e.Messages))
	for _, m := range e.Messages {
		out = append(out, m.Message)
	}
	return out
}

// NewValidationError returns nil when msgs holds no CRITICAL entry.
func NewValidationError(msgs []CalculationMessage) error {
	for _, m := range msgs {
		if m.Level == LevelCritical {
			return &ValidationError{Messages: msgs}
		}
	}
	return nil
}

// Critical builds a CRITICAL message.
func Critical(code, message string) CalculationMessage {
	return CalculationMessage{Level: LevelCritical, Code: code, Message: message}
}

// CheckOf folds validation messages into the non-throwing FormCheck shape.
func CheckOf(msgs []CalculationMessage) FormCheck {
	check := FormCheck{IsValid: true, Errors: []string{}}
	for _, m := range msgs {
		if m.Level != LevelCritical {
			continue
		}
		check.IsValid = false
		check.Errors = append(check.Errors, m.Message)
	}
	return check
}

// JoinMessages is used for log lines.
func JoinMessages(msgs []CalculationMessage) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, m.Code+": "+m.Message)
	}
	return strings.Join(parts, "; ")
}
