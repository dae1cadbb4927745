package engine

import (
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"settlement-quote/internal/model"
	"settlement-quote/internal/ratetable"
	"settlement-quote/internal/valuation"
)

func newEngine() *Engine {
	clock := func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }
	return New(valuation.NewCalculator(ratetable.Default(), clock), zerolog.Nop())
}

const guaranteedJSON = `{
	"paymentAmount": "2000",
	"paymentMode": "Monthly",
	"annualIncrease": 2,
	"startDate": "2027-02-01",
	"endDate": "2037-02-01"
}`

const lcpJSON = `{
	"paymentData": {"paymentMode": "Monthly", "amount": 2000},
	"detailsData": {"annualIncrease": 2, "startDate": "2027-02-01", "endDate": "2037-02-01"},
	"profileData": {"ageRange": "46-55", "gender": "female", "bodyFrame": "small"},
	"lifestyleData": {"weight": "normal"},
	"healthData": {"smoke": "no", "health": "good", "cardiac": "normal"}
}`

func TestProcessGuaranteed(t *testing.T) {
	resp := newEngine().Process(&model.CalculationRequest{
		CalculationType: model.TypeGuaranteed,
		Guaranteed:      json.RawMessage(guaranteedJSON),
	})

	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("expected SUCCESS, got %s (%v)", resp.CalculationMetadata.CalculationOutcome, resp.CalculationResult.Messages)
	}
	if _, err := uuid.Parse(resp.CalculationMetadata.CalculationID); err != nil {
		t.Fatalf("expected uuid calculation_id, got %q", resp.CalculationMetadata.CalculationID)
	}
	if resp.CalculationMetadata.ValuationDate != "2026-10-15" {
		t.Fatalf("expected valuation date 2026-10-15, got %s", resp.CalculationMetadata.ValuationDate)
	}
	if len(resp.CalculationResult.Messages) != 0 {
		t.Fatalf("expected 0 messages, got %d", len(resp.CalculationResult.Messages))
	}

	q := resp.CalculationResult.Quote
	if q == nil {
		t.Fatal("expected quote")
	}
	if q.PaymentAmount != 2000 || q.PaymentMode != model.ModeMonthly {
		t.Fatalf("unexpected echo %+v", q)
	}
	if resp.CalculationResult.Offer == nil || !resp.CalculationResult.Offer.ShouldShowOffer {
		t.Fatalf("expected offer to be shown, got %+v", resp.CalculationResult.Offer)
	}
}

func TestProcessLCP(t *testing.T) {
	resp := newEngine().Process(&model.CalculationRequest{
		CalculationType: model.TypeLCP,
		LCP:             json.RawMessage(lcpJSON),
	})
	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("expected SUCCESS, got %s (%v)", resp.CalculationMetadata.CalculationOutcome, resp.CalculationResult.Messages)
	}
	q := resp.CalculationResult.Quote
	if q == nil || !q.IsLCP() {
		t.Fatalf("expected LCP quote, got %+v", q)
	}
	if len(q.LCPKeys) != 7 || q.LCPKeys[0] != "age-46-55" || q.LCPKeys[3] != "normal-weight" {
		t.Fatalf("unexpected keys %v", q.LCPKeys)
	}
}

func TestProcessComparison(t *testing.T) {
	resp := newEngine().Process(&model.CalculationRequest{
		CalculationType: model.TypeComparison,
		Guaranteed:      json.RawMessage(guaranteedJSON),
		LCP:             json.RawMessage(lcpJSON),
	})
	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("expected SUCCESS, got %s (%v)", resp.CalculationMetadata.CalculationOutcome, resp.CalculationResult.Messages)
	}
	c := resp.CalculationResult.Comparison
	if c == nil || c.LCP == nil || c.Guaranteed == nil {
		t.Fatalf("expected both sides, got %+v", c)
	}
	if resp.CalculationResult.Offers == nil {
		t.Fatal("expected per-side offers")
	}
	if resp.CalculationResult.Quote != nil {
		t.Fatal("expected no single quote on a comparison")
	}
}

func TestProcessComparisonMissingSide(t *testing.T) {
	resp := newEngine().Process(&model.CalculationRequest{
		CalculationType: model.TypeComparison,
		LCP:             json.RawMessage(lcpJSON),
	})
	if resp.CalculationMetadata.CalculationOutcome != "FAILURE" {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if resp.CalculationResult.Comparison != nil {
		t.Fatal("expected no partial comparison")
	}
	msgs := resp.CalculationResult.Messages
	if len(msgs) != 1 || msgs[0].Code != model.CodeMissingFormData {
		t.Fatalf("expected missing form data message, got %v", msgs)
	}
}

func TestProcessValidationFailure(t *testing.T) {
	body := strings.Replace(guaranteedJSON, `"2000"`, `"100.123"`, 1)
	body = strings.Replace(body, `"startDate": "2027-02-01"`, `"startDate": "2026-11-01"`, 1)
	resp := newEngine().Process(&model.CalculationRequest{
		CalculationType: model.TypeGuaranteed,
		Guaranteed:      json.RawMessage(body),
	})

	if resp.CalculationMetadata.CalculationOutcome != "FAILURE" {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if resp.CalculationResult.Quote != nil || resp.CalculationResult.Offer != nil {
		t.Fatal("expected no quote on failure")
	}
	msgs := resp.CalculationResult.Messages
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %v", msgs)
	}
	if msgs[0].ID != 0 || msgs[1].ID != 1 {
		t.Fatalf("expected sequential message ids, got %d, %d", msgs[0].ID, msgs[1].ID)
	}
	if !strings.Contains(msgs[0].Message, "at most 2 decimal places") {
		t.Fatalf("unexpected first message %q", msgs[0].Message)
	}
	if !strings.Contains(msgs[1].Message, "3 months in the future") {
		t.Fatalf("unexpected second message %q", msgs[1].Message)
	}
}

func TestProcessUnknownType(t *testing.T) {
	resp := newEngine().Process(&model.CalculationRequest{CalculationType: "annuity"})
	if resp.CalculationMetadata.CalculationOutcome != "FAILURE" {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if resp.CalculationResult.Messages[0].Code != "UNKNOWN_CALCULATION_TYPE" {
		t.Fatalf("expected UNKNOWN_CALCULATION_TYPE, got %s", resp.CalculationResult.Messages[0].Code)
	}
}

func TestProcessBadFormJSON(t *testing.T) {
	resp := newEngine().Process(&model.CalculationRequest{
		CalculationType: model.TypeGuaranteed,
		Guaranteed:      json.RawMessage(`{"paymentAmount": true}`),
	})
	if resp.CalculationResult.Messages[0].Code != model.CodeInvalidRequest {
		t.Fatalf("expected INVALID_REQUEST, got %v", resp.CalculationResult.Messages)
	}
}

func TestValidate(t *testing.T) {
	e := newEngine()
	check := e.Validate(&model.CalculationRequest{CalculationType: model.TypeLCP, LCP: json.RawMessage(`{
		"paymentData": {"paymentMode": "Monthly", "amount": "2000"},
		"detailsData": {"annualIncrease": 2, "startDate": "2027-02-01", "endDate": "2037-02-01"},
		"profileData": {"ageRange": "46-55", "gender": "female", "bodyFrame": "small"},
		"lifestyleData": {"weight": "normal"}
	}`)})
	if check.IsValid {
		t.Fatal("expected invalid")
	}
	if len(check.Errors) != 1 || !strings.Contains(check.Errors[0], "missing required form data") {
		t.Fatalf("expected missing form data, got %v", check.Errors)
	}

	check = e.Validate(&model.CalculationRequest{
		CalculationType: model.TypeComparison,
		Guaranteed:      json.RawMessage(guaranteedJSON),
		LCP:             json.RawMessage(lcpJSON),
	})
	if !check.IsValid || len(check.Errors) != 0 {
		t.Fatalf("expected valid comparison, got %+v", check)
	}
}
