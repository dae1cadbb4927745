package offer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"settlement-quote/internal/model"
)

// MinimumOffer is the smallest minimum offer worth presenting, in dollars.
const MinimumOffer = 5000

// Gate decides whether a computed band is shown. It runs at the presentation
// boundary so the engine itself always returns the full numbers.
func Gate(minOffer, maxOffer float64) model.OfferDecision {
	if minOffer < MinimumOffer {
		return model.OfferDecision{
			ShouldShowOffer: false,
			Message: fmt.Sprintf("We're unable to present an offer below %s. Your estimated offer range is %s to %s.",
				FormatCurrency(MinimumOffer), FormatCurrency(minOffer), FormatCurrency(maxOffer)),
		}
	}
	return model.OfferDecision{ShouldShowOffer: true}
}

// FormatCurrency renders whole dollars as "$1,234" and anything else as "$1,234.56".
func FormatCurrency(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	var s string
	if d.Equal(d.Truncate(0)) {
		s = d.StringFixed(0)
	} else {
		s = d.StringFixed(2)
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	b.WriteString(sign)
	b.WriteByte('$')
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
