// Package numerals spells integers and currency amounts out as words so
// responses can be handed to a speech synthesizer.
package numerals

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Speller renders numbers as words for one locale.
type Speller interface {
	NumberToWords(n int64) string
	CurrencyToWords(amount float64) string
}

// maxSpelled is the first value rendered as plain digits.
const maxSpelled = 1_000_000_000_000

var currencyToken = regexp.MustCompile(`-?\$(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?`)

// FormatForSpeech replaces every currency token in text ("$1,234.50", "$100",
// "-$50") with its spoken form. Everything else passes through unchanged.
func FormatForSpeech(text string, speller Speller) string {
	if speller == nil || !strings.Contains(text, "$") {
		return text
	}
	return currencyToken.ReplaceAllStringFunc(text, func(token string) string {
		negative := strings.HasPrefix(token, "-")
		raw := strings.ReplaceAll(strings.TrimLeft(token, "-$"), ",", "")
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return token
		}
		if negative {
			amount = -amount
		}
		return speller.CurrencyToWords(amount)
	})
}

// splitAmount rounds amount to cents and returns the absolute integer and
// cent parts plus the sign.
func splitAmount(amount float64) (whole, cents int64, negative bool) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, 0, false
	}
	negative = amount < 0
	total := int64(math.Round(math.Abs(amount) * 100))
	return total / 100, total % 100, negative && total > 0
}
