// Package normalize folds text to the comparison form used by the voice pipeline.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Text lowercases s, strips diacritics and trims surrounding whitespace.
// "¿Cuánto debe José?" becomes "¿cuanto debe jose?".
func Text(s string) string {
	lowered := strings.ToLower(s)
	// transformers keep state, so each call builds its own chain
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(stripAccents, lowered)
	if err != nil {
		result = lowered
	}
	return strings.TrimSpace(result)
}

// Fields normalizes s and splits it on whitespace.
func Fields(s string) []string {
	return strings.Fields(Text(s))
}
