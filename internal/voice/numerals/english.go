package numerals

import (
	"strconv"
	"strings"
)

var (
	englishOnes = [...]string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
	}
	englishTens = [...]string{
		"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
	}
)

var englishScales = []struct {
	value int64
	word  string
}{
	{1_000_000_000, "billion"},
	{1_000_000, "million"},
	{1_000, "thousand"},
}

type english struct{}

// English returns the speller for amounts in dollars.
func English() Speller {
	return english{}
}

// NumberToWords spells n without "and": 105 is "one hundred five",
// 21 is "twenty-one".
func (english) NumberToWords(n int64) string {
	if n < 0 {
		if n <= -maxSpelled {
			return strconv.FormatInt(n, 10)
		}
		return "minus " + englishSpell(-n)
	}
	return englishSpell(n)
}

func (english) CurrencyToWords(amount float64) string {
	whole, cents, negative := splitAmount(amount)

	var b strings.Builder
	if negative {
		b.WriteString("minus ")
	}
	b.WriteString(englishSpell(whole))
	if whole == 1 {
		b.WriteString(" dollar")
	} else {
		b.WriteString(" dollars")
	}

	if cents > 0 {
		b.WriteString(" and ")
		b.WriteString(englishBelowThousand(int(cents)))
		if cents == 1 {
			b.WriteString(" cent")
		} else {
			b.WriteString(" cents")
		}
	}
	return b.String()
}

func englishSpell(n int64) string {
	if n == 0 {
		return englishOnes[0]
	}
	if n >= maxSpelled {
		return strconv.FormatInt(n, 10)
	}

	var parts []string
	for _, scale := range englishScales {
		if n >= scale.value {
			parts = append(parts, englishBelowThousand(int(n/scale.value))+" "+scale.word)
			n %= scale.value
		}
	}
	if n > 0 {
		parts = append(parts, englishBelowThousand(int(n)))
	}
	return strings.Join(parts, " ")
}

func englishBelowThousand(n int) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, englishOnes[n/100]+" hundred")
		n %= 100
	}
	switch {
	case n == 0:
	case n < 20:
		parts = append(parts, englishOnes[n])
	case n%10 == 0:
		parts = append(parts, englishTens[n/10])
	default:
		parts = append(parts, englishTens[n/10]+"-"+englishOnes[n%10])
	}
	return strings.Join(parts, " ")
}
