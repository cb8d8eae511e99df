package interpreter

import (
	"math"
	"strconv"
	"strings"
)

// formatMoney renders amount as "$1,234" or "$1,234.50". Cents are shown
// only when they are not zero.
func formatMoney(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "$0"
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	total := int64(math.Round(amount * 100))
	whole, cents := total/100, total%100
	if total == 0 {
		sign = ""
	}

	out := sign + "$" + groupThousands(whole)
	if cents != 0 {
		out += "." + leftPad2(cents)
	}
	return out
}

func groupThousands(n int64) string {
	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func leftPad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// formatNumber prints an operand or result the way it was spoken: 15, 2.5.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// strconvFixed2 prints a quotient with exactly two decimals: 2.50.
func strconvFixed2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// roundTo2 rounds half away from zero to two decimals.
func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// plural picks the singular form for exactly one.
func plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
