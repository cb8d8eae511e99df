package numerals

import (
	"strconv"
	"strings"
)

var (
	spanishUnits = [...]string{
		"cero", "uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho", "nueve",
		"diez", "once", "doce", "trece", "catorce", "quince", "dieciséis", "diecisiete", "dieciocho", "diecinueve",
		"veinte", "veintiuno", "veintidós", "veintitrés", "veinticuatro", "veinticinco", "veintiséis", "veintisiete", "veintiocho", "veintinueve",
	}
	spanishTens = [...]string{
		"", "", "", "treinta", "cuarenta", "cincuenta", "sesenta", "setenta", "ochenta", "noventa",
	}
	spanishHundreds = [...]string{
		"", "ciento", "doscientos", "trescientos", "cuatrocientos", "quinientos",
		"seiscientos", "setecientos", "ochocientos", "novecientos",
	}
)

type spanish struct{}

// Spanish returns the speller for Mexican Spanish amounts in pesos.
func Spanish() Speller {
	return spanish{}
}

// NumberToWords spells n as a standalone numeral: 21 is "veintiuno",
// 100 is "cien", 1000 is "mil" and 2000000 is "dos millones".
func (spanish) NumberToWords(n int64) string {
	if n < 0 {
		if n <= -maxSpelled {
			return strconv.FormatInt(n, 10)
		}
		return "menos " + spanishSpell(-n, false)
	}
	return spanishSpell(n, false)
}

// CurrencyToWords spells amount in pesos and centavos. Numerals take their
// short form before the noun: "un peso", "veintiún pesos", "un millón de pesos".
func (spanish) CurrencyToWords(amount float64) string {
	whole, cents, negative := splitAmount(amount)

	var b strings.Builder
	if negative {
		b.WriteString("menos ")
	}
	b.WriteString(spanishSpell(whole, true))
	if whole >= 1_000_000 && whole%1_000_000 == 0 && whole < maxSpelled {
		b.WriteString(" de")
	}
	if whole == 1 {
		b.WriteString(" peso")
	} else {
		b.WriteString(" pesos")
	}

	if cents > 0 {
		b.WriteString(" con ")
		b.WriteString(spanishBelowHundred(int(cents), true))
		if cents == 1 {
			b.WriteString(" centavo")
		} else {
			b.WriteString(" centavos")
		}
	}
	return b.String()
}

func spanishSpell(n int64, apocope bool) string {
	if n == 0 {
		return spanishUnits[0]
	}
	if n >= maxSpelled {
		return strconv.FormatInt(n, 10)
	}

	var parts []string
	millions, rest := n/1_000_000, n%1_000_000
	switch {
	case millions == 1:
		parts = append(parts, "un millón")
	case millions > 1:
		parts = append(parts, spanishBelowMillion(int(millions), true)+" millones")
	}
	if rest > 0 {
		parts = append(parts, spanishBelowMillion(int(rest), apocope))
	}
	return strings.Join(parts, " ")
}

func spanishBelowMillion(n int, apocope bool) string {
	var parts []string
	thousands, rest := n/1000, n%1000
	switch {
	case thousands == 1:
		parts = append(parts, "mil")
	case thousands > 1:
		parts = append(parts, spanishBelowThousand(thousands, true)+" mil")
	}
	if rest > 0 {
		parts = append(parts, spanishBelowThousand(rest, apocope))
	}
	return strings.Join(parts, " ")
}

func spanishBelowThousand(n int, apocope bool) string {
	if n == 100 {
		return "cien"
	}
	hundreds, rest := n/100, n%100
	var parts []string
	if hundreds > 0 {
		parts = append(parts, spanishHundreds[hundreds])
	}
	if rest > 0 {
		parts = append(parts, spanishBelowHundred(rest, apocope))
	}
	return strings.Join(parts, " ")
}

// spanishBelowHundred spells 1..99. With apocope a trailing "uno" is
// shortened as it is before a noun.
func spanishBelowHundred(n int, apocope bool) string {
	if n < 30 {
		if apocope {
			switch n {
			case 1:
				return "un"
			case 21:
				return "veintiún"
			}
		}
		return spanishUnits[n]
	}
	tens, unit := n/10, n%10
	if unit == 0 {
		return spanishTens[tens]
	}
	unitWord := spanishUnits[unit]
	if apocope && unit == 1 {
		unitWord = "un"
	}
	return spanishTens[tens] + " y " + unitWord
}
