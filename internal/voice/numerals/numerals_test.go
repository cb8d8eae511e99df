package numerals

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Spanish
// ==========================

func TestSpanish_NumberToWords(t *testing.T) {
	speller := Spanish()

	tests := []struct {
		n        int64
		expected string
	}{
		{0, "cero"},
		{1, "uno"},
		{15, "quince"},
		{16, "dieciséis"},
		{20, "veinte"},
		{21, "veintiuno"},
		{22, "veintidós"},
		{29, "veintinueve"},
		{30, "treinta"},
		{31, "treinta y uno"},
		{99, "noventa y nueve"},
		{100, "cien"},
		{101, "ciento uno"},
		{115, "ciento quince"},
		{200, "doscientos"},
		{555, "quinientos cincuenta y cinco"},
		{1000, "mil"},
		{1001, "mil uno"},
		{2000, "dos mil"},
		{21000, "veintiún mil"},
		{100000, "cien mil"},
		{101000, "ciento un mil"},
		{999999, "novecientos noventa y nueve mil novecientos noventa y nueve"},
		{1000000, "un millón"},
		{2500000, "dos millones quinientos mil"},
		{21000000, "veintiún millones"},
		{1000000000, "mil millones"},
		{-5, "menos cinco"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, speller.NumberToWords(tt.n))
		})
	}
}

func TestSpanish_CurrencyToWords(t *testing.T) {
	speller := Spanish()

	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"singular", 1, "un peso"},
		{"plural", 2, "dos pesos"},
		{"zero", 0, "cero pesos"},
		{"hundred", 100, "cien pesos"},
		{"apocope", 21, "veintiún pesos"},
		{"with cents", 1.5, "un peso con cincuenta centavos"},
		{"single cent", 0.01, "cero pesos con un centavo"},
		{"thousands and cents", 1234.56, "mil doscientos treinta y cuatro pesos con cincuenta y seis centavos"},
		{"exact million", 1000000, "un millón de pesos"},
		{"exact millions", 3000000, "tres millones de pesos"},
		{"million and change", 1500000, "un millón quinientos mil pesos"},
		{"negative", -2, "menos dos pesos"},
		{"rounds to cents", 9.999, "diez pesos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, speller.CurrencyToWords(tt.amount))
		})
	}
}

// ==========================
// English
// ==========================

func TestEnglish_NumberToWords(t *testing.T) {
	speller := English()

	tests := []struct {
		n        int64
		expected string
	}{
		{0, "zero"},
		{7, "seven"},
		{13, "thirteen"},
		{21, "twenty-one"},
		{40, "forty"},
		{105, "one hundred five"},
		{1000, "one thousand"},
		{1234567, "one million two hundred thirty-four thousand five hundred sixty-seven"},
		{2000000000, "two billion"},
		{-3, "minus three"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, speller.NumberToWords(tt.n))
		})
	}
}

func TestEnglish_CurrencyToWords(t *testing.T) {
	speller := English()

	assert.Equal(t, "one dollar", speller.CurrencyToWords(1))
	assert.Equal(t, "two dollars", speller.CurrencyToWords(2))
	assert.Equal(t, "two dollars and five cents", speller.CurrencyToWords(2.05))
	assert.Equal(t, "zero dollars and one cent", speller.CurrencyToWords(0.01))
	assert.Equal(t, "one thousand two hundred fifty dollars", speller.CurrencyToWords(1250))
}

// ==========================
// Properties
// ==========================

func TestNumberToWords_NoDigits(t *testing.T) {
	spellers := map[string]Speller{"es": Spanish(), "en": English()}

	for name, speller := range spellers {
		t.Run(name, func(t *testing.T) {
			for n := int64(0); n <= 999999; n++ {
				words := speller.NumberToWords(n)
				if words == "" || strings.ContainsAny(words, "0123456789") {
					require.Failf(t, "bad spelling", "%d -> %q", n, words)
				}
			}
		})
	}
}

func TestCurrencyToWords_NoCentsClauseForWholeAmounts(t *testing.T) {
	for _, amount := range []float64{1, 2, 10, 250, 1000} {
		assert.NotContains(t, Spanish().CurrencyToWords(amount), " con ")
		assert.NotContains(t, English().CurrencyToWords(amount), " and ")
	}
}

func TestNumberToWords_Deterministic(t *testing.T) {
	for _, n := range []int64{0, 1, 21, 100, 1000, 123456} {
		assert.Equal(t, Spanish().NumberToWords(n), Spanish().NumberToWords(n))
		assert.Equal(t, English().NumberToWords(n), English().NumberToWords(n))
	}
}

// ==========================
// FormatForSpeech
// ==========================

func TestFormatForSpeech(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		speller  Speller
		expected string
	}{
		{
			name:     "single amount",
			text:     "Tienes un pago vencido por $100",
			speller:  Spanish(),
			expected: "Tienes un pago vencido por cien pesos",
		},
		{
			name:     "thousands separator and cents",
			text:     "Juan debe $1,234.50 en total.",
			speller:  Spanish(),
			expected: "Juan debe mil doscientos treinta y cuatro pesos con cincuenta centavos en total.",
		},
		{
			name:     "several amounts",
			text:     "Price $20, cost $12.",
			speller:  English(),
			expected: "Price twenty dollars, cost twelve dollars.",
		},
		{
			name:     "negative amount",
			text:     "Tu ganancia total es de -$50",
			speller:  Spanish(),
			expected: "Tu ganancia total es de menos cincuenta pesos",
		},
		{
			name:     "negative amount with cents",
			text:     "Your total profit is -$1,000.25",
			speller:  English(),
			expected: "Your total profit is minus one thousand dollars and twenty-five cents",
		},
		{
			name:     "no currency",
			text:     "10 más 5 es igual a 15",
			speller:  Spanish(),
			expected: "10 más 5 es igual a 15",
		},
		{
			name:     "lone dollar sign",
			text:     "$ signs alone stay",
			speller:  English(),
			expected: "$ signs alone stay",
		},
		{
			name:     "nil speller",
			text:     "$5",
			speller:  nil,
			expected: "$5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatForSpeech(tt.text, tt.speller))
		})
	}
}

func BenchmarkFormatForSpeech(b *testing.B) {
	speller := Spanish()
	for i := 0; i < b.N; i++ {
		FormatForSpeech("Te deben un total de $12,345.67 entre 4 clientes", speller)
	}
}
