package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "spanish accents", input: "¿Cuánto debe José Pérez?", expected: "¿cuanto debe jose perez?"},
		{name: "enye is decomposed", input: "Año", expected: "ano"},
		{name: "surrounding whitespace", input: "  Productos  ", expected: "productos"},
		{name: "dieresis", input: "Pingüino", expected: "pinguino"},
		{name: "plain english", input: "How many PRODUCTS", expected: "how many products"},
		{name: "only whitespace", input: " \t\n ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Text(tt.input))
		})
	}
}

func TestText_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"¿Cuánto me debe María José?",
		"ÉXITO Ñandú",
		"  calcula 10 más 5  ",
		"é",
		"İstanbul",
		"\xff\xfe invalid",
	}

	for _, in := range inputs {
		once := Text(in)
		assert.Equal(t, once, Text(once), "input %q", in)
	}
}

func TestFields(t *testing.T) {
	assert.Equal(t, []string{"juan", "perez"}, Fields(" Juan   Pérez "))
	assert.Empty(t, Fields("   "))
}

func BenchmarkText(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Text("¿Cuánto me debe Juan Pérez en septiembre?")
	}
}
