package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"voice-assistant/internal/voice/normalize"
)

func TestSpanishClassifier(t *testing.T) {
	classifier := NewClassifier(SpanishRules())

	tests := []struct {
		command  string
		expected Type
	}{
		{"calcula 150 por 8", Calculation},
		{"Calcula 10 más 5", Calculation},
		{"¿Cuánto es 20 entre 4?", Calculation},
		{"12 x 3", Calculation},
		{"productos con poco stock", Inventory},
		{"¿Cuántos productos tengo?", Inventory},
		{"¿Cuánto cuesta el producto silla?", Inventory},
		{"pagos vencidos", Payments},
		{"¿Tengo pagos pendientes?", Payments},
		{"¿cuánto debe Juan Pérez?", CustomerDebt},
		{"¿Quién me debe más?", CustomerDebt},
		{"deuda total", CustomerDebt},
		{"¿Cuántos clientes tengo?", Stats},
		{"¿Cuál es mi ganancia de este mes?", Stats},
		{"hola", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			got := classifier.Classify(normalize.Text(tt.command))
			assert.Equal(t, tt.expected, got.Type)
		})
	}
}

func TestSpanishClassifier_DebtWinsOverInventoryKeywords(t *testing.T) {
	classifier := NewClassifier(SpanishRules())

	got := classifier.Classify(normalize.Text("¿Cuánto debe Ana por los productos?"))
	assert.Equal(t, CustomerDebt, got.Type)
}

func TestSpanishClassifier_CalculationNeedsDigit(t *testing.T) {
	classifier := NewClassifier(SpanishRules())

	got := classifier.Classify(normalize.Text("¿Quién me debe más?"))
	assert.NotEqual(t, Calculation, got.Type)
}

func TestEnglishClassifier(t *testing.T) {
	classifier := NewClassifier(EnglishRules())

	tests := []struct {
		command  string
		expected Type
	}{
		{"What is 7 times 6", Calculation},
		{"calculate 10 plus 5", Calculation},
		{"How many products do I have?", Inventory},
		{"Which items are low on stock", Inventory},
		{"Show overdue payments", Payments},
		{"How much does John Smith owe?", CustomerDebt},
		{"total debt", CustomerDebt},
		{"How many customers do I have?", Stats},
		{"What are my profits this month?", Stats},
		{"good morning", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			got := classifier.Classify(normalize.Text(tt.command))
			assert.Equal(t, tt.expected, got.Type)
		})
	}
}

func TestClassifier_FirstMatchWins(t *testing.T) {
	always := func(string) bool { return true }
	classifier := NewClassifier([]Rule{
		{Name: "first", Match: always, Type: Stats, Confidence: 0.5},
		{Name: "second", Match: always, Type: Inventory, Confidence: 0.99},
	})

	got := classifier.Classify("anything")
	assert.Equal(t, Intent{Type: Stats, Confidence: 0.5}, got)
}

func TestClassifier_UnknownHasZeroConfidence(t *testing.T) {
	classifier := NewClassifier(nil)

	got := classifier.Classify("calcula 1 mas 1")
	assert.Equal(t, Unknown, got.Type)
	assert.Zero(t, got.Confidence)
}

func TestClassifier_RulesAreCopied(t *testing.T) {
	rules := SpanishRules()
	classifier := NewClassifier(rules)
	rules[0].Type = Unknown

	assert.Equal(t, Calculation, classifier.Rules()[0].Type)
}

func TestPredicates(t *testing.T) {
	yes := Matches(`a`)
	no := Matches(`z`)

	assert.True(t, All(yes, Not(no))("abc"))
	assert.False(t, All(yes, no)("abc"))
	assert.True(t, Any(no, yes)("abc"))
	assert.False(t, Any(no)("abc"))
}

func BenchmarkSpanishClassify(b *testing.B) {
	classifier := NewClassifier(SpanishRules())
	text := normalize.Text("¿Cuánto me debe Juan Pérez en septiembre?")
	for i := 0; i < b.N; i++ {
		classifier.Classify(text)
	}
}
