package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-assistant/internal/models"
	"voice-assistant/internal/voice/timewindow"
)

var testNow = time.Date(2024, time.May, 15, 10, 0, 0, 0, time.UTC)

// ==========================
// Name extraction
// ==========================

func TestSpanishExtractor_CustomerName(t *testing.T) {
	extractor := NewExtractor(SpanishPack())

	tests := []struct {
		command  string
		expected string
	}{
		{"¿Cuánto debe Juan Pérez?", "Juan Pérez"},
		{"¿Cuánto me debe Juan Pérez en septiembre?", "Juan Pérez"},
		{"¿Cuánto debe Ana?", "Ana"},
		{"¿Qué me adeuda María?", "María"},
		{"deuda del cliente Luis Gómez", "Luis Gómez"},
		{"la deuda de José Luis Ramírez.", "José Luis Ramírez"},
		{"¿Cuánto me debe el cliente Juan?", "Juan"},
		{"saldo pendiente para Carmen Ortiz!!", "Carmen Ortiz"},
		{"¿Cuánto me deben?", ""},
		{"¿Cuánto debe el cliente?", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractor.CustomerName(tt.command))
		})
	}
}

func TestEnglishExtractor_CustomerName(t *testing.T) {
	extractor := NewExtractor(EnglishPack())

	tests := []struct {
		command  string
		expected string
	}{
		{"How much does John Smith owe?", "John Smith"},
		{"How much does Ana owe?", "Ana"},
		{"What is the debt of Mary Jones", "Mary Jones"},
		{"balance for customer Peter Parker", "Peter Parker"},
		{"How much do my customers owe?", ""},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractor.CustomerName(tt.command))
		})
	}
}

// ==========================
// Months and periods
// ==========================

func TestExtractor_Month(t *testing.T) {
	extractor := NewExtractor(SpanishPack())

	tests := []struct {
		command  string
		expected *int
	}{
		{"¿Cuánto me debe Juan en septiembre?", intPtr(8)},
		{"pagos de setiembre", intPtr(8)},
		{"ventas de ENERO", intPtr(0)},
		{"ganancia de este mes", intPtr(4)},
		{"¿Quién es mi deudor mayor?", nil},
		{"pagos de los mayos", nil},
		{"¿Cuánto debe Ana?", nil},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractor.Month(tt.command, testNow))
		})
	}
}

func TestExtractor_TimePeriod(t *testing.T) {
	extractor := NewExtractor(SpanishPack())

	tests := []struct {
		command       string
		expected      timewindow.Period
		expectedMonth *int
	}{
		{"ganancia de marzo", timewindow.SpecificMonth, intPtr(2)},
		{"ganancia de marzo de este año", timewindow.SpecificMonth, intPtr(2)},
		{"ganancia de este mes", timewindow.Month, nil},
		{"ganancia de esta semana", timewindow.Week, nil},
		{"ganancia de hoy", timewindow.Day, nil},
		{"ganancia de este año", timewindow.Year, nil},
		{"ganancia total", timewindow.All, nil},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			period, month := extractor.TimePeriod(tt.command)
			assert.Equal(t, tt.expected, period)
			assert.Equal(t, tt.expectedMonth, month)
		})
	}
}

func TestEnglishExtractor_TimePeriod(t *testing.T) {
	extractor := NewExtractor(EnglishPack())

	period, month := extractor.TimePeriod("profit in February")
	assert.Equal(t, timewindow.SpecificMonth, period)
	assert.Equal(t, intPtr(1), month)

	period, _ = extractor.TimePeriod("profit this week")
	assert.Equal(t, timewindow.Week, period)

	period, _ = extractor.TimePeriod("profit today")
	assert.Equal(t, timewindow.Day, period)
}

func TestExtractor_Numbers(t *testing.T) {
	extractor := NewExtractor(SpanishPack())

	assert.Equal(t, []float64{10, 5}, extractor.Numbers("Calcula 10 más 5"))
	assert.Equal(t, []float64{2.5, 4, 7}, extractor.Numbers("2.5 por 4 y 7"))
	assert.Empty(t, extractor.Numbers("sin números"))
}

func TestExtractor_Extract(t *testing.T) {
	extractor := NewExtractor(SpanishPack())

	got := extractor.Extract("¿Cuánto me debe Juan Pérez en mayo?", testNow)
	assert.Equal(t, "Juan Pérez", got.CandidateName)
	require.NotNil(t, got.Month)
	assert.Equal(t, 4, *got.Month)
	assert.Equal(t, timewindow.SpecificMonth, got.TimePeriod)
	assert.Empty(t, got.Numbers)
}

// ==========================
// Resolution cascade
// ==========================

func TestResolver_FindCustomer(t *testing.T) {
	resolver := NewResolver(SpanishPack())
	customers := []models.Customer{
		{ID: "c1", Name: "Juan Pérez", TotalDebt: 150},
	}

	for _, search := range []string{"Juan", "Pérez", "juan perez", "JUAN PÉREZ"} {
		t.Run(search, func(t *testing.T) {
			found := resolver.FindCustomer(search, customers)
			require.NotNil(t, found)
			assert.Equal(t, "c1", found.ID)
		})
	}
}

func TestResolver_StageOrder(t *testing.T) {
	resolver := NewResolver(SpanishPack())
	customers := []models.Customer{
		{ID: "c1", Name: "Ana María López"},
		{ID: "c2", Name: "Ana"},
		{ID: "c3", Name: "Pedro Gómez Ruiz"},
		{ID: "c4", Name: "Rosa Martínez"},
	}

	tests := []struct {
		name       string
		search     string
		expectedID string
		stage      string
	}{
		{"exact match beats earlier substring", "Ana", "c2", "exact"},
		{"substring", "María López", "c1", "substring"},
		{"all tokens in any order", "Ruiz Pedro", "c3", "all_tokens"},
		{"any token overlap", "Martín Sánchez", "c4", "any_token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, stage := resolver.Resolve(tt.search, customers)
			require.NotNil(t, found)
			assert.Equal(t, tt.expectedID, found.ID)
			assert.Equal(t, tt.stage, stage)
		})
	}
}

func TestResolver_NoMatch(t *testing.T) {
	resolver := NewResolver(SpanishPack())
	customers := []models.Customer{{ID: "c1", Name: "Juan Pérez"}}

	assert.Nil(t, resolver.FindCustomer("Roberto", customers))
	assert.Nil(t, resolver.FindCustomer("", customers))
	assert.Nil(t, resolver.FindCustomer("cliente", customers))
	assert.Nil(t, resolver.FindCustomer("Juan", nil))
}

func TestResolver_ReturnsCopy(t *testing.T) {
	resolver := NewResolver(SpanishPack())
	customers := []models.Customer{{ID: "c1", Name: "Juan Pérez", TotalDebt: 10}}

	found := resolver.FindCustomer("Juan", customers)
	require.NotNil(t, found)
	found.TotalDebt = 999

	assert.Equal(t, 10.0, customers[0].TotalDebt)
}

func intPtr(v int) *int { return &v }
