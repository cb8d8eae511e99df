package interpretvoicecommand

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"voice-assistant/internal/common/config"
	"voice-assistant/internal/common/errors"
	"voice-assistant/internal/common/logger"
	"voice-assistant/internal/models"
	"voice-assistant/internal/store"
	"voice-assistant/internal/voice/interpreter"
	"voice-assistant/internal/voice/session"
	"voice-assistant/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)

	activatedJob := &pb.ActivatedJob{
		Key:                key,
		Type:               TaskType,
		ProcessInstanceKey: key * 10,
		BpmnProcessId:      "voice-business-query",
		ElementId:          "Activity_InterpretVoiceCommand",
		CustomHeaders:      "{}",
		Worker:             "test-worker",
		Retries:            3,
		Variables:          string(variablesJSON),
	}

	return entities.Job{ActivatedJob: activatedJob}
}

func createTestSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Customers: []models.Customer{
			{ID: "c1", Name: "Juan Pérez", TotalDebt: 500},
			{ID: "c2", Name: "Ana", TotalDebt: 0},
		},
		Products: []models.Product{
			{ID: "p1", Name: "Silla", Price: 50, PurchasePrice: 30, Quantity: 2, LowStockThreshold: 5},
		},
		Payments: []models.Payment{
			{ID: "pay1", CustomerID: "c1", Amount: 100, DueDate: models.NewDate(2024, time.May, 1), Status: models.PaymentStatusOverdue},
		},
	}
}

func createTestHandler(t *testing.T, cfg *Config) *Handler {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	log := logger.NewTestLogger(t)
	now := time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)

	assistant := session.NewAssistant(session.Dependencies{
		Interpreter: interpreter.New(interpreter.WithClock(func() time.Time { return now })),
		Snapshots:   store.StaticSnapshotLoader{Snapshot: createTestSnapshot()},
		Responses:   store.NewMemoryResponseStore(16, time.Hour),
	}, interpreter.Spanish, log)

	handler, err := NewHandler(HandlerOptions{
		CustomConfig: cfg,
		Assistant:    assistant,
		Logger:       log,
	})
	require.NoError(t, err)
	return handler
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	handler := createTestHandler(t, nil)

	tests := []struct {
		name     string
		input    *Input
		response string
		intent   string
		locale   string
	}{
		{
			name:     "spanish calculation",
			input:    &Input{Command: "Calcula 10 más 5", SessionID: "s1"},
			response: "10 más 5 es igual a 15",
			intent:   "calculation",
			locale:   "es",
		},
		{
			name:     "customer without debt",
			input:    &Input{Command: "¿Cuánto debe Ana?", Locale: "es-MX"},
			response: "Ana no tiene deudas pendientes",
			intent:   "customer_debt",
			locale:   "es",
		},
		{
			name:     "english debt",
			input:    &Input{Command: "How much does Juan owe?", Locale: "en"},
			response: "Juan Pérez owes you $500",
			intent:   "customer_debt",
			locale:   "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := handler.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.response, output.Response)
			assert.Equal(t, tt.intent, output.Intent)
			assert.Equal(t, tt.locale, output.Locale)
			assert.Equal(t, "query", output.Action)
			assert.NotEmpty(t, output.SessionID)
			assert.NotEmpty(t, output.Speech)
		})
	}
}

func TestHandler_Execute_InlineSnapshot(t *testing.T) {
	handler := createTestHandler(t, nil)

	output, err := handler.Execute(context.Background(), &Input{
		Command: "¿Cuánto debe Ana?",
		Snapshot: &models.Snapshot{
			Customers: []models.Customer{{ID: "c9", Name: "Ana", TotalDebt: 100}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana te debe $100", output.Response)
	assert.Equal(t, "Ana te debe cien pesos", output.Speech)
}

func TestHandler_Execute_Repeat(t *testing.T) {
	handler := createTestHandler(t, nil)
	ctx := context.Background()

	first, err := handler.Execute(ctx, &Input{Command: "¿Tengo pagos vencidos?", SessionID: "s1"})
	require.NoError(t, err)

	again, err := handler.Execute(ctx, &Input{Command: "Repite", SessionID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, "repeat", again.Action)
	assert.True(t, again.Repeated)
	assert.Equal(t, first.Response, again.Response)
}

func TestHandler_ParseInput(t *testing.T) {
	handler := createTestHandler(t, nil)

	tests := []struct {
		name      string
		variables map[string]interface{}
		wantErr   bool
		check     func(t *testing.T, input *Input)
	}{
		{
			name:      "command and session",
			variables: map[string]interface{}{"command": "¿Cuánto debe Ana?", "sessionId": "s1", "locale": "es"},
			check: func(t *testing.T, input *Input) {
				assert.Equal(t, "¿Cuánto debe Ana?", input.Command)
				assert.Equal(t, "s1", input.SessionID)
				assert.Nil(t, input.Snapshot)
			},
		},
		{
			name: "inline snapshot",
			variables: map[string]interface{}{
				"command": "pagos vencidos",
				"snapshot": map[string]interface{}{
					"payments": []interface{}{
						map[string]interface{}{"id": "pay1", "customerId": "c1", "amount": 100, "dueDate": "2024-05-01", "status": "overdue"},
					},
				},
			},
			check: func(t *testing.T, input *Input) {
				require.NotNil(t, input.Snapshot)
				require.Len(t, input.Snapshot.Payments, 1)
				assert.Equal(t, models.NewDate(2024, time.May, 1), input.Snapshot.Payments[0].DueDate)
			},
		},
		{
			name:      "missing command",
			variables: map[string]interface{}{"locale": "es"},
			wantErr:   true,
		},
		{
			name:      "unsupported locale",
			variables: map[string]interface{}{"command": "bonjour", "locale": "fr"},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := handler.parseInput(createMockJob(1, tt.variables))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidCommandInput))
				return
			}
			require.NoError(t, err)
			tt.check(t, input)
		})
	}
}

// ==========================
// Edge Cases
// ==========================

func TestHandler_Execute_InvalidInput(t *testing.T) {
	handler := createTestHandler(t, nil)

	_, err := handler.Execute(context.Background(), &Input{Command: "   "})
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidCommandInput))

	_, err = handler.Execute(context.Background(), &Input{Command: "hola", Locale: "fr"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnsupportedLocale))
}

func TestHandler_NewHandler(t *testing.T) {
	_, err := NewHandler(HandlerOptions{CustomConfig: DefaultConfig()})
	assert.ErrorContains(t, err, "assistant is required")

	_, err = NewHandler(HandlerOptions{CustomConfig: &Config{Timeout: 0, MaxJobsActive: 1, DefaultLocale: "es"}})
	assert.ErrorContains(t, err, "timeout must be positive")

	assistant := session.NewAssistant(session.Dependencies{}, interpreter.Spanish, logger.NewNoOpLogger())
	_, err = NewHandler(HandlerOptions{
		CustomConfig: DefaultConfig(),
		Assistant:    assistant,
		Activity:     &registry.Activity{ID: TaskType},
	})
	assert.ErrorContains(t, err, "no input schema")
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, (&Config{Timeout: time.Second, MaxJobsActive: 0, DefaultLocale: "es"}).Validate())
	assert.Error(t, (&Config{Timeout: time.Second, MaxJobsActive: 1, DefaultLocale: "de"}).Validate())
}

func TestCreateConfigFromAppConfig(t *testing.T) {
	appConfig := &config.Config{
		Workers: map[string]config.WorkerConfig{
			TaskType: {Enabled: true, MaxJobsActive: 3, Timeout: 5000},
		},
		Assistant: config.AssistantConfig{DefaultLocale: "en"},
	}

	cfg := createConfigFromAppConfig(appConfig, nil)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 3, cfg.MaxJobsActive)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "en", cfg.DefaultLocale)

	custom := &Config{Enabled: false}
	assert.Same(t, custom, createConfigFromAppConfig(appConfig, custom))
	assert.Equal(t, DefaultConfig(), createConfigFromAppConfig(nil, nil))
}

func TestExtractErrorCode(t *testing.T) {
	assert.Equal(t, "SNAPSHOT_LOAD_FAILED", extractErrorCode(errors.NewSnapshotLoadFailedError("customers", assert.AnError)))
	assert.Equal(t, "INTERNAL_ERROR", extractErrorCode(assert.AnError))
}

func TestHandler_Accessors(t *testing.T) {
	handler := createTestHandler(t, nil)
	assert.Equal(t, "interpret-voice-command", handler.GetTaskType())
	assert.True(t, handler.IsEnabled())
	assert.Equal(t, 10*time.Second, handler.Timeout())
	assert.Equal(t, "es", handler.GetConfig().DefaultLocale)
}

func TestHandler_ParseInput_MalformedJSON(t *testing.T) {
	handler := createTestHandler(t, nil)

	_, err := handler.ParseInput([]byte("{command"))
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidCommandInput))

	_, err = handler.ParseInput([]byte(`{"command": 42}`))
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidCommandInput))
}
