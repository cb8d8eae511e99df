package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, `
database:
  postgres:
    host: localhost
    database: shop
    user: shop
workers:
  interpret-voice-command:
    enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "voice-assistant", cfg.App.Name)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, "es", cfg.Assistant.DefaultLocale)
	assert.Equal(t, ResponseStoreMemory, cfg.Assistant.ResponseStore)
	assert.Equal(t, 30*time.Minute, GetDuration(cfg.Assistant.SessionTTL))
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, "voice-assistant", cfg.Observability.ServiceName)

	worker := cfg.Workers["interpret-voice-command"]
	assert.True(t, worker.Enabled)
	assert.Equal(t, 5, worker.MaxJobsActive)
	assert.Equal(t, 30000, worker.Timeout)
	assert.Equal(t, 3, worker.MaxRetries)
}

func TestLoadFromFile_ExpandsEnv(t *testing.T) {
	t.Setenv("TEST_SHOP_DB_PASSWORD", "s3cret")
	path := writeConfig(t, `
database:
  postgres:
    host: localhost
    database: shop
    user: shop
    password: ${TEST_SHOP_DB_PASSWORD}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
	assert.Contains(t, cfg.Database.Postgres.GetDSN(), "password=s3cret")
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing postgres host",
			body:    "database:\n  postgres:\n    database: shop\n    user: shop\n",
			wantErr: "database.postgres.host is required",
		},
		{
			name: "redis store without address",
			body: `
database:
  postgres: {host: localhost, database: shop, user: shop}
assistant:
  response_store: redis
`,
			wantErr: "database.redis.address is required",
		},
		{
			name: "unknown store",
			body: `
database:
  postgres: {host: localhost, database: shop, user: shop}
assistant:
  response_store: disk
`,
			wantErr: "assistant.response_store",
		},
		{
			name: "camunda enabled without broker",
			body: `
camunda:
  enabled: true
database:
  postgres: {host: localhost, database: shop, user: shop}
`,
			wantErr: "camunda.broker_address is required",
		},
		{
			name: "bad timezone",
			body: `
database:
  postgres: {host: localhost, database: shop, user: shop}
assistant:
  timezone: Mars/Olympus
`,
			wantErr: "assistant.timezone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetWorkerConfig(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{
		"interpret-voice-command": {Enabled: false, MaxJobsActive: 2},
	}}

	assert.Equal(t, 2, GetWorkerConfig(cfg, "interpret-voice-command").MaxJobsActive)
	assert.False(t, IsWorkerEnabled(cfg, "interpret-voice-command"))

	fallback := GetWorkerConfig(cfg, "missing")
	assert.True(t, fallback.Enabled)
	assert.Equal(t, 30000, fallback.Timeout)
	assert.True(t, IsWorkerEnabled(cfg, "missing"))
}

func TestAssistantConfig_Location(t *testing.T) {
	assert.Equal(t, time.UTC, AssistantConfig{Timezone: "nowhere"}.Location())
	assert.Equal(t, "America/Mexico_City", AssistantConfig{Timezone: "America/Mexico_City"}.Location().String())
}
