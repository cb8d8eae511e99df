package interpretvoicecommand

import (
	"fmt"
	"time"

	"voice-assistant/internal/common/config"
	"voice-assistant/internal/voice/interpreter"
)

type Config struct {
	Enabled       bool          `mapstructure:"enabled"`
	MaxJobsActive int           `mapstructure:"max_jobs_active"`
	Timeout       time.Duration `mapstructure:"timeout"`
	DefaultLocale string        `mapstructure:"default_locale"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 10,
		Timeout:       10 * time.Second,
		DefaultLocale: string(interpreter.Spanish),
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if _, ok := interpreter.ParseLocale(c.DefaultLocale); !ok {
		return fmt.Errorf("unsupported default_locale %q", c.DefaultLocale)
	}
	return nil
}

// createConfigFromAppConfig prefers an explicit custom config, then the
// workers.<task type> and assistant sections of the application config.
func createConfigFromAppConfig(appConfig *config.Config, custom *Config) *Config {
	if custom != nil {
		return custom
	}

	cfg := DefaultConfig()
	if appConfig == nil {
		return cfg
	}

	if workerCfg, ok := appConfig.Workers[TaskType]; ok {
		cfg.Enabled = workerCfg.Enabled
		if workerCfg.MaxJobsActive > 0 {
			cfg.MaxJobsActive = workerCfg.MaxJobsActive
		}
		if workerCfg.Timeout > 0 {
			cfg.Timeout = config.GetDuration(workerCfg.Timeout)
		}
	}
	if appConfig.Assistant.DefaultLocale != "" {
		cfg.DefaultLocale = appConfig.Assistant.DefaultLocale
	}
	return cfg
}
