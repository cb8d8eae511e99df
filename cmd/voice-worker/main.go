// cmd/voice-worker/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"voice-assistant/internal/common/camunda"
	"voice-assistant/internal/common/config"
	"voice-assistant/internal/common/database"
	"voice-assistant/internal/common/logger"
	"voice-assistant/internal/common/observability"
	"voice-assistant/internal/store"
	"voice-assistant/internal/voice/interpreter"
	"voice-assistant/internal/voice/session"
	ivc "voice-assistant/internal/workers/assistant/interpret-voice-command"
	"voice-assistant/pkg/registry"
)

const snapshotTimeout = 5 * time.Second

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	bootLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting voice worker...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.Observability.ServiceName, cfg.Observability.JaegerEndpoint)
	defer obs.Shutdown()

	ctx := context.Background()
	checks := map[string]readinessCheck{}

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	checks["postgres"] = pg.Ping
	zapLog.Info("PostgreSQL connected successfully")

	// --- Response store ---
	var responses session.ResponseStore
	sessionTTL := config.GetDuration(cfg.Assistant.SessionTTL)
	switch cfg.Assistant.ResponseStore {
	case config.ResponseStoreRedis:
		var rc *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rc, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rc.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rc.Close()
		checks["redis"] = rc.Ping
		responses = store.NewRedisResponseStore(rc, sessionTTL)
		zapLog.Info("Redis connected successfully")
	default:
		responses = store.NewMemoryResponseStore(cfg.Assistant.MemorySize, sessionTTL)
		zapLog.Info("Using in-process response store", zap.Int("size", cfg.Assistant.MemorySize))
	}

	// --- Assistant ---
	locale, ok := interpreter.ParseLocale(cfg.Assistant.DefaultLocale)
	if !ok {
		zapLog.Fatal("unsupported default locale", zap.String("locale", cfg.Assistant.DefaultLocale))
	}
	location := cfg.Assistant.Location()

	assistant := session.NewAssistant(session.Dependencies{
		Interpreter: interpreter.New(
			interpreter.WithDefaultLocale(locale),
			interpreter.WithLogger(log),
			interpreter.WithClock(func() time.Time { return time.Now().In(location) }),
		),
		Snapshots:     store.NewPostgresSnapshotLoader(pg, snapshotTimeout, log),
		Responses:     responses,
		Observability: obs,
	}, locale, log)

	reg, err := registry.LoadOrDefault(cfg.RegistryPath)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.Error(err))
	}
	if err := reg.Validate(); err != nil {
		zapLog.Fatal("activity registry invalid", zap.Error(err))
	}
	activity, ok := reg.Find(ivc.TaskType)
	if !ok {
		zapLog.Fatal("activity not registered", zap.String("taskType", ivc.TaskType))
	}

	handler, err := ivc.NewHandler(ivc.HandlerOptions{
		AppConfig: cfg,
		Assistant: assistant,
		Activity:  activity,
		Logger:    log,
	})
	if err != nil {
		zapLog.Fatal("failed to create interpret-voice-command handler", zap.Error(err))
	}

	// --- Zeebe worker ---
	var (
		zeebe   *camunda.Client
		workers []*camunda.Worker
	)
	if cfg.Camunda.Enabled && handler.IsEnabled() {
		err = retryWithBackoff(func() error {
			var err error
			zeebe, err = camunda.NewClientWithConfig(camunda.ClientConfigFrom(cfg.Camunda))
			return err
		}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		checks["zeebe"] = zeebe.HealthCheck
		zapLog.Info("Zeebe client connected successfully")

		workers = append(workers, camunda.StartWorker(
			zeebe.GetClient(), ivc.TaskType, config.GetWorkerConfig(cfg, ivc.TaskType), handler.Handle, zapLog,
		))
	} else {
		zapLog.Info("Zeebe worker disabled, serving HTTP only")
	}

	// --- HTTP: health, readiness, metrics and interpret ---
	httpServer := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           newServer(handler, checks, handler.Timeout(), zapLog),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.HTTP.Address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Voice worker stopped gracefully")
}
