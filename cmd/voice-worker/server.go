package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"voice-assistant/internal/common/errors"
	ivc "voice-assistant/internal/workers/assistant/interpret-voice-command"
)

const maxRequestBytes = 1 << 20

// commandExecutor is the part of the interpret-voice-command handler the HTTP
// endpoint shares with the job worker.
type commandExecutor interface {
	ParseInput(data []byte) (*ivc.Input, error)
	Execute(ctx context.Context, input *ivc.Input) (*ivc.Output, error)
}

// readinessCheck reports whether a dependency can serve requests.
type readinessCheck func(ctx context.Context) error

type server struct {
	executor commandExecutor
	checks   map[string]readinessCheck
	timeout  time.Duration
	logger   *zap.Logger
}

func newServer(executor commandExecutor, checks map[string]readinessCheck, timeout time.Duration, log *zap.Logger) http.Handler {
	s := &server{executor: executor, checks: checks, timeout: timeout, logger: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.health)
	mux.HandleFunc("/ready", s.ready)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/v1/interpret", s.interpret)
	return mux
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	failures := map[string]string{}
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			failures[name] = err.Error()
		}
	}

	if len(failures) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":   "not ready",
			"failures": failures,
			"time":     time.Now().Format(time.RFC3339),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *server) interpret(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		s.writeError(w, errors.NewInvalidCommandInputError(err.Error()))
		return
	}

	input, err := s.executor.ParseInput(body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	output, err := s.executor.Execute(ctx, input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	stdErr, ok := errors.AsStandardError(err)
	if !ok {
		stdErr = &errors.StandardError{
			Code:      errors.ErrCodeInternal,
			Message:   "Unexpected error",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		}
	}

	status := statusFor(stdErr.Code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("interpret request failed",
			zap.String("code", string(stdErr.Code)),
			zap.String("details", stdErr.Details),
		)
	}
	writeJSON(w, status, stdErr)
}

func statusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeInvalidCommandInput, errors.ErrCodeUnsupportedLocale:
		return http.StatusBadRequest
	case errors.ErrCodeSnapshotLoadFailed, errors.ErrCodeDatabaseConnectionFailed,
		errors.ErrCodeResponseStoreFailed, errors.ErrCodeExternalService:
		return http.StatusServiceUnavailable
	case errors.ErrCodeQueryTimeout, errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
