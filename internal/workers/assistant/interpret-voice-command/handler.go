package interpretvoicecommand

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"voice-assistant/internal/common/config"
	"voice-assistant/internal/common/errors"
	"voice-assistant/internal/common/logger"
	"voice-assistant/internal/common/metrics"
	"voice-assistant/internal/common/validation"
	"voice-assistant/internal/voice/interpreter"
	"voice-assistant/internal/voice/session"
	"voice-assistant/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "interpret-voice-command"

type Handler struct {
	config       *Config
	assistant    *session.Assistant
	validator    *validation.Validator
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

type HandlerOptions struct {
	AppConfig    *config.Config
	CustomConfig *Config
	Assistant    *session.Assistant
	// Activity supplies the input schema; the embedded registry is used
	// when nil.
	Activity *registry.Activity
	Logger   logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if opts.Assistant == nil {
		return nil, fmt.Errorf("%s: assistant is required", TaskType)
	}

	activity := opts.Activity
	if activity == nil {
		reg, err := registry.Default()
		if err != nil {
			return nil, err
		}
		found, ok := reg.Find(TaskType)
		if !ok {
			return nil, fmt.Errorf("activity %s is not registered", TaskType)
		}
		activity = found
	}

	validator, err := activity.InputValidator()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", TaskType, err)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:       workerConfig,
		assistant:    opts.Assistant,
		validator:    validator,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.GetKey(),
		"workflowKey": job.GetProcessInstanceKey(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := h.parseInput(job)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	return h.ParseInput([]byte(job.GetVariables()))
}

// ParseInput validates a JSON payload against the activity input schema and
// decodes it.
func (h *Handler) ParseInput(data []byte) (*Input, error) {
	var variables map[string]interface{}
	if err := json.Unmarshal(data, &variables); err != nil {
		return nil, errors.NewInvalidCommandInputError(fmt.Sprintf("parse variables: %v", err))
	}

	result, err := h.validator.Validate(variables)
	if err != nil {
		return nil, errors.NewInvalidCommandInputError(err.Error())
	}
	if !result.Valid {
		return nil, errors.NewInvalidCommandInputError(strings.Join(result.GetErrorMessages(), "; "))
	}

	var input Input
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, errors.NewInvalidCommandInputError(fmt.Sprintf("decode input: %v", err))
	}
	return &input, nil
}

// Execute answers one command. A snapshot in the input takes the place of
// the database.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.Command) == "" {
		return nil, errors.NewInvalidCommandInputError("command is empty")
	}

	localeTag := input.Locale
	if localeTag == "" {
		localeTag = h.config.DefaultLocale
	}
	locale, ok := interpreter.ParseLocale(localeTag)
	if !ok {
		return nil, errors.NewUnsupportedLocaleError(input.Locale)
	}

	assistant := h.assistant
	if input.Snapshot != nil {
		assistant = assistant.WithSnapshot(input.Snapshot)
	}

	reply, err := assistant.Ask(ctx, input.SessionID, input.Command, locale)
	if err != nil {
		return nil, err
	}

	output := &Output{
		SessionID: reply.SessionID,
		Action:    string(reply.Action),
		Locale:    string(reply.Locale),
		Response:  reply.Response,
		Speech:    reply.Speech,
		Repeated:  reply.Repeated,
		Code:      reply.Code,
	}
	if reply.Result != nil {
		output.Intent = string(reply.Result.Intent)
		output.Outcome = string(reply.Result.Outcome)
		output.Confidence = reply.Result.Confidence
	}
	return output, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":    job.GetKey(),
		"sessionId": output.SessionID,
		"intent":    output.Intent,
		"outcome":   output.Outcome,
	})
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, extractErrorCode(err)).Inc()
	h.errorHandler.HandleJobError(ctx, client, job, err)
}

func extractErrorCode(err error) string {
	if stdErr, ok := errors.AsStandardError(err); ok {
		return string(stdErr.Code)
	}
	return string(errors.ErrCodeInternal)
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) IsEnabled() bool {
	return h.config.Enabled
}

func (h *Handler) GetConfig() *Config {
	return h.config
}

// Timeout is how long a job may run before the broker reassigns it.
func (h *Handler) Timeout() time.Duration {
	return h.config.Timeout
}
