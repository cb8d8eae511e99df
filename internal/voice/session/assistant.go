// Package session wraps the interpreter for a live voice session: it loads the
// snapshot, answers the command, remembers the answer for "repeat" and passes
// stop requests to the speech recognizer.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"voice-assistant/internal/common/errors"
	"voice-assistant/internal/common/logger"
	"voice-assistant/internal/common/metrics"
	"voice-assistant/internal/common/observability"
	"voice-assistant/internal/models"
	"voice-assistant/internal/store"
	"voice-assistant/internal/voice/interpreter"
)

// RecognitionControl starts and stops the speech recognizer feeding the
// assistant.
type RecognitionControl interface {
	StartListening(ctx context.Context) error
	StopListening(ctx context.Context) error
}

// ResponseStore remembers the last response of each session.
type ResponseStore interface {
	Save(ctx context.Context, resp *models.StoredResponse) error
	Last(ctx context.Context, sessionID string) (*models.StoredResponse, bool, error)
}

// Dependencies are the collaborators of an Assistant. Recognition and
// Observability may be nil.
type Dependencies struct {
	Interpreter   *interpreter.Interpreter
	Snapshots     store.SnapshotLoader
	Responses     ResponseStore
	Recognition   RecognitionControl
	Observability *observability.Observability
}

// Reply is the assistant's answer to one utterance.
type Reply struct {
	SessionID string              `json:"sessionId"`
	Action    Action              `json:"action"`
	Locale    interpreter.Locale  `json:"locale"`
	Response  string              `json:"response"`
	Speech    string              `json:"speech"`
	Repeated  bool                `json:"repeated,omitempty"`
	Code      string              `json:"code,omitempty"`
	Result    *interpreter.Result `json:"result,omitempty"`
}

type Assistant struct {
	deps          Dependencies
	defaultLocale interpreter.Locale
	clock         func() time.Time
	logger        logger.Logger
}

func NewAssistant(deps Dependencies, defaultLocale interpreter.Locale, log logger.Logger) *Assistant {
	if deps.Interpreter == nil {
		deps.Interpreter = interpreter.New(interpreter.WithDefaultLocale(defaultLocale))
	}
	if deps.Snapshots == nil {
		deps.Snapshots = store.StaticSnapshotLoader{}
	}
	if _, ok := controls[defaultLocale]; !ok {
		defaultLocale = interpreter.Spanish
	}
	return &Assistant{
		deps:          deps,
		defaultLocale: defaultLocale,
		clock:         time.Now,
		logger:        log.WithFields(map[string]interface{}{"component": "assistant"}),
	}
}

// NewSession returns a fresh session id.
func NewSession() string {
	return uuid.NewString()
}

// WithSnapshot returns a copy of a that answers against snapshot instead of
// loading one.
func (a *Assistant) WithSnapshot(snapshot *models.Snapshot) *Assistant {
	clone := *a
	clone.deps.Snapshots = store.StaticSnapshotLoader{Snapshot: snapshot}
	return &clone
}

// Listen asks the recognizer to start capturing speech.
func (a *Assistant) Listen(ctx context.Context) error {
	if a.deps.Recognition == nil {
		return nil
	}
	if err := a.deps.Recognition.StartListening(ctx); err != nil {
		return errors.NewRecognitionControlFailedError("start", err)
	}
	return nil
}

// Ask answers command for sessionID. An empty sessionID starts a new session.
// Control utterances ("repite", "stop listening") are handled here and never
// reach the interpreter.
func (a *Assistant) Ask(ctx context.Context, sessionID, command string, locale interpreter.Locale) (*Reply, error) {
	if sessionID == "" {
		sessionID = NewSession()
	}
	if _, ok := controls[locale]; !ok {
		locale = a.defaultLocale
	}

	ctx, span := a.deps.Observability.StartSpan(ctx, "assistant.ask",
		attribute.String("session.id", sessionID),
		attribute.String("locale", string(locale)),
	)
	defer span.End()

	phrases := controls[locale]
	switch detectControl(command, phrases) {
	case ActionStop:
		return a.stop(ctx, sessionID, locale, phrases)
	case ActionRepeat:
		return a.repeat(ctx, sessionID, locale, phrases)
	}
	return a.query(ctx, sessionID, command, locale)
}

func (a *Assistant) query(ctx context.Context, sessionID, command string, locale interpreter.Locale) (*Reply, error) {
	start := a.clock()

	snapshot, err := a.deps.Snapshots.Load(ctx)
	if err != nil {
		a.logger.Error("snapshot load failed", map[string]interface{}{
			"sessionId": sessionID,
			"error":     err.Error(),
		})
		return nil, err
	}

	result := a.deps.Interpreter.Interpret(command, snapshot, locale)
	elapsed := a.clock().Sub(start)

	metrics.CommandsInterpreted.WithLabelValues(string(result.Locale), string(result.Intent), string(result.Outcome)).Inc()
	metrics.CommandDuration.WithLabelValues(string(result.Intent)).Observe(elapsed.Seconds())
	if a.deps.Observability != nil {
		a.deps.Observability.RecordCommand(ctx, string(result.Locale), string(result.Intent), string(result.Outcome))
		a.deps.Observability.RecordDuration(ctx, elapsed, string(result.Intent))
	}

	a.remember(ctx, &models.StoredResponse{
		SessionID: sessionID,
		Locale:    string(result.Locale),
		Command:   command,
		Intent:    string(result.Intent),
		Response:  result.Response,
		Speech:    result.Speech,
		CreatedAt: a.clock().UTC(),
	})

	a.logger.Info("command answered", map[string]interface{}{
		"sessionId": sessionID,
		"intent":    string(result.Intent),
		"outcome":   string(result.Outcome),
	})

	return &Reply{
		SessionID: sessionID,
		Action:    ActionQuery,
		Locale:    result.Locale,
		Response:  result.Response,
		Speech:    result.Speech,
		Result:    result,
	}, nil
}

// remember stores the answer for a later "repeat". A store failure is logged
// and the answer is still returned.
func (a *Assistant) remember(ctx context.Context, resp *models.StoredResponse) {
	if a.deps.Responses == nil {
		return
	}
	if err := a.deps.Responses.Save(ctx, resp); err != nil {
		a.logger.Warn("failed to store response", map[string]interface{}{
			"sessionId": resp.SessionID,
			"error":     err.Error(),
		})
	}
}

func (a *Assistant) repeat(ctx context.Context, sessionID string, locale interpreter.Locale, phrases controlPhrases) (*Reply, error) {
	metrics.ControlCommands.WithLabelValues(string(ActionRepeat)).Inc()

	reply := &Reply{SessionID: sessionID, Action: ActionRepeat, Locale: locale}

	var (
		last  *models.StoredResponse
		found bool
	)
	if a.deps.Responses != nil {
		var err error
		last, found, err = a.deps.Responses.Last(ctx, sessionID)
		if err != nil {
			return nil, err
		}
	}

	if !found {
		a.logger.Debug("nothing to repeat", map[string]interface{}{"sessionId": sessionID})
		reply.Code = string(errors.ErrCodeNoPreviousResponse)
		reply.Response = phrases.nothingSaid
		reply.Speech = phrases.nothingSaid
		return reply, nil
	}

	reply.Response = last.Response
	reply.Speech = last.Speech
	reply.Repeated = true
	if parsed, ok := interpreter.ParseLocale(last.Locale); ok {
		reply.Locale = parsed
	}
	return reply, nil
}

func (a *Assistant) stop(ctx context.Context, sessionID string, locale interpreter.Locale, phrases controlPhrases) (*Reply, error) {
	metrics.ControlCommands.WithLabelValues(string(ActionStop)).Inc()

	if a.deps.Recognition != nil {
		if err := a.deps.Recognition.StopListening(ctx); err != nil {
			a.logger.Error("failed to stop listening", map[string]interface{}{
				"sessionId": sessionID,
				"error":     err.Error(),
			})
			return nil, errors.NewRecognitionControlFailedError("stop", err)
		}
	}

	return &Reply{
		SessionID: sessionID,
		Action:    ActionStop,
		Locale:    locale,
		Response:  phrases.stopped,
		Speech:    phrases.stopped,
	}, nil
}
