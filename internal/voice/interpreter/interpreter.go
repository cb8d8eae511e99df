// Package interpreter answers business questions about a snapshot of
// customers, products and payments. It classifies the command, runs the
// handler for that intent and returns display text plus its spoken form.
//
// An Interpreter holds no per-call state and is safe for concurrent use.
package interpreter

import (
	"fmt"
	"time"

	"voice-assistant/internal/common/logger"
	"voice-assistant/internal/models"
	"voice-assistant/internal/voice/entities"
	"voice-assistant/internal/voice/intent"
	"voice-assistant/internal/voice/normalize"
	"voice-assistant/internal/voice/numerals"
	"voice-assistant/internal/voice/timewindow"
)

type Locale string

const (
	Spanish Locale = "es"
	English Locale = "en"
)

// ParseLocale maps "es", "es-MX", "en_US" and similar tags to a Locale.
func ParseLocale(tag string) (Locale, bool) {
	if len(tag) < 2 {
		return "", false
	}
	switch normalize.Text(tag[:2]) {
	case "es":
		return Spanish, true
	case "en":
		return English, true
	}
	return "", false
}

// Outcome tells callers how a command was answered.
type Outcome string

const (
	OutcomeAnswered       Outcome = "answered"
	OutcomeUnrecognized   Outcome = "unrecognized"
	OutcomeNotFound       Outcome = "not_found"
	OutcomeMissingEntity  Outcome = "missing_entity"
	OutcomeMalformedInput Outcome = "malformed_input"
	OutcomeDivisionByZero Outcome = "division_by_zero"
)

// Result is the answer to one command. Response is display text with
// amounts as "$1,234.50"; Speech is the same text with amounts spelled out.
type Result struct {
	Locale     Locale      `json:"locale"`
	Intent     intent.Type `json:"intent"`
	Confidence float64     `json:"confidence"`
	Outcome    Outcome     `json:"outcome"`
	Response   string      `json:"response"`
	Speech     string      `json:"speech"`
	Data       *Data       `json:"data,omitempty"`
}

// Data mirrors what the handler matched, for programmatic callers.
type Data struct {
	Query       string             `json:"query,omitempty"`
	Search      string             `json:"search,omitempty"`
	Customer    *models.Customer   `json:"customer,omitempty"`
	Customers   []models.Customer  `json:"customers,omitempty"`
	Product     *models.Product    `json:"product,omitempty"`
	Products    []models.Product   `json:"products,omitempty"`
	Payments    []models.Payment   `json:"payments,omitempty"`
	Calculation *Calculation       `json:"calculation,omitempty"`
	Period      timewindow.Period  `json:"period,omitempty"`
	Month       *int               `json:"month,omitempty"`
	Totals      map[string]float64 `json:"totals,omitempty"`
	Counts      map[string]int     `json:"counts,omitempty"`
}

type Calculation struct {
	Left     float64  `json:"left"`
	Right    float64  `json:"right"`
	Operator Operator `json:"operator"`
	Result   float64  `json:"result"`
}

type Interpreter struct {
	bundles       map[Locale]*localeBundle
	defaultLocale Locale
	clock         func() time.Time
	logger        logger.Logger
}

type Option func(*Interpreter)

// WithClock sets the source of "now" for time windows.
func WithClock(clock func() time.Time) Option {
	return func(i *Interpreter) {
		if clock != nil {
			i.clock = clock
		}
	}
}

func WithLogger(log logger.Logger) Option {
	return func(i *Interpreter) {
		if log != nil {
			i.logger = log
		}
	}
}

// WithDefaultLocale sets the locale used for unsupported locale values.
func WithDefaultLocale(locale Locale) Option {
	return func(i *Interpreter) {
		if _, ok := i.bundles[locale]; ok {
			i.defaultLocale = locale
		}
	}
}

func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		bundles: map[Locale]*localeBundle{
			Spanish: newSpanishBundle(),
			English: newEnglishBundle(),
		},
		defaultLocale: Spanish,
		clock:         time.Now,
		logger:        logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Interpret answers command against snapshot. It never fails: anything it
// cannot answer yields a suggestion or not-found message. A nil snapshot is
// treated as empty.
func (i *Interpreter) Interpret(command string, snapshot *models.Snapshot, locale Locale) (result *Result) {
	bundle, ok := i.bundles[locale]
	if !ok {
		locale = i.defaultLocale
		bundle = i.bundles[locale]
	}
	if snapshot == nil {
		snapshot = &models.Snapshot{}
	}

	normalized := normalize.Text(command)
	classified := bundle.classifier.Classify(normalized)

	defer func() {
		if r := recover(); r != nil {
			i.logger.Error("interpretation panicked", map[string]interface{}{
				"locale": string(locale),
				"intent": string(classified.Type),
				"panic":  fmt.Sprint(r),
			})
			result = i.finish(bundle, locale, intent.Intent{Type: intent.Unknown}, unrecognized(bundle))
		}
	}()

	req := &request{
		raw:        command,
		normalized: normalized,
		snapshot:   snapshot,
		now:        i.clock(),
		bundle:     bundle,
	}

	var a answer
	switch classified.Type {
	case intent.Calculation:
		a = handleCalculation(req)
	case intent.Inventory:
		a = handleInventory(req)
	case intent.Payments:
		a = handlePayments(req)
	case intent.CustomerDebt:
		a = handleCustomerDebt(req)
	case intent.Stats:
		a = handleStats(req)
	default:
		a = unrecognized(bundle)
	}

	result = i.finish(bundle, locale, classified, a)
	i.logger.Debug("command interpreted", map[string]interface{}{
		"locale":     string(locale),
		"intent":     string(result.Intent),
		"confidence": result.Confidence,
		"outcome":    string(result.Outcome),
	})
	return result
}

func (i *Interpreter) finish(bundle *localeBundle, locale Locale, classified intent.Intent, a answer) *Result {
	return &Result{
		Locale:     locale,
		Intent:     classified.Type,
		Confidence: classified.Confidence,
		Outcome:    a.outcome,
		Response:   a.text,
		Speech:     numerals.FormatForSpeech(a.text, bundle.speller),
		Data:       a.data,
	}
}

// Extract exposes the entity extraction for locale, mainly for diagnostics.
func (i *Interpreter) Extract(command string, locale Locale) entities.Entities {
	bundle, ok := i.bundles[locale]
	if !ok {
		bundle = i.bundles[i.defaultLocale]
	}
	return bundle.extractor.Extract(command, i.clock())
}

// Speller returns the numeral speller for locale.
func (i *Interpreter) Speller(locale Locale) numerals.Speller {
	if bundle, ok := i.bundles[locale]; ok {
		return bundle.speller
	}
	return i.bundles[i.defaultLocale].speller
}

// request is the per-call input shared by the handlers.
type request struct {
	raw        string
	normalized string
	snapshot   *models.Snapshot
	now        time.Time
	bundle     *localeBundle
}

type answer struct {
	text    string
	outcome Outcome
	data    *Data
}

func answered(text string, data *Data) answer {
	return answer{text: text, outcome: OutcomeAnswered, data: data}
}

func unrecognized(bundle *localeBundle) answer {
	return answer{text: bundle.phrases.Unknown(), outcome: OutcomeUnrecognized}
}
