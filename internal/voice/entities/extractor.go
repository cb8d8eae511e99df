package entities

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"voice-assistant/internal/voice/normalize"
	"voice-assistant/internal/voice/timewindow"
)

var (
	trailingPunctuation = regexp.MustCompile(`[\s?!.,;:¿¡]+$`)
	numberLiteral       = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// Entities is everything the extractor found in one command.
type Entities struct {
	CandidateName string            `json:"candidateName,omitempty"`
	Month         *int              `json:"month,omitempty"`
	TimePeriod    timewindow.Period `json:"timePeriod"`
	Numbers       []float64         `json:"numbers,omitempty"`
}

type Extractor struct {
	pack *Pack
}

func NewExtractor(pack *Pack) *Extractor {
	return &Extractor{pack: pack}
}

// Extract runs every extraction over raw.
func (e *Extractor) Extract(raw string, now time.Time) Entities {
	period, _ := e.TimePeriod(raw)
	return Entities{
		CandidateName: e.CustomerName(raw),
		Month:         e.Month(raw, now),
		TimePeriod:    period,
		Numbers:       e.Numbers(raw),
	}
}

// CustomerName returns the customer name mentioned in raw with its original
// spelling, or "" when none survives stop-word filtering.
func (e *Extractor) CustomerName(raw string) string {
	text := trailingPunctuation.ReplaceAllString(raw, "")

	for _, template := range e.pack.NameTemplates {
		m := template.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if name := e.filterName(m[1]); name != "" {
			return name
		}
	}

	if e.pack.NameFallback != nil {
		if m := e.pack.NameFallback.FindStringSubmatch(text); m != nil {
			return e.filterName(m[1])
		}
	}
	return ""
}

func (e *Extractor) filterName(span string) string {
	var kept []string
	for _, token := range strings.Fields(span) {
		token = strings.TrimFunc(token, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if token == "" || e.pack.IsStopWord(token) {
			continue
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " ")
}

// Month returns the month named in raw (0 for January), the current month
// for phrases like "este mes", or nil.
func (e *Extractor) Month(raw string, now time.Time) *int {
	normalized := normalize.Text(raw)
	if m := e.namedMonth(normalized); m != nil {
		return m
	}
	if e.pack.CurrentMonth != nil && e.pack.CurrentMonth.MatchString(normalized) {
		current := int(now.Month()) - 1
		return &current
	}
	return nil
}

func (e *Extractor) namedMonth(normalized string) *int {
	for i, pattern := range e.pack.monthPatterns {
		if pattern != nil && pattern.MatchString(normalized) {
			month := i
			return &month
		}
	}
	return nil
}

// TimePeriod classifies the time hint in raw. A named month wins over any
// relative phrase; without a hint the period is All. The month is only set
// for SpecificMonth.
func (e *Extractor) TimePeriod(raw string) (timewindow.Period, *int) {
	normalized := normalize.Text(raw)

	if m := e.namedMonth(normalized); m != nil {
		return timewindow.SpecificMonth, m
	}

	switch {
	case matches(e.pack.CurrentMonth, normalized):
		return timewindow.Month, nil
	case matches(e.pack.ThisWeek, normalized):
		return timewindow.Week, nil
	case matches(e.pack.Today, normalized):
		return timewindow.Day, nil
	case matches(e.pack.ThisYear, normalized):
		return timewindow.Year, nil
	}
	return timewindow.All, nil
}

// Numbers returns the decimal literals in raw, in order.
func (e *Extractor) Numbers(raw string) []float64 {
	var out []float64
	for _, literal := range numberLiteral.FindAllString(raw, -1) {
		v, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func matches(re *regexp.Regexp, s string) bool {
	return re != nil && re.MatchString(s)
}
