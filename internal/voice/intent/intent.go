// Package intent classifies normalized voice commands into a closed set of
// business intents using ordered rule tables.
package intent

import "regexp"

type Type string

const (
	Calculation  Type = "calculation"
	Inventory    Type = "inventory"
	Payments     Type = "payments"
	CustomerDebt Type = "customer_debt"
	Stats        Type = "stats"
	Unknown      Type = "unknown"
)

// Intent is the classified type with an informational confidence in [0,1].
type Intent struct {
	Type       Type    `json:"type"`
	Confidence float64 `json:"confidence"`
}

// Predicate tests a normalized command.
type Predicate func(normalized string) bool

// Rule is one row of a classification table.
type Rule struct {
	Name       string
	Match      Predicate
	Type       Type
	Confidence float64
}

// Classifier evaluates its rules top to bottom; the first match wins.
type Classifier struct {
	rules []Rule
}

func NewClassifier(rules []Rule) *Classifier {
	copied := make([]Rule, len(rules))
	copy(copied, rules)
	return &Classifier{rules: copied}
}

// Classify returns the intent of the first matching rule, or Unknown with
// confidence 0.
func (c *Classifier) Classify(normalized string) Intent {
	for _, rule := range c.rules {
		if rule.Match != nil && rule.Match(normalized) {
			return Intent{Type: rule.Type, Confidence: rule.Confidence}
		}
	}
	return Intent{Type: Unknown, Confidence: 0}
}

// Rules returns the table in evaluation order.
func (c *Classifier) Rules() []Rule {
	copied := make([]Rule, len(c.rules))
	copy(copied, c.rules)
	return copied
}

// Matches compiles pattern into a Predicate.
func Matches(pattern string) Predicate {
	re := regexp.MustCompile(pattern)
	return re.MatchString
}

// All matches when every predicate matches.
func All(preds ...Predicate) Predicate {
	return func(s string) bool {
		for _, p := range preds {
			if !p(s) {
				return false
			}
		}
		return true
	}
}

// Any matches when at least one predicate matches.
func Any(preds ...Predicate) Predicate {
	return func(s string) bool {
		for _, p := range preds {
			if p(s) {
				return true
			}
		}
		return false
	}
}

func Not(p Predicate) Predicate {
	return func(s string) bool {
		return !p(s)
	}
}
