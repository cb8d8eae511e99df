package entities

import (
	"strings"
	"unicode/utf8"

	"voice-assistant/internal/models"
	"voice-assistant/internal/voice/normalize"
)

// minOverlapRunes is the shortest token the loosest stage compares.
const minOverlapRunes = 2

type query struct {
	text   string
	tokens []string
}

type candidate struct {
	text   string
	tokens []string
}

// strategy is one stage of the customer cascade. Later stages are looser.
type strategy struct {
	name  string
	match func(q query, c candidate) bool
}

var cascade = []strategy{
	{name: "exact", match: func(q query, c candidate) bool {
		return c.text == q.text
	}},
	{name: "substring", match: func(q query, c candidate) bool {
		return strings.Contains(c.text, q.text) || strings.Contains(q.text, c.text)
	}},
	{name: "all_tokens", match: func(q query, c candidate) bool {
		for _, tok := range q.tokens {
			if !strings.Contains(c.text, tok) {
				return false
			}
		}
		return len(q.tokens) > 0
	}},
	{name: "any_token", match: func(q query, c candidate) bool {
		for _, qt := range q.tokens {
			if utf8.RuneCountInString(qt) < minOverlapRunes {
				continue
			}
			for _, ct := range c.tokens {
				if utf8.RuneCountInString(ct) < minOverlapRunes {
					continue
				}
				if strings.Contains(ct, qt) || strings.Contains(qt, ct) {
					return true
				}
			}
		}
		return false
	}},
}

// Resolver matches spoken names against the customer registry.
type Resolver struct {
	pack *Pack
}

func NewResolver(pack *Pack) *Resolver {
	return &Resolver{pack: pack}
}

// FindCustomer runs the cascade and returns a copy of the first customer
// matched by the earliest successful stage, or nil.
func (r *Resolver) FindCustomer(name string, customers []models.Customer) *models.Customer {
	c, _ := r.Resolve(name, customers)
	return c
}

// Resolve is FindCustomer that also reports which stage matched.
func (r *Resolver) Resolve(name string, customers []models.Customer) (*models.Customer, string) {
	q := query{text: normalize.Text(name)}
	if q.text == "" || r.pack.IsStopWord(q.text) {
		return nil, ""
	}
	q.tokens = strings.Fields(q.text)

	candidates := make([]candidate, len(customers))
	for i, c := range customers {
		text := normalize.Text(c.Name)
		candidates[i] = candidate{text: text, tokens: strings.Fields(text)}
	}

	for _, stage := range cascade {
		for i, c := range candidates {
			if c.text == "" {
				continue
			}
			if stage.match(q, c) {
				found := customers[i]
				return &found, stage.name
			}
		}
	}
	return nil, ""
}
