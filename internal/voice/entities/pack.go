// Package entities pulls names, months, time hints and numbers out of voice
// commands and resolves customer names against the snapshot.
package entities

import (
	"regexp"

	"voice-assistant/internal/voice/normalize"
)

// namePattern captures two or more letter runs, diacritics included.
const namePattern = `(\p{L}+(?:\s+\p{L}+)+)`

// Pack holds the locale data the extractor and resolver run on. Patterns
// marked normalized are matched against normalize.Text output; the name
// patterns run on the raw command so the original spelling survives.
type Pack struct {
	// NameTemplates are tried in order; each captures the name in group 1.
	NameTemplates []*regexp.Regexp
	// NameFallback is the loose pattern tried after every template failed.
	NameFallback *regexp.Regexp
	// StopWords are normalized words that are never part of a name.
	StopWords map[string]struct{}
	// Months lists the normalized spellings of each month, January first.
	Months [12][]string

	CurrentMonth *regexp.Regexp // normalized
	ThisWeek     *regexp.Regexp // normalized
	Today        *regexp.Regexp // normalized
	ThisYear     *regexp.Regexp // normalized

	monthPatterns [12]*regexp.Regexp
}

func newPack(p Pack) *Pack {
	for i, names := range p.Months {
		alternatives := ""
		for j, name := range names {
			if j > 0 {
				alternatives += "|"
			}
			alternatives += regexp.QuoteMeta(name)
		}
		// Whole words only: "mayor" is not May, and plural or suffixed forms
		// such as "mayos" do not match either.
		p.monthPatterns[i] = regexp.MustCompile(`\b(?:` + alternatives + `)\b`)
		for _, name := range names {
			p.StopWords[name] = struct{}{}
		}
	}
	return &p
}

// IsStopWord reports whether word, once normalized, is a stop word.
func (p *Pack) IsStopWord(word string) bool {
	_, ok := p.StopWords[normalize.Text(word)]
	return ok
}

func stopWords(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[normalize.Text(w)] = struct{}{}
	}
	return set
}

// SpanishPack is the Spanish extraction data.
func SpanishPack() *Pack {
	return newPack(Pack{
		NameTemplates: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:debe|adeuda)\s+` + namePattern),
			regexp.MustCompile(`(?i)cliente\s+` + namePattern),
			regexp.MustCompile(`(?i)(?:^|\s)(?:de|del)\s+` + namePattern),
			regexp.MustCompile(`(?i)(?:^|\s)para\s+` + namePattern),
		},
		NameFallback: regexp.MustCompile(`(?i)(?:cu[aá]nto|qu[eé])\s+(?:me\s+)?(?:debe|adeuda)\s+(.+)`),
		StopWords: stopWords(
			"cuánto", "cuánta", "cuántos", "cuántas", "qué", "quién", "quiénes", "cuál", "cómo",
			"me", "te", "le", "les", "nos", "se",
			"debe", "deben", "adeuda", "adeudan", "deuda", "deudas", "debía",
			"el", "la", "los", "las", "lo", "un", "una", "unos", "unas",
			"de", "del", "al", "a", "en", "por", "para", "con", "sin", "y", "o", "e",
			"su", "sus", "mi", "mis", "tu", "tus",
			"cliente", "clienta", "clientes", "producto", "productos", "pago", "pagos",
			"total", "todo", "todos", "mes", "meses", "este", "esta", "año", "semana", "hoy", "día",
			"dinero", "pesos", "señor", "señora", "sr", "sra", "don", "doña",
			"actual", "pendiente", "pendientes", "vencido", "vencidos",
			"todavía", "aún", "ya", "tiene", "tengo", "es", "son", "hay", "más", "menos",
		),
		Months: [12][]string{
			{"enero"}, {"febrero"}, {"marzo"}, {"abril"}, {"mayo"}, {"junio"},
			{"julio"}, {"agosto"}, {"septiembre", "setiembre"}, {"octubre"}, {"noviembre"}, {"diciembre"},
		},
		CurrentMonth: regexp.MustCompile(`\b(?:este mes|mes actual|mes en curso)\b`),
		ThisWeek:     regexp.MustCompile(`\b(?:esta semana|semana actual|ultima semana|ultimos siete dias|ultimos 7 dias)\b`),
		Today:        regexp.MustCompile(`\b(?:hoy|dia de hoy|dia actual)\b`),
		ThisYear:     regexp.MustCompile(`\b(?:este ano|ano actual|ano en curso)\b`),
	})
}

// EnglishPack is the English extraction data.
func EnglishPack() *Pack {
	return newPack(Pack{
		NameTemplates: []*regexp.Regexp{
			regexp.MustCompile(`(?i)does\s+` + namePattern + `\s+owe`),
			regexp.MustCompile(`(?i)customer\s+` + namePattern),
			regexp.MustCompile(`(?i)(?:^|\s)of\s+` + namePattern),
			regexp.MustCompile(`(?i)(?:^|\s)for\s+` + namePattern),
		},
		NameFallback: regexp.MustCompile(`(?i)how\s+much\s+(?:does|do|did)\s+(.+?)\s+owe`),
		StopWords: stopWords(
			"how", "much", "many", "what", "who", "whom", "which",
			"does", "do", "did", "is", "are", "was", "the", "a", "an",
			"of", "for", "to", "in", "on", "at", "by", "and", "or",
			"me", "my", "i", "us", "our", "owe", "owes", "owed", "debt", "debts",
			"customer", "customers", "client", "clients", "product", "products", "payment", "payments",
			"total", "all", "this", "month", "week", "year", "today", "money", "dollars",
			"mr", "mrs", "ms", "still", "have", "has", "pending", "overdue",
		),
		Months: [12][]string{
			{"january"}, {"february"}, {"march"}, {"april"}, {"may"}, {"june"},
			{"july"}, {"august"}, {"september"}, {"october"}, {"november"}, {"december"},
		},
		CurrentMonth: regexp.MustCompile(`\b(?:this month|current month)\b`),
		ThisWeek:     regexp.MustCompile(`\b(?:this week|past week|last seven days|last 7 days)\b`),
		Today:        regexp.MustCompile(`\b(?:today)\b`),
		ThisYear:     regexp.MustCompile(`\b(?:this year|current year)\b`),
	})
}
