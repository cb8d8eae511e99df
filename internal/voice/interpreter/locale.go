package interpreter

import (
	"regexp"

	"voice-assistant/internal/models"
	"voice-assistant/internal/voice/entities"
	"voice-assistant/internal/voice/intent"
	"voice-assistant/internal/voice/numerals"
	"voice-assistant/internal/voice/timewindow"
)

type Operator string

const (
	OpAdd      Operator = "add"
	OpSubtract Operator = "subtract"
	OpMultiply Operator = "multiply"
	OpDivide   Operator = "divide"
)

// operatorOrder is the order operator keywords are tested in.
var operatorOrder = []Operator{OpAdd, OpSubtract, OpMultiply, OpDivide}

// localeBundle is everything locale specific. Handlers only see this, so a
// new locale is new data rather than new control flow.
type localeBundle struct {
	classifier *intent.Classifier
	extractor  *entities.Extractor
	resolver   *entities.Resolver
	speller    numerals.Speller
	phrases    phrasebook
	queries    queries
}

// queries detect sub-questions inside an intent. Patterns run on normalized
// text unless noted.
type queries struct {
	operators map[Operator]*regexp.Regexp

	lowStock      *regexp.Regexp
	productPrice  *regexp.Regexp
	productSearch *regexp.Regexp // raw text, group 1 is the product name

	whoOwesMost *regexp.Regexp
	totalDebt   *regexp.Regexp

	customerCount *regexp.Regexp
	profit        *regexp.Regexp
}

// properName finds a capitalized two-word name in the raw command.
var properName = regexp.MustCompile(`[A-ZÁÉÍÓÚÑÜ][a-záéíóúñü]+\s+[A-ZÁÉÍÓÚÑÜ][a-záéíóúñü]+`)

// phrasebook renders every response sentence for one locale. Amounts are
// passed as numbers and rendered with formatMoney so the speech pass can
// find them.
type phrasebook interface {
	Unknown() string

	Calculation(left float64, op Operator, right float64, result string) string
	DivisionByZero() string

	InventoryTotals(products, units int, value float64) string
	LowStock(listed []models.Product, total int) string
	AllStocked() string
	ProductDetails(p models.Product) string
	ProductNotFound(search string) string

	OverduePayments(count int, total float64) string
	NoOverduePayments() string

	TopDebtors(ranked []models.Customer) string
	NoDebtors() string
	TotalDebt(total float64, debtors int) string
	CustomerDebt(name string, debt float64) string
	NoDebt(name string) string
	CustomerDebtInMonth(name string, month int, amount float64) string
	NoDebtInMonth(name string, month int) string
	CustomerNotFound(search string) string
	NameMissing() string

	CustomerCount(total, active int) string
	Profit(window timewindow.Window, amount, inventoryPotential float64) string
	Summary(customers, products, payments int, debt float64) string
}

func newSpanishBundle() *localeBundle {
	pack := entities.SpanishPack()
	return &localeBundle{
		classifier: intent.NewClassifier(intent.SpanishRules()),
		extractor:  entities.NewExtractor(pack),
		resolver:   entities.NewResolver(pack),
		speller:    numerals.Spanish(),
		phrases:    spanishPhrases{},
		queries: queries{
			operators: map[Operator]*regexp.Regexp{
				OpAdd:      regexp.MustCompile(`\b(?:mas|suma|sumar|sumale)\b|\+`),
				OpSubtract: regexp.MustCompile(`\b(?:menos|resta|restar|restale)\b|\d\s*-\s*\d`),
				OpMultiply: regexp.MustCompile(`\b(?:por|multiplica|multiplicar|multiplicado|veces)\b|\*|\d\s*x\s*\d`),
				OpDivide:   regexp.MustCompile(`\b(?:entre|divide|dividir|dividido)\b|/`),
			},
			lowStock:      regexp.MustCompile(`\b(?:poco stock|bajo stock|stock bajo|poco inventario|por agotarse|se estan acabando|agotad\w*|escas\w*|reabastecer|pocas unidades|quedan pocos)\b`),
			productPrice:  regexp.MustCompile(`\b(?:precio|cuesta|cuestan|vale|valen|costo)\b`),
			productSearch: regexp.MustCompile(`(?i)(?:producto|art[ií]culo)\s+(.+)`),
			whoOwesMost:   regexp.MustCompile(`\bquien(?:es)?\b.*\b(?:mas|mayor)\b|\bmayor(?:es)? deud|\bdeudor(?:es)? (?:principal|mas grande)|\bmas (?:me )?deben?\b`),
			totalDebt:     regexp.MustCompile(`\b(?:total|en total|todos|me deben|deuda general|por cobrar)\b`),
			customerCount: regexp.MustCompile(`\b(?:cuantos clientes|numero de clientes|total de clientes|clientes tengo|clientes activos|mis clientes)\b`),
			profit:        regexp.MustCompile(`\b(?:ganancias?|utilidad(?:es)?|beneficios?|ingresos|ventas|gane|ganado)\b`),
		},
	}
}

func newEnglishBundle() *localeBundle {
	pack := entities.EnglishPack()
	return &localeBundle{
		classifier: intent.NewClassifier(intent.EnglishRules()),
		extractor:  entities.NewExtractor(pack),
		resolver:   entities.NewResolver(pack),
		speller:    numerals.English(),
		phrases:    englishPhrases{},
		queries: queries{
			operators: map[Operator]*regexp.Regexp{
				OpAdd:      regexp.MustCompile(`\b(?:plus|add|sum)\b|\+`),
				OpSubtract: regexp.MustCompile(`\b(?:minus|subtract|less)\b|\d\s*-\s*\d`),
				OpMultiply: regexp.MustCompile(`\b(?:times|multiply|multiplied)\b|\*|\d\s*x\s*\d`),
				OpDivide:   regexp.MustCompile(`\b(?:divided|divide|over)\b|/`),
			},
			lowStock:      regexp.MustCompile(`\b(?:low stock|low on stock|running low|out of stock|restock|low inventory|almost gone)\b`),
			productPrice:  regexp.MustCompile(`\b(?:price|cost|costs|how much is)\b`),
			productSearch: regexp.MustCompile(`(?i)(?:product|item)\s+(.+)`),
			whoOwesMost:   regexp.MustCompile(`\bwho\b.*\b(?:most|more)\b|\b(?:top|biggest|largest) debtors?\b`),
			totalDebt:     regexp.MustCompile(`\b(?:total|in total|all|everyone|everybody|my customers)\b`),
			customerCount: regexp.MustCompile(`\b(?:how many customers|how many clients|number of customers|customer count|active customers)\b`),
			profit:        regexp.MustCompile(`\b(?:profits?|earnings|earned|revenue|income|sales|made)\b`),
		},
	}
}
