package interpreter

import (
	"sort"
	"strings"
	"unicode/utf8"

	"voice-assistant/internal/models"
	"voice-assistant/internal/voice/normalize"
	"voice-assistant/internal/voice/timewindow"
)

const (
	maxListed       = 3
	minProductToken = 4
)

var trailingPunctuation = strings.NewReplacer("?", "", "!", "", "¿", "", "¡", "")

// ==========================
// Calculation
// ==========================

func handleCalculation(req *request) answer {
	numbers := req.bundle.extractor.Numbers(req.raw)
	if len(numbers) < 2 {
		return malformed(req.bundle)
	}
	left, right := numbers[0], numbers[1]

	var op Operator
	for _, candidate := range operatorOrder {
		if req.bundle.queries.operators[candidate].MatchString(req.normalized) {
			op = candidate
			break
		}
	}
	if op == "" {
		return malformed(req.bundle)
	}

	calc := &Calculation{Left: left, Right: right, Operator: op}
	var rendered string
	switch op {
	case OpAdd:
		calc.Result = roundTo2(left + right)
	case OpSubtract:
		calc.Result = roundTo2(left - right)
	case OpMultiply:
		calc.Result = roundTo2(left * right)
	case OpDivide:
		if right == 0 {
			return answer{
				text:    req.bundle.phrases.DivisionByZero(),
				outcome: OutcomeDivisionByZero,
				data:    &Data{Query: "calculation", Calculation: calc},
			}
		}
		calc.Result = roundTo2(left / right)
		rendered = strconvFixed2(left / right)
	}
	if rendered == "" {
		rendered = formatNumber(calc.Result)
	}

	text := req.bundle.phrases.Calculation(left, op, right, rendered)
	return answered(text, &Data{Query: "calculation", Calculation: calc})
}

func malformed(bundle *localeBundle) answer {
	a := unrecognized(bundle)
	a.outcome = OutcomeMalformedInput
	return a
}

// ==========================
// Inventory
// ==========================

func handleInventory(req *request) answer {
	products := req.snapshot.Products
	q := req.bundle.queries

	if q.lowStock.MatchString(req.normalized) {
		var low []models.Product
		for _, p := range products {
			if p.IsLowStock() {
				low = append(low, p)
			}
		}
		if len(low) == 0 {
			return answered(req.bundle.phrases.AllStocked(), &Data{Query: "low_stock"})
		}
		listed := low
		if len(listed) > maxListed {
			listed = listed[:maxListed]
		}
		text := req.bundle.phrases.LowStock(listed, len(low))
		return answered(text, &Data{
			Query:    "low_stock",
			Products: low,
			Counts:   map[string]int{"lowStock": len(low)},
		})
	}

	if p := findProduct(req.normalized, products); p != nil {
		return answered(req.bundle.phrases.ProductDetails(*p), &Data{Query: "product", Product: p})
	}

	// A named product that is not on record is not found, with or without a
	// price keyword. Totals answer only when no product was named.
	if search := productSearch(req); search != "" || q.productPrice.MatchString(req.normalized) {
		return answer{
			text:    req.bundle.phrases.ProductNotFound(search),
			outcome: OutcomeNotFound,
			data:    &Data{Query: "product", Search: search},
		}
	}

	units := 0
	value := 0.0
	for _, p := range products {
		units += p.Quantity
		value += p.Price * float64(p.Quantity)
	}
	value = roundTo2(value)
	text := req.bundle.phrases.InventoryTotals(len(products), units, value)
	return answered(text, &Data{
		Query:  "inventory_totals",
		Counts: map[string]int{"products": len(products), "units": units},
		Totals: map[string]float64{"retailValue": value},
	})
}

// findProduct matches a product whose full normalized name appears in the
// command, or one of whose longer name tokens appears as a whole word.
func findProduct(normalized string, products []models.Product) *models.Product {
	words := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(normalized, isWordSeparator) {
		words[w] = struct{}{}
	}

	for _, p := range products {
		name := normalize.Text(p.Name)
		if name != "" && containsPhrase(normalized, name) {
			found := p
			return &found
		}
	}
	for _, p := range products {
		for _, tok := range strings.Fields(normalize.Text(p.Name)) {
			if utf8.RuneCountInString(tok) < minProductToken {
				continue
			}
			if _, ok := words[tok]; ok {
				found := p
				return &found
			}
		}
	}
	return nil
}

func containsPhrase(text, phrase string) bool {
	padded := " " + strings.Join(strings.FieldsFunc(text, isWordSeparator), " ") + " "
	return strings.Contains(padded, " "+strings.Join(strings.FieldsFunc(phrase, isWordSeparator), " ")+" ")
}

func isWordSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '?', '!', '.', ',', ';', ':', '¿', '¡', '"', '\'':
		return true
	}
	return false
}

func productSearch(req *request) string {
	text := strings.TrimSpace(trailingPunctuation.Replace(req.raw))
	m := req.bundle.queries.productSearch.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimRight(m[1], ".,;:"))
}

// ==========================
// Payments
// ==========================

func handlePayments(req *request) answer {
	var overdue []models.Payment
	total := 0.0
	for _, p := range req.snapshot.Payments {
		if p.Status == models.PaymentStatusOverdue {
			overdue = append(overdue, p)
			total += p.Amount
		}
	}
	if len(overdue) == 0 {
		return answered(req.bundle.phrases.NoOverduePayments(), &Data{Query: "overdue_payments"})
	}
	total = roundTo2(total)
	return answered(req.bundle.phrases.OverduePayments(len(overdue), total), &Data{
		Query:    "overdue_payments",
		Payments: overdue,
		Counts:   map[string]int{"overdue": len(overdue)},
		Totals:   map[string]float64{"overdue": total},
	})
}

// ==========================
// Customer debt
// ==========================

func handleCustomerDebt(req *request) answer {
	q := req.bundle.queries
	customers := req.snapshot.Customers

	if q.whoOwesMost.MatchString(req.normalized) {
		var debtors []models.Customer
		for _, c := range customers {
			if c.TotalDebt > 0 {
				debtors = append(debtors, c)
			}
		}
		if len(debtors) == 0 {
			return answered(req.bundle.phrases.NoDebtors(), &Data{Query: "top_debtors"})
		}
		sort.SliceStable(debtors, func(i, j int) bool {
			return debtors[i].TotalDebt > debtors[j].TotalDebt
		})
		if len(debtors) > maxListed {
			debtors = debtors[:maxListed]
		}
		return answered(req.bundle.phrases.TopDebtors(debtors), &Data{Query: "top_debtors", Customers: debtors})
	}

	if q.totalDebt.MatchString(req.normalized) && !properName.MatchString(req.raw) {
		total := 0.0
		debtors := 0
		for _, c := range customers {
			total += c.TotalDebt
			if c.TotalDebt > 0 {
				debtors++
			}
		}
		total = roundTo2(total)
		return answered(req.bundle.phrases.TotalDebt(total, debtors), &Data{
			Query:  "total_debt",
			Totals: map[string]float64{"debt": total},
			Counts: map[string]int{"debtors": debtors},
		})
	}

	name := req.bundle.extractor.CustomerName(req.raw)
	if name == "" {
		return answer{
			text:    req.bundle.phrases.NameMissing(),
			outcome: OutcomeMissingEntity,
			data:    &Data{Query: "customer_debt"},
		}
	}

	customer := req.bundle.resolver.FindCustomer(name, customers)
	if customer == nil {
		return answer{
			text:    req.bundle.phrases.CustomerNotFound(name),
			outcome: OutcomeNotFound,
			data:    &Data{Query: "customer_debt", Search: name},
		}
	}

	if month := req.bundle.extractor.Month(req.raw, req.now); month != nil {
		window := timewindow.New(timewindow.SpecificMonth, month, req.now)
		var due []models.Payment
		amount := 0.0
		for _, p := range req.snapshot.Payments {
			if p.CustomerID == customer.ID && p.Status.IsOutstanding() && window.Contains(p.DueDate.Time) {
				due = append(due, p)
				amount += p.Amount
			}
		}
		amount = roundTo2(amount)
		data := &Data{
			Query:    "customer_debt_month",
			Search:   name,
			Customer: customer,
			Payments: due,
			Month:    month,
			Period:   timewindow.SpecificMonth,
			Totals:   map[string]float64{"debt": amount},
		}
		if amount <= 0 {
			return answered(req.bundle.phrases.NoDebtInMonth(customer.Name, *month), data)
		}
		return answered(req.bundle.phrases.CustomerDebtInMonth(customer.Name, *month, amount), data)
	}

	data := &Data{
		Query:    "customer_debt",
		Search:   name,
		Customer: customer,
		Totals:   map[string]float64{"debt": customer.TotalDebt},
	}
	if customer.TotalDebt <= 0 {
		return answered(req.bundle.phrases.NoDebt(customer.Name), data)
	}
	return answered(req.bundle.phrases.CustomerDebt(customer.Name, customer.TotalDebt), data)
}

// ==========================
// Stats
// ==========================

func handleStats(req *request) answer {
	q := req.bundle.queries
	snap := req.snapshot

	if q.customerCount.MatchString(req.normalized) {
		active := countActiveCustomers(snap)
		return answered(req.bundle.phrases.CustomerCount(len(snap.Customers), active), &Data{
			Query:  "customer_count",
			Counts: map[string]int{"customers": len(snap.Customers), "active": active},
		})
	}

	if q.profit.MatchString(req.normalized) {
		period, month := req.bundle.extractor.TimePeriod(req.raw)
		window := timewindow.New(period, month, req.now)

		earned := 0.0
		var paid []models.Payment
		for _, p := range snap.Payments {
			if p.Status == models.PaymentStatusPaid && window.Contains(p.DueDate.Time) {
				paid = append(paid, p)
				earned += p.Amount
			}
		}
		potential := 0.0
		if window.IsAll() {
			for _, p := range snap.Products {
				potential += (p.Price - p.PurchasePrice) * float64(p.Quantity)
			}
		}
		earned = roundTo2(earned)
		potential = roundTo2(potential)
		total := roundTo2(earned + potential)

		return answered(req.bundle.phrases.Profit(window, total, potential), &Data{
			Query:    "profit",
			Payments: paid,
			Period:   window.Period,
			Month:    window.Month,
			Totals: map[string]float64{
				"paid":               earned,
				"inventoryPotential": potential,
				"profit":             total,
			},
		})
	}

	debt := 0.0
	for _, c := range snap.Customers {
		debt += c.TotalDebt
	}
	debt = roundTo2(debt)
	return answered(req.bundle.phrases.Summary(len(snap.Customers), len(snap.Products), len(snap.Payments), debt), &Data{
		Query: "summary",
		Counts: map[string]int{
			"customers": len(snap.Customers),
			"products":  len(snap.Products),
			"payments":  len(snap.Payments),
		},
		Totals: map[string]float64{"debt": debt},
	})
}

// countActiveCustomers counts customers that owe money or have any payment.
func countActiveCustomers(snap *models.Snapshot) int {
	withPayments := make(map[string]struct{}, len(snap.Payments))
	for _, p := range snap.Payments {
		withPayments[p.CustomerID] = struct{}{}
	}
	active := 0
	for _, c := range snap.Customers {
		if _, ok := withPayments[c.ID]; ok || c.TotalDebt > 0 {
			active++
		}
	}
	return active
}
