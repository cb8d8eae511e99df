package interpreter

import (
	"fmt"
	"strings"
	"time"

	"voice-assistant/internal/models"
	"voice-assistant/internal/voice/timewindow"
)

var englishOperators = map[Operator]string{
	OpAdd:      "plus",
	OpSubtract: "minus",
	OpMultiply: "times",
	OpDivide:   "divided by",
}

type englishPhrases struct{}

func (englishPhrases) Unknown() string {
	return "I didn't understand your question. You can ask me things like: " +
		"\"How much does John owe?\", \"Which products are low on stock?\", " +
		"\"Are there overdue payments?\", \"What is my profit this month?\" or \"Calculate 10 plus 5\""
}

func (englishPhrases) Calculation(left float64, op Operator, right float64, result string) string {
	return fmt.Sprintf("%s %s %s equals %s", formatNumber(left), englishOperators[op], formatNumber(right), result)
}

func (englishPhrases) DivisionByZero() string {
	return "I can't divide by zero"
}

func (englishPhrases) InventoryTotals(products, units int, value float64) string {
	return fmt.Sprintf("You have %d %s with a total of %d %s in stock, worth %s",
		products, plural(products, "product", "products"),
		units, plural(units, "unit", "units"),
		formatMoney(value))
}

func (englishPhrases) LowStock(listed []models.Product, total int) string {
	parts := make([]string, 0, len(listed))
	for _, p := range listed {
		parts = append(parts, fmt.Sprintf("%s has %d %s", p.Name, p.Quantity, plural(p.Quantity, "unit", "units")))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d %s low on stock: ", total, plural(total, "product", "products"))
	if rest := total - len(listed); rest > 0 {
		fmt.Fprintf(&b, "%s and %d more", strings.Join(parts, ", "), rest)
		return b.String()
	}
	b.WriteString(joinEnglish(parts))
	return b.String()
}

func (englishPhrases) AllStocked() string {
	return "All products have enough stock"
}

func (englishPhrases) ProductDetails(p models.Product) string {
	return fmt.Sprintf("%s sells for %s, costs you %s and you have %d %s in stock",
		p.Name, formatMoney(p.Price), formatMoney(p.PurchasePrice),
		p.Quantity, plural(p.Quantity, "unit", "units"))
}

func (englishPhrases) ProductNotFound(search string) string {
	if search == "" {
		return "I couldn't find that product in your inventory"
	}
	return fmt.Sprintf("I couldn't find the product %s", search)
}

func (englishPhrases) OverduePayments(count int, total float64) string {
	if count == 1 {
		return fmt.Sprintf("You have one overdue payment of %s", formatMoney(total))
	}
	return fmt.Sprintf("You have %d overdue payments totaling %s", count, formatMoney(total))
}

func (englishPhrases) NoOverduePayments() string {
	return "You have no overdue payments. Everything is up to date!"
}

func (englishPhrases) TopDebtors(ranked []models.Customer) string {
	if len(ranked) == 1 {
		return fmt.Sprintf("The customer who owes you the most is %s with %s", ranked[0].Name, formatMoney(ranked[0].TotalDebt))
	}
	parts := make([]string, 0, len(ranked))
	for i, c := range ranked {
		parts = append(parts, fmt.Sprintf("%d. %s with %s", i+1, c.Name, formatMoney(c.TotalDebt)))
	}
	return "The customers who owe you the most are: " + strings.Join(parts, ", ")
}

func (englishPhrases) NoDebtors() string {
	return "No customer owes you money"
}

func (englishPhrases) TotalDebt(total float64, debtors int) string {
	if debtors == 0 {
		return "No customer owes you money"
	}
	return fmt.Sprintf("You are owed a total of %s across %d %s",
		formatMoney(total), debtors, plural(debtors, "customer", "customers"))
}

func (englishPhrases) CustomerDebt(name string, debt float64) string {
	return fmt.Sprintf("%s owes you %s", name, formatMoney(debt))
}

func (englishPhrases) NoDebt(name string) string {
	return fmt.Sprintf("%s has no outstanding debt", name)
}

func (englishPhrases) CustomerDebtInMonth(name string, month int, amount float64) string {
	return fmt.Sprintf("%s owes you %s in %s", name, formatMoney(amount), englishMonth(month))
}

func (englishPhrases) NoDebtInMonth(name string, month int) string {
	return fmt.Sprintf("%s has no pending payments in %s", name, englishMonth(month))
}

func (englishPhrases) CustomerNotFound(search string) string {
	return fmt.Sprintf("I couldn't find any customer named %s", search)
}

func (englishPhrases) NameMissing() string {
	return "Which customer do you want to know about? For example: \"How much does John owe?\""
}

func (englishPhrases) CustomerCount(total, active int) string {
	return fmt.Sprintf("You have %d registered %s and %d active",
		total, plural(total, "customer", "customers"), active)
}

func (englishPhrases) Profit(window timewindow.Window, amount, inventoryPotential float64) string {
	if window.IsAll() {
		if inventoryPotential != 0 {
			return fmt.Sprintf("Your total profit is %s, including %s of potential profit in inventory",
				formatMoney(amount), formatMoney(inventoryPotential))
		}
		return fmt.Sprintf("Your total profit is %s", formatMoney(amount))
	}
	return fmt.Sprintf("Your profit %s is %s", englishPeriod(window), formatMoney(amount))
}

func (englishPhrases) Summary(customers, products, payments int, debt float64) string {
	return fmt.Sprintf("Business summary: %d %s, %d %s and %d %s. You are owed %s in total",
		customers, plural(customers, "customer", "customers"),
		products, plural(products, "product", "products"),
		payments, plural(payments, "recorded payment", "recorded payments"),
		formatMoney(debt))
}

func englishPeriod(window timewindow.Window) string {
	switch window.Period {
	case timewindow.Day:
		return "today"
	case timewindow.Week:
		return "this week"
	case timewindow.Month:
		return "this month"
	case timewindow.SpecificMonth:
		if window.Month != nil {
			return "in " + englishMonth(*window.Month)
		}
		return "this month"
	case timewindow.Year:
		return "this year"
	}
	return "overall"
}

func englishMonth(month int) string {
	if month < 0 || month > 11 {
		return ""
	}
	return time.Month(month + 1).String()
}

// joinEnglish joins items as "a, b and c".
func joinEnglish(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
