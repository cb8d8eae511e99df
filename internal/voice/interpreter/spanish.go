package interpreter

import (
	"fmt"
	"strings"

	"voice-assistant/internal/models"
	"voice-assistant/internal/voice/timewindow"
)

var spanishMonths = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var spanishOperators = map[Operator]string{
	OpAdd:      "más",
	OpSubtract: "menos",
	OpMultiply: "por",
	OpDivide:   "entre",
}

type spanishPhrases struct{}

func (spanishPhrases) Unknown() string {
	return "No entendí tu pregunta. Puedes preguntarme cosas como: " +
		"\"¿Cuánto me debe Juan?\", \"¿Qué productos tienen poco stock?\", " +
		"\"¿Hay pagos vencidos?\", \"¿Cuál es mi ganancia de este mes?\" o \"Calcula 10 más 5\""
}

func (spanishPhrases) Calculation(left float64, op Operator, right float64, result string) string {
	return fmt.Sprintf("%s %s %s es igual a %s", formatNumber(left), spanishOperators[op], formatNumber(right), result)
}

func (spanishPhrases) DivisionByZero() string {
	return "No puedo dividir entre cero"
}

func (spanishPhrases) InventoryTotals(products, units int, value float64) string {
	return fmt.Sprintf("Tienes %d %s con un total de %d %s en inventario, con un valor de %s",
		products, plural(products, "producto", "productos"),
		units, plural(units, "unidad", "unidades"),
		formatMoney(value))
}

func (spanishPhrases) LowStock(listed []models.Product, total int) string {
	parts := make([]string, 0, len(listed))
	for _, p := range listed {
		parts = append(parts, fmt.Sprintf("%s tiene %d %s", p.Name, p.Quantity, plural(p.Quantity, "unidad", "unidades")))
	}

	var b strings.Builder
	if total == 1 {
		b.WriteString("Tienes 1 producto con poco stock: ")
	} else {
		fmt.Fprintf(&b, "Tienes %d productos con poco stock: ", total)
	}
	if rest := total - len(listed); rest > 0 {
		fmt.Fprintf(&b, "%s y %d más", strings.Join(parts, ", "), rest)
		return b.String()
	}
	b.WriteString(joinSpanish(parts))
	return b.String()
}

func (spanishPhrases) AllStocked() string {
	return "Todos los productos tienen stock suficiente"
}

func (spanishPhrases) ProductDetails(p models.Product) string {
	return fmt.Sprintf("%s tiene un precio de %s, un costo de %s y tienes %d %s en inventario",
		p.Name, formatMoney(p.Price), formatMoney(p.PurchasePrice),
		p.Quantity, plural(p.Quantity, "unidad", "unidades"))
}

func (spanishPhrases) ProductNotFound(search string) string {
	if search == "" {
		return "No encontré ese producto en tu inventario"
	}
	return fmt.Sprintf("No encontré el producto %s", search)
}

func (spanishPhrases) OverduePayments(count int, total float64) string {
	if count == 1 {
		return fmt.Sprintf("Tienes un pago vencido por %s", formatMoney(total))
	}
	return fmt.Sprintf("Tienes %d pagos vencidos por un total de %s", count, formatMoney(total))
}

func (spanishPhrases) NoOverduePayments() string {
	return "No tienes pagos vencidos. ¡Todo está al día!"
}

func (spanishPhrases) TopDebtors(ranked []models.Customer) string {
	if len(ranked) == 1 {
		return fmt.Sprintf("El cliente que más te debe es %s con %s", ranked[0].Name, formatMoney(ranked[0].TotalDebt))
	}
	parts := make([]string, 0, len(ranked))
	for i, c := range ranked {
		parts = append(parts, fmt.Sprintf("%d. %s con %s", i+1, c.Name, formatMoney(c.TotalDebt)))
	}
	return "Los clientes que más te deben son: " + strings.Join(parts, ", ")
}

func (spanishPhrases) NoDebtors() string {
	return "Ningún cliente te debe dinero"
}

func (spanishPhrases) TotalDebt(total float64, debtors int) string {
	if debtors == 0 {
		return "Ningún cliente te debe dinero"
	}
	if debtors == 1 {
		return fmt.Sprintf("Te deben un total de %s, de un cliente", formatMoney(total))
	}
	return fmt.Sprintf("Te deben un total de %s entre %d clientes", formatMoney(total), debtors)
}

func (spanishPhrases) CustomerDebt(name string, debt float64) string {
	return fmt.Sprintf("%s te debe %s", name, formatMoney(debt))
}

func (spanishPhrases) NoDebt(name string) string {
	return fmt.Sprintf("%s no tiene deudas pendientes", name)
}

func (spanishPhrases) CustomerDebtInMonth(name string, month int, amount float64) string {
	return fmt.Sprintf("%s te debe %s en %s", name, formatMoney(amount), spanishMonth(month))
}

func (spanishPhrases) NoDebtInMonth(name string, month int) string {
	return fmt.Sprintf("%s no tiene pagos pendientes en %s", name, spanishMonth(month))
}

func (spanishPhrases) CustomerNotFound(search string) string {
	return fmt.Sprintf("No encontré ningún cliente llamado %s", search)
}

func (spanishPhrases) NameMissing() string {
	return "¿De qué cliente quieres saber la deuda? Por ejemplo: \"¿Cuánto me debe Juan?\""
}

func (spanishPhrases) CustomerCount(total, active int) string {
	return fmt.Sprintf("Tienes %d %s y %d %s",
		total, plural(total, "cliente registrado", "clientes registrados"),
		active, plural(active, "activo", "activos"))
}

func (spanishPhrases) Profit(window timewindow.Window, amount, inventoryPotential float64) string {
	if window.IsAll() {
		if inventoryPotential != 0 {
			return fmt.Sprintf("Tu ganancia total es de %s, incluyendo %s de ganancia potencial en inventario",
				formatMoney(amount), formatMoney(inventoryPotential))
		}
		return fmt.Sprintf("Tu ganancia total es de %s", formatMoney(amount))
	}
	return fmt.Sprintf("Tu ganancia %s es de %s", spanishPeriod(window), formatMoney(amount))
}

func (spanishPhrases) Summary(customers, products, payments int, debt float64) string {
	return fmt.Sprintf("Resumen de tu negocio: %d %s, %d %s y %d %s. Te deben %s en total",
		customers, plural(customers, "cliente", "clientes"),
		products, plural(products, "producto", "productos"),
		payments, plural(payments, "pago registrado", "pagos registrados"),
		formatMoney(debt))
}

func spanishPeriod(window timewindow.Window) string {
	switch window.Period {
	case timewindow.Day:
		return "de hoy"
	case timewindow.Week:
		return "de esta semana"
	case timewindow.Month:
		return "de este mes"
	case timewindow.SpecificMonth:
		if window.Month != nil {
			return "de " + spanishMonth(*window.Month)
		}
		return "de este mes"
	case timewindow.Year:
		return "de este año"
	}
	return "total"
}

func spanishMonth(month int) string {
	if month < 0 || month >= len(spanishMonths) {
		return ""
	}
	return spanishMonths[month]
}

// joinSpanish joins items as "a, b y c".
func joinSpanish(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " y " + items[len(items)-1]
}
