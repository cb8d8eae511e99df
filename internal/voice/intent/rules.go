package intent

var hasDigit = Matches(`\d`)

// SpanishRules is the Spanish table. Order matters: a debt question that
// mentions products is not an inventory question, and arithmetic needs both
// an operator word and a number.
func SpanishRules() []Rule {
	debtOrPayment := Matches(`\b(debe|deben|deuda|deudas|adeuda|adeudan|deudor\w*|pagos?|vencid\w*|cobrar)\b`)

	return []Rule{
		{
			Name: "calculation",
			Match: All(
				Any(
					Matches(`\b(calcula|calcular|cuanto es|cuantos son|suma|sumar|mas|menos|resta|restar|por|multiplica|multiplicar|divide|dividir|dividido|entre|veces)\b`),
					Matches(`\d\s*[-+*/x]\s*\d`),
				),
				hasDigit,
			),
			Type:       Calculation,
			Confidence: 0.9,
		},
		{
			Name: "inventory",
			Match: All(
				Matches(`\b(productos?|inventario|stock|existencias?|articulos?|mercancia|unidades)\b`),
				Not(debtOrPayment),
			),
			Type:       Inventory,
			Confidence: 0.85,
		},
		{
			Name:       "payments",
			Match:      Matches(`\b(vencid\w*|pendientes?|atrasad\w*|morosos?)\b`),
			Type:       Payments,
			Confidence: 0.85,
		},
		{
			Name: "customer_debt",
			Match: Any(
				Matches(`\b(debe|deben|deuda|deudas|adeuda|adeudan|deudor\w*)\b`),
				Matches(`\bquien(es)?\b.*\bmas\b.*\bdeb`),
			),
			Type:       CustomerDebt,
			Confidence: 0.85,
		},
		{
			Name:       "stats",
			Match:      Matches(`\b(clientes?|ganancias?|utilidad(es)?|beneficios?|ventas|ingresos|resumen|estadisticas?|negocio)\b`),
			Type:       Stats,
			Confidence: 0.8,
		},
	}
}

// EnglishRules mirrors SpanishRules for English commands.
func EnglishRules() []Rule {
	debtOrPayment := Matches(`\b(owe|owes|owed|owing|debt|debts|debtors?|payments?|overdue)\b`)

	return []Rule{
		{
			Name: "calculation",
			Match: All(
				Any(
					Matches(`\b(calculate|compute|what is|whats|plus|add|minus|subtract|times|multiplied|multiply|divided|divide|over)\b`),
					Matches(`\d\s*[-+*/x]\s*\d`),
				),
				hasDigit,
			),
			Type:       Calculation,
			Confidence: 0.9,
		},
		{
			Name: "inventory",
			Match: All(
				Matches(`\b(products?|inventory|stock|items?|units)\b`),
				Not(debtOrPayment),
			),
			Type:       Inventory,
			Confidence: 0.85,
		},
		{
			Name:       "payments",
			Match:      Matches(`\b(overdue|pending|late|past due|unpaid)\b`),
			Type:       Payments,
			Confidence: 0.85,
		},
		{
			Name:       "customer_debt",
			Match:      Matches(`\b(owe|owes|owed|owing|debt|debts|debtors?)\b`),
			Type:       CustomerDebt,
			Confidence: 0.85,
		},
		{
			Name:       "stats",
			Match:      Matches(`\b(customers?|clients?|profits?|earnings|revenue|income|sales|summary|business)\b`),
			Type:       Stats,
			Confidence: 0.8,
		},
	}
}
