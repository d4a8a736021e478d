// Package cli provides formatting, rendering and settings for the terminal
// client.
package cli

import (
	"fmt"
	"time"

	"github.com/LovationAdmin/finanzas/models"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("es-MX"))

// FormatMoney formats an amount as whole pesos, e.g. -100 -> "-$100".
func FormatMoney(amount decimal.Decimal) string {
	whole := amount.Round(0)
	if whole.IsNegative() {
		return "-$" + printer.Sprintf("%d", whole.Neg().IntPart())
	}
	return "$" + printer.Sprintf("%d", whole.IntPart())
}

// FormatSigned is FormatMoney with an explicit plus sign for gains.
func FormatSigned(amount decimal.Decimal) string {
	if amount.IsPositive() {
		return "+" + FormatMoney(amount)
	}
	return FormatMoney(amount)
}

// FormatMovementAmount shows the stored magnitude with the sign its kind
// implies, keeping cents: "+$500", "-$12.50".
func FormatMovementAmount(m models.Movement) string {
	sign := "-"
	if m.Kind == models.KindIncome {
		sign = "+"
	}
	return sign + "$" + m.Amount.StringFixedBank(centsFor(m.Amount))
}

func centsFor(d decimal.Decimal) int32 {
	if d.Equal(d.Truncate(0)) {
		return 0
	}
	return 2
}

var months = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// MonthTitle turns a month key into a heading, "2024-01" -> "enero de 2024".
// Keys that are not a year-month are returned as is.
func MonthTitle(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%s de %d", months[t.Month()-1], t.Year())
}

// KindLabel is the display name of a kind.
func KindLabel(k models.Kind) string {
	switch k {
	case models.KindIncome:
		return "Ingreso"
	case models.KindExpense:
		return "Gasto"
	default:
		return string(k)
	}
}
