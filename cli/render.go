package cli

import (
	"fmt"
	"strings"

	"github.com/LovationAdmin/finanzas/ledger"
	"github.com/LovationAdmin/finanzas/models"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorRed       = lipgloss.Color("#D14D41")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	incomeStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	expenseStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)
)

// RenderBalance renders the balance card.
func RenderBalance(s ledger.Summary) string {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(40).
		Align(lipgloss.Center).
		Padding(0, 1)

	label := headerStyle.Render("BALANCE TOTAL")
	amount := lipgloss.NewStyle().Bold(true).Foreground(ColorText).Render(FormatMoney(s.Balance))
	return card.Render(label + "\n" + amount)
}

// RenderGroups renders every month group with its subtotal and members.
// Movement ids are shown when showIDs is set so they can be edited.
func RenderGroups(s ledger.Summary, showIDs bool) string {
	if len(s.Groups) == 0 {
		return mutedStyle.Render("No hay movimientos aún")
	}

	var b strings.Builder
	for i, g := range s.Groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(RenderGroupHeader(g))
		b.WriteString("\n")
		for _, m := range g.Movements {
			b.WriteString("  ")
			b.WriteString(RenderMovement(m, showIDs))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderGroupHeader renders "enero de 2024   +$300".
func RenderGroupHeader(g ledger.MonthGroup) string {
	subtotal := mutedStyle
	if !g.Subtotal.IsNegative() {
		subtotal = incomeStyle
	}
	return fmt.Sprintf("%s  %s",
		headerStyle.Render(MonthTitle(g.Key)),
		subtotal.Bold(true).Render(FormatSigned(g.Subtotal)))
}

// RenderMovement renders one line of the history.
func RenderMovement(m models.Movement, showID bool) string {
	arrow, style := "↓", expenseStyle
	if m.Kind == models.KindIncome {
		arrow, style = "↑", incomeStyle
	}

	var b strings.Builder
	if showID {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("#%-4d ", m.ID)))
	}
	b.WriteString(style.Render(arrow))
	b.WriteString(" ")
	b.WriteString(valueStyle.Render(fmt.Sprintf("%-24s", m.Concept)))
	b.WriteString(" ")
	b.WriteString(mutedStyle.Render(string(m.Date)))
	b.WriteString("  ")
	b.WriteString(style.Bold(true).Render(FormatMovementAmount(m)))
	return b.String()
}

// RenderError renders an error line.
func RenderError(err error) string {
	return errorStyle.Render("✗ " + err.Error())
}

// RenderUser renders the greeting header.
func RenderUser(u models.User) string {
	if u.Name == "" {
		return mutedStyle.Render("Sin sesión")
	}
	return mutedStyle.Render("Bienvenido, ") + valueStyle.Bold(true).Render(u.Name) +
		mutedStyle.Render(" ("+string(u.Role)+")")
}
