package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ModelView renders the confirmation model as a string.
func ModelView(m model) string {
	if m.decision != DecisionPending {
		return ""
	}
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF"))
	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))

	body := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#555555")).
		Render(m.viewport.View())

	footer := footerStyle.Render(fmt.Sprintf(
		"y/enter apply · n/q cancel · ↑/↓ scroll (%3.f%%)", m.viewport.ScrollPercent()*100))

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(m.title),
		body,
		footer,
	)
}
