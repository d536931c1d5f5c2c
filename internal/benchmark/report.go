// internal/benchmark/report.go
package benchmark

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderSummary formats a completed run for the terminal.
func RenderSummary(s Summary) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	modelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	scoreStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	if s.Score < 50 {
		scoreStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("Model:") + " " + modelStyle.Render(s.Model) + "\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("Questions: %d  Passed: %d  Responses per question: %d", s.Total, s.Passed, s.NumResponses)) + "\n")
	b.WriteString(labelStyle.Render("Final Score:") + " " + scoreStyle.Render(fmt.Sprintf("%.1f%%", s.Score)))

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1)
	return border.Render(b.String())
}
