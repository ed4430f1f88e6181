package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/minigrep/internal/ui"
)

// RenderHeader draws the title bar with info right-aligned.
func RenderHeader(title, info string, width int) string {
	left := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("#F9FAFB")).
		Render(" minigrep | " + title)

	right := lipgloss.NewStyle().Foreground(ui.ColorSuccess).
		Render(info + " ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Background(lipgloss.Color("#1F2937")).
		Width(width).
		Render(left + padding + right)
}
