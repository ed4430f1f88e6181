package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/minigrep/internal/ui"
)

const (
	browseHints = "/:search  c:case  j/k:move  g/G:top/bottom  q:quit"
	editHints   = "enter:search  esc:cancel"
)

// Status is the pager state shown in the bottom bar.
type Status struct {
	Query   string
	Line    int // line under the cursor, 0 when there are no matches
	Editing bool
}

func (s Status) text() string {
	text := fmt.Sprintf("query %q", s.Query)
	if s.Line > 0 {
		text += fmt.Sprintf("  line %d", s.Line)
	}
	return text
}

func (s Status) hints() string {
	if s.Editing {
		return editHints
	}
	return browseHints
}

// RenderStatusBar draws s on the left and the keys that apply right now on
// the right, padded to width.
func RenderStatusBar(s Status, width int) string {
	muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	left := muted.Render("  " + s.text())
	right := muted.Render(s.hints() + " ")

	gap := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return lipgloss.NewStyle().
		Background(lipgloss.Color("#111827")).
		Width(width).
		Render(left + lipgloss.NewStyle().Width(gap).Render("") + right)
}
