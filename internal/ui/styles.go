package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/minigrep/internal/search"
)

var (
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorHighlight = lipgloss.Color("#1F2937")

	StyleMuted  = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleCursor = lipgloss.NewStyle().Background(ColorHighlight)

	StyleMatch = MatchStyle(lipgloss.DefaultRenderer())
)

// MatchStyle is the match highlight bound to r, so callers writing to a
// non-default output get that output's color profile.
func MatchStyle(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FCD34D")).
		Background(lipgloss.Color("#78350F")).
		TabWidth(lipgloss.NoTabConversion)
}

// LineNumberStyle renders the "N:" gutter.
func LineNumberStyle(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Foreground(ColorSuccess)
}

// Highlight renders each span of line with style and leaves the rest of the
// line untouched.
func Highlight(line string, spans []search.Span, style lipgloss.Style) string {
	if len(spans) == 0 {
		return line
	}
	var b strings.Builder
	prev := 0
	for _, s := range spans {
		b.WriteString(line[prev:s.Start])
		b.WriteString(style.Render(line[s.Start:s.End]))
		prev = s.End
	}
	b.WriteString(line[prev:])
	return b.String()
}
