package runner

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/altinukshini/minigrep/internal/config"
	"github.com/altinukshini/minigrep/internal/model"
	"github.com/altinukshini/minigrep/internal/search"
	"github.com/altinukshini/minigrep/internal/ui"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
}

type SinkOptions struct {
	LineNumbers bool
	Color       ColorMode
}

// LineSink writes one match per line to w. Without highlighting the line
// text is written byte for byte.
type LineSink struct {
	w             io.Writer
	query         string
	caseSensitive bool
	lineNumbers   bool
	highlight     bool
	match         lipgloss.Style
	gutter        lipgloss.Style
}

func NewLineSink(w io.Writer, cfg config.SearchConfig, opts SinkOptions) *LineSink {
	r := lipgloss.NewRenderer(w)
	switch opts.Color {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}

	return &LineSink{
		w:             w,
		query:         cfg.Query(),
		caseSensitive: cfg.CaseSensitive(),
		lineNumbers:   opts.LineNumbers,
		highlight:     r.ColorProfile() != termenv.Ascii,
		match:         ui.MatchStyle(r),
		gutter:        ui.LineNumberStyle(r),
	}
}

func (s *LineSink) WriteMatch(m model.Match) error {
	line := m.Content
	if s.highlight {
		line = ui.Highlight(line, search.MatchSpans(line, s.query, s.caseSensitive), s.match)
	}
	if s.lineNumbers {
		prefix := fmt.Sprintf("%d:", m.Line)
		if s.highlight {
			prefix = s.gutter.Render(prefix)
		}
		line = prefix + line
	}
	_, err := fmt.Fprintln(s.w, line)
	return err
}
