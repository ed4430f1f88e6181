package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/altinukshini/minigrep/internal/search"
)

func TestHighlightPlainProfileLeavesTextIntact(t *testing.T) {
	r := lipgloss.NewRenderer(&bytes.Buffer{})
	r.SetColorProfile(termenv.Ascii)

	line := "Trust\tme, trust"
	got := Highlight(line, search.MatchSpans(line, "trust", false), MatchStyle(r))
	if got != line {
		t.Errorf("Highlight() = %q, want %q", got, line)
	}
}

func TestHighlightWrapsOnlyMatches(t *testing.T) {
	r := lipgloss.NewRenderer(&bytes.Buffer{})
	r.SetColorProfile(termenv.TrueColor)

	line := "safe, fast, productive."
	got := Highlight(line, search.MatchSpans(line, "fast", true), MatchStyle(r))

	if !strings.HasPrefix(got, "safe, ") {
		t.Errorf("prefix changed: %q", got)
	}
	if !strings.HasSuffix(got, ", productive.") {
		t.Errorf("suffix changed: %q", got)
	}
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI escapes around the match: %q", got)
	}
}

func TestHighlightNoSpans(t *testing.T) {
	if got := Highlight("abc", nil, StyleMatch); got != "abc" {
		t.Errorf("Highlight() = %q, want %q", got, "abc")
	}
}
