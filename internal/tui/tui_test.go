package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderHeader(t *testing.T) {
	got := RenderHeader("poem.txt", "2/9 lines", 60)
	if !strings.Contains(got, "minigrep | poem.txt") {
		t.Errorf("header %q should carry the title", got)
	}
	if !strings.Contains(got, "2/9 lines") {
		t.Errorf("header %q should carry the info", got)
	}
	if w := lipgloss.Width(got); w != 60 {
		t.Errorf("header width = %d, want 60", w)
	}
}

func TestRenderStatusBar(t *testing.T) {
	tests := []struct {
		name    string
		status  Status
		want    []string
		notWant string
	}{
		{
			name:   "browsing with a selection",
			status: Status{Query: "to", Line: 7},
			want:   []string{`query "to"`, "line 7", "q:quit"},
		},
		{
			name:    "no matches",
			status:  Status{Query: "zebra"},
			want:    []string{`query "zebra"`},
			notWant: "line",
		},
		{
			name:    "editing",
			status:  Status{Query: "to", Line: 1, Editing: true},
			want:    []string{"enter:search", "esc:cancel"},
			notWant: "q:quit",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderStatusBar(tt.status, 100)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("RenderStatusBar() = %q, want it to contain %q", got, w)
				}
			}
			if tt.notWant != "" && strings.Contains(got, tt.notWant) {
				t.Errorf("RenderStatusBar() = %q, should not contain %q", got, tt.notWant)
			}
			if w := lipgloss.Width(got); w != 100 {
				t.Errorf("width = %d, want 100", w)
			}
		})
	}
}
