package pager

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/minigrep/internal/model"
	"github.com/altinukshini/minigrep/internal/search"
	"github.com/altinukshini/minigrep/internal/tui"
	"github.com/altinukshini/minigrep/internal/ui"
)

// header, input line and status bar
const chromeHeight = 3

type Model struct {
	viewport viewport.Model
	input    textinput.Model
	source   string
	contents string
	results  *model.Matches
	cursor   int
	editing  bool
	width    int
	height   int
	ready    bool
}

// New opens the pager on results already computed from contents. Re-searches
// run against contents without touching the source again.
func New(source, contents string, results *model.Matches) Model {
	ti := textinput.New()
	ti.Placeholder = "Search text (empty matches every line)"
	ti.Prompt = "/"
	ti.CharLimit = 256

	if results == nil {
		results = search.New().Find("", contents, true)
	}
	return Model{
		input:    ti,
		source:   source,
		contents: contents,
		results:  results,
	}
}

func (m Model) Query() string {
	return m.results.Query.Pattern
}

func (m Model) CaseSensitive() bool {
	return m.results.Query.CaseSensitive
}

func (m Model) Results() *model.Matches {
	return m.results
}

func (m Model) IsEditing() bool {
	return m.editing
}

// SelectedMatch returns the match under the cursor, or nil when there are
// no matches.
func (m Model) SelectedMatch() *model.Match {
	if m.cursor >= len(m.results.Matches) {
		return nil
	}
	return &m.results.Matches[m.cursor]
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.SearchDoneMsg:
		if msg.Results != nil {
			m.results = msg.Results
		}
		m.cursor = 0
		if m.ready {
			m.viewport.SetContent(m.renderResults())
			m.viewport.GotoTop()
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			switch {
			case msg.Type == tea.KeyCtrlC:
				return m, tea.Quit
			case msg.Type == tea.KeyEnter:
				m.editing = false
				m.input.Blur()
				return m, m.searchCmd(m.input.Value(), m.CaseSensitive())
			case key.Matches(msg, ui.Keys.Back):
				m.editing = false
				m.input.Blur()
				m.input.SetValue(m.Query())
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, ui.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, ui.Keys.Search):
			m.editing = true
			m.input.SetValue(m.Query())
			m.input.CursorEnd()
			m.input.Focus()
			return m, textinput.Blink
		case key.Matches(msg, ui.Keys.ToggleCase):
			return m, m.searchCmd(m.Query(), !m.CaseSensitive())
		case key.Matches(msg, ui.Keys.Down):
			m.moveCursor(1)
		case key.Matches(msg, ui.Keys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, ui.Keys.PageDown):
			m.moveCursor(m.pageSize())
		case key.Matches(msg, ui.Keys.PageUp):
			m.moveCursor(-m.pageSize())
		case key.Matches(msg, ui.Keys.Top):
			m.moveCursor(-len(m.results.Matches))
		case key.Matches(msg, ui.Keys.Bottom):
			m.moveCursor(len(m.results.Matches))
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		h := msg.Height - chromeHeight
		if h < 1 {
			h = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, h)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = h
		}
		m.viewport.SetContent(m.renderResults())
		m.scrollToCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) searchCmd(query string, caseSensitive bool) tea.Cmd {
	contents := m.contents
	return func() tea.Msg {
		return ui.SearchDoneMsg{Results: search.New().Find(query, contents, caseSensitive)}
	}
}

func (m Model) pageSize() int {
	if m.ready && m.viewport.Height > 0 {
		return m.viewport.Height
	}
	return 1
}

func (m *Model) moveCursor(delta int) {
	n := len(m.results.Matches)
	if n == 0 {
		return
	}
	m.cursor = max(0, min(n-1, m.cursor+delta))
	if m.ready {
		m.viewport.SetContent(m.renderResults())
		m.scrollToCursor()
	}
}

// scrollToCursor keeps the cursor row inside the viewport. Rows map 1:1 to
// matches.
func (m *Model) scrollToCursor() {
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m Model) renderResults() string {
	if len(m.results.Matches) == 0 {
		return ui.StyleMuted.Render("  No matches")
	}

	last := m.results.Matches[len(m.results.Matches)-1].Line
	gutter := len(strconv.Itoa(last))
	query := expandTabs(m.Query())

	var b strings.Builder
	for i, match := range m.results.Matches {
		line := expandTabs(match.Content)
		spans := search.MatchSpans(line, query, m.CaseSensitive())

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		row := cursor +
			ui.StyleMuted.Render(fmt.Sprintf("%*d:", gutter, match.Line)) + " " +
			ui.Highlight(line, spans, ui.StyleMatch)
		if i == m.cursor {
			row = ui.StyleCursor.Render(row)
		}
		b.WriteString(row)
		if i < len(m.results.Matches)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) View() string {
	if !m.ready {
		return ""
	}

	mode := "case-sensitive"
	if !m.CaseSensitive() {
		mode = "ignore case"
	}
	info := fmt.Sprintf("%d/%d lines | %s", len(m.results.Matches), m.results.TotalLines, mode)

	inputLine := ""
	if m.editing {
		inputLine = "  " + m.input.View()
	}

	status := tui.Status{Query: m.Query(), Editing: m.editing}
	if sel := m.SelectedMatch(); sel != nil {
		status.Line = sel.Line
	}

	var b strings.Builder
	b.WriteString(tui.RenderHeader(m.source, info, m.width) + "\n")
	b.WriteString(m.viewport.View() + "\n")
	b.WriteString(inputLine + "\n")
	b.WriteString(tui.RenderStatusBar(status, m.width))
	return b.String()
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
