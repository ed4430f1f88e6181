package model

// Match is a single matching line. Line is 1-based.
type Match struct {
	Line    int
	Content string
}

type SearchQuery struct {
	Pattern       string
	CaseSensitive bool
}

type Matches struct {
	Query      SearchQuery
	Matches    []Match
	TotalLines int // lines scanned
}

// Lines returns the matched line contents in source order.
func (m *Matches) Lines() []string {
	if m == nil || len(m.Matches) == 0 {
		return nil
	}
	lines := make([]string, len(m.Matches))
	for i, match := range m.Matches {
		lines[i] = match.Content
	}
	return lines
}
