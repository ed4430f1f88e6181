package search

import (
	"strings"

	"github.com/altinukshini/minigrep/internal/model"
)

type Engine struct{}

func New() *Engine {
	return &Engine{}
}

// Search returns every line of contents that contains query, in source
// order. With caseSensitive false both sides are lowercased for the
// comparison only; the returned lines keep their original text.
func Search(query, contents string, caseSensitive bool) []string {
	return New().Find(query, contents, caseSensitive).Lines()
}

// Find is Search with line numbers attached.
func (e *Engine) Find(query, contents string, caseSensitive bool) *model.Matches {
	q := model.SearchQuery{Pattern: query, CaseSensitive: caseSensitive}
	results := &model.Matches{Query: q}

	matcher := buildMatcher(q)
	lines := Lines(contents)
	results.TotalLines = len(lines)
	for i, line := range lines {
		if matcher(line) {
			results.Matches = append(results.Matches, model.Match{
				Line:    i + 1,
				Content: line,
			})
		}
	}
	return results
}

// Lines splits contents on "\n", dropping one trailing "\r" per line.
// A trailing newline does not produce an empty final line and empty
// contents have no lines.
func Lines(contents string) []string {
	if contents == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(contents, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func buildMatcher(query model.SearchQuery) func(string) bool {
	if query.CaseSensitive {
		return func(line string) bool { return strings.Contains(line, query.Pattern) }
	}
	pattern := strings.ToLower(query.Pattern)
	return func(line string) bool {
		return strings.Contains(strings.ToLower(line), pattern)
	}
}

// Span is a half-open byte range [Start, End) of a line.
type Span struct {
	Start, End int
}

// MatchSpans returns the non-overlapping occurrences of query in line.
// Case-insensitive spans are only reported when lowercasing keeps the
// byte length of line unchanged; otherwise offsets into the folded text
// would not line up with the original and no spans are returned.
func MatchSpans(line, query string, caseSensitive bool) []Span {
	if query == "" {
		return nil
	}
	haystack, needle := line, query
	if !caseSensitive {
		haystack, needle = strings.ToLower(line), strings.ToLower(query)
		if len(haystack) != len(line) {
			return nil
		}
	}

	var spans []Span
	for offset := 0; offset <= len(haystack)-len(needle); {
		idx := strings.Index(haystack[offset:], needle)
		if idx < 0 {
			break
		}
		start := offset + idx
		spans = append(spans, Span{Start: start, End: start + len(needle)})
		offset = start + len(needle)
	}
	return spans
}
