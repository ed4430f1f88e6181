package ui

import (
	"github.com/altinukshini/minigrep/internal/model"
)

// SearchDoneMsg carries the result of a re-search started from the pager.
type SearchDoneMsg struct {
	Results *model.Matches
}
