package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// New returns a stderr-style logger for w. An unknown level falls back to warn.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "minigrep",
		Level:  lvl,
	})
}

// Discard is a logger that drops everything, for tests and library callers.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
