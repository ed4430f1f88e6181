package runner

import (
	"context"
	"fmt"
	"os"

	"github.com/altinukshini/minigrep/internal/config"
	"github.com/altinukshini/minigrep/internal/model"
	"github.com/altinukshini/minigrep/internal/search"
)

// FileReader returns the whole text of the file at path.
type FileReader interface {
	ReadFile(ctx context.Context, path string) (string, error)
}

// OSReader reads from the local filesystem.
type OSReader struct{}

func (OSReader) ReadFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// IOError is returned when the target file cannot be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Sink receives matches in source order.
type Sink interface {
	WriteMatch(m model.Match) error
}

// Collect reads the target and returns every match without emitting
// anything. The file contents are returned too so callers can re-search.
func Collect(ctx context.Context, cfg config.SearchConfig, reader FileReader) (string, *model.Matches, error) {
	contents, err := reader.ReadFile(ctx, cfg.TargetPath())
	if err != nil {
		return "", nil, &IOError{Path: cfg.TargetPath(), Err: err}
	}
	return contents, search.New().Find(cfg.Query(), contents, cfg.CaseSensitive()), nil
}

// Run searches the target file and forwards each match to sink. The file
// is read in full before anything reaches sink, so a read failure never
// produces partial output.
func Run(ctx context.Context, cfg config.SearchConfig, reader FileReader, sink Sink) error {
	_, results, err := Collect(ctx, cfg, reader)
	if err != nil {
		return err
	}
	for _, m := range results.Matches {
		if err := sink.WriteMatch(m); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
