package api

import (
	"context"

	"github.com/altinukshini/minigrep/internal/cache"
	"github.com/altinukshini/minigrep/internal/logging"
	"github.com/charmbracelet/log"
)

// ContentReader reads target paths from a GitHub repository, going through
// an optional on-disk cache. It satisfies runner.FileReader.
type ContentReader struct {
	client  *Client
	cache   *cache.ContentCache
	ref     string
	refresh bool
	logger  *log.Logger
}

type ContentReaderOption func(*ContentReader)

// WithCache serves repeated reads of the same file and ref from c.
func WithCache(c *cache.ContentCache) ContentReaderOption {
	return func(r *ContentReader) { r.cache = c }
}

// WithRefresh drops any cached copy before fetching.
func WithRefresh(refresh bool) ContentReaderOption {
	return func(r *ContentReader) { r.refresh = refresh }
}

func WithLogger(l *log.Logger) ContentReaderOption {
	return func(r *ContentReader) { r.logger = l }
}

func NewContentReader(client *Client, ref string, opts ...ContentReaderOption) *ContentReader {
	r := &ContentReader{client: client, ref: ref}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.Discard()
	}
	return r
}

func (r *ContentReader) ReadFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ref := r.ref
	if ref == "" && r.cache != nil {
		// Cache keys need a concrete ref.
		branch, err := r.client.DefaultBranch(ctx)
		if err != nil {
			return "", err
		}
		ref = branch
		r.ref = branch
	}

	if r.cache == nil {
		return r.client.FileContents(ctx, path, ref)
	}

	key := cache.Key{Owner: r.client.owner, Repo: r.client.repo, Ref: ref, Path: path}
	if r.refresh {
		if err := r.cache.Delete(key); err != nil {
			r.logger.Warn("failed to drop cached contents", "key", key.String(), "err", err)
		}
	} else if contents, ok := r.cache.Get(key); ok {
		r.logger.Debug("cache hit", "key", key.String())
		return contents, nil
	}

	r.logger.Debug("fetching", "key", key.String())
	contents, err := r.client.FileContents(ctx, path, ref)
	if err != nil {
		return "", err
	}

	if err := r.cache.Put(key, contents); err != nil {
		r.logger.Warn("failed to cache contents", "key", key.String(), "err", err)
		return contents, nil
	}
	if err := r.cache.Evict(); err != nil {
		r.logger.Warn("cache eviction failed", "err", err)
	}
	return contents, nil
}

// Ref reports the ref reads resolve against; empty until the default
// branch has been looked up.
func (r *ContentReader) Ref() string {
	return r.ref
}
