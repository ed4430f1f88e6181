package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"

	ghAPI "github.com/cli/go-gh/v2/pkg/api"
)

const rawMediaType = "application/vnd.github.raw"

type Client struct {
	rest  *ghAPI.RESTClient
	raw   *ghAPI.RESTClient // same auth, answers with raw file bodies
	owner string
	repo  string
}

func NewClient(owner, repo string) (*Client, error) {
	return NewClientWithOptions(owner, repo, ghAPI.ClientOptions{})
}

// NewClientWithOptions builds a client from explicit go-gh options. Host,
// token and transport left empty are resolved from the gh configuration.
func NewClientWithOptions(owner, repo string, opts ghAPI.ClientOptions) (*Client, error) {
	rest, err := ghAPI.NewRESTClient(withHeaders(opts, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client (is gh authenticated?): %w", err)
	}
	raw, err := ghAPI.NewRESTClient(withHeaders(opts, map[string]string{"Accept": rawMediaType}))
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client (is gh authenticated?): %w", err)
	}
	return &Client{rest: rest, raw: raw, owner: owner, repo: repo}, nil
}

// withHeaders gives each REST client its own header map; go-gh fills
// defaults into the map it is handed.
func withHeaders(opts ghAPI.ClientOptions, extra map[string]string) ghAPI.ClientOptions {
	headers := make(map[string]string, len(opts.Headers)+len(extra))
	for k, v := range opts.Headers {
		headers[k] = v
	}
	for k, v := range extra {
		headers[k] = v
	}
	opts.Headers = headers
	return opts
}

func (c *Client) repoPath(path string) string {
	return fmt.Sprintf("repos/%s/%s/%s", c.owner, c.repo, path)
}

// DefaultBranch returns the repository's default branch name.
func (c *Client) DefaultBranch(ctx context.Context) (string, error) {
	var repo struct {
		DefaultBranch string `json:"default_branch"`
	}
	path := fmt.Sprintf("repos/%s/%s", c.owner, c.repo)
	if err := c.rest.DoWithContext(ctx, http.MethodGet, path, nil, &repo); err != nil {
		return "", fmt.Errorf("get repository %s/%s: %w", c.owner, c.repo, notFound(err))
	}
	if repo.DefaultBranch == "" {
		return "", fmt.Errorf("repository %s/%s has no default branch", c.owner, c.repo)
	}
	return repo.DefaultBranch, nil
}

// FileContents downloads one file at ref. An empty ref means the default
// branch, as GitHub resolves it.
func (c *Client) FileContents(ctx context.Context, path, ref string) (string, error) {
	apiPath := c.repoPath("contents/" + escapePath(path))
	if ref != "" {
		apiPath += "?ref=" + url.QueryEscape(ref)
	}

	resp, err := c.raw.RequestWithContext(ctx, http.MethodGet, apiPath, nil)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", path, notFound(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func escapePath(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// notFound lets callers test a 404 with errors.Is(err, fs.ErrNotExist),
// the same way they would for a local file.
func notFound(err error) error {
	var httpErr *ghAPI.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", fs.ErrNotExist, err)
	}
	return err
}
