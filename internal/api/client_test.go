package api

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	ghAPI "github.com/cli/go-gh/v2/pkg/api"
)

// rewriteTransport sends every request to a local test server.
type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = rt.target.Scheme
	req.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

type fakeGitHub struct {
	mu            sync.Mutex
	files         map[string]string // "ref:path" -> contents
	defaultBranch string
	contentHits   atomic.Int32
	repoHits      atomic.Int32
	lastAccept    atomic.Value
	lastAuth      atomic.Value
	lastRef       atomic.Value
}

func (f *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const repoPrefix = "/repos/octocat/hello-world"
	switch {
	case r.URL.Path == repoPrefix:
		f.repoHits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"full_name":"octocat/hello-world","default_branch":%q}`, f.defaultBranch)
	case strings.HasPrefix(r.URL.Path, repoPrefix+"/contents/"):
		f.contentHits.Add(1)
		f.lastAccept.Store(r.Header.Get("Accept"))
		f.lastAuth.Store(r.Header.Get("Authorization"))
		ref := r.URL.Query().Get("ref")
		f.lastRef.Store(ref)
		path := strings.TrimPrefix(r.URL.Path, repoPrefix+"/contents/")
		if ref == "" {
			ref = f.defaultBranch
		}
		f.mu.Lock()
		body, ok := f.files[ref+":"+path]
		f.mu.Unlock()
		if !ok {
			notFoundJSON(w)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, body)
	case r.URL.Path == "/repos/octocat/broken/contents/a.txt":
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"message":"Server Error"}`)
	default:
		notFoundJSON(w)
	}
}

func (f *fakeGitHub) setFile(ref, path, contents string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[ref+":"+path] = contents
}

func notFoundJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprint(w, `{"message":"Not Found"}`)
}

func newFakeGitHub() *fakeGitHub {
	return &fakeGitHub{
		defaultBranch: "main",
		files: map[string]string{
			"main:docs/poem.txt":    "Rust:\nsafe, fast, productive.\nPick three.\n",
			"v1:docs/poem.txt":      "old poem\n",
			"main:docs/my file.txt": "spaced\n",
		},
	}
}

func newTestClient(t *testing.T, handler http.Handler, owner, repo string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	target, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	c, err := NewClientWithOptions(owner, repo, ghAPI.ClientOptions{
		Host:         "github.com",
		AuthToken:    "test-token",
		Transport:    rewriteTransport{target: target},
		LogIgnoreEnv: true,
	})
	if err != nil {
		t.Fatalf("NewClientWithOptions: %v", err)
	}
	return c
}

func TestRepoPath(t *testing.T) {
	c := &Client{owner: "octocat", repo: "hello-world"}
	got := c.repoPath("contents/README.md")
	want := "repos/octocat/hello-world/contents/README.md"
	if got != want {
		t.Errorf("repoPath() = %q, want %q", got, want)
	}
}

func TestEscapePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"README.md", "README.md"},
		{"/docs/guide.md", "docs/guide.md"},
		{"docs/my file.txt", "docs/my%20file.txt"},
		{"a/b?c/d#e", "a/b%3Fc/d%23e"},
	}
	for _, tt := range tests {
		if got := escapePath(tt.in); got != tt.want {
			t.Errorf("escapePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFileContents(t *testing.T) {
	gh := newFakeGitHub()
	c := newTestClient(t, gh, "octocat", "hello-world")

	got, err := c.FileContents(context.Background(), "docs/poem.txt", "v1")
	if err != nil {
		t.Fatalf("FileContents() error = %v", err)
	}
	if got != "old poem\n" {
		t.Errorf("FileContents() = %q, want %q", got, "old poem\n")
	}
	if accept := gh.lastAccept.Load(); accept != rawMediaType {
		t.Errorf("Accept = %v, want %s", accept, rawMediaType)
	}
	if auth, _ := gh.lastAuth.Load().(string); !strings.Contains(auth, "test-token") {
		t.Errorf("Authorization = %q, want the configured token", auth)
	}
	if ref := gh.lastRef.Load(); ref != "v1" {
		t.Errorf("ref = %v, want v1", ref)
	}
}

func TestFileContentsEscapedPath(t *testing.T) {
	c := newTestClient(t, newFakeGitHub(), "octocat", "hello-world")

	got, err := c.FileContents(context.Background(), "docs/my file.txt", "")
	if err != nil {
		t.Fatalf("FileContents() error = %v", err)
	}
	if got != "spaced\n" {
		t.Errorf("FileContents() = %q", got)
	}
}

func TestFileContentsNotFound(t *testing.T) {
	c := newTestClient(t, newFakeGitHub(), "octocat", "hello-world")

	_, err := c.FileContents(context.Background(), "missing.txt", "main")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("FileContents() error = %v, want fs.ErrNotExist", err)
	}
	var httpErr *ghAPI.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusNotFound {
		t.Errorf("error %v should carry the 404 HTTPError", err)
	}
}

func TestFileContentsServerError(t *testing.T) {
	c := newTestClient(t, newFakeGitHub(), "octocat", "broken")

	_, err := c.FileContents(context.Background(), "a.txt", "main")
	if err == nil {
		t.Fatal("FileContents() should fail on a 500")
	}
	if errors.Is(err, fs.ErrNotExist) {
		t.Errorf("a 500 should not look like a missing file: %v", err)
	}
}

func TestDefaultBranch(t *testing.T) {
	gh := newFakeGitHub()
	gh.defaultBranch = "trunk"
	c := newTestClient(t, gh, "octocat", "hello-world")

	got, err := c.DefaultBranch(context.Background())
	if err != nil {
		t.Fatalf("DefaultBranch() error = %v", err)
	}
	if got != "trunk" {
		t.Errorf("DefaultBranch() = %q, want trunk", got)
	}
}

func TestDefaultBranchUnknownRepo(t *testing.T) {
	c := newTestClient(t, newFakeGitHub(), "octocat", "nope")

	if _, err := c.DefaultBranch(context.Background()); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("DefaultBranch() error = %v, want fs.ErrNotExist", err)
	}
}
