package source

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/goliatone/go-folio/internal/blog"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

const defaultHTTPTimeout = 10 * time.Second

// StatusError carries the status code of a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// HTTPSource fetches site artifacts over HTTP relative to BaseURL.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

var _ interfaces.Source = (*HTTPSource)(nil)

// NewHTTPSource returns a source rooted at baseURL. A nil client gets a
// client with a 10s timeout.
func NewHTTPSource(baseURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &HTTPSource{BaseURL: baseURL, Client: client}
}

// Fetch performs a single GET. Transport errors and non-2xx responses are
// reported as blog.ErrFetchFailure.
func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	target, err := s.resolve(name)
	if err != nil {
		return nil, blog.FetchFailure(err, "resolve "+name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, blog.FetchFailure(err, "build request for "+name)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, blog.FetchFailure(err, "fetch "+name)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, blog.FetchFailure(&StatusError{URL: target, StatusCode: resp.StatusCode}, "fetch "+name)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, blog.FetchFailure(err, "read "+name)
	}
	return data, nil
}

func (s *HTTPSource) resolve(name string) (string, error) {
	base, err := url.Parse(s.BaseURL)
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	ref, err := url.Parse(strings.TrimPrefix(name, "/"))
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

// DirSource reads site artifacts from a filesystem tree.
type DirSource struct {
	FS fs.FS
}

var _ interfaces.Source = DirSource{}

// NewDirSource returns a source reading from filesystem.
func NewDirSource(filesystem fs.FS) DirSource {
	return DirSource{FS: filesystem}
}

// Fetch reads name from the tree. Missing files are reported as
// blog.ErrFetchFailure wrapping fs.ErrNotExist.
func (s DirSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, blog.FetchFailure(err, "fetch "+name)
	}
	clean := path.Clean(strings.TrimPrefix(name, "/"))
	data, err := fs.ReadFile(s.FS, clean)
	if err != nil {
		return nil, blog.FetchFailure(err, "fetch "+name)
	}
	return data, nil
}
