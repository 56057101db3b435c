// Package fetcher retrieves page content, either directly over HTTP or
// through a managed scraping service.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Content is what a source returns for one page. HTML is the raw page
// markup; Markdown is filled only by sources that distill it. Via
// names the source that produced the content.
type Content struct {
	HTML     string
	Markdown string
	Via      string
}

// Source fetches the content of a single page.
type Source interface {
	Fetch(ctx context.Context, url string) (*Content, error)
	Name() string
}

// FetchError reports an unreachable page or a non-2xx response.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// HTTPSource fetches pages with plain GET requests.
type HTTPSource struct {
	client    *http.Client
	userAgent string
}

// NewHTTPSource builds a direct HTTP source. An empty userAgent keeps
// Go's default.
func NewHTTPSource(userAgent string) *HTTPSource {
	return &HTTPSource{
		client:    &http.Client{Timeout: 30 * time.Second},
		userAgent: userAgent,
	}
}

func (s *HTTPSource) Name() string { return "http" }

func (s *HTTPSource) Fetch(ctx context.Context, url string) (*Content, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return &Content{HTML: string(body), Via: s.Name()}, nil
}
