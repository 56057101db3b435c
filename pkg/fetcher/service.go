package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ServiceSource fetches pages through a managed scraping service that
// returns distilled markdown alongside raw HTML.
type ServiceSource struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

// NewServiceSource builds a source that posts scrape requests to
// endpoint, authenticating with apiKey when set.
func NewServiceSource(endpoint, apiKey string) *ServiceSource {
	return &ServiceSource{
		client:   &http.Client{Timeout: 60 * time.Second},
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

func (s *ServiceSource) Name() string { return "service" }

// serviceResponse covers the response shapes the service is known to
// produce: flat {markdown, html} and wrapped {success, data: {...}}.
// normalize flattens both into Content at this single boundary.
type serviceResponse struct {
	Success  *bool           `json:"success,omitempty"`
	Error    string          `json:"error,omitempty"`
	Markdown string          `json:"markdown"`
	HTML     string          `json:"html"`
	Data     *servicePayload `json:"data,omitempty"`
}

type servicePayload struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

func (r *serviceResponse) normalize() *Content {
	if r.Data != nil && (r.Data.Markdown != "" || r.Data.HTML != "") {
		return &Content{HTML: r.Data.HTML, Markdown: r.Data.Markdown}
	}
	return &Content{HTML: r.HTML, Markdown: r.Markdown}
}

func (s *ServiceSource) Fetch(ctx context.Context, pageURL string) (*Content, error) {
	payload, err := json.Marshal(map[string]any{
		"url":     pageURL,
		"formats": []string{"markdown", "html"},
	})
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	var decoded serviceResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &FetchError{URL: pageURL, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if decoded.Success != nil && !*decoded.Success {
		msg := decoded.Error
		if msg == "" {
			msg = "service reported failure"
		}
		return nil, &FetchError{URL: pageURL, Err: errors.New(msg)}
	}

	content := decoded.normalize()
	content.Via = s.Name()
	return content, nil
}
