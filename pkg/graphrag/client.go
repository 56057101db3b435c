// Package graphrag queries a GraphRAG knowledge-base service built
// from scraped document output. It wraps the service's search
// endpoints and formats responses for terminal display.
package graphrag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mhealy/graphrag-prep/models"
)

// Mode selects the search strategy.
//
// Global analyzes the entire knowledge base for broad insights, Local
// searches specific documents and passages, Basic does direct text
// matching.
type Mode string

const (
	ModeGlobal Mode = "global"
	ModeLocal  Mode = "local"
	ModeBasic  Mode = "basic"
)

// ParseMode maps a user-supplied mode name onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "global", "":
		return ModeGlobal, nil
	case "local":
		return ModeLocal, nil
	case "basic":
		return ModeBasic, nil
	}
	return "", fmt.Errorf("unknown search mode %q (expected global, local, or basic)", s)
}

// Label returns the mode's display name.
func (m Mode) Label() string {
	switch m {
	case ModeLocal:
		return "Local Search"
	case ModeBasic:
		return "Basic Search"
	default:
		return "Global Search"
	}
}

// Result holds a search answer and the context the service consulted
// to produce it.
type Result struct {
	Response string
	Context  string
}

// Searcher is the query surface the CLI and the evaluation harness
// share.
type Searcher interface {
	Search(ctx context.Context, query string, mode Mode) (*Result, error)
}

// Client talks to a GraphRAG search service over HTTP.
type Client struct {
	endpoint       string
	apiKey         string
	communityLevel int
	responseType   string
	timeout        time.Duration
	client         *http.Client
	log            *slog.Logger
}

// NewClient builds a search client from config. A nil logger falls
// back to slog.Default().
func NewClient(cfg models.GraphRAGConfig, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		endpoint:       strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		communityLevel: cfg.CommunityLevel,
		responseType:   cfg.ResponseType,
		timeout:        cfg.Timeout(),
		client:         &http.Client{},
		log:            log,
	}
}

type searchRequest struct {
	Query          string `json:"query"`
	CommunityLevel int    `json:"community_level"`
	ResponseType   string `json:"response_type"`
}

type searchResponse struct {
	Response string          `json:"response"`
	Context  json.RawMessage `json:"context_data"`
	Error    string          `json:"error,omitempty"`
}

// Search posts the query to the service's endpoint for the given mode.
// The first query against a freshly built index can be slow, so the
// per-search timeout is generous.
func (c *Client) Search(ctx context.Context, query string, mode Mode) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(searchRequest{
		Query:          query,
		CommunityLevel: c.communityLevel,
		ResponseType:   c.responseType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	url := fmt.Sprintf("%s/search/%s", c.endpoint, mode)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.log.Info("Starting search", "mode", mode.Label(), "query", query)
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("search timed out after %s", c.timeout)
		}
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("search returned status code %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	if decoded.Error != "" {
		return nil, fmt.Errorf("search failed: %s", decoded.Error)
	}

	c.log.Info("Search completed", "mode", mode.Label(), "duration", time.Since(start).Round(time.Millisecond))

	return &Result{
		Response: decoded.Response,
		Context:  contextString(decoded.Context),
	}, nil
}

// contextString flattens the service's context_data field, which may
// be a JSON string or any structured value.
func contextString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
