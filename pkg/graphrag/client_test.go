package graphrag

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mhealy/graphrag-prep/models"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(models.GraphRAGConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		CommunityLevel: 2,
		ResponseType:   "Multiple Paragraphs",
		TimeoutSeconds: 30,
	}, slog.New(slog.DiscardHandler))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"global", ModeGlobal, false},
		{"local", ModeLocal, false},
		{"basic", ModeBasic, false},
		{"GLOBAL", ModeGlobal, false},
		{" local ", ModeLocal, false},
		{"", ModeGlobal, false},
		{"fancy", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestModeLabel(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeGlobal, "Global Search"},
		{ModeLocal, "Local Search"},
		{ModeBasic, "Basic Search"},
	}

	for _, tt := range tests {
		if got := tt.mode.Label(); got != tt.want {
			t.Errorf("%q.Label() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestClient_Search(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"response":     "Cost Rental offers below-market rents.",
			"context_data": "report sections consulted",
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL+"/") // trailing slash must not double up

	result, err := c.Search(context.Background(), "What is Cost Rental?", ModeGlobal)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotPath != "/search/global" {
		t.Errorf("path = %q, want %q", gotPath, "/search/global")
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer test-key")
	}
	if gotReq["query"] != "What is Cost Rental?" {
		t.Errorf("query = %v, want the question", gotReq["query"])
	}
	if gotReq["community_level"] != float64(2) {
		t.Errorf("community_level = %v, want 2", gotReq["community_level"])
	}
	if gotReq["response_type"] != "Multiple Paragraphs" {
		t.Errorf("response_type = %v, want %q", gotReq["response_type"], "Multiple Paragraphs")
	}

	if result.Response != "Cost Rental offers below-market rents." {
		t.Errorf("Response = %q", result.Response)
	}
	if result.Context != "report sections consulted" {
		t.Errorf("Context = %q, want the unwrapped string", result.Context)
	}
}

func TestClient_SearchModePaths(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{"response": "ok"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	for mode, wantPath := range map[Mode]string{
		ModeLocal: "/search/local",
		ModeBasic: "/search/basic",
	} {
		if _, err := c.Search(context.Background(), "q", mode); err != nil {
			t.Fatalf("Search(%s) error = %v", mode, err)
		}
		if gotPath != wantPath {
			t.Errorf("path for %s = %q, want %q", mode, gotPath, wantPath)
		}
	}
}

func TestClient_SearchStructuredContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"response":     "ok",
			"context_data": map[string]any{"reports": []int{1, 2}},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	result, err := c.Search(context.Background(), "q", ModeGlobal)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(result.Context), &parsed); err != nil {
		t.Errorf("Context = %q, want raw JSON for structured data", result.Context)
	}
}

func TestClient_SearchServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"error": "index not built"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Search(context.Background(), "q", ModeGlobal)
	if err == nil {
		t.Fatal("Search() succeeded despite service error")
	}
	if !strings.Contains(err.Error(), "index not built") {
		t.Errorf("error = %v, want the service's message", err)
	}
}

func TestClient_SearchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Search(context.Background(), "q", ModeGlobal)
	if err == nil {
		t.Fatal("Search() of a 500 succeeded, want error")
	}
	if !strings.Contains(err.Error(), "status code 500") {
		t.Errorf("error = %v, want status code in message", err)
	}
}
