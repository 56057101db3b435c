package models

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.OutputDir != "graphrag_input" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "graphrag_input")
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.GraphRAG.CommunityLevel != 2 {
		t.Errorf("CommunityLevel = %d, want 2", cfg.GraphRAG.CommunityLevel)
	}
	if cfg.GraphRAG.ResponseType != "Multiple Paragraphs" {
		t.Errorf("ResponseType = %q, want %q", cfg.GraphRAG.ResponseType, "Multiple Paragraphs")
	}
	if cfg.GraphRAG.TimeoutSeconds != 120 {
		t.Errorf("TimeoutSeconds = %d, want 120", cfg.GraphRAG.TimeoutSeconds)
	}
	if cfg.Scrape.UserAgent == "" {
		t.Error("UserAgent is empty")
	}
}

func TestDefaultTableTuning(t *testing.T) {
	tuning := DefaultTableTuning()

	if tuning.ContextDepth != 5 {
		t.Errorf("ContextDepth = %d, want 5", tuning.ContextDepth)
	}
	if tuning.MinContextChars != 10 {
		t.Errorf("MinContextChars = %d, want 10", tuning.MinContextChars)
	}
	if tuning.NarrativeRowLimit != 10 {
		t.Errorf("NarrativeRowLimit = %d, want 10", tuning.NarrativeRowLimit)
	}
	if tuning.RenderRowLimit != 20 {
		t.Errorf("RenderRowLimit = %d, want 20", tuning.RenderRowLimit)
	}
}

func TestLoadConfig_FileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `output_dir: custom_output
workers: 8
tables:
  context_depth: 3
  min_context_chars: 10
  max_category_values: 5
  min_category_rows: 3
  category_samples: 3
  example_fields: 3
  narrative_row_limit: 10
  render_row_limit: 20
graphrag:
  base_url: http://localhost:8000
  community_level: 1
  response_type: Multiple Paragraphs
  timeout_seconds: 120
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.OutputDir != "custom_output" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "custom_output")
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.Tables.ContextDepth != 3 {
		t.Errorf("Tables.ContextDepth = %d, want 3", cfg.Tables.ContextDepth)
	}
	if cfg.GraphRAG.BaseURL != "http://localhost:8000" {
		t.Errorf("GraphRAG.BaseURL = %q, want %q", cfg.GraphRAG.BaseURL, "http://localhost:8000")
	}
	if cfg.GraphRAG.CommunityLevel != 1 {
		t.Errorf("GraphRAG.CommunityLevel = %d, want 1", cfg.GraphRAG.CommunityLevel)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("workers: 2\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
	if cfg.OutputDir != "graphrag_input" {
		t.Errorf("OutputDir = %q, want default kept", cfg.OutputDir)
	}
	if cfg.GraphRAG.CommunityLevel != 2 {
		t.Errorf("CommunityLevel = %d, want default kept", cfg.GraphRAG.CommunityLevel)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadConfig() of a missing file succeeded, want error")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SCRAPE_SERVICE_URL", "https://scrape.example.com/v1")
	t.Setenv("SCRAPE_API_KEY", "scrape-key")
	t.Setenv("GRAPHRAG_BASE_URL", "http://rag.example.com")
	t.Setenv("GRAPHRAG_API_KEY", "rag-key")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Scrape.ServiceURL != "https://scrape.example.com/v1" {
		t.Errorf("Scrape.ServiceURL = %q", cfg.Scrape.ServiceURL)
	}
	if cfg.Scrape.APIKey != "scrape-key" {
		t.Errorf("Scrape.APIKey = %q", cfg.Scrape.APIKey)
	}
	if cfg.GraphRAG.BaseURL != "http://rag.example.com" {
		t.Errorf("GraphRAG.BaseURL = %q", cfg.GraphRAG.BaseURL)
	}
	if cfg.GraphRAG.APIKey != "rag-key" {
		t.Errorf("GraphRAG.APIKey = %q", cfg.GraphRAG.APIKey)
	}
}

func TestLoadConfig_LegacyAPIKeyFallback(t *testing.T) {
	t.Setenv("SCRAPE_API_KEY", "")
	t.Setenv("FIRECRAWL_API_KEY", "legacy-key")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Scrape.APIKey != "legacy-key" {
		t.Errorf("Scrape.APIKey = %q, want the legacy variable honored", cfg.Scrape.APIKey)
	}
}

func TestGraphRAGConfig_Timeout(t *testing.T) {
	cfg := GraphRAGConfig{TimeoutSeconds: 90}
	if got := cfg.Timeout().Seconds(); got != 90 {
		t.Errorf("Timeout() = %v seconds, want 90", got)
	}
}
