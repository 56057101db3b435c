// Package models defines the shared data structures for scraping,
// table narration, and configuration.
package models

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// TableTuning holds the thresholds that shape table narration. Zero
// values are never used directly; load via DefaultConfig or LoadConfig.
type TableTuning struct {
	ContextDepth      int `yaml:"context_depth"`       // elements walked backward when looking for context
	MinContextChars   int `yaml:"min_context_chars"`   // paragraphs at or below this length are ignored
	MaxCategoryValues int `yaml:"max_category_values"` // max distinct values for a column to count as categorical
	MinCategoryRows   int `yaml:"min_category_rows"`   // rows required before categories are reported
	CategorySamples   int `yaml:"category_samples"`    // sample values listed per categorical column
	ExampleFields     int `yaml:"example_fields"`      // fields shown from the example row
	NarrativeRowLimit int `yaml:"narrative_row_limit"` // rows narrated before the "more entries" trailer
	RenderRowLimit    int `yaml:"render_row_limit"`    // largest table rendered as markdown
}

// DefaultTableTuning returns the stock thresholds.
func DefaultTableTuning() TableTuning {
	return TableTuning{
		ContextDepth:      5,
		MinContextChars:   10,
		MaxCategoryValues: 5,
		MinCategoryRows:   3,
		CategorySamples:   3,
		ExampleFields:     3,
		NarrativeRowLimit: 10,
		RenderRowLimit:    20,
	}
}

// ScrapeConfig configures page fetching.
type ScrapeConfig struct {
	// ServiceURL points at a managed scraping service that returns
	// markdown plus raw HTML. Empty means direct HTTP only.
	ServiceURL string `yaml:"service_url"`
	APIKey     string `yaml:"-"` // SCRAPE_API_KEY (or legacy FIRECRAWL_API_KEY)
	UserAgent  string `yaml:"user_agent"`
}

// GraphRAGConfig configures the retrieval engine client.
type GraphRAGConfig struct {
	BaseURL        string   `yaml:"base_url"`
	APIKey         string   `yaml:"-"` // GRAPHRAG_API_KEY
	CommunityLevel int      `yaml:"community_level"`
	ResponseType   string   `yaml:"response_type"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	HighlightTerms []string `yaml:"highlight_terms,omitempty"` // empty = package defaults
}

// Timeout returns the search timeout as a duration.
func (g GraphRAGConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// Config is the top-level runtime configuration.
type Config struct {
	OutputDir string         `yaml:"output_dir"`
	Workers   int            `yaml:"workers"`
	Scrape    ScrapeConfig   `yaml:"scrape"`
	Tables    TableTuning    `yaml:"tables"`
	GraphRAG  GraphRAGConfig `yaml:"graphrag"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "graphrag_input",
		Workers:   4,
		Scrape: ScrapeConfig{
			UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
		},
		Tables: DefaultTableTuning(),
		GraphRAG: GraphRAGConfig{
			CommunityLevel: 2,
			ResponseType:   "Multiple Paragraphs",
			TimeoutSeconds: 120,
		},
	}
}

// LoadConfig builds the runtime configuration: defaults, then the YAML
// file (when path is non-empty), then environment overrides. A .env
// file in the working directory is loaded first so API keys stay out
// of the YAML.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if v := os.Getenv("SCRAPE_SERVICE_URL"); v != "" {
		cfg.Scrape.ServiceURL = v
	}
	if v := os.Getenv("SCRAPE_API_KEY"); v != "" {
		cfg.Scrape.APIKey = v
	} else if v := os.Getenv("FIRECRAWL_API_KEY"); v != "" {
		cfg.Scrape.APIKey = v
	}
	if v := os.Getenv("GRAPHRAG_BASE_URL"); v != "" {
		cfg.GraphRAG.BaseURL = v
	}
	if v := os.Getenv("GRAPHRAG_API_KEY"); v != "" {
		cfg.GraphRAG.APIKey = v
	}

	return cfg, nil
}
