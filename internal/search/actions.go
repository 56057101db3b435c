// Package search implements the search command, querying a GraphRAG
// service built from scraped output and printing a formatted answer.
package search

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mhealy/graphrag-prep/internal/common"
	"github.com/mhealy/graphrag-prep/pkg/graphrag"
	"github.com/urfave/cli/v2"
)

func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := common.ResolveConfig(c.String("config"), c.IsSet("config"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		query = strings.TrimSpace(c.String("query"))
	}
	if query == "" {
		fmt.Fprintln(os.Stderr, "Error: No query provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  graphrag-prep search "What are the income limits for Cost Rental homes?"`)
		fmt.Fprintln(os.Stderr, `  graphrag-prep search --mode local "Find information about STAR investment scheme"`)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: graphrag-prep search --help")
		os.Exit(1)
	}

	mode, err := graphrag.ParseMode(c.String("mode"))
	if err != nil {
		logger.Error("invalid search mode", "error", err)
		os.Exit(2)
	}

	if cfg.GraphRAG.BaseURL == "" {
		fmt.Fprintln(os.Stderr, "Error: No GraphRAG service configured")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Set GRAPHRAG_BASE_URL (or graphrag.base_url in config.yaml) to the search service address.")
		os.Exit(1)
	}

	client := graphrag.NewClient(cfg.GraphRAG, logger)
	result, err := client.Search(c.Context, query, mode)
	if err != nil {
		logger.Error("search failed", "mode", mode.Label(), "error", err)
		os.Exit(1)
	}

	terms := cfg.GraphRAG.HighlightTerms
	if len(terms) == 0 {
		terms = graphrag.DefaultHighlightTerms
	}

	fmt.Println(graphrag.FormatResponse(result.Response, terms))

	if c.Bool("show-context") {
		fmt.Println("\n--- Context Information ---")
		fmt.Println(graphrag.FormatContext(result.Context))
	}

	return nil
}
