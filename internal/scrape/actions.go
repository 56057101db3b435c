// Package scrape implements the scrape command: it fans URLs out to a
// worker pool, turns each page into a GraphRAG-ready text document
// plus table sidecars, and records the run as a session.
package scrape

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mhealy/graphrag-prep/internal/common"
	"github.com/mhealy/graphrag-prep/pkg/artifacts"
	"github.com/mhealy/graphrag-prep/pkg/fetcher"
	"github.com/mhealy/graphrag-prep/pkg/session"
	"github.com/mhealy/graphrag-prep/pkg/textstats"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	var maxAge time.Duration
	var err error
	if c.Bool("force") {
		maxAge = 0
	} else {
		maxAge, err = time.ParseDuration(c.String("max-age"))
		if err != nil {
			logger.Error("invalid max-age duration", "error", err)
			os.Exit(2)
		}
	}

	cfg, err := common.ResolveConfig(c.String("config"), c.IsSet("config"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	var urls []string
	if c.IsSet("urls") {
		urls = strings.Split(c.String("urls"), ",")
	}
	if c.IsSet("url-file") {
		fromFile, err := common.ReadURLFile(c.String("url-file"))
		if err != nil {
			logger.Error("failed to read URL file", "error", err)
			os.Exit(2)
		}
		urls = append(urls, fromFile...)
	}

	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No URLs provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  graphrag-prep scrape --urls "https://example.com,https://example.org"`)
		fmt.Fprintln(os.Stderr, `  graphrag-prep scrape --url-file pages.txt`)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: graphrag-prep scrape --help")
		os.Exit(1)
	}

	// Sanitize and validate all URLs before processing (fail fast)
	sanitizedURLs, invalidURLs := common.SanitizeAndValidateURLs(urls)
	if len(invalidURLs) > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d URL(s) are malformed (even after cleanup):\n", len(invalidURLs))
		for _, badURL := range invalidURLs {
			fmt.Fprintf(os.Stderr, "  - %s\n", badURL)
		}
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Note: URLs are auto-cleaned (whitespace trimmed, trailing punctuation removed, markdown links extracted)")
		fmt.Fprintln(os.Stderr, "      Spaces in URLs must be pre-encoded as %20.")
		os.Exit(1)
	}

	manager, err := artifacts.NewManager(cfg.OutputDir, maxAge)
	if err != nil {
		logger.Error("failed to initialize artifact manager", "error", err)
		os.Exit(2)
	}

	var sources []fetcher.Source
	if cfg.Scrape.ServiceURL != "" {
		sources = append(sources, fetcher.NewServiceSource(cfg.Scrape.ServiceURL, cfg.Scrape.APIKey))
	}
	sources = append(sources, fetcher.NewHTTPSource(cfg.Scrape.UserAgent))
	source := fetcher.NewChain(logger, sources...)

	allResults, finalWordCounts, runErr := run(c.Context, logger, cfg, manager, source, sanitizedURLs)

	stats := Stats{
		TotalURLs:        len(sanitizedURLs),
		TotalTimeSeconds: time.Since(startTime).Seconds(),
		TopKeywords:      textstats.TopKeywords(finalWordCounts, 25),
	}

	outputs := make([]ResultOutput, 0, len(allResults))
	sessionResults := make([]session.URLResult, 0, len(allResults))
	for _, r := range allResults {
		out := ResultOutput{
			URL:           r.URL,
			DocID:         r.DocID,
			FilePath:      r.DocPath,
			Source:        r.Source,
			Tables:        r.Tables,
			ContentLength: r.ContentLength,
			Language:      r.Language,
			SizeBytes:     r.FileSizeBytes,
		}
		switch {
		case r.Error != nil:
			stats.Failed++
			out.Status = "failed"
			out.Error = r.Error.Error()
			out.ErrorType = r.ErrorType
		case r.Skipped:
			stats.Skipped++
			out.Status = "skipped"
		default:
			stats.Successful++
			stats.TotalTables += r.Tables
			out.Status = "success"
		}
		outputs = append(outputs, out)

		sessionResults = append(sessionResults, session.URLResult{
			URL:         r.URL,
			DocID:       r.DocID,
			DocPath:     r.DocPath,
			Status:      out.Status,
			Source:      r.Source,
			Tables:      r.Tables,
			SizeBytes:   r.FileSizeBytes,
			ContentHash: r.ContentHash,
			Error:       out.Error,
			ErrorType:   out.ErrorType,
		})
	}

	sessionID := session.GenerateID(sanitizedURLs)
	record := &session.Record{
		SessionID:      sessionID,
		Created:        startTime,
		OutputDir:      cfg.OutputDir,
		URLCount:       len(sanitizedURLs),
		Success:        stats.Successful,
		Failed:         stats.Failed,
		Skipped:        stats.Skipped,
		ElapsedSeconds: stats.TotalTimeSeconds,
		TopKeywords:    stats.TopKeywords,
		Results:        sessionResults,
	}
	if err := session.Save(manager.SessionPath(sessionID), record); err != nil {
		logger.Warn("Failed to write session record", "error", err)
	}
	info := session.Info{
		SessionID:   sessionID,
		Created:     startTime,
		URLCount:    len(sanitizedURLs),
		Success:     stats.Successful,
		Failed:      stats.Failed,
		Skipped:     stats.Skipped,
		URLsPreview: session.Preview(sanitizedURLs, 3),
	}
	if err := session.UpdateIndex(manager.SessionIndexPath(), info); err != nil {
		logger.Warn("Failed to update session index", "error", err)
	}

	finalOutput := &RunOutput{SessionID: sessionID, Results: outputs, Stats: stats}
	if runErr != nil {
		finalOutput.Status = "partial_failure"
	} else {
		finalOutput.Status = "success"
	}

	var outputData []byte
	var marshalErr error
	if strings.ToLower(c.String("format")) == "yaml" {
		outputData, marshalErr = yaml.Marshal(finalOutput)
	} else {
		outputData, marshalErr = json.MarshalIndent(finalOutput, "", "  ")
	}
	if marshalErr != nil {
		logger.Error("failed to marshal final output", "error", marshalErr)
		os.Exit(2)
	}
	fmt.Println(string(outputData))

	if stats.Failed == stats.TotalURLs {
		os.Exit(2)
	}
	if stats.Failed > 0 {
		os.Exit(1)
	}

	return nil
}
