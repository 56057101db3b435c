// Package evalcmd implements the eval command: it replays a suite of
// question/ground-truth test cases against the GraphRAG service and
// reports scored results.
package evalcmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mhealy/graphrag-prep/internal/common"
	"github.com/mhealy/graphrag-prep/pkg/eval"
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

	cases, err := eval.LoadTestCases(c.String("cases"))
	if err != nil {
		logger.Error("failed to load test cases", "error", err)
		os.Exit(2)
	}

	var modes []graphrag.Mode
	for _, raw := range strings.Split(c.String("modes"), ",") {
		mode, err := graphrag.ParseMode(raw)
		if err != nil {
			logger.Error("invalid search mode", "error", err)
			os.Exit(2)
		}
		modes = append(modes, mode)
	}

	if cfg.GraphRAG.BaseURL == "" {
		fmt.Fprintln(os.Stderr, "Error: No GraphRAG service configured")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Set GRAPHRAG_BASE_URL (or graphrag.base_url in config.yaml) to the search service address.")
		os.Exit(1)
	}

	fmt.Println("GraphRAG Evaluation Tool")
	fmt.Println(strings.Repeat("=", 40))

	client := graphrag.NewClient(cfg.GraphRAG, logger)
	runner := eval.NewRunner(client, os.Stdout, logger)

	report, err := runner.Run(c.Context, cases, modes)
	if err != nil {
		logger.Error("evaluation failed", "error", err)
		os.Exit(1)
	}

	eval.PrintSummary(os.Stdout, report)

	path, err := eval.SaveReport(report, c.String("output"))
	if err != nil {
		logger.Error("failed to save evaluation report", "error", err)
		os.Exit(2)
	}
	fmt.Printf("\nResults saved to: %s\n", path)
	fmt.Printf("\nEvaluation complete! Check %s for detailed results.\n", path)

	return nil
}
