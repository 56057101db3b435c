package main

import (
	"fmt"
	"log"
	"os"

	"github.com/mhealy/graphrag-prep/internal/evalcmd"
	"github.com/mhealy/graphrag-prep/internal/scrape"
	"github.com/mhealy/graphrag-prep/internal/search"
	"github.com/mhealy/graphrag-prep/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "graphrag-prep",
		Usage: "Scrape table-heavy pages into GraphRAG-ready flat files, then query and evaluate the result",
		Commands: []*cli.Command{
			{
				Name:   "scrape",
				Usage:  "Fetch pages and write text documents plus table sidecars",
				Action: scrape.Action,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "urls", Usage: "comma-separated list of URLs to scrape"},
					&cli.StringFlag{Name: "url-file", Usage: "file with one URL per line (# comments allowed)"},
					&cli.StringFlag{Name: "output-dir", Usage: "directory for documents, table sidecars, and sessions"},
					&cli.IntFlag{Name: "workers", Usage: "number of concurrent scrape workers"},
					&cli.StringFlag{Name: "max-age", Value: "24h", Usage: "skip documents whose artifacts are younger than this"},
					&cli.BoolFlag{Name: "force", Usage: "rescrape everything regardless of artifact age"},
					&cli.StringFlag{Name: "format", Value: "json", Usage: "run report format: json or yaml"},
					&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to config file"},
					&cli.BoolFlag{Name: "quiet", Usage: "log errors only"},
				},
			},
			{
				Name:      "search",
				Usage:     "Query the GraphRAG service built from scraped output",
				ArgsUsage: `"<question>"`,
				Action:    search.Action,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "query", Usage: "question to ask (alternative to the positional argument)"},
					&cli.StringFlag{Name: "mode", Value: "global", Usage: "search mode: global, local, or basic"},
					&cli.BoolFlag{Name: "show-context", Usage: "print the context the answer was built from"},
					&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to config file"},
					&cli.BoolFlag{Name: "quiet", Usage: "log errors only"},
				},
			},
			{
				Name:   "eval",
				Usage:  "Score search responses against ground-truth test cases",
				Action: evalcmd.Action,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "cases", Value: "tests/test_cases_simple.json", Usage: "test case file"},
					&cli.StringFlag{Name: "modes", Value: "global", Usage: "comma-separated search modes to evaluate"},
					&cli.StringFlag{Name: "output", Usage: "report path (default: evaluation_results_{timestamp}.json)"},
					&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to config file"},
					&cli.BoolFlag{Name: "quiet", Usage: "log errors only"},
				},
			},
			{
				Name:  "quickstart",
				Usage: "Print a YAML quick-start reference",
				Action: func(c *cli.Context) error {
					fmt.Print(help.QuickstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
