package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mhealy/graphrag-prep/pkg/graphrag"
)

// Metrics holds the three scores computed for a single response.
type Metrics struct {
	FactualAccuracy float64 `json:"factual_accuracy"`
	Relevance       float64 `json:"relevance"`
	BLEUScore       float64 `json:"bleu_score"`
}

// CaseResult records one evaluated test case.
type CaseResult struct {
	ID          string  `json:"id"`
	Question    string  `json:"question"`
	GroundTruth string  `json:"ground_truth"`
	Response    string  `json:"response"`
	SearchType  string  `json:"search_type"`
	Metrics     Metrics `json:"metrics"`
	AvgScore    float64 `json:"avg_score"`
}

// Report aggregates a full evaluation run.
type Report struct {
	Timestamp       string       `json:"timestamp"`
	TotalCases      int          `json:"total_cases"`
	SearchTypes     []string     `json:"search_types"`
	AverageMetrics  Metrics      `json:"average_metrics"`
	DetailedResults []CaseResult `json:"detailed_results"`
}

// Runner evaluates test cases through a Searcher and writes progress
// to out.
type Runner struct {
	searcher graphrag.Searcher
	out      io.Writer
	log      *slog.Logger
}

func NewRunner(searcher graphrag.Searcher, out io.Writer, log *slog.Logger) *Runner {
	if out == nil {
		out = io.Discard
	}
	if log == nil {
		log = slog.Default()
	}
	return &Runner{searcher: searcher, out: out, log: log}
}

// Run queries every test case with every search mode and scores the
// responses. Search failures are recorded as error responses and
// scored like any other answer, so one bad query does not abort the
// run.
func (r *Runner) Run(ctx context.Context, cases []TestCase, modes []graphrag.Mode) (*Report, error) {
	if len(cases) == 0 {
		return nil, fmt.Errorf("no test cases to evaluate")
	}
	if len(modes) == 0 {
		modes = []graphrag.Mode{graphrag.ModeGlobal}
	}

	fmt.Fprintf(r.out, "Starting evaluation of %d test cases...\n", len(cases))

	var results []CaseResult
	searchTypes := make([]string, 0, len(modes))
	for _, mode := range modes {
		searchTypes = append(searchTypes, mode.Label())
		fmt.Fprintf(r.out, "\n=== Evaluating with %s ===\n", mode.Label())

		for i, tc := range cases {
			fmt.Fprintf(r.out, "Progress: %d/%d\n", i+1, len(cases))
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results = append(results, r.evaluateCase(ctx, tc, mode))
		}
	}

	var sums Metrics
	for _, res := range results {
		sums.FactualAccuracy += res.Metrics.FactualAccuracy
		sums.Relevance += res.Metrics.Relevance
		sums.BLEUScore += res.Metrics.BLEUScore
	}
	count := float64(len(results))

	return &Report{
		Timestamp:   time.Now().Format(time.RFC3339),
		TotalCases:  len(cases),
		SearchTypes: searchTypes,
		AverageMetrics: Metrics{
			FactualAccuracy: sums.FactualAccuracy / count,
			Relevance:       sums.Relevance / count,
			BLEUScore:       sums.BLEUScore / count,
		},
		DetailedResults: results,
	}, nil
}

func (r *Runner) evaluateCase(ctx context.Context, tc TestCase, mode graphrag.Mode) CaseResult {
	fmt.Fprintf(r.out, "Evaluating: %s\n", tc.ID)

	var response string
	result, err := r.searcher.Search(ctx, tc.Question, mode)
	switch {
	case err != nil:
		r.log.Error("Search failed during evaluation", "id", tc.ID, "error", err)
		response = fmt.Sprintf("Error: %v", err)
	case result.Response == "":
		response = "No response generated"
	default:
		response = result.Response
	}

	metrics := Metrics{
		FactualAccuracy: FactualAccuracy(response, tc.GroundTruth),
		Relevance:       Relevance(response, tc.GroundTruth),
		BLEUScore:       BLEU(response, tc.GroundTruth),
	}

	return CaseResult{
		ID:          tc.ID,
		Question:    tc.Question,
		GroundTruth: tc.GroundTruth,
		Response:    response,
		SearchType:  mode.Label(),
		Metrics:     metrics,
		AvgScore:    (metrics.FactualAccuracy + metrics.Relevance + metrics.BLEUScore) / 3,
	}
}

// SaveReport writes the report as indented JSON. An empty path picks a
// timestamped default filename and the chosen path is returned.
func SaveReport(report *Report, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("evaluation_results_%s.json", time.Now().Format("20060102_150405"))
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	return path, nil
}

// PrintSummary renders averages plus the strongest and weakest cases.
func PrintSummary(w io.Writer, report *Report) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "GRAPHRAG EVALUATION SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Total test cases: %d\n", report.TotalCases)
	fmt.Fprintf(w, "Search methods: %s\n", strings.Join(report.SearchTypes, ", "))
	fmt.Fprintf(w, "Evaluation date: %s\n", report.Timestamp)

	fmt.Fprintln(w, "\nAVERAGE METRICS:")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Factual Accuracy: %.3f\n", report.AverageMetrics.FactualAccuracy)
	fmt.Fprintf(w, "Relevance:        %.3f\n", report.AverageMetrics.Relevance)
	fmt.Fprintf(w, "BLEU Score:       %.3f\n", report.AverageMetrics.BLEUScore)

	if len(report.DetailedResults) == 0 {
		return
	}

	best := make([]CaseResult, len(report.DetailedResults))
	copy(best, report.DetailedResults)
	sort.SliceStable(best, func(i, j int) bool {
		return best[i].AvgScore > best[j].AvgScore
	})

	worst := make([]CaseResult, len(report.DetailedResults))
	copy(worst, report.DetailedResults)
	sort.SliceStable(worst, func(i, j int) bool {
		return worst[i].AvgScore < worst[j].AvgScore
	})

	fmt.Fprintln(w, "\nTOP PERFORMERS (by average score):")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	for i, res := range topN(best, 3) {
		fmt.Fprintf(w, "%d. %s: %.3f\n", i+1, res.ID, res.AvgScore)
		fmt.Fprintf(w, "   Question: %s...\n", clip(res.Question, 80))
	}

	fmt.Fprintln(w, "\nLOWEST PERFORMERS:")
	fmt.Fprintln(w, strings.Repeat("-", 20))
	for i, res := range topN(worst, 3) {
		fmt.Fprintf(w, "%d. %s: %.3f\n", i+1, res.ID, res.AvgScore)
		fmt.Fprintf(w, "   Question: %s...\n", clip(res.Question, 80))
	}
}

func topN(results []CaseResult, n int) []CaseResult {
	if len(results) > n {
		return results[:n]
	}
	return results
}

func clip(s string, limit int) string {
	if runes := []rune(s); len(runes) > limit {
		return string(runes[:limit])
	}
	return s
}
