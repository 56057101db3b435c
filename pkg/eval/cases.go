// Package eval scores GraphRAG search responses against ground-truth
// answers. Each test case is queried through a Searcher and graded on
// factual accuracy, lexical relevance, and BLEU similarity.
package eval

import (
	"encoding/json"
	"fmt"
	"os"
)

// TestCase pairs a question with the answer a correct system should
// produce.
type TestCase struct {
	ID          string `json:"id"`
	Question    string `json:"question"`
	GroundTruth string `json:"ground_truth"`
	Category    string `json:"category,omitempty"`
}

type caseFile struct {
	TestCases []TestCase `json:"test_cases"`
}

// LoadTestCases reads a test case file of the form
// {"test_cases": [{"id", "question", "ground_truth"}, ...]}.
func LoadTestCases(path string) ([]TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test cases: %w", err)
	}

	var parsed caseFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse test cases %s: %w", path, err)
	}
	if len(parsed.TestCases) == 0 {
		return nil, fmt.Errorf("no test cases found in %s", path)
	}
	return parsed.TestCases, nil
}
