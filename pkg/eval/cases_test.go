package eval

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCaseFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cases.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write case file: %v", err)
	}
	return path
}

func TestLoadTestCases(t *testing.T) {
	path := writeCaseFile(t, `{
  "test_cases": [
    {
      "id": "cost_rental_basic",
      "question": "What is Cost Rental housing?",
      "ground_truth": "Cost Rental provides homes at rents covering only build and management costs.",
      "category": "schemes"
    },
    {
      "id": "htb_amount",
      "question": "How much is Help to Buy worth?",
      "ground_truth": "Up to 30,000 euro."
    }
  ]
}`)

	cases, err := LoadTestCases(path)
	if err != nil {
		t.Fatalf("LoadTestCases() error = %v", err)
	}

	if len(cases) != 2 {
		t.Fatalf("got %d cases, want 2", len(cases))
	}
	if cases[0].ID != "cost_rental_basic" {
		t.Errorf("cases[0].ID = %q, want %q", cases[0].ID, "cost_rental_basic")
	}
	if cases[0].Category != "schemes" {
		t.Errorf("cases[0].Category = %q, want %q", cases[0].Category, "schemes")
	}
	if cases[1].GroundTruth != "Up to 30,000 euro." {
		t.Errorf("cases[1].GroundTruth = %q", cases[1].GroundTruth)
	}
}

func TestLoadTestCases_MissingFile(t *testing.T) {
	_, err := LoadTestCases(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Error("LoadTestCases() of a missing file succeeded, want error")
	}
}

func TestLoadTestCases_MalformedJSON(t *testing.T) {
	path := writeCaseFile(t, "{not json")
	if _, err := LoadTestCases(path); err == nil {
		t.Error("LoadTestCases() of malformed JSON succeeded, want error")
	}
}

func TestLoadTestCases_Empty(t *testing.T) {
	path := writeCaseFile(t, `{"test_cases": []}`)

	_, err := LoadTestCases(path)
	if err == nil {
		t.Fatal("LoadTestCases() of an empty file succeeded, want error")
	}
	if !strings.Contains(err.Error(), "no test cases found") {
		t.Errorf("error = %v, want no-cases message", err)
	}
}
