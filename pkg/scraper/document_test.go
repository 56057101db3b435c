package scraper

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mhealy/graphrag-prep/models"
)

func TestDocumentID(t *testing.T) {
	id := DocumentID("https://example.com/page")

	if len(id) != 12 {
		t.Errorf("DocumentID length = %d, want 12", len(id))
	}
	for _, r := range id {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Errorf("DocumentID contains non-hex rune %q", r)
		}
	}

	if again := DocumentID("https://example.com/page"); again != id {
		t.Errorf("DocumentID not stable: %q vs %q", id, again)
	}
	if other := DocumentID("https://example.com/other"); other == id {
		t.Error("different URLs produced the same document ID")
	}
}

func TestBuildDocument(t *testing.T) {
	e := newTestExtractor(t)

	result := &models.PageResult{
		MainContent: "Prose about housing schemes.",
		Tables: []models.TableRecord{
			{
				Index:       0,
				ColumnNames: []string{"Name", "Age"},
				Rows: []map[string]string{
					{"Name": "Alice", "Age": "30"},
				},
				Context: "Section: People",
				Summary: "Table with 1 rows and 2 columns",
			},
		},
		Metadata: models.PageMetadata{
			URL:         "https://example.com/page",
			Title:       "Example Page",
			Description: "A page about people",
		},
	}

	doc := e.BuildDocument(result)

	if !strings.HasPrefix(doc, "# Example Page\nSource: https://example.com/page\nDescription: A page about people\n") {
		t.Errorf("document header wrong:\n%s", doc)
	}
	for _, want := range []string{
		"## Main Content",
		"Prose about housing schemes.",
		"## Structured Data (Tables)",
		"### Table 1: Section: People",
		"**Summary**: Table with 1 rows and 2 columns",
		"**Table Data Analysis:**",
		"Entry 1: Name is Alice, Age is 30",
		"**Formatted Table:**",
		"| Name | Age |",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestBuildDocument_NoDescription(t *testing.T) {
	e := newTestExtractor(t)

	result := &models.PageResult{
		Metadata: models.PageMetadata{URL: "https://example.com", Title: "Bare"},
	}

	doc := e.BuildDocument(result)
	if strings.Contains(doc, "Description:") {
		t.Errorf("document has a Description line without a description:\n%s", doc)
	}
	if strings.Contains(doc, "## Main Content") {
		t.Errorf("document has a content section without content:\n%s", doc)
	}
	if strings.Contains(doc, "## Structured Data") {
		t.Errorf("document has a tables section without tables:\n%s", doc)
	}
}

func TestBuildDocument_LargeTableNotRendered(t *testing.T) {
	e := newTestExtractor(t)

	rows := make([]map[string]string, 21)
	for i := range rows {
		rows[i] = map[string]string{"N": fmt.Sprintf("%d", i)}
	}
	result := &models.PageResult{
		Tables: []models.TableRecord{
			{ColumnNames: []string{"N"}, Rows: rows, Context: "No context found", Summary: "big"},
		},
		Metadata: models.PageMetadata{URL: "https://example.com", Title: "Big"},
	}

	doc := e.BuildDocument(result)
	if !strings.Contains(doc, "Large table (21 rows) - see summary above") {
		t.Errorf("document missing large-table placeholder:\n%s", doc)
	}
	if strings.Contains(doc, "|---|") {
		t.Errorf("large table was rendered as markdown:\n%s", doc)
	}
}

func TestRenderMarkdownTable(t *testing.T) {
	rec := models.TableRecord{
		ColumnNames: []string{"Name", "Age"},
		Rows: []map[string]string{
			{"Name": "Alice", "Age": "30"},
			{"Name": "Bob", "Age": "25"},
		},
	}

	got := renderMarkdownTable(&rec)
	want := "| Name | Age |\n" +
		"|---|---|\n" +
		"| Alice | 30 |\n" +
		"| Bob | 25 |"
	if got != want {
		t.Errorf("renderMarkdownTable() = %q, want %q", got, want)
	}
}

func TestRenderMarkdownTable_NewlinesInCells(t *testing.T) {
	rec := models.TableRecord{
		ColumnNames: []string{"Note"},
		Rows: []map[string]string{
			{"Note": "line one\nline two"},
		},
	}

	got := renderMarkdownTable(&rec)
	if strings.Contains(got, "one\nline") {
		t.Errorf("cell newline leaked into output: %q", got)
	}
	if !strings.Contains(got, "| line one line two |") {
		t.Errorf("renderMarkdownTable() = %q, want newline folded to space", got)
	}
}

func TestRenderMarkdownTable_MissingCells(t *testing.T) {
	rec := models.TableRecord{
		ColumnNames: []string{"A", "B"},
		Rows: []map[string]string{
			{"A": "1"},
		},
	}

	got := renderMarkdownTable(&rec)
	if !strings.Contains(got, "| 1 |  |") {
		t.Errorf("renderMarkdownTable() = %q, want empty cell for missing value", got)
	}
}
