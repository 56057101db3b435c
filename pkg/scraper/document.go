package scraper

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/mhealy/graphrag-prep/models"
)

// DocumentID derives the stable short identifier for a page URL. The
// same URL always maps to the same 12 hex characters.
func DocumentID(pageURL string) string {
	sum := sha256.Sum256([]byte(pageURL))
	return fmt.Sprintf("%x", sum[:6])
}

// BuildDocument assembles the flat text document for one page: header,
// cleaned prose, then every table as context, summary, narrative, and
// (for small tables) a rendered markdown table.
func (e *Extractor) BuildDocument(result *models.PageResult) string {
	meta := result.Metadata
	parts := []string{
		"# " + meta.Title,
		"Source: " + meta.URL,
	}
	if meta.Description != "" {
		parts = append(parts, "Description: "+meta.Description)
	}
	parts = append(parts, "")

	if result.MainContent != "" {
		parts = append(parts, "## Main Content", result.MainContent, "")
	}

	if len(result.Tables) > 0 {
		parts = append(parts, "## Structured Data (Tables)", "")

		for i := range result.Tables {
			t := &result.Tables[i]
			parts = append(parts,
				fmt.Sprintf("### Table %d: %s", t.Index+1, t.Context),
				"**Summary**: "+t.Summary,
				"",
				"**Table Data Analysis:**",
				e.describeTable(t),
				"",
				"**Formatted Table:**",
			)
			rows, _ := t.Shape()
			if rows > 0 && rows <= e.tuning.RenderRowLimit {
				parts = append(parts, renderMarkdownTable(t))
			} else {
				parts = append(parts, fmt.Sprintf("Large table (%d rows) - see summary above", rows))
			}
			parts = append(parts, "")
		}
	}

	return strings.Join(parts, "\n")
}

// renderMarkdownTable converts a record to a markdown pipe table.
// Newlines inside cells become spaces so rows stay on one line.
func renderMarkdownTable(t *models.TableRecord) string {
	if len(t.ColumnNames) == 0 {
		return ""
	}

	var sb strings.Builder

	for j, col := range t.ColumnNames {
		sb.WriteString("| ")
		sb.WriteString(strings.ReplaceAll(col, "\n", " "))
		sb.WriteString(" ")
		if j == len(t.ColumnNames)-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	for j := range t.ColumnNames {
		sb.WriteString("|---")
		if j == len(t.ColumnNames)-1 {
			sb.WriteString("|")
		}
	}

	for i := range t.Rows {
		sb.WriteString("\n")
		for j, col := range t.ColumnNames {
			v, _ := t.Cell(i, col)
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(v, "\n", " "))
			sb.WriteString(" ")
			if j == len(t.ColumnNames)-1 {
				sb.WriteString("|")
			}
		}
	}

	return sb.String()
}
