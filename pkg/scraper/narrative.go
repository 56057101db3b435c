package scraper

import (
	"fmt"
	"strings"

	"github.com/mhealy/graphrag-prep/models"
)

// describeTable renders the row-by-row narrative that makes table data
// searchable as prose. Rows past NarrativeRowLimit collapse into a
// single "more entries" trailer; empty cells are skipped but a row
// keeps its position number.
func (e *Extractor) describeTable(t *models.TableRecord) string {
	if t.IsEmpty() {
		return "No data available in this table."
	}

	var parts []string
	for i := range t.Rows {
		if i >= e.tuning.NarrativeRowLimit {
			parts = append(parts, fmt.Sprintf("... and %d more entries", len(t.Rows)-i))
			break
		}

		var fields []string
		for _, col := range t.ColumnNames {
			v, ok := t.Cell(i, col)
			if !ok || strings.TrimSpace(v) == "" {
				continue
			}
			fields = append(fields, fmt.Sprintf("%s is %s", col, v))
		}
		if len(fields) > 0 {
			parts = append(parts, fmt.Sprintf("Entry %d: %s", i+1, strings.Join(fields, ", ")))
		}
	}

	if len(t.ColumnNames) > 1 {
		parts = append(parts, fmt.Sprintf("\nThis table shows relationships between: %s", strings.Join(t.ColumnNames, ", ")))
	}

	return strings.Join(parts, ". ")
}
