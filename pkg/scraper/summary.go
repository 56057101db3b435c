package scraper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mhealy/graphrag-prep/models"
)

// summarizeTable builds the statistical summary line for a table:
// dimensions, column names, numeric columns, low-cardinality category
// columns, and an example row.
func (e *Extractor) summarizeTable(t *models.TableRecord) string {
	if t.IsEmpty() {
		return "Empty table"
	}

	rows, cols := t.Shape()
	parts := []string{
		fmt.Sprintf("Table with %d rows and %d columns", rows, cols),
		fmt.Sprintf("Columns: %s", strings.Join(t.ColumnNames, ", ")),
	}

	var numeric []string
	for _, col := range t.ColumnNames {
		if isNumericColumn(t, col) {
			numeric = append(numeric, col)
		}
	}
	if len(numeric) > 0 {
		parts = append(parts, fmt.Sprintf("Numeric data in: %s", strings.Join(numeric, ", ")))
	}

	if rows > e.tuning.MinCategoryRows {
		for _, col := range t.ColumnNames {
			values := distinctValues(t, col)
			if len(values) == 0 || len(values) > e.tuning.MaxCategoryValues {
				continue
			}
			if len(values) > e.tuning.CategorySamples {
				values = values[:e.tuning.CategorySamples]
			}
			parts = append(parts, fmt.Sprintf("%s categories: %s", col, strings.Join(values, ", ")))
		}
	}

	if example := exampleRow(t, e.tuning.ExampleFields); example != "" {
		parts = append(parts, "Example row - "+example)
	}

	return strings.Join(parts, ". ")
}

// isNumericColumn reports whether every non-empty cell in the column
// parses as a number. Thousands separators are tolerated; a column
// with no values at all is not numeric.
func isNumericColumn(t *models.TableRecord, col string) bool {
	nonEmpty := 0
	for i := range t.Rows {
		v, ok := t.Cell(i, col)
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64); err != nil {
			return false
		}
		nonEmpty++
	}
	return nonEmpty > 0
}

// distinctValues returns the column's distinct non-empty values in
// first-appearance order.
func distinctValues(t *models.TableRecord, col string) []string {
	seen := make(map[string]bool)
	var values []string
	for i := range t.Rows {
		v, ok := t.Cell(i, col)
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}

// exampleRow formats up to limit non-empty fields from the first row.
func exampleRow(t *models.TableRecord, limit int) string {
	if t.IsEmpty() {
		return ""
	}
	var fields []string
	for _, col := range t.ColumnNames {
		v, ok := t.Cell(0, col)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		fields = append(fields, fmt.Sprintf("%s: %s", col, v))
		if len(fields) == limit {
			break
		}
	}
	return strings.Join(fields, ", ")
}
