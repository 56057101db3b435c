package models

// TableRecord is one HTML table parsed into rows plus the narrative
// fields derived from it. Column order is carried by ColumnNames; the
// row maps are keyed by the final (cleaned, unique) column names.
type TableRecord struct {
	Index       int                 `json:"index"`
	ColumnNames []string            `json:"column_names"`
	Rows        []map[string]string `json:"rows"`
	Context     string              `json:"context"`
	Summary     string              `json:"summary"`
	SourceHTML  string              `json:"source_html,omitempty"`
}

// Shape returns (row count, column count).
func (t *TableRecord) Shape() (int, int) {
	return len(t.Rows), len(t.ColumnNames)
}

// IsEmpty reports whether the table has no data rows.
func (t *TableRecord) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Cell returns the value at (row, column name). The second return is
// false when the row is out of range or the cell is absent.
func (t *TableRecord) Cell(row int, col string) (string, bool) {
	if row < 0 || row >= len(t.Rows) {
		return "", false
	}
	v, ok := t.Rows[row][col]
	if !ok {
		return "", false
	}
	return v, true
}

// PageMetadata describes a scraped page.
type PageMetadata struct {
	URL                string  `json:"url"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	TableCount         int     `json:"table_count"`
	ContentLength      int     `json:"content_length"`
	Language           string  `json:"language,omitempty"` // ISO-639-1 if detected (e.g. "en")
	LanguageConfidence float64 `json:"language_confidence,omitempty"`
}

// PageResult is the full extraction output for a single page.
type PageResult struct {
	MainContent string        `json:"main_content"`
	Tables      []TableRecord `json:"tables"`
	Metadata    PageMetadata  `json:"metadata"`
}
