package scraper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mhealy/graphrag-prep/models"
)

// ErrNoTableData marks a table element with no parseable rows.
var ErrNoTableData = errors.New("table has no rows")

// extractTables parses every <table> in the document. A table that
// cannot be parsed is logged and skipped; the records that survive are
// re-indexed so that tables[i].Index == i always holds.
func (e *Extractor) extractTables(doc *goquery.Document) []models.TableRecord {
	var tables []models.TableRecord

	doc.Find("table").Each(func(i int, s *goquery.Selection) {
		rec, err := e.parseTable(s)
		if err != nil {
			e.log.Warn("Could not parse table", "position", i, "error", err)
			return
		}

		rec.Index = len(tables)
		rec.Context = e.tableContext(s)
		rec.Summary = e.summarizeTable(rec)
		if html, err := goquery.OuterHtml(s); err == nil {
			rec.SourceHTML = html
		}

		tables = append(tables, *rec)
	})

	return tables
}

// parseTable reads one table element into a TableRecord. Header cells
// come from <thead>, falling back to a leading row of <th> cells; a
// table without any header row gets positional column names and keeps
// every row as data.
func (e *Extractor) parseTable(s *goquery.Selection) (*models.TableRecord, error) {
	var headers []string
	s.Find("thead tr").First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
		headers = append(headers, normalizeText(cell.Text()))
	})

	var bodyRows []*goquery.Selection
	s.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		bodyRows = append(bodyRows, tr)
	})

	if len(headers) == 0 && len(bodyRows) > 0 {
		first := bodyRows[0]
		if first.Find("th").Length() > 0 && first.Find("td").Length() == 0 {
			first.Find("th").Each(func(_ int, cell *goquery.Selection) {
				headers = append(headers, normalizeText(cell.Text()))
			})
			bodyRows = bodyRows[1:]
		}
	}

	var rawRows [][]string
	for _, tr := range bodyRows {
		var row []string
		tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, normalizeText(cell.Text()))
		})
		if len(row) > 0 {
			rawRows = append(rawRows, row)
		}
	}

	if len(headers) == 0 && len(rawRows) == 0 {
		return nil, ErrNoTableData
	}

	var colNames []string
	if len(headers) > 0 {
		colNames = uniqueColumnNames(headers)
	} else {
		width := 0
		for _, row := range rawRows {
			if len(row) > width {
				width = len(row)
			}
		}
		colNames = make([]string, width)
		for i := range colNames {
			colNames[i] = fmt.Sprintf("Column %d", i+1)
		}
	}

	rows := make([]map[string]string, 0, len(rawRows))
	for _, cells := range rawRows {
		row := make(map[string]string, len(colNames))
		for j, val := range cells {
			if j >= len(colNames) {
				break
			}
			row[colNames[j]] = val
		}
		rows = append(rows, row)
	}

	return &models.TableRecord{ColumnNames: colNames, Rows: rows}, nil
}

// uniqueColumnNames cleans header cells into unique, stable column
// names. Blank headers become positional names; duplicates get a
// numeric suffix ("Year", "Year.1", "Year.2").
func uniqueColumnNames(cells []string) []string {
	names := make([]string, 0, len(cells))
	used := make(map[string]bool, len(cells))

	for i, raw := range cells {
		name := strings.TrimSpace(raw)
		if name == "" {
			name = fmt.Sprintf("Column %d", i+1)
		}
		if used[name] {
			for n := 1; ; n++ {
				candidate := fmt.Sprintf("%s.%d", name, n)
				if !used[candidate] {
					name = candidate
					break
				}
			}
		}
		used[name] = true
		names = append(names, name)
	}

	return names
}
