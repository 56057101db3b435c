package scraper

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mhealy/graphrag-prep/models"
	"github.com/mhealy/graphrag-prep/pkg/artifacts"
	"github.com/mhealy/graphrag-prep/pkg/storage"
)

// tableSidecar is the JSON layout of one table file under tables/.
type tableSidecar struct {
	URL        string              `json:"url"`
	TableIndex int                 `json:"table_index"`
	Summary    string              `json:"summary"`
	Context    string              `json:"context"`
	Shape      [2]int              `json:"shape"`
	Data       []map[string]string `json:"data"`
}

// SavedPage reports where one page's artifacts were written.
type SavedPage struct {
	DocID      string
	DocPath    string
	TablePaths []string
	DocBytes   int64
}

// Writer persists assembled documents and their table sidecars.
type Writer struct {
	manager *artifacts.Manager
	store   *storage.Storage
	log     *slog.Logger
}

// NewWriter builds a Writer over the given artifact layout. A nil
// logger falls back to slog.Default().
func NewWriter(manager *artifacts.Manager, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{manager: manager, store: &storage.Storage{}, log: logger}
}

// SavePage writes the document and one JSON sidecar per table. A write
// failure propagates immediately; files already written stay in place.
func (w *Writer) SavePage(result *models.PageResult, document string) (*SavedPage, error) {
	docID := DocumentID(result.Metadata.URL)
	saved := &SavedPage{DocID: docID, DocPath: w.manager.DocPath(docID)}

	if err := w.store.SaveFile(saved.DocPath, []byte(document)); err != nil {
		return nil, fmt.Errorf("failed to write document %s: %w", saved.DocPath, err)
	}
	saved.DocBytes = int64(len(document))

	for i := range result.Tables {
		t := &result.Tables[i]
		rows, cols := t.Shape()
		data := t.Rows
		if data == nil {
			data = []map[string]string{}
		}

		payload, err := json.MarshalIndent(tableSidecar{
			URL:        result.Metadata.URL,
			TableIndex: t.Index,
			Summary:    t.Summary,
			Context:    t.Context,
			Shape:      [2]int{rows, cols},
			Data:       data,
		}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal table %d: %w", t.Index, err)
		}

		path := w.manager.TablePath(docID, t.Index)
		if err := w.store.SaveFile(path, payload); err != nil {
			return nil, fmt.Errorf("failed to write table sidecar %s: %w", path, err)
		}
		saved.TablePaths = append(saved.TablePaths, path)
	}

	w.log.Info("Saved page artifacts",
		"url", result.Metadata.URL,
		"path", saved.DocPath,
		"content_length", len(document),
		"tables", len(result.Tables))

	return saved, nil
}
