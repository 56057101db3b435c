// Package artifacts owns the on-disk layout of scrape output: one text
// document per page, JSON table sidecars, and per-run session files.
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mhealy/graphrag-prep/pkg/storage"
)

const (
	// DefaultBaseDir is the output root when no directory is configured.
	DefaultBaseDir = "graphrag_input"

	tablesDirName   = "tables"
	sessionsDirName = "sessions"
)

// Manager resolves artifact paths under a base directory and decides
// when an existing document is still fresh.
type Manager struct {
	baseDir string
	maxAge  time.Duration // zero or negative means artifacts are always stale
	store   *storage.Storage
}

// NewManager creates a Manager and ensures the output directories
// exist.
func NewManager(baseDir string, maxAge time.Duration) (*Manager, error) {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	if err := os.MkdirAll(filepath.Join(baseDir, tablesDirName), 0750); err != nil {
		return nil, fmt.Errorf("failed to create tables directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(baseDir, sessionsDirName), 0750); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}
	return &Manager{baseDir: baseDir, maxAge: maxAge, store: &storage.Storage{}}, nil
}

// BaseDir returns the output root.
func (m *Manager) BaseDir() string { return m.baseDir }

// MaxAge returns the freshness window.
func (m *Manager) MaxAge() time.Duration { return m.maxAge }

// DocPath returns the text document path for a document ID.
func (m *Manager) DocPath(docID string) string {
	return filepath.Join(m.baseDir, docID+".txt")
}

// TablePath returns the sidecar path for one table of a document.
func (m *Manager) TablePath(docID string, index int) string {
	return filepath.Join(m.baseDir, tablesDirName, fmt.Sprintf("%s_table_%d.json", docID, index))
}

// SessionPath returns the session summary path for a session ID.
func (m *Manager) SessionPath(sessionID string) string {
	return filepath.Join(m.baseDir, sessionsDirName, sessionID+".yaml")
}

// SessionIndexPath returns the path of the rolling session index.
func (m *Manager) SessionIndexPath() string {
	return filepath.Join(m.baseDir, sessionsDirName, "index.yaml")
}

// IsFresh reports whether the document for docID already exists and is
// younger than the freshness window.
func (m *Manager) IsFresh(docID string) bool {
	if m.maxAge <= 0 {
		return false
	}
	stats, err := m.store.GetFileStats(m.DocPath(docID))
	if err != nil {
		return false
	}
	return time.Since(stats.ModTime) <= m.maxAge
}
