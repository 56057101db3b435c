// Package session records scrape runs as flat YAML files so earlier
// runs stay inspectable next to the documents they produced. Each run
// gets sessions/{id}.yaml and an entry in the root index.yaml.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// URLResult is the per-URL outcome stored in a session record.
type URLResult struct {
	URL         string `yaml:"url"`
	DocID       string `yaml:"doc_id,omitempty"`
	DocPath     string `yaml:"doc_path,omitempty"`
	Status      string `yaml:"status"` // success, failed, skipped
	Source      string `yaml:"source,omitempty"`
	Tables      int    `yaml:"tables,omitempty"`
	SizeBytes   int64  `yaml:"size_bytes,omitempty"`
	ContentHash string `yaml:"content_hash,omitempty"`
	Error       string `yaml:"error,omitempty"`
	ErrorType   string `yaml:"error_type,omitempty"`
}

// Record is the full YAML document written for one scrape run.
type Record struct {
	SessionID      string      `yaml:"session_id"`
	Created        time.Time   `yaml:"created"`
	OutputDir      string      `yaml:"output_dir"`
	URLCount       int         `yaml:"url_count"`
	Success        int         `yaml:"success"`
	Failed         int         `yaml:"failed"`
	Skipped        int         `yaml:"skipped"`
	ElapsedSeconds float64     `yaml:"elapsed_seconds"`
	TopKeywords    []string    `yaml:"top_keywords,omitempty"`
	Results        []URLResult `yaml:"results"`
}

// Info is the per-session entry kept in the index file.
type Info struct {
	SessionID   string    `yaml:"session_id"`
	Created     time.Time `yaml:"created"`
	URLCount    int       `yaml:"url_count"`
	Success     int       `yaml:"success"`
	Failed      int       `yaml:"failed"`
	Skipped     int       `yaml:"skipped,omitempty"`
	URLsPreview []string  `yaml:"urls_preview,omitempty"` // First 3 URLs
}

// Index is the sessions index file.
type Index struct {
	Sessions []Info `yaml:"sessions"`
}

// GenerateID creates a timestamp-first session ID from a list of URLs.
// Format: YYYY-MM-DDTHH-MM-{hash}, where the hash is derived from the
// sorted URL list. Timestamp-first naming keeps the index
// chronological when sorted by ID.
func GenerateID(urls []string) string {
	normalized := make([]string, len(urls))
	copy(normalized, urls)
	sort.Strings(normalized)

	h := sha256.New()
	for _, url := range normalized {
		h.Write([]byte(url))
		h.Write([]byte("\n"))
	}
	hashBytes := h.Sum(nil)
	shortHash := hex.EncodeToString(hashBytes[:6]) // 12 char hex

	timestamp := time.Now().Format("2006-01-02T15-04")

	return fmt.Sprintf("%s-%s", timestamp, shortHash)
}

// Save writes the session record to path as YAML.
func Save(path string, record *Record) error {
	data, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write session record: %w", err)
	}
	return nil
}

// Load reads a session record back from path.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session record: %w", err)
	}
	var record Record
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse session record: %w", err)
	}
	return &record, nil
}

// UpdateIndex adds or updates a session entry in the index file,
// keeping entries sorted newest first.
func UpdateIndex(indexPath string, info Info) error {
	var index Index
	data, err := os.ReadFile(indexPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read session index: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &index); err != nil {
			return fmt.Errorf("failed to parse session index: %w", err)
		}
	}

	found := false
	for i, s := range index.Sessions {
		if s.SessionID == info.SessionID {
			index.Sessions[i] = info
			found = true
			break
		}
	}
	if !found {
		index.Sessions = append(index.Sessions, info)
	}

	sort.Slice(index.Sessions, func(i, j int) bool {
		return index.Sessions[i].SessionID > index.Sessions[j].SessionID // Newest first
	})

	output, err := yaml.Marshal(&index)
	if err != nil {
		return fmt.Errorf("failed to marshal session index: %w", err)
	}
	if err := os.WriteFile(indexPath, output, 0644); err != nil {
		return fmt.Errorf("failed to write session index: %w", err)
	}
	return nil
}

// Preview returns the first n URLs from a list for index previews.
func Preview(urls []string, n int) []string {
	if len(urls) <= n {
		return urls
	}
	return urls[:n]
}
