package common

import (
	"bufio"
	"crypto/sha256"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/mhealy/graphrag-prep/models"
)

// ResolveConfig loads the runtime configuration. A config file the
// user explicitly requested must exist; the default path is optional
// and silently skipped when absent.
func ResolveConfig(path string, explicit bool) (*models.Config, error) {
	if !explicit {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			path = ""
		}
	}
	return models.LoadConfig(path)
}

// ReadURLFile loads one URL per line, skipping blanks and # comments.
func ReadURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URL file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL file: %w", err)
	}
	return urls, nil
}

// ContentHash computes the SHA256 hash of content as a hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// SanitizeURL performs basic cleanup on URLs to handle common
// copy-paste issues: edge whitespace, trailing punctuation, markdown
// link syntax.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	// Extract URL from markdown link format: [text](url) -> url
	markdownLinkPattern := regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)
	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	// Trailing punctuation from copy-paste errors: "https://example.com," etc.
	trailingChars := []string{",", ".", ")", "}", "]", "\"", "'", ">", ";"}
	for _, char := range trailingChars {
		cleaned = strings.TrimSuffix(cleaned, char)
	}

	// Leading markdown/formatting artifacts
	leadingChars := []string{"(", "[", "<", "\"", "'"}
	for _, char := range leadingChars {
		cleaned = strings.TrimPrefix(cleaned, char)
	}

	return strings.TrimSpace(cleaned)
}

// urlPattern accepts http(s) URLs with a plausible domain and optional
// path. Spaces must be pre-encoded.
var urlPattern = regexp.MustCompile(`^https?://[a-zA-Z0-9][-a-zA-Z0-9.]*[a-zA-Z0-9](/[^\s]*)?$`)

// SanitizeAndValidateURLs sanitizes all URLs and splits them into
// (valid sanitized URLs, URLs that stay malformed even after cleanup).
func SanitizeAndValidateURLs(urls []string) ([]string, []string) {
	sanitized := make([]string, 0, len(urls))
	var invalidURLs []string

	for _, rawURL := range urls {
		cleaned := SanitizeURL(rawURL)

		if cleaned == "" {
			invalidURLs = append(invalidURLs, rawURL)
			continue
		}

		if strings.Contains(cleaned, " ") {
			invalidURLs = append(invalidURLs, rawURL)
			continue
		}

		if !urlPattern.MatchString(cleaned) {
			invalidURLs = append(invalidURLs, rawURL)
			continue
		}

		parsed, err := url.Parse(cleaned)
		if err != nil {
			invalidURLs = append(invalidURLs, rawURL)
			continue
		}

		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			invalidURLs = append(invalidURLs, rawURL)
			continue
		}

		if parsed.Host == "" {
			invalidURLs = append(invalidURLs, rawURL)
			continue
		}

		// A domain like "example.com{}" indicates a mangled paste.
		if strings.ContainsAny(parsed.Host, "{}[]<>\"'") {
			invalidURLs = append(invalidURLs, rawURL)
			continue
		}

		sanitized = append(sanitized, cleaned)
	}

	return sanitized, invalidURLs
}
