package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "clean URL unchanged",
			in:   "https://example.com/page",
			want: "https://example.com/page",
		},
		{
			name: "edge whitespace",
			in:   "  https://example.com/page  ",
			want: "https://example.com/page",
		},
		{
			name: "markdown link",
			in:   "[Housing Grants](https://example.com/grants)",
			want: "https://example.com/grants",
		},
		{
			name: "trailing comma",
			in:   "https://example.com/page,",
			want: "https://example.com/page",
		},
		{
			name: "trailing period",
			in:   "https://example.com/page.",
			want: "https://example.com/page",
		},
		{
			name: "wrapping parens",
			in:   "(https://example.com/page)",
			want: "https://example.com/page",
		},
		{
			name: "angle brackets",
			in:   "<https://example.com/page>",
			want: "https://example.com/page",
		},
		{
			name: "quoted",
			in:   `"https://example.com/page"`,
			want: "https://example.com/page",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeURL(tt.in); got != tt.want {
				t.Errorf("SanitizeURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeAndValidateURLs(t *testing.T) {
	urls := []string{
		"https://example.com/good",
		"[link](https://example.com/markdown)",
		"ftp://example.com/wrong-scheme",
		"https://example.com/has space",
		"not a url",
		"",
	}

	valid, invalid := SanitizeAndValidateURLs(urls)

	wantValid := []string{
		"https://example.com/good",
		"https://example.com/markdown",
	}
	if len(valid) != len(wantValid) {
		t.Fatalf("valid = %v, want %v", valid, wantValid)
	}
	for i := range wantValid {
		if valid[i] != wantValid[i] {
			t.Errorf("valid[%d] = %q, want %q", i, valid[i], wantValid[i])
		}
	}

	if len(invalid) != 4 {
		t.Errorf("got %d invalid URLs, want 4: %v", len(invalid), invalid)
	}
}

func TestContentHash(t *testing.T) {
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got := ContentHash([]byte("hello")); got != want {
		t.Errorf("ContentHash() = %q, want %q", got, want)
	}
	if ContentHash([]byte("hello")) == ContentHash([]byte("world")) {
		t.Error("different content produced the same hash")
	}
}

func TestSanitizeAndValidateURLs_MangledHost(t *testing.T) {
	_, invalid := SanitizeAndValidateURLs([]string{"https://exam{}ple.com/page"})
	if len(invalid) != 1 {
		t.Errorf("mangled host passed validation: %v", invalid)
	}
}

func TestReadURLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := `# housing pages
https://example.com/one

https://example.com/two
  # indented comment
https://example.com/three
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write URL file: %v", err)
	}

	urls, err := ReadURLFile(path)
	if err != nil {
		t.Fatalf("ReadURLFile() error = %v", err)
	}

	want := []string{
		"https://example.com/one",
		"https://example.com/two",
		"https://example.com/three",
	}
	if len(urls) != len(want) {
		t.Fatalf("got %d URLs, want %d: %v", len(urls), len(want), urls)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
}

func TestReadURLFile_Missing(t *testing.T) {
	if _, err := ReadURLFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("ReadURLFile() of a missing file succeeded, want error")
	}
}

func TestResolveConfig_DefaultPathOptional(t *testing.T) {
	cfg, err := ResolveConfig(filepath.Join(t.TempDir(), "config.yaml"), false)
	if err != nil {
		t.Fatalf("ResolveConfig() error = %v", err)
	}
	if cfg.Workers == 0 {
		t.Error("defaults not applied when the default config file is absent")
	}
}

func TestResolveConfig_ExplicitPathRequired(t *testing.T) {
	if _, err := ResolveConfig(filepath.Join(t.TempDir(), "config.yaml"), true); err == nil {
		t.Error("ResolveConfig() with a missing explicit file succeeded, want error")
	}
}

func TestResolveConfig_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("workers: 9\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := ResolveConfig(path, true)
	if err != nil {
		t.Fatalf("ResolveConfig() error = %v", err)
	}
	if cfg.Workers != 9 {
		t.Errorf("Workers = %d, want 9", cfg.Workers)
	}
}
