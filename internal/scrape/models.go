package scrape

// Job defines a single page for a worker to process.
type Job struct {
	URL string
}

// Result holds the outcome of one processed URL.
type Result struct {
	URL           string
	DocID         string
	DocPath       string
	Source        string
	Tables        int
	ContentLength int
	Language      string
	Skipped       bool
	Error         error
	ErrorType     string
	WordCounts    map[string]int
	FileSizeBytes int64
	ContentHash   string
}

// ResultOutput is the structured output for a single URL.
type ResultOutput struct {
	URL           string `json:"url" yaml:"url"`
	DocID         string `json:"doc_id,omitempty" yaml:"doc_id,omitempty"`
	FilePath      string `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	Status        string `json:"status" yaml:"status"`
	Source        string `json:"source,omitempty" yaml:"source,omitempty"`
	Tables        int    `json:"tables,omitempty" yaml:"tables,omitempty"`
	ContentLength int    `json:"content_length,omitempty" yaml:"content_length,omitempty"`
	Language      string `json:"language,omitempty" yaml:"language,omitempty"`
	SizeBytes     int64  `json:"size_bytes,omitempty" yaml:"size_bytes,omitempty"`
	Error         string `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorType     string `json:"error_type,omitempty" yaml:"error_type,omitempty"`
}

// Stats provides summary statistics for the run.
type Stats struct {
	TotalURLs        int      `json:"total_urls" yaml:"total_urls"`
	Successful       int      `json:"successful" yaml:"successful"`
	Failed           int      `json:"failed" yaml:"failed"`
	Skipped          int      `json:"skipped" yaml:"skipped"`
	TotalTables      int      `json:"total_tables" yaml:"total_tables"`
	TotalTimeSeconds float64  `json:"total_time_seconds" yaml:"total_time_seconds"`
	TopKeywords      []string `json:"top_keywords,omitempty" yaml:"top_keywords,omitempty"`
}

// RunOutput is the structured output for the entire run.
type RunOutput struct {
	Status    string         `json:"status" yaml:"status"`
	SessionID string         `json:"session_id,omitempty" yaml:"session_id,omitempty"`
	Results   []ResultOutput `json:"results" yaml:"results"`
	Stats     Stats          `json:"stats" yaml:"stats"`
}
