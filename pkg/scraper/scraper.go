// Package scraper turns raw page HTML into cleaned prose, structured
// table records, and flat-file documents ready for GraphRAG ingestion.
package scraper

import (
	"bufio"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"

	"github.com/mhealy/graphrag-prep/models"
)

// Extractor runs the page extraction pipeline. It is synchronous and
// deterministic; callers parallelize across pages, not inside one.
type Extractor struct {
	tuning   models.TableTuning
	detector lingua.LanguageDetector
	log      *slog.Logger
}

// NewExtractor builds an Extractor with the given thresholds. A nil
// logger falls back to slog.Default().
func NewExtractor(tuning models.TableTuning, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.Irish, lingua.French, lingua.German, lingua.Spanish).
		Build()
	return &Extractor{tuning: tuning, detector: detector, log: logger}
}

// ExtractPage extracts prose, tables, and metadata from one page.
// markdown, when non-empty, is used as the main content (a managed
// scraping service already distilled it); otherwise the main content
// is recovered from the raw HTML.
func (e *Extractor) ExtractPage(pageURL, rawHTML, markdown string) (*models.PageResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	tables := e.extractTables(doc)

	main := markdown
	if strings.TrimSpace(main) == "" {
		main = e.readableText(pageURL, rawHTML, doc)
	}
	main = CleanContent(main)

	meta := models.PageMetadata{
		URL:           pageURL,
		Title:         extractTitle(doc),
		Description:   extractDescription(doc),
		TableCount:    len(tables),
		ContentLength: len(main),
	}
	if lang, conf, ok := e.detectLanguage(main); ok {
		meta.Language = lang
		meta.LanguageConfidence = conf
	}

	return &models.PageResult{
		MainContent: main,
		Tables:      tables,
		Metadata:    meta,
	}, nil
}

// ExtractTables parses every table in an HTML string. Unparseable
// tables are skipped with a logged diagnostic; indices of the returned
// records stay contiguous.
func (e *Extractor) ExtractTables(rawHTML string) ([]models.TableRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return e.extractTables(doc), nil
}

// readableText recovers the main prose from raw HTML when no markdown
// is available, preferring the readability extraction over the full
// document text.
func (e *Extractor) readableText(pageURL, rawHTML string, doc *goquery.Document) string {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		parsedURL = &url.URL{}
	}

	readabilityParser := readability.NewParser()
	article, err := readabilityParser.Parse(strings.NewReader(rawHTML), parsedURL)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return article.TextContent
	}

	stripped := doc.Selection.Clone()
	stripped.Find("script,style,nav,footer,header").Remove()
	for _, sel := range []string{"main", "article", "body"} {
		if node := stripped.Find(sel).First(); node.Length() > 0 {
			return blockText(node)
		}
	}
	return blockText(stripped)
}

// blockText joins the text of a selection line by line, one line per
// text run, mirroring a newline-separated text dump of the markup.
func blockText(s *goquery.Selection) string {
	var lines []string
	for _, line := range strings.Split(s.Text(), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func (e *Extractor) detectLanguage(text string) (string, float64, bool) {
	if strings.TrimSpace(text) == "" {
		return "", 0, false
	}
	lang, ok := e.detector.DetectLanguageOf(text)
	if !ok {
		return "", 0, false
	}
	confidence := e.detector.ComputeLanguageConfidence(text, lang)
	return strings.ToLower(lang.IsoCode639_1().String()), confidence, true
}

// normalizeText cleans up a string by trimming space and collapsing
// newlines into single spaces.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
