package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mhealy/graphrag-prep/internal/common"
	"github.com/mhealy/graphrag-prep/models"
	"github.com/mhealy/graphrag-prep/pkg/artifacts"
	"github.com/mhealy/graphrag-prep/pkg/fetcher"
	"github.com/mhealy/graphrag-prep/pkg/scraper"
	"github.com/mhealy/graphrag-prep/pkg/textstats"
)

func run(ctx context.Context, logger *slog.Logger, cfg *models.Config, manager *artifacts.Manager, source fetcher.Source, urls []string) ([]Result, map[string]int, error) {
	extractor := scraper.NewExtractor(cfg.Tables, logger)
	writer := scraper.NewWriter(manager, logger)

	logger.Info("Starting concurrent scrape phase",
		"url_count", len(urls),
		"workers", cfg.Workers,
		"output_dir", manager.BaseDir(),
		"max_age", manager.MaxAge())

	var wg sync.WaitGroup
	jobs := make(chan Job, len(urls))
	results := make(chan Result, len(urls))

	for w := 1; w <= cfg.Workers; w++ {
		wg.Add(1)
		go worker(ctx, w, logger, manager, source, extractor, writer, &wg, jobs, results)
	}

	for _, rawURL := range urls {
		jobs <- Job{URL: rawURL}
	}
	close(jobs)

	wg.Wait()
	close(results)
	logger.Info("All scrape workers finished")

	allResults := make([]Result, 0, len(urls))
	var runErr error
	for result := range results {
		allResults = append(allResults, result)
		if result.Error != nil {
			runErr = fmt.Errorf("one or more jobs failed")
		}
	}

	intermediate := make([]map[string]int, 0, len(allResults))
	for _, result := range allResults {
		if result.WordCounts != nil {
			intermediate = append(intermediate, result.WordCounts)
		}
	}
	finalWordCounts := textstats.Merge(intermediate...)

	return allResults, finalWordCounts, runErr
}

// worker processes jobs until the channel closes. Each page runs the
// full pipeline synchronously: fetch, extract, assemble, save.
func worker(ctx context.Context, id int, logger *slog.Logger, manager *artifacts.Manager, source fetcher.Source, extractor *scraper.Extractor, writer *scraper.Writer, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		logger.Info("Worker started job", "worker_id", id, "url", job.URL)
		result := Result{URL: job.URL, DocID: scraper.DocumentID(job.URL)}

		if manager.IsFresh(result.DocID) {
			logger.Info("Document artifacts are fresh, skipping",
				"worker_id", id, "url", job.URL, "doc_id", result.DocID)
			result.DocPath = manager.DocPath(result.DocID)
			result.Source = "cache"
			result.Skipped = true
			results <- result
			continue
		}

		content, err := source.Fetch(ctx, job.URL)
		if err != nil {
			logger.Error("Error fetching page", "worker_id", id, "url", job.URL, "error", err)
			result.Error = err
			result.ErrorType = "fetch_error"
			results <- result
			continue
		}
		result.Source = content.Via

		page, err := extractor.ExtractPage(job.URL, content.HTML, content.Markdown)
		if err != nil {
			logger.Error("Error extracting page", "worker_id", id, "url", job.URL, "error", err)
			result.Error = err
			result.ErrorType = "extract_error"
			results <- result
			continue
		}

		result.WordCounts = textstats.Frequencies(page.MainContent)

		document := extractor.BuildDocument(page)
		saved, err := writer.SavePage(page, document)
		if err != nil {
			logger.Error("Error saving page artifacts", "worker_id", id, "url", job.URL, "error", err)
			result.Error = err
			result.ErrorType = "save_error"
			results <- result
			continue
		}

		result.DocPath = saved.DocPath
		result.Tables = page.Metadata.TableCount
		result.ContentLength = page.Metadata.ContentLength
		result.Language = page.Metadata.Language
		result.FileSizeBytes = saved.DocBytes
		result.ContentHash = common.ContentHash([]byte(document))
		results <- result
		logger.Info("Worker finished processing", "worker_id", id, "url", job.URL)
	}
}
