package fetcher

import (
	"context"
	"fmt"
	"log/slog"
)

// Chain tries each source in order and returns the first successful
// fetch. A failed source is logged and the next one is consulted, so a
// scraping service outage degrades to a plain HTTP fetch instead of a
// lost page.
type Chain struct {
	sources []Source
	log     *slog.Logger
}

func NewChain(log *slog.Logger, sources ...Source) *Chain {
	if log == nil {
		log = slog.Default()
	}
	return &Chain{sources: sources, log: log}
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) Fetch(ctx context.Context, pageURL string) (*Content, error) {
	var lastErr error
	for _, src := range c.sources {
		content, err := src.Fetch(ctx, pageURL)
		if err == nil {
			return content, nil
		}
		lastErr = err
		c.log.Warn("Fetch source failed, trying next",
			"source", src.Name(),
			"url", pageURL,
			"error", err)
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, &FetchError{URL: pageURL, Err: fmt.Errorf("no fetch sources configured")}
}
