package ingest

import (
	"context"
	"log/slog"

	"github.com/punjabxpress/newsroom/app/feed"
)

// scrapeResultCap bounds how many candidates a single scraping pass may
// yield across all registered scrapers.
const scrapeResultCap = 100

// ScraperRegistry holds the per-site scrapers for the secondary ingestion
// path. The default registry is empty, so the scraping path is a no-op
// until real scrapers are registered.
type ScraperRegistry struct {
	scrapers []SiteScraper
}

func NewScraperRegistry(scrapers ...SiteScraper) *ScraperRegistry {
	return &ScraperRegistry{scrapers: scrapers}
}

func (r *ScraperRegistry) ScraperCount() int {
	return len(r.scrapers)
}

// Run invokes every registered scraper sequentially and returns the capped,
// combined candidates. A scraper yielding nothing is normal, not an error.
func (r *ScraperRegistry) Run(ctx context.Context) map[string][]feed.Candidate {
	results := make(map[string][]feed.Candidate, len(r.scrapers))
	total := 0

	for _, scraper := range r.scrapers {
		select {
		case <-ctx.Done():
			return results
		default:
		}

		candidates := scraper.Scrape(ctx)
		if total+len(candidates) > scrapeResultCap {
			candidates = candidates[:scrapeResultCap-total]
			slog.Warn("Scraper output capped", "scraper", scraper.Name(), "cap", scrapeResultCap)
		}
		results[scraper.Name()] = candidates
		total += len(candidates)

		if total >= scrapeResultCap {
			break
		}
	}

	return results
}
