package ingest

import (
	"context"

	"github.com/punjabxpress/newsroom/app/feed"
	"github.com/punjabxpress/newsroom/app/sources"
)

type FeedFetcher interface {
	Run(ctx context.Context, src sources.Source) []feed.Candidate
}

type CandidateEnhancer interface {
	Enhance(ctx context.Context, c feed.Candidate) feed.Candidate
}

// SiteScraper is a per-site scraper for sources without a usable feed. None
// are registered today; the secondary ingestion path exists so they can be
// added without changing orchestrator callers.
type SiteScraper interface {
	Name() string
	Scrape(ctx context.Context) []feed.Candidate
}
