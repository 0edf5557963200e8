package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/punjabxpress/newsroom/app/feed"
	"github.com/punjabxpress/newsroom/app/sources"
)

type fakeFetcher struct {
	bySource map[string][]feed.Candidate
}

func (f *fakeFetcher) Run(ctx context.Context, src sources.Source) []feed.Candidate {
	return f.bySource[src.Name]
}

type fakeEnhancer struct {
	calls []string
}

func (f *fakeEnhancer) Enhance(ctx context.Context, c feed.Candidate) feed.Candidate {
	f.calls = append(f.calls, c.Title)
	if c.Body == "" {
		c.Body = "Enhanced body for " + c.Title
	}
	return c
}

type fakeScraper struct {
	name       string
	candidates []feed.Candidate
}

func (f *fakeScraper) Name() string { return f.name }

func (f *fakeScraper) Scrape(ctx context.Context) []feed.Candidate {
	return f.candidates
}

func testRegistry(t *testing.T, names ...string) *sources.Registry {
	t.Helper()

	yaml := "sources:\n"
	for _, name := range names {
		yaml += fmt.Sprintf("  - name: %s\n    url: https://example.com/%s.xml\n    category: punjab\n", name, name)
	}

	path := filepath.Join(t.TempDir(), "sources.yml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("Failed to write sources file: %v", err)
	}

	registry, err := sources.Load(path)
	if err != nil {
		t.Fatalf("Failed to load test registry: %v", err)
	}
	return registry
}

func newTestOrchestrator(registry *sources.Registry, fetcher FeedFetcher, enhancer CandidateEnhancer,
	repo *fakeArticleRepo, scrapers *ScraperRegistry) *Orchestrator {
	if scrapers == nil {
		scrapers = NewScraperRegistry()
	}
	return NewOrchestrator(registry, fetcher, enhancer, NewPersister(repo), scrapers, repo, time.Millisecond)
}

func TestFetchRSSOnlyAggregatesPerSource(t *testing.T) {
	registry := testRegistry(t, "tribune", "ndtv")
	fetcher := &fakeFetcher{bySource: map[string][]feed.Candidate{
		"tribune": {
			candidate("Tribune story one", "tribune-story-one", "https://t/1"),
			candidate("Tribune story two", "tribune-story-two", "https://t/2"),
		},
		"ndtv": {
			candidate("NDTV story", "ndtv-story", "https://n/1"),
		},
	}}
	repo := &fakeArticleRepo{}

	o := newTestOrchestrator(registry, fetcher, &fakeEnhancer{}, repo, nil)

	summary := o.FetchRSSOnly(context.Background())

	if !summary.Success {
		t.Fatal("Expected success: true")
	}
	if summary.TotalSaved != 3 {
		t.Errorf("Expected 3 total saved, got %d", summary.TotalSaved)
	}
	if summary.SourceCounts["tribune"] != 2 || summary.SourceCounts["ndtv"] != 1 {
		t.Errorf("Unexpected per-source counts: %v", summary.SourceCounts)
	}
}

func TestFetchRSSOnlySourceFailureDoesNotFlipSuccess(t *testing.T) {
	// "broken" yields no candidates, which is how the fetcher reports
	// failures upward.
	registry := testRegistry(t, "broken", "healthy")
	fetcher := &fakeFetcher{bySource: map[string][]feed.Candidate{
		"healthy": {candidate("Healthy story", "healthy-story", "https://h/1")},
	}}
	repo := &fakeArticleRepo{}

	o := newTestOrchestrator(registry, fetcher, &fakeEnhancer{}, repo, nil)

	summary := o.FetchRSSOnly(context.Background())

	if !summary.Success {
		t.Error("Expected success: true despite one empty source")
	}
	if summary.TotalSaved != 1 {
		t.Errorf("Expected 1 saved, got %d", summary.TotalSaved)
	}
	if summary.SourceCounts["broken"] != 0 {
		t.Errorf("Expected 0 for the broken source, got %d", summary.SourceCounts["broken"])
	}
}

func TestFetchRSSOnlyDatastoreUnreachable(t *testing.T) {
	registry := testRegistry(t, "tribune")
	repo := &fakeArticleRepo{countErr: fmt.Errorf("database is locked")}

	o := newTestOrchestrator(registry, &fakeFetcher{}, &fakeEnhancer{}, repo, nil)

	summary := o.FetchRSSOnly(context.Background())

	if summary.Success {
		t.Error("Expected success: false when the datastore is unreachable")
	}
	if summary.TotalSaved != 0 {
		t.Errorf("Expected 0 saved, got %d", summary.TotalSaved)
	}
}

func TestFetchRSSOnlySkipsEnhancementForKnownItems(t *testing.T) {
	registry := testRegistry(t, "tribune")
	fetcher := &fakeFetcher{bySource: map[string][]feed.Candidate{
		"tribune": {
			candidate("Already stored", "already-stored", "https://t/old"),
			candidate("Brand new", "brand-new", "https://t/new"),
		},
	}}
	enhancer := &fakeEnhancer{}
	repo := &fakeArticleRepo{}

	o := newTestOrchestrator(registry, fetcher, enhancer, repo, nil)

	o.FetchRSSOnly(context.Background())
	enhancer.calls = nil
	o.FetchRSSOnly(context.Background())

	if len(enhancer.calls) != 0 {
		t.Errorf("Expected no enhancement calls for stored items, got %v", enhancer.calls)
	}
}

func TestFetchScrapingOnlyEmptyRegistry(t *testing.T) {
	registry := testRegistry(t, "tribune")
	repo := &fakeArticleRepo{}

	o := newTestOrchestrator(registry, &fakeFetcher{}, &fakeEnhancer{}, repo, nil)

	summary := o.FetchScrapingOnly(context.Background())

	if !summary.Success {
		t.Error("Expected success: true with no scrapers registered")
	}
	if summary.TotalSaved != 0 {
		t.Errorf("Expected 0 saved with no scrapers, got %d", summary.TotalSaved)
	}
}

func TestFetchScrapingOnlyPersistsScraperResults(t *testing.T) {
	registry := testRegistry(t, "tribune")
	repo := &fakeArticleRepo{}
	scrapers := NewScraperRegistry(&fakeScraper{
		name: "tribune-site",
		candidates: []feed.Candidate{
			candidate("Scraped story", "scraped-story", "https://t/s1"),
		},
	})

	o := newTestOrchestrator(registry, &fakeFetcher{}, &fakeEnhancer{}, repo, scrapers)

	summary := o.FetchScrapingOnly(context.Background())

	if summary.TotalSaved != 1 {
		t.Errorf("Expected 1 saved from scraper, got %d", summary.TotalSaved)
	}
	if summary.SourceCounts["tribune-site"] != 1 {
		t.Errorf("Expected scraper count 1, got %v", summary.SourceCounts)
	}
}

func TestFetchAllCombinesBothPaths(t *testing.T) {
	registry := testRegistry(t, "tribune")
	fetcher := &fakeFetcher{bySource: map[string][]feed.Candidate{
		"tribune": {candidate("Feed story", "feed-story", "https://t/f1")},
	}}
	repo := &fakeArticleRepo{}
	scrapers := NewScraperRegistry(&fakeScraper{
		name: "tribune-site",
		candidates: []feed.Candidate{
			candidate("Scraped story", "scraped-story", "https://t/s1"),
		},
	})

	o := newTestOrchestrator(registry, fetcher, &fakeEnhancer{}, repo, scrapers)

	summary := o.FetchAll(context.Background())

	if !summary.Success {
		t.Fatal("Expected success: true")
	}
	if summary.TotalSaved != 2 {
		t.Errorf("Expected 2 saved across both paths, got %d", summary.TotalSaved)
	}
	if summary.SourceCounts["tribune"] != 1 || summary.SourceCounts["tribune-site"] != 1 {
		t.Errorf("Unexpected combined counts: %v", summary.SourceCounts)
	}
}

// secondCheckFailsRepo passes the first datastore check and fails every one
// after it, so the scraping leg of a combined run fails while the RSS leg
// succeeds.
type secondCheckFailsRepo struct {
	fakeArticleRepo
	checks int
}

func (f *secondCheckFailsRepo) GetArticleCount() (int, error) {
	f.checks++
	if f.checks > 1 {
		return 0, fmt.Errorf("database is locked")
	}
	return len(f.articles), nil
}

func TestFetchAllScrapingFailureCarriesMessage(t *testing.T) {
	registry := testRegistry(t, "tribune")
	fetcher := &fakeFetcher{bySource: map[string][]feed.Candidate{
		"tribune": {candidate("Feed story", "feed-story", "https://t/f1")},
	}}
	repo := &secondCheckFailsRepo{}

	o := NewOrchestrator(registry, fetcher, &fakeEnhancer{}, NewPersister(&repo.fakeArticleRepo),
		NewScraperRegistry(), repo, time.Millisecond)

	summary := o.FetchAll(context.Background())

	if summary.Success {
		t.Error("Expected success: false when the scraping leg fails")
	}
	if summary.Message != "ingestion aborted: datastore unreachable" {
		t.Errorf("Expected the failing leg's message, got %q", summary.Message)
	}
}

func TestFetchAllRerunSavesNothing(t *testing.T) {
	registry := testRegistry(t, "tribune")
	fetcher := &fakeFetcher{bySource: map[string][]feed.Candidate{
		"tribune": {candidate("Feed story", "feed-story", "https://t/f1")},
	}}
	repo := &fakeArticleRepo{}

	o := newTestOrchestrator(registry, fetcher, &fakeEnhancer{}, repo, nil)

	first := o.FetchAll(context.Background())
	second := o.FetchAll(context.Background())

	if first.TotalSaved != 1 {
		t.Errorf("Expected 1 saved on first run, got %d", first.TotalSaved)
	}
	if second.TotalSaved != 0 {
		t.Errorf("Expected 0 saved on rerun, got %d", second.TotalSaved)
	}
	if !second.Success {
		t.Error("Expected rerun to still report success")
	}
}
