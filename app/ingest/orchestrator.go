package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/punjabxpress/newsroom/app/database"
	"github.com/punjabxpress/newsroom/app/feed"
	"github.com/punjabxpress/newsroom/app/sources"
)

// Summary is the aggregate result of one ingestion run. Success is false
// only when the run could not produce a meaningful result at all (e.g. the
// datastore is unreachable); individual source failures reduce counts but
// never flip it.
type Summary struct {
	SourceCounts map[string]int `json:"source_counts"`
	TotalSaved   int            `json:"total_saved"`
	Success      bool           `json:"success"`
	Message      string         `json:"message"`
}

// Orchestrator sequences registry, fetcher, enhancer and persister across
// all sources. Sources are processed strictly sequentially with a pacing
// limiter between them, trading throughput for politeness toward upstream
// servers.
type Orchestrator struct {
	registry    *sources.Registry
	fetcher     FeedFetcher
	enhancer    CandidateEnhancer
	persister   *Persister
	scrapers    *ScraperRegistry
	articleRepo database.ArticleRepository
	limiter     *rate.Limiter
}

func NewOrchestrator(registry *sources.Registry, fetcher FeedFetcher, enhancer CandidateEnhancer,
	persister *Persister, scrapers *ScraperRegistry, articleRepo database.ArticleRepository,
	sourceDelay time.Duration) *Orchestrator {
	return &Orchestrator{
		registry:    registry,
		fetcher:     fetcher,
		enhancer:    enhancer,
		persister:   persister,
		scrapers:    scrapers,
		articleRepo: articleRepo,
		limiter:     rate.NewLimiter(rate.Every(sourceDelay), 1),
	}
}

// FetchRSSOnly runs the RSS ingestion path across every registered source.
func (o *Orchestrator) FetchRSSOnly(ctx context.Context) Summary {
	if summary, ok := o.checkDatastore(); !ok {
		return summary
	}

	started := time.Now()
	counts := make(map[string]int)
	total := 0

	for i, src := range o.registry.Sources() {
		if i > 0 {
			if err := o.limiter.Wait(ctx); err != nil {
				slog.Warn("Ingestion run interrupted", "error", err)
				break
			}
		}

		saved := o.ingestSource(ctx, src)
		counts[src.Name] = saved
		total += saved
	}

	slog.Info("RSS ingestion completed", "sources", len(counts), "saved", total,
		"duration", time.Since(started))

	return Summary{
		SourceCounts: counts,
		TotalSaved:   total,
		Success:      true,
		Message:      fmt.Sprintf("RSS ingestion completed, %d new articles", total),
	}
}

// FetchScrapingOnly runs the secondary scraping path. With no scrapers
// registered it reports zero results for every source, by design.
func (o *Orchestrator) FetchScrapingOnly(ctx context.Context) Summary {
	if summary, ok := o.checkDatastore(); !ok {
		return summary
	}

	counts := make(map[string]int)
	total := 0

	for name, candidates := range o.scrapers.Run(ctx) {
		saved := o.persister.Run(ctx, o.filterFresh(candidates))
		counts[name] = saved
		total += saved
	}

	slog.Info("Scraping ingestion completed", "scrapers", o.scrapers.ScraperCount(), "saved", total)

	return Summary{
		SourceCounts: counts,
		TotalSaved:   total,
		Success:      true,
		Message:      fmt.Sprintf("Scraping ingestion completed, %d new articles", total),
	}
}

// FetchAll runs the RSS path and then the scraping path, summing both.
func (o *Orchestrator) FetchAll(ctx context.Context) Summary {
	rss := o.FetchRSSOnly(ctx)
	if !rss.Success {
		return rss
	}

	scraping := o.FetchScrapingOnly(ctx)

	counts := make(map[string]int, len(rss.SourceCounts)+len(scraping.SourceCounts))
	for name, count := range rss.SourceCounts {
		counts[name] = count
	}
	for name, count := range scraping.SourceCounts {
		counts[name] += count
	}

	total := rss.TotalSaved + scraping.TotalSaved

	message := fmt.Sprintf("Full ingestion completed, %d new articles", total)
	if !scraping.Success {
		message = scraping.Message
	}

	return Summary{
		SourceCounts: counts,
		TotalSaved:   total,
		Success:      scraping.Success,
		Message:      message,
	}
}

// ingestSource runs fetch, early dedup, enhance and persist for one source.
// Any failure is contained here so remaining sources still run.
func (o *Orchestrator) ingestSource(ctx context.Context, src sources.Source) int {
	candidates := o.fetcher.Run(ctx, src)
	if len(candidates) == 0 {
		return 0
	}

	// Dedup before enhancement so already-stored items cost no origin-page
	// fetches.
	fresh := o.filterFresh(candidates)

	for i := range fresh {
		fresh[i] = o.enhancer.Enhance(ctx, fresh[i])
	}

	return o.persister.Run(ctx, fresh)
}

func (o *Orchestrator) filterFresh(candidates []feed.Candidate) []feed.Candidate {
	fresh := make([]feed.Candidate, 0, len(candidates))
	for _, c := range candidates {
		exists, err := o.articleRepo.ExistsByTitleOrURL(c.Title, c.Link)
		if err != nil {
			// Keep the candidate; the persister rechecks before insert.
			fresh = append(fresh, c)
			continue
		}
		if !exists {
			fresh = append(fresh, c)
		}
	}
	return fresh
}

func (o *Orchestrator) checkDatastore() (Summary, bool) {
	if _, err := o.articleRepo.GetArticleCount(); err != nil {
		slog.Error("Datastore unreachable, aborting ingestion run", "error", err)
		return Summary{
			SourceCounts: map[string]int{},
			Success:      false,
			Message:      "ingestion aborted: datastore unreachable",
		}, false
	}
	return Summary{}, true
}
