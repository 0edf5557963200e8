package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/punjabxpress/newsroom/app/sources"
)

// Titles shorter than this after attribution stripping are treated as feed
// noise, not articles.
const minTitleLength = 10

type Fetcher struct {
	httpClient    *http.Client
	gofeedParser  *gofeed.Parser
	stripPatterns []string
	blockedLabels []string
	userAgent     string
	timeout       time.Duration
}

func NewFetcher(httpClient *http.Client, registry *sources.Registry, userAgent string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient:    httpClient,
		gofeedParser:  gofeed.NewParser(),
		stripPatterns: registry.StripPatterns(),
		blockedLabels: registry.BlockedLabels(),
		userAgent:     userAgent,
		timeout:       timeout,
	}
}

// Run fetches and parses one source into candidate articles. A broken or
// unreachable feed is logged and yields an empty list; it never fails the
// ingestion run.
func (f *Fetcher) Run(ctx context.Context, src sources.Source) []Candidate {
	data, err := f.fetchFeed(ctx, src.URL)
	if err != nil {
		slog.Warn("Failed to fetch feed", "source", src.Name, "url", src.URL, "error", err)
		return nil
	}

	parsed, err := f.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		slog.Warn("Failed to parse feed", "source", src.Name, "error", err)
		return nil
	}

	sourceLabel := sources.FilterLabel(parsed.Title, f.blockedLabels)
	category := MapCategory(src.Category)

	candidates := make([]Candidate, 0, len(parsed.Items))
	skipped := 0
	for _, item := range parsed.Items {
		candidate, ok := f.normalizeItem(item, sourceLabel, category)
		if !ok {
			skipped++
			continue
		}
		candidates = append(candidates, candidate)
	}

	slog.Debug("Feed fetched", "source", src.Name, "items", len(parsed.Items),
		"candidates", len(candidates), "skipped", skipped)

	return candidates
}

func (f *Fetcher) normalizeItem(item *gofeed.Item, sourceLabel string, category Category) (Candidate, bool) {
	if item.Title == "" || item.Link == "" {
		return Candidate{}, false
	}

	title := CleanTitle(item.Title, f.stripPatterns)
	if len([]rune(title)) < minTitleLength {
		return Candidate{}, false
	}

	body := item.Description
	if body == "" {
		body = item.Content
	}
	body = StripAttribution(body, f.stripPatterns)

	publishedAt := time.Now().UTC()
	if item.PublishedParsed != nil {
		publishedAt = item.PublishedParsed.UTC()
	}

	return Candidate{
		Title:       title,
		Slug:        Slugify(title),
		Link:        item.Link,
		Body:        body,
		SourceLabel: sourceLabel,
		Category:    category,
		Tags:        item.Categories,
		PublishedAt: publishedAt,
	}, true
}

func (f *Fetcher) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
