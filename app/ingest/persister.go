package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/punjabxpress/newsroom/app/database"
	"github.com/punjabxpress/newsroom/app/feed"
)

const excerptLength = 200

// slugRetryLimit bounds the collision-suffix loop; hitting it means the
// duplicate check already missed something badly wrong.
const slugRetryLimit = 100

// Persister deduplicates candidates against stored articles and inserts the
// survivors.
type Persister struct {
	articleRepo database.ArticleRepository
}

func NewPersister(articleRepo database.ArticleRepository) *Persister {
	return &Persister{articleRepo: articleRepo}
}

// Run stores the given candidates and returns how many were newly saved.
// Duplicates (same title or same original URL) are skipped, never updated.
// A failure on one record is logged and does not abort the batch.
func (p *Persister) Run(ctx context.Context, candidates []feed.Candidate) int {
	saved := 0

	for _, c := range candidates {
		select {
		case <-ctx.Done():
			return saved
		default:
		}

		exists, err := p.articleRepo.ExistsByTitleOrURL(c.Title, c.Link)
		if err != nil {
			slog.Error("Duplicate check failed", "title", c.Title, "error", err)
			continue
		}
		if exists {
			slog.Debug("Skipping duplicate candidate", "title", c.Title, "url", c.Link)
			continue
		}

		slug, err := p.uniqueSlug(c.Slug)
		if err != nil {
			slog.Error("Failed to derive unique slug", "title", c.Title, "error", err)
			continue
		}

		publishedAt := c.PublishedAt
		if publishedAt.IsZero() {
			publishedAt = time.Now().UTC()
		}

		article := database.Article{
			Title:       c.Title,
			Slug:        slug,
			Body:        c.Body,
			Excerpt:     makeExcerpt(c.Body),
			Category:    string(c.Category),
			SourceLabel: c.SourceLabel,
			OriginalURL: c.Link,
			Status:      database.StatusPublished,
			PublishedAt: &publishedAt,
		}

		if err := p.articleRepo.Insert(article); err != nil {
			slog.Error("Failed to insert article", "title", c.Title, "slug", slug, "error", err)
			continue
		}

		saved++
	}

	return saved
}

// uniqueSlug appends a numeric suffix until the slug is unused:
// "foo", "foo-1", "foo-2", ...
func (p *Persister) uniqueSlug(base string) (string, error) {
	if base == "" {
		base = "article"
	}

	for i := 0; i < slugRetryLimit; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}

		exists, err := p.articleRepo.SlugExists(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug %q: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no free slug found for %q after %d attempts", base, slugRetryLimit)
}

func makeExcerpt(body string) string {
	text := strings.Join(strings.Fields(body), " ")
	runes := []rune(text)
	if len(runes) <= excerptLength {
		return text
	}

	cut := string(runes[:excerptLength])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "…"
}
