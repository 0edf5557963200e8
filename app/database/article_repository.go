package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo handles database operations for ingested articles
type ArticleRepo struct {
	db *DB
}

func NewArticleRepository(db *DB) *ArticleRepo {
	return &ArticleRepo{db: db}
}

// ExistsByTitleOrURL reports whether an article with the same title or the
// same original URL is already stored. Used by the deduplicator; matches are
// skipped, never updated.
func (r *ArticleRepo) ExistsByTitleOrURL(title, originalURL string) (bool, error) {
	var id string
	err := r.db.QueryRow(`
		SELECT id FROM articles
		WHERE title = ? OR (original_url != '' AND original_url = ?)
		LIMIT 1
	`, title, originalURL).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check duplicate: %w", err)
	}

	return true, nil
}

func (r *ArticleRepo) SlugExists(slug string) (bool, error) {
	var id string
	err := r.db.QueryRow(`SELECT id FROM articles WHERE slug = ? LIMIT 1`, slug).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}

	return true, nil
}

func (r *ArticleRepo) Insert(article Article) error {
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	now := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO articles (
			id, title, slug, body, excerpt, category, source_label,
			original_url, status, scheduled_at, published_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, article.ID, article.Title, article.Slug, article.Body, article.Excerpt,
		article.Category, article.SourceLabel, article.OriginalURL, article.Status,
		toNullTime(article.ScheduledAt), toNullTime(article.PublishedAt), now, now)

	if err != nil {
		return fmt.Errorf("failed to insert article: %w", err)
	}

	return nil
}

func (r *ArticleRepo) GetArticleCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get article count: %w", err)
	}
	return count, nil
}

// CountBySource returns the number of stored articles per source label.
func (r *ArticleRepo) CountBySource() ([]SourceCount, error) {
	rows, err := r.db.Query(`
		SELECT source_label, COUNT(*)
		FROM articles
		GROUP BY source_label
		ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count articles by source: %w", err)
	}
	defer rows.Close()

	var counts []SourceCount
	for rows.Next() {
		var sc SourceCount
		if err := rows.Scan(&sc.SourceLabel, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan source count row: %w", err)
		}
		counts = append(counts, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source count rows: %w", err)
	}

	return counts, nil
}

func (r *ArticleRepo) GetRecent(limit int) ([]Article, error) {
	rows, err := r.db.Query(`
		SELECT id, title, slug, body, excerpt, category, source_label,
		       original_url, status, scheduled_at, published_at, created_at, updated_at
		FROM articles
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, nil
}

func scanArticle(rows *sql.Rows) (Article, error) {
	var article Article
	var scheduledAt, publishedAt sql.NullTime

	err := rows.Scan(
		&article.ID, &article.Title, &article.Slug, &article.Body, &article.Excerpt,
		&article.Category, &article.SourceLabel, &article.OriginalURL, &article.Status,
		&scheduledAt, &publishedAt, &article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return Article{}, fmt.Errorf("failed to scan article row: %w", err)
	}

	if scheduledAt.Valid {
		article.ScheduledAt = &scheduledAt.Time
	}
	if publishedAt.Valid {
		article.PublishedAt = &publishedAt.Time
	}

	return article, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
