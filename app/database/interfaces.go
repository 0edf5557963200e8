package database

import (
	"time"
)

type ArticleRepository interface {
	ExistsByTitleOrURL(title, originalURL string) (bool, error)
	SlugExists(slug string) (bool, error)
	Insert(article Article) error

	GetArticleCount() (int, error)
	CountBySource() ([]SourceCount, error)
	GetRecent(limit int) ([]Article, error)
}

// ContentRepository is implemented once per content type so the publication
// pass can treat articles, podcasts, videos and opinions uniformly.
type ContentRepository interface {
	ContentType() string
	GetDueScheduled(now time.Time, limit int) ([]ScheduledItem, error)
	MarkPublished(id string, now time.Time) error
}

type AuditRepository interface {
	Record(entry AuditEntry) error
}
