package database

import (
	"fmt"
	"time"
)

var _ ContentRepository = (*ScheduledContentRepo)(nil)

// contentTables maps each schedulable content type to its table. Every table
// carries the same {status, scheduled_at, published_at, slug} shape, so one
// repository implementation serves them all.
var contentTables = map[string]string{
	"article": "articles",
	"podcast": "podcasts",
	"video":   "videos",
	"opinion": "opinions",
}

// ContentTypes lists the schedulable content types in a stable order.
func ContentTypes() []string {
	return []string{"article", "podcast", "video", "opinion"}
}

// ScheduledContentRepo handles the scheduled-to-published transition queries
// for a single content type.
type ScheduledContentRepo struct {
	db          *DB
	contentType string
	table       string
}

func NewScheduledContentRepository(db *DB, contentType string) (*ScheduledContentRepo, error) {
	table, ok := contentTables[contentType]
	if !ok {
		return nil, fmt.Errorf("unknown content type: %s", contentType)
	}
	return &ScheduledContentRepo{db: db, contentType: contentType, table: table}, nil
}

func (r *ScheduledContentRepo) ContentType() string {
	return r.contentType
}

// GetDueScheduled returns up to limit items whose scheduled time has arrived.
func (r *ScheduledContentRepo) GetDueScheduled(now time.Time, limit int) ([]ScheduledItem, error) {
	query := fmt.Sprintf(`
		SELECT id, title, slug, scheduled_at
		FROM %s
		WHERE status = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?
		ORDER BY scheduled_at
		LIMIT ?
	`, r.table)

	rows, err := r.db.Query(query, StatusScheduled, now.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get due %s items: %w", r.contentType, err)
	}
	defer rows.Close()

	var items []ScheduledItem
	for rows.Next() {
		var item ScheduledItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Slug, &item.ScheduledAt); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", r.contentType, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", r.contentType, err)
	}

	return items, nil
}

// MarkPublished promotes the item to published. The publication timestamp is
// only set when the item does not already carry one.
func (r *ScheduledContentRepo) MarkPublished(id string, now time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = ?, published_at = COALESCE(published_at, ?), updated_at = ?
		WHERE id = ?
	`, r.table)

	result, err := r.db.Exec(query, StatusPublished, now.UTC(), now.UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to mark %s %s published: %w", r.contentType, id, err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("%s %s not found", r.contentType, id)
	}

	return nil
}
