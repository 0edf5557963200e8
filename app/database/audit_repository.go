package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ AuditRepository = (*AuditRepo)(nil)

// AuditRepo persists audit records for content state transitions.
type AuditRepo struct {
	db *DB
}

func NewAuditRepository(db *DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) Record(entry AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(`
		INSERT INTO audit_log (id, content_type, content_id, action, actor, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.ContentType, entry.ContentID, entry.Action, entry.Actor,
		entry.Detail, entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	return nil
}
