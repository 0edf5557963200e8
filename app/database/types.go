package database

import (
	"time"
)

// Content lifecycle statuses shared by every schedulable content type.
const (
	StatusDraft     = "draft"
	StatusScheduled = "scheduled"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

type Article struct {
	ID          string
	Title       string
	Slug        string // Derived from the cleaned title, unique across all articles
	Body        string
	Excerpt     string
	Category    string
	SourceLabel string // Provider name after the label block-list filter
	OriginalURL string
	Status      string
	ScheduledAt *time.Time
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ScheduledItem is the uniform shape the publication pass reads from every
// content table.
type ScheduledItem struct {
	ID          string
	Title       string
	Slug        string
	ScheduledAt time.Time
}

type AuditEntry struct {
	ID          string
	ContentType string
	ContentID   string
	Action      string
	Actor       string
	Detail      string
	CreatedAt   time.Time
}

type SourceCount struct {
	SourceLabel string `json:"source_label"`
	Count       int    `json:"count"`
}
