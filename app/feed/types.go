package feed

import (
	"time"
)

// Candidate is a parsed-but-not-yet-persisted article. Transient; the
// persister turns surviving candidates into stored records.
type Candidate struct {
	Title       string
	Slug        string
	Link        string
	Body        string
	SourceLabel string
	Category    Category
	Tags        []string
	PublishedAt time.Time
}
