package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/punjabxpress/newsroom/app/database"
)

// SystemActor is recorded on audit entries for transitions no human
// requested.
const SystemActor = "system:auto-publish"

// publishBatchSize bounds how many due items one pass promotes per content
// type.
const publishBatchSize = 50

// Publisher promotes scheduled content whose time has arrived to published.
// It runs on its own fixed interval, independent of the ingestion
// scheduler, and guards each pass with a try-lock so a slow pass is skipped
// rather than overlapped.
type Publisher struct {
	contentRepos []database.ContentRepository
	auditRepo    database.AuditRepository
	interval     time.Duration

	// lifecycleMu serializes Start and Stop end to end; mu alone guards
	// the state fields and is never held across cancel or wait.
	lifecycleMu sync.Mutex

	passMu  sync.Mutex
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewPublisher(contentRepos []database.ContentRepository, auditRepo database.AuditRepository,
	interval time.Duration) *Publisher {
	return &Publisher{
		contentRepos: contentRepos,
		auditRepo:    auditRepo,
		interval:     interval,
	}
}

// Start begins the recurring publication passes.
func (p *Publisher) Start() {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.running = true
	p.wg.Add(1)
	p.mu.Unlock()

	go p.loop(ctx)

	slog.Info("Publication scheduler started", "interval", p.interval.String())
}

// Stop cancels the recurring passes and waits for an in-flight pass to
// finish. Idempotent.
func (p *Publisher) Stop() {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	cancel := p.cancel
	p.running = false
	p.cancel = nil
	p.mu.Unlock()

	cancel()
	p.wg.Wait()

	slog.Info("Publication scheduler stopped")
}

func (p *Publisher) loop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.RunPass(ctx)
		}
	}
}

// RunPass promotes every due item across all content types and returns the
// number of items published. A failure on one item or one content type is
// logged and does not stop the rest of the pass.
func (p *Publisher) RunPass(ctx context.Context) int {
	if !p.passMu.TryLock() {
		slog.Warn("Publication pass already in progress, skipping")
		return 0
	}
	defer p.passMu.Unlock()

	now := time.Now().UTC()
	published := 0

	for _, repo := range p.contentRepos {
		select {
		case <-ctx.Done():
			return published
		default:
		}

		items, err := repo.GetDueScheduled(now, publishBatchSize)
		if err != nil {
			slog.Error("Failed to query due items", "content_type", repo.ContentType(), "error", err)
			continue
		}

		for _, item := range items {
			if err := repo.MarkPublished(item.ID, now); err != nil {
				slog.Error("Failed to publish item", "content_type", repo.ContentType(),
					"id", item.ID, "error", err)
				continue
			}
			published++

			entry := database.AuditEntry{
				ContentType: repo.ContentType(),
				ContentID:   item.ID,
				Action:      "publish",
				Actor:       SystemActor,
				Detail:      fmt.Sprintf("auto-published %q (scheduled for %s)", item.Title, item.ScheduledAt.Format(time.RFC3339)),
			}
			if err := p.auditRepo.Record(entry); err != nil {
				slog.Warn("Failed to record audit entry", "content_type", repo.ContentType(),
					"id", item.ID, "error", err)
			}

			slog.Info("Content published", "content_type", repo.ContentType(),
				"id", item.ID, "slug", item.Slug)
		}
	}

	return published
}
