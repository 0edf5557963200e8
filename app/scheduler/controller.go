package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/punjabxpress/newsroom/app/ingest"
)

// IngestRunner is the slice of the orchestrator the controller drives.
type IngestRunner interface {
	FetchAll(ctx context.Context) ingest.Summary
	FetchRSSOnly(ctx context.Context) ingest.Summary
}

// Status is a point-in-time snapshot of the controller. NextRunEstimate is
// advisory only: it is computed as now plus the RSS interval, not read from
// the timers.
type Status struct {
	Enabled         bool       `json:"enabled"`
	LastRunAt       *time.Time `json:"last_run_at"`
	NextRunEstimate *time.Time `json:"next_run_estimate"`
	ActiveTasks     int        `json:"active_tasks"`
}

// Controller owns the recurring ingestion timers: one full (RSS plus
// scraping) trigger on a long period and one RSS-only trigger on a shorter
// one. All state lives on the instance so tests can construct fresh
// controllers.
type Controller struct {
	runner       IngestRunner
	fullInterval time.Duration
	rssInterval  time.Duration

	// lifecycleMu serializes Start and Stop end to end; mu alone guards
	// the state fields and is never held across cancel or wait.
	lifecycleMu sync.Mutex

	mu          sync.Mutex
	enabled     bool
	running     bool
	activeTasks int
	lastRun     *time.Time
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

func NewController(runner IngestRunner, fullInterval, rssInterval time.Duration) *Controller {
	return &Controller{
		runner:       runner,
		fullInterval: fullInterval,
		rssInterval:  rssInterval,
	}
}

// Start registers both recurring triggers and fires them immediately.
// No-op when timers are already active. A Start racing a Stop waits for the
// stop sequence to complete rather than reusing its WaitGroup.
func (c *Controller) Start() {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.running = true
	c.activeTasks = 2
	c.wg.Add(2)
	c.mu.Unlock()

	go c.loop(ctx, c.fullInterval, "full_sync", c.runFull)
	go c.loop(ctx, c.rssInterval, "rss_sync", c.runRSS)

	slog.Info("Ingestion scheduler started",
		"full_interval", c.fullInterval.String(), "rss_interval", c.rssInterval.String())
}

// Stop cancels all timers and waits for in-flight fires to finish before
// returning. Idempotent.
func (c *Controller) Stop() {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	cancel := c.cancel
	c.running = false
	c.activeTasks = 0
	c.cancel = nil
	c.mu.Unlock()

	cancel()
	c.wg.Wait()

	slog.Info("Ingestion scheduler stopped")
}

// Enable turns auto-sync on and starts the timers.
func (c *Controller) Enable() {
	c.mu.Lock()
	c.enabled = true
	c.mu.Unlock()

	c.Start()
}

// Disable turns auto-sync off and synchronously stops the timers. When it
// returns, no further automatic fetch will occur: queued fires are also
// blocked by the enabled check at fire time.
func (c *Controller) Disable() {
	c.mu.Lock()
	c.enabled = false
	c.mu.Unlock()

	c.Stop()
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := Status{
		Enabled:     c.enabled,
		LastRunAt:   c.lastRun,
		ActiveTasks: c.activeTasks,
	}

	if c.enabled && c.running {
		next := time.Now().UTC().Add(c.rssInterval)
		status.NextRunEstimate = &next
	}

	return status
}

func (c *Controller) loop(ctx context.Context, interval time.Duration, name string, fire func(context.Context)) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	fire(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !c.isEnabled() {
				slog.Debug("Scheduler disabled, skipping fire", "trigger", name)
				continue
			}
			fire(ctx)
		}
	}
}

func (c *Controller) runFull(ctx context.Context) {
	if !c.isEnabled() {
		return
	}
	summary := c.runner.FetchAll(ctx)
	c.recordRun()
	slog.Info("Scheduled full ingestion finished", "saved", summary.TotalSaved, "success", summary.Success)
}

func (c *Controller) runRSS(ctx context.Context) {
	if !c.isEnabled() {
		return
	}
	summary := c.runner.FetchRSSOnly(ctx)
	c.recordRun()
	slog.Info("Scheduled RSS ingestion finished", "saved", summary.TotalSaved, "success", summary.Success)
}

func (c *Controller) isEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

func (c *Controller) recordRun() {
	now := time.Now().UTC()
	c.mu.Lock()
	c.lastRun = &now
	c.mu.Unlock()
}
