package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/punjabxpress/newsroom/app/cfg"
	"github.com/punjabxpress/newsroom/app/database"
)

// recentStatusLimit caps how many recent articles the status endpoint
// returns.
const recentStatusLimit = 10

func NewHandler(orchestrator OrchestratorInterface, scheduler SchedulerInterface,
	articleRepo database.ArticleRepository) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		scheduler:    scheduler,
		articleRepo:  articleRepo,
	}
}

// FetchRSS triggers a synchronous RSS-only ingestion run. The response is
// held until the run completes.
func (h *Handler) FetchRSS(c *gin.Context) {
	slog.Info("Manual RSS ingestion triggered")

	summary := h.orchestrator.FetchRSSOnly(c.Request.Context())
	if !summary.Success {
		c.JSON(http.StatusInternalServerError, summary)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// FetchScraping triggers a synchronous scraping-only ingestion run.
func (h *Handler) FetchScraping(c *gin.Context) {
	slog.Info("Manual scraping ingestion triggered")

	summary := h.orchestrator.FetchScrapingOnly(c.Request.Context())
	if !summary.Success {
		c.JSON(http.StatusInternalServerError, summary)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// FetchAll triggers a synchronous combined RSS and scraping run.
func (h *Handler) FetchAll(c *gin.Context) {
	slog.Info("Manual full ingestion triggered")

	summary := h.orchestrator.FetchAll(c.Request.Context())
	if !summary.Success {
		c.JSON(http.StatusInternalServerError, summary)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetStatus reports stored article totals, per-source counts and the most
// recent articles.
func (h *Handler) GetStatus(c *gin.Context) {
	total, err := h.articleRepo.GetArticleCount()
	if err != nil {
		slog.Error("Database error", "operation", "get_article_count", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	status := gin.H{
		"total_articles": total,
		"timestamp":      time.Now().In(time.Local).Format(time.RFC3339),
	}

	if counts, err := h.articleRepo.CountBySource(); err == nil {
		bySource := make(map[string]int, len(counts))
		for _, sc := range counts {
			bySource[sc.SourceLabel] = sc.Count
		}
		status["by_source"] = bySource
	}

	if recent, err := h.articleRepo.GetRecent(recentStatusLimit); err == nil {
		items := make([]gin.H, 0, len(recent))
		for _, a := range recent {
			items = append(items, gin.H{
				"title":        a.Title,
				"slug":         a.Slug,
				"category":     a.Category,
				"source_label": a.SourceLabel,
				"published_at": a.PublishedAt,
			})
		}
		status["recent"] = items
	}

	c.JSON(http.StatusOK, status)
}

// EnableAutoSync turns the recurring ingestion timers on.
func (h *Handler) EnableAutoSync(c *gin.Context) {
	h.scheduler.Enable()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Auto-sync enabled",
		"status":  h.scheduler.Status(),
	})
}

// DisableAutoSync turns the recurring ingestion timers off. When the
// response is sent, no further automatic fetch will occur.
func (h *Handler) DisableAutoSync(c *gin.Context) {
	h.scheduler.Disable()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Auto-sync disabled",
		"status":  h.scheduler.Status(),
	})
}

// GetSchedulerStatus reports the current scheduler state.
func (h *Handler) GetSchedulerStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.scheduler.Status())
}

// GetHealth is the unauthenticated liveness endpoint.
func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"status":    "ok",
		"version":   cfg.GetVersion(),
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if total, err := h.articleRepo.GetArticleCount(); err == nil {
		health["articles"] = total
	} else {
		health["status"] = "degraded"
	}

	c.JSON(http.StatusOK, health)
}
