package api

import (
	"context"

	"github.com/punjabxpress/newsroom/app/database"
	"github.com/punjabxpress/newsroom/app/ingest"
	"github.com/punjabxpress/newsroom/app/scheduler"
)

type OrchestratorInterface interface {
	FetchRSSOnly(ctx context.Context) ingest.Summary
	FetchScrapingOnly(ctx context.Context) ingest.Summary
	FetchAll(ctx context.Context) ingest.Summary
}

var _ OrchestratorInterface = (*ingest.Orchestrator)(nil)

type SchedulerInterface interface {
	Enable()
	Disable()
	Status() scheduler.Status
}

var _ SchedulerInterface = (*scheduler.Controller)(nil)

type Handler struct {
	orchestrator OrchestratorInterface
	scheduler    SchedulerInterface
	articleRepo  database.ArticleRepository
}
