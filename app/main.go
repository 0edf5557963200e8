package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/punjabxpress/newsroom/app/api"
	"github.com/punjabxpress/newsroom/app/cfg"
	"github.com/punjabxpress/newsroom/app/database"
	"github.com/punjabxpress/newsroom/app/enhancer"
	"github.com/punjabxpress/newsroom/app/feed"
	"github.com/punjabxpress/newsroom/app/ingest"
	"github.com/punjabxpress/newsroom/app/publisher"
	"github.com/punjabxpress/newsroom/app/scheduler"
	"github.com/punjabxpress/newsroom/app/sources"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Newsroom server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	registry, err := sources.Load(appCfg.SourcesFile)
	if err != nil {
		slog.Error("Failed to load source registry", "error", err)
		os.Exit(1)
	}
	slog.Info("Source registry loaded", "sources", registry.SourceCount())

	articleRepo := database.NewArticleRepository(db)
	auditRepo := database.NewAuditRepository(db)

	var contentRepos []database.ContentRepository
	for _, contentType := range database.ContentTypes() {
		repo, err := database.NewScheduledContentRepository(db, contentType)
		if err != nil {
			slog.Error("Failed to create content repository", "content_type", contentType, "error", err)
			os.Exit(1)
		}
		contentRepos = append(contentRepos, repo)
	}

	httpTimeout := time.Duration(appCfg.HTTPTimeout) * time.Second
	httpClient := &http.Client{Timeout: httpTimeout}

	fetcher := feed.NewFetcher(httpClient, registry, appCfg.UserAgent, httpTimeout)
	contentEnhancer := enhancer.NewEnhancer(appCfg.UserAgent, httpTimeout)
	persister := ingest.NewPersister(articleRepo)
	scrapers := ingest.NewScraperRegistry()

	orchestrator := ingest.NewOrchestrator(registry, fetcher, contentEnhancer, persister,
		scrapers, articleRepo, time.Duration(appCfg.SourceDelay)*time.Second)

	controller := scheduler.NewController(orchestrator,
		time.Duration(appCfg.FullSyncInterval)*time.Hour,
		time.Duration(appCfg.RSSSyncInterval)*time.Minute)
	if appCfg.AutoSync {
		controller.Enable()
	} else {
		slog.Info("Auto-sync disabled at startup")
	}
	defer controller.Stop()

	contentPublisher := publisher.NewPublisher(contentRepos, auditRepo,
		time.Duration(appCfg.PublishInterval)*time.Second)
	contentPublisher.Start()
	defer contentPublisher.Stop()

	handler := api.NewHandler(orchestrator, controller, articleRepo)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute, // manual fetch endpoints run synchronously
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("HTTP server error", "error", err)
	}

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Controller and publisher are stopped via defer
	slog.Info("Shutdown complete")
}
