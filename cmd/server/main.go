// Package main provides the course planner server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/courseforge/courseplan-go/internal/buildinfo"
	"github.com/courseforge/courseplan-go/internal/catalog"
	"github.com/courseforge/courseplan-go/internal/config"
	"github.com/courseforge/courseplan-go/internal/genai"
	"github.com/courseforge/courseplan-go/internal/index"
	"github.com/courseforge/courseplan-go/internal/logger"
	"github.com/courseforge/courseplan-go/internal/metrics"
	"github.com/courseforge/courseplan-go/internal/normalize"
	"github.com/courseforge/courseplan-go/internal/prompt"
	"github.com/courseforge/courseplan-go/internal/retrieval"
	"github.com/courseforge/courseplan-go/internal/sentry"
	"github.com/courseforge/courseplan-go/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithOptions(cfg.LogLevel, logger.Options{
		BetterstackToken:    cfg.BetterstackToken,
		BetterstackEndpoint: cfg.BetterstackEndpoint,
	})
	log.Info("Starting course planner server")

	if err := sentry.Initialize(sentry.Config{
		Token:       cfg.SentryToken,
		Host:        cfg.SentryHost,
		Environment: getEnvName(),
		Release:     buildinfo.Release(),
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize error tracking")
	}
	defer sentry.Flush(2 * time.Second)

	// Open the catalog store
	store, err := catalog.NewStore(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Fatal("Failed to open catalog store")
	}
	defer func() { _ = store.Close() }()
	log.WithField("path", store.Path()).Info("Catalog store opened")

	ctx := context.Background()

	// Import the fixture when one is configured and the catalog is empty
	if cfg.FixturePath != "" {
		count, err := store.CountCourses(ctx)
		if err != nil {
			log.WithError(err).Fatal("Failed to count courses")
		}
		if count == 0 {
			imported, err := store.ImportFixture(ctx, cfg.FixturePath)
			if err != nil {
				log.WithError(err).Fatal("Failed to import catalog fixture")
			}
			log.WithField("courses", imported).Info("Catalog fixture imported")
		}
	}

	// Prometheus registry with standard collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())
	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Build the search index from the catalog
	normalizer := normalize.New()
	analyzer := index.NewAnalyzer()
	idx := index.New("courses", analyzer, log)

	rows, err := store.ListRows(ctx)
	if err != nil {
		log.WithError(err).Fatal("Failed to load catalog rows")
	}
	docs := catalog.Aggregate(rows, normalizer)
	if err := idx.Rebuild(docs); err != nil {
		m.RecordIndexRebuild("error", 0)
		log.WithError(err).Fatal("Failed to build search index")
	}
	m.RecordIndexRebuild("success", idx.Count())
	log.WithField("courses", idx.Count()).Info("Search index built")

	retriever := retrieval.NewOrchestrator(normalizer, idx, log)

	// Few-shot example store
	examples, err := prompt.LoadExampleStore(cfg.ExamplesPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load example store")
	}
	if examples.Len() > 0 {
		log.WithField("titles", examples.Len()).Info("Example store loaded")
	}

	// Generation gateway; retrieval still works without one
	var generator genai.Generator
	if cfg.HasGenerationProvider() {
		gateway, err := genai.NewGateway(ctx, cfg, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to create generation gateway")
		}
		defer func() { _ = gateway.Close() }()
		generator = gateway
		log.WithField("provider", gateway.Provider()).Info("Generation gateway created")
	} else {
		log.Warn("No generation provider configured, /generate disabled")
	}

	handler := server.NewHandler(server.HandlerConfig{
		Config:    cfg,
		Logger:    log,
		Retriever: retriever,
		Generator: generator,
		Examples:  examples,
		Metrics:   m,
	})

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(sentryMiddleware())

	setupRoutes(router, handler, store, idx, cfg, registry)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  config.HTTPRead,
		WriteTimeout: config.HTTPWrite,
		IdleTimeout:  config.HTTPIdle,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	if err := store.Close(); err != nil {
		log.WithError(err).Error("Failed to close catalog store")
	}

	log.Info("Server stopped")
}

// getEnvName reports the deployment environment for error tracking.
func getEnvName() string {
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		return env
	}
	return "production"
}
