// Package main provides the course planner server entry point.
package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/courseforge/courseplan-go/internal/buildinfo"
	"github.com/courseforge/courseplan-go/internal/catalog"
	"github.com/courseforge/courseplan-go/internal/config"
	"github.com/courseforge/courseplan-go/internal/index"
	"github.com/courseforge/courseplan-go/internal/server"
)

// setupRoutes configures all HTTP routes
func setupRoutes(router *gin.Engine, handler *server.Handler, store *catalog.Store, idx *index.Index, cfg *config.Config, registry *prometheus.Registry) {
	// Liveness probe - process is running, no dependency checks
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "release": buildinfo.Release()})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness probe - catalog reachable and index built
	readyHandler := func(c *gin.Context) {
		if err := store.Ready(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": err.Error(),
			})
			return
		}
		if !idx.Ready() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": "search index not built",
			})
			return
		}

		courseCount, _ := store.CountCourses(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"status":   "ready",
			"database": "connected",
			"index": gin.H{
				"name":      idx.Name(),
				"documents": idx.Count(),
			},
			"courses": courseCount,
		})
	}
	router.GET("/ready", readyHandler)
	router.HEAD("/ready", readyHandler)

	// Core endpoints
	router.POST("/retrieve", handler.Retrieve)
	router.POST("/generate", handler.Generate)

	// Prometheus metrics endpoint, behind Basic Auth when a password is set
	metricsHandler := gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if cfg.MetricsPassword != "" {
		authorized := router.Group("/", gin.BasicAuth(gin.Accounts{
			cfg.MetricsUsername: cfg.MetricsPassword,
		}))
		authorized.GET("/metrics", metricsHandler)
	} else {
		router.GET("/metrics", metricsHandler)
	}
}
