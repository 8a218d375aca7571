// Package main provides a catalog seeding tool. It imports a JSON
// fixture of courses into the SQLite catalog so the server can build
// its search index on the next start.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/courseforge/courseplan-go/internal/catalog"
	"github.com/courseforge/courseplan-go/internal/config"
	"github.com/courseforge/courseplan-go/internal/logger"
)

func main() {
	fixture := flag.String("fixture", "", "path to the catalog fixture JSON (defaults to CATALOG_FIXTURE)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	path := *fixture
	if path == "" {
		path = cfg.FixturePath
	}
	if path == "" {
		log.Error("No fixture given: pass -fixture or set CATALOG_FIXTURE")
		os.Exit(2)
	}

	store, err := catalog.NewStore(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Fatal("Failed to open catalog store")
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	imported, err := store.ImportFixture(ctx, path)
	if err != nil {
		log.WithError(err).Fatal("Failed to import fixture")
	}

	total, err := store.CountCourses(ctx)
	if err != nil {
		log.WithError(err).Fatal("Failed to count courses")
	}

	log.WithField("imported", imported).
		WithField("total", total).
		WithField("db", store.Path()).
		Info("Catalog seeded")
}
