// Package sentry wires error tracking to Better Stack through the
// Sentry Go SDK. Better Stack ingests Sentry-protocol events, so the
// DSN is assembled from a token and ingesting host.
package sentry

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// Config holds error tracking configuration.
type Config struct {
	// Token is the Better Stack Errors application token. Empty disables
	// error tracking entirely.
	Token string

	// Host is the Better Stack ingesting host, e.g. "errors.betterstack.com".
	Host string

	// Environment identifies the deployment environment.
	Environment string

	// Release identifies the running build.
	Release string
}

// Initialize sets up the SDK. A missing token disables tracking and is
// not an error; a token without a host is a configuration mistake.
// The DSN form is https://$TOKEN@$HOST/1; Better Stack ignores the
// project ID but the SDK requires one.
func Initialize(cfg Config) error {
	if cfg.Token == "" {
		return nil
	}
	if cfg.Host == "" {
		return fmt.Errorf("sentry host is required when token is provided")
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              fmt.Sprintf("https://%s@%s/1", cfg.Token, cfg.Host),
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		SampleRate:       1.0,
		AttachStacktrace: true,
	})
}

// Flush waits for buffered events to reach the server, up to timeout.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// CaptureException reports an error, preferring the request-scoped hub
// installed by the gin middleware when one is present.
func CaptureException(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}
