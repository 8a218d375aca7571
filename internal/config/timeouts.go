// Timeout defaults for the course planner.
//
// The index query is in-process, so its budget mostly guards pathological
// queries. The generation call crosses the network to an LLM provider and
// dominates request latency; its budget leaves room for one retry.
package config

import "time"

const (
	// SearchQuery is the deadline for a single index query.
	SearchQuery = 5 * time.Second

	// GenerationCall is the deadline for a single generation gateway call,
	// including provider-side retries.
	GenerationCall = 60 * time.Second

	// HTTPRead is the HTTP server read timeout. Request bodies are small JSON.
	HTTPRead = 10 * time.Second

	// HTTPWrite is the HTTP server write timeout.
	// Must accommodate GenerationCall plus response serialization.
	HTTPWrite = 90 * time.Second

	// HTTPIdle is the HTTP server idle timeout for keep-alive connections.
	HTTPIdle = 120 * time.Second

	// GracefulShutdown allows in-flight requests to complete before
	// forceful termination.
	GracefulShutdown = 30 * time.Second
)
