package server

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courseforge/courseplan-go/internal/retrieval"
)

// retrievalDump is the on-disk form of one retrieval, written when a
// caller sets write_to_file.
type retrievalDump struct {
	Timestamp     time.Time `json:"timestamp"`
	UserQuery     string    `json:"user_query"`
	RetrievedData string    `json:"retrieved_data"`
	Hits          []Hit     `json:"hits"`
}

// writeRetrieved dumps a retrieval result into the configured directory
// and returns the file path. File names are unique per request.
func (h *Handler) writeRetrieved(query string, result *retrieval.Result) (string, error) {
	dir := h.cfg.RetrievedDir
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create retrieved dir: %w", err)
	}

	dump := retrievalDump{
		Timestamp:     time.Now().UTC(),
		UserQuery:     query,
		RetrievedData: result.Context,
		Hits:          wireHits(result.Hits),
	}

	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal retrieval dump: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("retrieved_%s.json", uuid.NewString()))
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", fmt.Errorf("failed to write retrieval dump: %w", err)
	}
	return path, nil
}

// contextWithTimeout derives a deadline context from the request.
func contextWithTimeout(c *gin.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), d)
}
