// Package retrieval ties the normalizer and the course index together:
// it normalizes an incoming query, runs the weighted search, and reduces
// the top hit into the flat context string prompt construction consumes.
package retrieval

import (
	"context"
	"strings"

	"github.com/courseforge/courseplan-go/internal/index"
	"github.com/courseforge/courseplan-go/internal/logger"
	"github.com/courseforge/courseplan-go/internal/normalize"
)

// Result is the outcome of one retrieval. No hits is a valid, common
// outcome: Context is empty and Explanation nil, never an error.
type Result struct {
	Query       string             // normalized query actually searched
	Context     string             // top hit reduced to "sections. topics"
	Hits        []index.ScoredHit  // ranked hits, for debug output
	Explanation *index.Explanation // top hit explanation, nil without hits
}

// Orchestrator runs retrievals. It is stateless and safe for concurrent use.
type Orchestrator struct {
	normalizer *normalize.Normalizer
	idx        *index.Index
	logger     *logger.Logger
}

// NewOrchestrator creates a retrieval orchestrator.
func NewOrchestrator(n *normalize.Normalizer, idx *index.Index, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		normalizer: n,
		idx:        idx,
		logger:     log.WithModule("retrieval"),
	}
}

// Retrieve normalizes the raw query, searches the index, and reduces the
// top hit into a context string. Errors only when the index itself is
// unavailable.
func (o *Orchestrator) Retrieve(ctx context.Context, rawQuery string) (*Result, error) {
	normalized := o.normalizer.Normalize(rawQuery)

	hits, err := o.idx.Search(ctx, normalized)
	if err != nil {
		return nil, err
	}

	result := &Result{Query: normalized, Hits: hits}
	if len(hits) == 0 {
		o.logger.WithField("query", normalized).Debug("No hits")
		return result, nil
	}

	top := hits[0]
	result.Context = reduceHit(top)
	result.Explanation = top.Explanation

	o.logger.WithField("query", normalized).
		WithField("hits", len(hits)).
		WithField("top_course", top.CourseID).
		Debug("Retrieval completed")
	return result, nil
}

// reduceHit flattens a hit into "section, section. topic, topic".
// Both lists empty yields the empty string.
func reduceHit(hit index.ScoredHit) string {
	if len(hit.Sections) == 0 && len(hit.Topics) == 0 {
		return ""
	}
	return strings.Join(hit.Sections, ", ") + ". " + strings.Join(hit.Topics, ", ")
}
