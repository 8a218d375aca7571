// Package index provides the full-text course index: schema creation,
// bulk loading of aggregated course documents, and the weighted
// multi-field relevance query.
//
// Scoring contract: the base score is the best single weighted field
// among the normalized match fields (best-fields, BM25); independent
// per-field match filters each contribute their configured weight, and
// the final score is base multiplied by the sum of matched filter
// weights. Both combination modes are part of the ranking contract and
// must not be simplified.
package index

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/crawlab-team/bm25"
	"golang.org/x/sync/errgroup"

	"github.com/courseforge/courseplan-go/internal/catalog"
	apperrors "github.com/courseforge/courseplan-go/internal/errors"
	"github.com/courseforge/courseplan-go/internal/logger"
)

// PageSize caps the number of hits returned by a single query.
const PageSize = 10

// BM25 parameters, standard values.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// fieldWeight pairs a match field with its boost.
type fieldWeight struct {
	name   string
	weight float64
}

// matchFields are the weighted normalized fields of the best-fields base
// query. Order is fixed; weights are part of the ranking contract.
var matchFields = []fieldWeight{
	{"title_normalized", 3},
	{"description_normalized", 2},
	{"sections_normalized", 1.5},
	{"topics_normalized", 1},
}

// filterFields are the per-field binary match filters. A filter matches
// when any query token occurs in the raw or normalized variant of its
// field; each match contributes the field weight to the multiplier.
var filterFields = []fieldWeight{
	{"title", 3},
	{"description", 2},
	{"sections", 1.5},
	{"topics", 1},
}

// ScoredHit is one ranked result. Raw source fields are returned;
// normalized variants are used for matching only.
type ScoredHit struct {
	CourseID    string
	Title       string
	Description string
	Sections    []string
	Topics      []string
	Score       float64
	Explanation *Explanation
}

// matchField holds the BM25 scorer for one normalized match field.
type matchField struct {
	weight float64
	scorer *bm25.BM25Okapi // nil when every document is empty in this field
}

// filterField holds per-document token sets for one filter field,
// combining the raw and normalized variants.
type filterField struct {
	weight float64
	tokens []map[string]struct{}
}

// Index is the in-process full-text course index. Rebuild is destructive
// and total; queries are read-only and safe to run concurrently.
type Index struct {
	name     string
	analyzer *Analyzer
	logger   *logger.Logger

	mu      sync.RWMutex
	built   bool
	docs    []*catalog.CourseDocument
	matches map[string]*matchField
	filters map[string]*filterField
}

// New creates an index under the given name. The index is unavailable
// until the first Rebuild completes.
func New(name string, analyzer *Analyzer, log *logger.Logger) *Index {
	return &Index{
		name:     name,
		analyzer: analyzer,
		logger:   log.WithModule("index"),
	}
}

// Name returns the configured index name.
func (idx *Index) Name() string {
	return idx.name
}

// Count returns the number of indexed documents.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

// Ready reports whether the index has been built.
func (idx *Index) Ready() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.built
}

// Rebuild drops any existing index contents and loads the given documents.
// One record per course_id; document order is fixed by sorted id so a
// rebuild from the same catalog is reproducible. Queries issued while a
// rebuild is in flight either see the previous contents or block briefly;
// the startup build races nothing because serving begins after it.
func (idx *Index) Rebuild(docs map[string]*catalog.CourseDocument) error {
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	ordered := make([]*catalog.CourseDocument, len(ids))
	for i, id := range ids {
		ordered[i] = docs[id]
	}

	matches := make(map[string]*matchField, len(matchFields))
	filters := make(map[string]*filterField, len(filterFields))
	var mu sync.Mutex

	// Per-field corpora are independent; build them in parallel.
	var g errgroup.Group
	for _, fw := range matchFields {
		g.Go(func() error {
			corpus := make([]string, len(ordered))
			nonEmpty := false
			for i, doc := range ordered {
				corpus[i] = matchFieldText(doc, fw.name)
				if corpus[i] != "" {
					nonEmpty = true
				}
			}

			mf := &matchField{weight: fw.weight}
			if nonEmpty {
				scorer, err := bm25.NewBM25Okapi(corpus, idx.analyzer.Analyze, bm25K1, bm25B, nil)
				if err != nil {
					return fmt.Errorf("failed to build %s corpus: %w", fw.name, err)
				}
				mf.scorer = scorer
			}

			mu.Lock()
			matches[fw.name] = mf
			mu.Unlock()
			return nil
		})
	}
	for _, fw := range filterFields {
		g.Go(func() error {
			ff := &filterField{weight: fw.weight, tokens: make([]map[string]struct{}, len(ordered))}
			for i, doc := range ordered {
				raw, normalized := filterFieldText(doc, fw.name)
				set := make(map[string]struct{})
				for _, token := range idx.analyzer.Analyze(raw) {
					set[token] = struct{}{}
				}
				for _, token := range idx.analyzer.Analyze(normalized) {
					set[token] = struct{}{}
				}
				ff.tokens[i] = set
			}

			mu.Lock()
			filters[fw.name] = ff
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	idx.mu.Lock()
	idx.docs = ordered
	idx.matches = matches
	idx.filters = filters
	idx.built = true
	idx.mu.Unlock()

	idx.logger.WithField("index", idx.name).WithField("docs", len(ordered)).Info("Index rebuilt")
	return nil
}

// baseCandidate is one field's contribution to the best-fields base score.
type baseCandidate struct {
	field    string
	raw      float64
	weight   float64
	weighted float64
}

// baseMatch is the winning base score of a document.
type baseMatch struct {
	field      string
	score      float64
	candidates []baseCandidate
}

// filterMatch is the evaluation of one match filter for a document.
type filterMatch struct {
	field   string
	weight  float64
	matched bool
}

// Search executes the weighted multi-field query and returns up to
// PageSize hits in descending score order. A query matching nothing
// yields an empty slice and no error; an unbuilt index yields
// ErrIndexUnavailable.
func (idx *Index) Search(ctx context.Context, query string) ([]ScoredHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if !idx.built {
		return nil, fmt.Errorf("index %s: %w", idx.name, apperrors.ErrIndexUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tokens := idx.analyzer.Analyze(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	// Base scores per field, weighted; best field wins per document.
	bases := make([]baseMatch, len(idx.docs))
	for _, fw := range matchFields {
		mf := idx.matches[fw.name]
		if mf.scorer == nil {
			continue
		}
		scores, err := mf.scorer.GetScores(tokens)
		if err != nil {
			return nil, fmt.Errorf("scoring %s failed: %w", fw.name, err)
		}
		for docID, score := range scores {
			if score <= 0 {
				continue
			}
			weighted := score * mf.weight
			bases[docID].candidates = append(bases[docID].candidates, baseCandidate{
				field:    fw.name,
				raw:      score,
				weight:   mf.weight,
				weighted: weighted,
			})
			if weighted > bases[docID].score {
				bases[docID].score = weighted
				bases[docID].field = fw.name
			}
		}
	}

	hits := make([]ScoredHit, 0, PageSize)
	for docID, base := range bases {
		if base.score <= 0 {
			continue
		}

		filters := make([]filterMatch, 0, len(filterFields))
		multiplier := 0.0
		for _, fw := range filterFields {
			ff := idx.filters[fw.name]
			matched := anyTokenIn(tokens, ff.tokens[docID])
			filters = append(filters, filterMatch{field: fw.name, weight: fw.weight, matched: matched})
			if matched {
				multiplier += fw.weight
			}
		}

		// A document can match the text query with no filter matching;
		// the base score then passes through unmodified.
		final := base.score
		if multiplier > 0 {
			final = base.score * multiplier
		}

		doc := idx.docs[docID]
		hits = append(hits, ScoredHit{
			CourseID:    doc.ID,
			Title:       doc.Title,
			Description: doc.Description,
			Sections:    doc.Sections,
			Topics:      doc.Topics,
			Score:       final,
			Explanation: explainHit(base, filters, final),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].CourseID < hits[j].CourseID
	})

	if len(hits) > PageSize {
		hits = hits[:PageSize]
	}
	return hits, nil
}

// matchFieldText returns the normalized text of a match field.
func matchFieldText(doc *catalog.CourseDocument, field string) string {
	switch field {
	case "title_normalized":
		return doc.TitleNormalized
	case "description_normalized":
		return doc.DescriptionNormalized
	case "sections_normalized":
		return strings.Join(doc.SectionsNormalized, " ")
	case "topics_normalized":
		return strings.Join(doc.TopicsNormalized, " ")
	default:
		return ""
	}
}

// filterFieldText returns the raw and normalized variants of a filter field.
func filterFieldText(doc *catalog.CourseDocument, field string) (raw, normalized string) {
	switch field {
	case "title":
		return doc.Title, doc.TitleNormalized
	case "description":
		return doc.Description, doc.DescriptionNormalized
	case "sections":
		return strings.Join(doc.Sections, " "), strings.Join(doc.SectionsNormalized, " ")
	case "topics":
		return strings.Join(doc.Topics, " "), strings.Join(doc.TopicsNormalized, " ")
	default:
		return "", ""
	}
}

// anyTokenIn reports whether any query token occurs in the token set.
func anyTokenIn(tokens []string, set map[string]struct{}) bool {
	for _, token := range tokens {
		if _, ok := set[token]; ok {
			return true
		}
	}
	return false
}
