// Package server provides the HTTP handlers for course retrieval and
// course structure generation.
package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/courseforge/courseplan-go/internal/config"
	apperrors "github.com/courseforge/courseplan-go/internal/errors"
	"github.com/courseforge/courseplan-go/internal/genai"
	"github.com/courseforge/courseplan-go/internal/index"
	"github.com/courseforge/courseplan-go/internal/logger"
	"github.com/courseforge/courseplan-go/internal/metrics"
	"github.com/courseforge/courseplan-go/internal/prompt"
	"github.com/courseforge/courseplan-go/internal/retrieval"
	"github.com/courseforge/courseplan-go/internal/sentry"
)

// Handler serves the retrieval and generation endpoints.
type Handler struct {
	cfg       *config.Config
	logger    *logger.Logger
	retriever *retrieval.Orchestrator
	generator genai.Generator
	examples  *prompt.ExampleStore
	metrics   *metrics.Metrics
}

// HandlerConfig holds dependencies for creating a new Handler.
type HandlerConfig struct {
	Config    *config.Config
	Logger    *logger.Logger
	Retriever *retrieval.Orchestrator
	Generator genai.Generator
	Examples  *prompt.ExampleStore
	Metrics   *metrics.Metrics
}

// NewHandler creates the endpoint handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		cfg:       cfg.Config,
		logger:    cfg.Logger.WithModule("server"),
		retriever: cfg.Retriever,
		generator: cfg.Generator,
		examples:  cfg.Examples,
		metrics:   cfg.Metrics,
	}
}

// RetrieveRequest is the body of POST /retrieve.
type RetrieveRequest struct {
	Title       string   `json:"title"`
	Keywords    []string `json:"keywords"`
	Debug       bool     `json:"debug"`
	WriteToFile bool     `json:"write_to_file"`
}

// RetrieveResponse is the body of a successful POST /retrieve.
type RetrieveResponse struct {
	UserQuery     string             `json:"user_query"`
	RetrievedData string             `json:"retrieved_data"`
	Hits          []Hit              `json:"hits,omitempty"`
	Explanation   *index.Explanation `json:"explanation,omitempty"`
	Path          string             `json:"path,omitempty"`
}

// Hit is the wire form of one ranked search result.
type Hit struct {
	CourseID    string   `json:"course_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Sections    []string `json:"sections"`
	Topics      []string `json:"topics"`
	Score       float64  `json:"score"`
}

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	Title    string   `json:"title"`
	Keywords []string `json:"keywords"`
	Level    string   `json:"level"`
	Hours    int      `json:"hours"`
	RAG      *bool    `json:"rag"`
	Approach string   `json:"approach"`
	Debug    bool     `json:"debug"`
}

// GenerateResponse is the body of a successful POST /generate.
type GenerateResponse struct {
	UserQuery     string             `json:"user_query"`
	RetrievedData string             `json:"retrieved_data"`
	GeneratedData string             `json:"generated_data"`
	Prompt        string             `json:"prompt,omitempty"`
	Explanation   *index.Explanation `json:"explanation,omitempty"`
}

// Retrieve handles POST /retrieve: search the course index for the title
// plus keywords and return the reduced context of the best hit.
func (h *Handler) Retrieve(c *gin.Context) {
	var req RetrieveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordHTTPError("bad_request", "retrieve")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		h.metrics.RecordHTTPError("bad_request", "retrieve")
		c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
		return
	}

	query := buildQuery(req.Title, req.Keywords)

	start := time.Now()
	result, err := h.retrieve(c, query)
	duration := time.Since(start).Seconds()

	if err != nil {
		status := h.searchStatus(c, err, "retrieve")
		h.metrics.RecordSearch("error", duration, 0)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if len(result.Hits) == 0 {
		h.metrics.RecordSearch("empty", duration, 0)
	} else {
		h.metrics.RecordSearch("success", duration, len(result.Hits))
	}

	resp := RetrieveResponse{
		UserQuery:     query,
		RetrievedData: result.Context,
	}
	if req.Debug {
		resp.Hits = wireHits(result.Hits)
		resp.Explanation = result.Explanation
	}
	if req.WriteToFile {
		path, err := h.writeRetrieved(query, result)
		if err != nil {
			h.logger.WithError(err).Warn("Failed to write retrieval dump")
		} else {
			resp.Path = path
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Generate handles POST /generate: retrieve context, build the prompt
// for the requested approach, and run it through the generation gateway.
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordHTTPError("bad_request", "generate")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		h.metrics.RecordHTTPError("bad_request", "generate")
		c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
		return
	}

	if h.generator == nil {
		h.metrics.RecordHTTPError("unavailable", "generate")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no generation provider configured"})
		return
	}

	approach, err := prompt.ParseApproach(req.Approach)
	if err != nil {
		h.metrics.RecordHTTPError("bad_request", "generate")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	useRAG := req.RAG == nil || *req.RAG
	query := buildQuery(req.Title, req.Keywords)

	result := &retrieval.Result{Query: query}
	if useRAG {
		start := time.Now()
		result, err = h.retrieve(c, query)
		duration := time.Since(start).Seconds()
		if err != nil {
			status := h.searchStatus(c, err, "generate")
			h.metrics.RecordSearch("error", duration, 0)
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		if len(result.Hits) == 0 {
			h.metrics.RecordSearch("empty", duration, 0)
		} else {
			h.metrics.RecordSearch("success", duration, len(result.Hits))
		}
	}

	builder := prompt.NewBuilder(h.examples).
		Title(req.Title).
		Context(result.Context).
		Keywords(req.Keywords).
		EducationLevel(req.Level).
		Hours(req.Hours).
		UseContext(useRAG).
		ApproachStrategy(approach)

	promptText, err := builder.Build()
	if err != nil {
		h.metrics.RecordHTTPError("bad_request", "generate")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genCtx, cancel := c.Request.Context(), func() {}
	if h.cfg.GenerationTimeout > 0 {
		genCtx, cancel = contextWithTimeout(c, h.cfg.GenerationTimeout)
	}
	defer cancel()

	provider := h.generator.Provider().String()
	start := time.Now()
	generated, err := h.generator.Generate(genCtx, promptText)
	duration := time.Since(start).Seconds()

	if err != nil {
		h.metrics.RecordGeneration(provider, "error", duration)
		h.metrics.RecordHTTPError("generation", "generate")
		sentry.CaptureException(c.Request.Context(), err)
		h.logger.WithError(err).WithField("approach", approach).Error("Generation failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "generation failed"})
		return
	}
	h.metrics.RecordGeneration(provider, "success", duration)

	resp := GenerateResponse{
		UserQuery:     query,
		RetrievedData: result.Context,
		GeneratedData: generated,
	}
	if req.Debug {
		resp.Prompt = promptText
		resp.Explanation = result.Explanation
	}

	c.JSON(http.StatusOK, resp)
}

// retrieve runs one retrieval under the configured search timeout.
func (h *Handler) retrieve(c *gin.Context, query string) (*retrieval.Result, error) {
	ctx, cancel := contextWithTimeout(c, h.cfg.SearchTimeout)
	defer cancel()
	return h.retriever.Retrieve(ctx, query)
}

// searchStatus maps a retrieval error to an HTTP status and records it.
func (h *Handler) searchStatus(c *gin.Context, err error, endpoint string) int {
	if errors.Is(err, apperrors.ErrIndexUnavailable) {
		h.metrics.RecordHTTPError("unavailable", endpoint)
		return http.StatusServiceUnavailable
	}
	h.metrics.RecordHTTPError("internal", endpoint)
	sentry.CaptureException(c.Request.Context(), err)
	h.logger.WithError(err).Error("Retrieval failed")
	return http.StatusInternalServerError
}

// buildQuery joins the title and keywords into one search query.
func buildQuery(title string, keywords []string) string {
	parts := make([]string, 0, len(keywords)+1)
	parts = append(parts, strings.TrimSpace(title))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			parts = append(parts, kw)
		}
	}
	return strings.Join(parts, " ")
}

// wireHits converts index hits to their wire form.
func wireHits(hits []index.ScoredHit) []Hit {
	out := make([]Hit, len(hits))
	for i, hit := range hits {
		out[i] = Hit{
			CourseID:    hit.CourseID,
			Title:       hit.Title,
			Description: hit.Description,
			Sections:    hit.Sections,
			Topics:      hit.Topics,
			Score:       hit.Score,
		}
	}
	return out
}
