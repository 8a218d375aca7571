package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/courseforge/courseplan-go/internal/catalog"
	"github.com/courseforge/courseplan-go/internal/config"
	apperrors "github.com/courseforge/courseplan-go/internal/errors"
	"github.com/courseforge/courseplan-go/internal/genai"
	"github.com/courseforge/courseplan-go/internal/index"
	"github.com/courseforge/courseplan-go/internal/logger"
	"github.com/courseforge/courseplan-go/internal/metrics"
	"github.com/courseforge/courseplan-go/internal/normalize"
	"github.com/courseforge/courseplan-go/internal/prompt"
	"github.com/courseforge/courseplan-go/internal/retrieval"
)

// fakeGenerator captures the prompt and returns a scripted response.
type fakeGenerator struct {
	response string
	err      error
	prompt   string
}

func (f *fakeGenerator) Generate(_ context.Context, p string) (string, error) {
	f.prompt = p
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeGenerator) Provider() genai.Provider { return genai.ProviderOpenAI }
func (f *fakeGenerator) Close() error             { return nil }

type testEnv struct {
	router    *gin.Engine
	generator *fakeGenerator
	cfg       *config.Config
}

func newTestEnv(t *testing.T, built bool, gen *fakeGenerator) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewWithWriter("error", io.Discard)
	n := normalize.New()
	idx := index.New("courses-test", index.NewAnalyzer(), log)

	if built {
		rows := []catalog.Row{
			{CourseID: "db1", Title: "Databases", Description: "Storage engines", Section: "Indexing", Topic: "B-Trees"},
			{CourseID: "db1", Title: "Databases", Description: "Storage engines", Section: "Indexing", Topic: "Hashing"},
			{CourseID: "net1", Title: "Networks", Description: "Packet switching", Section: "Routing", Topic: "BGP"},
			{CourseID: "hist1", Title: "Medieval History", Description: "Feudal society", Section: "The Crusades", Topic: "Guilds"},
		}
		if err := idx.Rebuild(catalog.Aggregate(rows, n)); err != nil {
			t.Fatalf("Rebuild failed: %v", err)
		}
	}

	cfg := &config.Config{
		Port:              "5000",
		DataDir:           t.TempDir(),
		RetrievedDir:      t.TempDir(),
		SearchTimeout:     time.Second,
		GenerationTimeout: time.Second,
		ShutdownTimeout:   time.Second,
	}

	examples := prompt.NewExampleStore(map[string][]string{
		"Databases": {"Example course structure"},
	})

	var generator genai.Generator
	if gen != nil {
		generator = gen
	}

	handler := NewHandler(HandlerConfig{
		Config:    cfg,
		Logger:    log,
		Retriever: retrieval.NewOrchestrator(n, idx, log),
		Generator: generator,
		Examples:  examples,
		Metrics:   metrics.New(prometheus.NewRegistry()),
	})

	router := gin.New()
	router.POST("/retrieve", handler.Retrieve)
	router.POST("/generate", handler.Generate)

	return &testEnv{router: router, generator: gen, cfg: cfg}
}

func doJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRetrieve_Success(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true, nil)

	w := doJSON(t, env.router, "/retrieve", RetrieveRequest{Title: "Databases", Keywords: []string{"indexing"}})
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, body %s", w.Code, w.Body.String())
	}

	var resp RetrieveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal response: %v", err)
	}
	if resp.UserQuery != "Databases indexing" {
		t.Errorf("UserQuery = %q", resp.UserQuery)
	}
	if !strings.Contains(resp.RetrievedData, "Indexing") {
		t.Errorf("RetrievedData = %q, want section content", resp.RetrievedData)
	}
	if resp.Explanation != nil || resp.Hits != nil {
		t.Error("Debug fields must be omitted without debug flag")
	}
}

func TestRetrieve_Debug(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true, nil)

	w := doJSON(t, env.router, "/retrieve", RetrieveRequest{Title: "Databases", Debug: true})
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d", w.Code)
	}

	var resp RetrieveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal response: %v", err)
	}
	if len(resp.Hits) == 0 {
		t.Error("Debug response missing hits")
	}
	if resp.Explanation == nil || resp.Explanation.Value <= 0 {
		t.Errorf("Debug response missing explanation: %+v", resp.Explanation)
	}
}

func TestRetrieve_WriteToFile(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true, nil)

	w := doJSON(t, env.router, "/retrieve", RetrieveRequest{Title: "Databases", WriteToFile: true})
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d", w.Code)
	}

	var resp RetrieveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal response: %v", err)
	}
	if resp.Path == "" {
		t.Fatal("Response missing dump path")
	}
	data, err := os.ReadFile(resp.Path)
	if err != nil {
		t.Fatalf("Reading dump: %v", err)
	}
	var dump map[string]any
	if err := json.Unmarshal(data, &dump); err != nil {
		t.Fatalf("Dump is not JSON: %v", err)
	}
	if dump["user_query"] != "Databases" {
		t.Errorf("Dump user_query = %v", dump["user_query"])
	}
}

func TestRetrieve_NoHits(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true, nil)

	w := doJSON(t, env.router, "/retrieve", RetrieveRequest{Title: "Volcanology"})
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200 for empty result", w.Code)
	}

	var resp RetrieveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal response: %v", err)
	}
	if resp.RetrievedData != "" {
		t.Errorf("RetrievedData = %q, want empty", resp.RetrievedData)
	}
}

func TestRetrieve_BadRequests(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true, nil)

	t.Run("Missing title", func(t *testing.T) {
		w := doJSON(t, env.router, "/retrieve", RetrieveRequest{})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", w.Code)
		}
	})

	t.Run("Malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/retrieve", strings.NewReader("{not json"))
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", w.Code)
		}
	})
}

func TestRetrieve_IndexUnavailable(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, false, nil)

	w := doJSON(t, env.router, "/retrieve", RetrieveRequest{Title: "Databases"})
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want 503", w.Code)
	}
}

func TestGenerate_Success(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{response: "1. Section one"}
	env := newTestEnv(t, true, gen)

	w := doJSON(t, env.router, "/generate", GenerateRequest{
		Title:    "Databases",
		Keywords: []string{"transactions"},
		Level:    prompt.LevelGraduate,
		Hours:    48,
		Approach: "chain-of-thought",
		Debug:    true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, body %s", w.Code, w.Body.String())
	}

	var resp GenerateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal response: %v", err)
	}
	if resp.GeneratedData != "1. Section one" {
		t.Errorf("GeneratedData = %q", resp.GeneratedData)
	}
	if resp.Prompt == "" {
		t.Fatal("Debug response missing prompt")
	}
	for _, fragment := range []string{"«Databases»", "48 academic lecture hours", "transactions"} {
		if !strings.Contains(resp.Prompt, fragment) {
			t.Errorf("Prompt missing %q:\n%s", fragment, resp.Prompt)
		}
	}
	if gen.prompt != resp.Prompt {
		t.Error("Prompt sent to generator differs from debug prompt")
	}
	if resp.RetrievedData == "" {
		t.Error("RetrievedData empty, want retrieval context for matching title")
	}
	if !strings.Contains(gen.prompt, resp.RetrievedData) {
		t.Error("Generator prompt must embed the retrieved context")
	}
}

func TestGenerate_RAGDisabled(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{response: "out"}
	env := newTestEnv(t, false, gen) // index unbuilt: must not matter with rag=false

	rag := false
	w := doJSON(t, env.router, "/generate", GenerateRequest{Title: "Databases", RAG: &rag, Debug: true})
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, body %s", w.Code, w.Body.String())
	}

	var resp GenerateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal response: %v", err)
	}
	if resp.RetrievedData != "" {
		t.Errorf("RetrievedData = %q, want empty with rag disabled", resp.RetrievedData)
	}
	if strings.Contains(resp.Prompt, "Using the information about courses") {
		t.Errorf("Prompt references retrieval with rag disabled:\n%s", resp.Prompt)
	}
}

func TestGenerate_NoRetrievalHits(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{response: "1. Intro"}
	env := newTestEnv(t, true, gen)

	w := doJSON(t, env.router, "/generate", GenerateRequest{Title: "Volcanology", Debug: true})
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, body %s", w.Code, w.Body.String())
	}

	var resp GenerateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal response: %v", err)
	}
	if resp.RetrievedData != "" {
		t.Errorf("RetrievedData = %q, want empty for unmatched title", resp.RetrievedData)
	}
	if strings.Contains(resp.Prompt, "Using the information about courses") {
		t.Errorf("Prompt references retrieval without hits:\n%s", resp.Prompt)
	}
	if !strings.Contains(resp.Prompt, "«Volcanology»") {
		t.Errorf("Prompt must still name the subject:\n%s", resp.Prompt)
	}
	if resp.GeneratedData != "1. Intro" {
		t.Errorf("GeneratedData = %q", resp.GeneratedData)
	}
}

func TestGenerate_FewShotUsesExamples(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{response: "out"}
	env := newTestEnv(t, true, gen)

	w := doJSON(t, env.router, "/generate", GenerateRequest{
		Title:    "Databases",
		Approach: "few-shot",
		Debug:    true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d", w.Code)
	}

	var resp GenerateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal response: %v", err)
	}
	if !strings.Contains(resp.Prompt, "Example course structure") {
		t.Errorf("Few-shot prompt missing stored example:\n%s", resp.Prompt)
	}
}

func TestGenerate_UnknownApproach(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true, &fakeGenerator{response: "x"})

	w := doJSON(t, env.router, "/generate", GenerateRequest{Title: "T", Approach: "socratic"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", w.Code)
	}
}

func TestGenerate_GatewayFailure(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{err: apperrors.NewGenerationError("openai", errors.New("boom"))}
	env := newTestEnv(t, true, gen)

	w := doJSON(t, env.router, "/generate", GenerateRequest{Title: "Databases"})
	if w.Code != http.StatusBadGateway {
		t.Errorf("Status = %d, want 502", w.Code)
	}
}

func TestGenerate_NoProvider(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true, nil)

	w := doJSON(t, env.router, "/generate", GenerateRequest{Title: "Databases"})
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want 503", w.Code)
	}
}

func TestBuildQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		title    string
		keywords []string
		want     string
	}{
		{"Title only", "Databases", nil, "Databases"},
		{"With keywords", "Databases", []string{"sql", "nosql"}, "Databases sql nosql"},
		{"Blank keywords skipped", "T", []string{" ", "x", ""}, "T x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildQuery(tt.title, tt.keywords); got != tt.want {
				t.Errorf("buildQuery = %q, want %q", got, tt.want)
			}
		})
	}
}
