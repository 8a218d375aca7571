package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want 5000", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("OpenAIModel = %q", cfg.OpenAIModel)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.SearchTimeout != SearchQuery {
		t.Errorf("SearchTimeout = %v, want %v", cfg.SearchTimeout, SearchQuery)
	}
	if cfg.GenerationTimeout != GenerationCall {
		t.Errorf("GenerationTimeout = %v, want %v", cfg.GenerationTimeout, GenerationCall)
	}
	if cfg.MetricsUsername != "prometheus" {
		t.Errorf("MetricsUsername = %q", cfg.MetricsUsername)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEARCH_TIMEOUT", "250ms")
	t.Setenv("DATA_DIR", "/tmp/catalog")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.SearchTimeout != 250*time.Millisecond {
		t.Errorf("SearchTimeout = %v, want 250ms", cfg.SearchTimeout)
	}
	if !cfg.HasGenerationProvider() {
		t.Error("HasGenerationProvider = false with OpenAI key set")
	}
	if got, want := cfg.SQLitePath(), filepath.Join("/tmp/catalog", "catalog.db"); got != want {
		t.Errorf("SQLitePath = %q, want %q", got, want)
	}
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("SEARCH_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SearchTimeout != SearchQuery {
		t.Errorf("SearchTimeout = %v, want default %v", cfg.SearchTimeout, SearchQuery)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := Config{
		Port:              "5000",
		DataDir:           "./data",
		SearchTimeout:     time.Second,
		GenerationTimeout: time.Minute,
		ShutdownTimeout:   time.Second,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate on valid config = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Missing port", func(c *Config) { c.Port = "" }},
		{"Missing data dir", func(c *Config) { c.DataDir = "" }},
		{"Zero search timeout", func(c *Config) { c.SearchTimeout = 0 }},
		{"Negative generation timeout", func(c *Config) { c.GenerationTimeout = -time.Second }},
		{"Zero shutdown timeout", func(c *Config) { c.ShutdownTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate must fail")
			}
		})
	}
}

func TestHasGenerationProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		openai string
		gemini string
		want   bool
	}{
		{"None", "", "", false},
		{"OpenAI only", "sk", "", true},
		{"Gemini only", "", "gm", true},
		{"Both", "sk", "gm", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{OpenAIAPIKey: tt.openai, GeminiAPIKey: tt.gemini}
			if got := cfg.HasGenerationProvider(); got != tt.want {
				t.Errorf("HasGenerationProvider = %v, want %v", got, tt.want)
			}
		})
	}
}
