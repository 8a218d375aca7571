// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the server, catalog storage, retrieval and generation gateways.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Generation Gateway Configuration
	OpenAIAPIKey string // OpenAI API key for prompt completion
	OpenAIModel  string // Chat model (default: gpt-4o-mini)
	GeminiAPIKey string // Gemini API key (fallback provider)
	GeminiModel  string // Gemini model (default: gemini-2.5-flash)

	// Error Reporting
	SentryToken string // Better Stack Errors token (empty = disabled)
	SentryHost  string // Better Stack Errors ingesting host

	// Log Shipping
	BetterstackToken    string // Better Stack Logs source token (empty = local only)
	BetterstackEndpoint string // Better Stack Logs ingesting endpoint

	// Metrics Authentication
	MetricsUsername string // Username for /metrics Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics Basic Auth (empty = no auth)

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data Configuration
	DataDir      string // Directory for the SQLite catalog database
	FixturePath  string // Optional JSON fixture imported when the catalog is empty
	ExamplesPath string // JSON file mapping course titles to few-shot examples
	RetrievedDir string // Directory for write_to_file retrieval dumps

	// Retrieval Configuration
	SearchTimeout time.Duration // Deadline for a single index query

	// Generation Configuration
	GenerationTimeout time.Duration // Deadline for a single gateway call
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first, then reads from env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		SentryToken: getEnv("SENTRY_TOKEN", ""),
		SentryHost:  getEnv("SENTRY_HOST", "errors.betterstack.com"),

		BetterstackToken:    getEnv("BETTERSTACK_TOKEN", ""),
		BetterstackEndpoint: getEnv("BETTERSTACK_ENDPOINT", ""),

		MetricsUsername: getEnv("METRICS_USERNAME", "prometheus"),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),

		Port:            getEnv("PORT", "5000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", GracefulShutdown),

		DataDir:      getEnv("DATA_DIR", "./data"),
		FixturePath:  getEnv("CATALOG_FIXTURE", ""),
		ExamplesPath: getEnv("EXAMPLES_PATH", ""),
		RetrievedDir: getEnv("RETRIEVED_DIR", "./retrieved"),

		SearchTimeout:     getDurationEnv("SEARCH_TIMEOUT", SearchQuery),
		GenerationTimeout: getDurationEnv("GENERATION_TIMEOUT", GenerationCall),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("DATA_DIR is required"))
	}
	if c.SearchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SEARCH_TIMEOUT must be positive, got %v", c.SearchTimeout))
	}
	if c.GenerationTimeout <= 0 {
		errs = append(errs, fmt.Errorf("GENERATION_TIMEOUT must be positive, got %v", c.GenerationTimeout))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.ShutdownTimeout))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SQLitePath returns the full path to the SQLite catalog database file
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "catalog.db")
}

// HasGenerationProvider returns true if at least one LLM provider is configured.
func (c *Config) HasGenerationProvider() bool {
	return c.OpenAIAPIKey != "" || c.GeminiAPIKey != ""
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
