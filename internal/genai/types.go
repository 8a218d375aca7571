// Package genai turns assembled prompts into generated course structures
// through LLM provider APIs.
//
// Architecture:
// - OpenAI: Uses github.com/openai/openai-go/v3
// - Gemini: Uses google.golang.org/genai (official SDK)
//
// Fallback strategy (2-layer):
// 1. Retry: same provider retried with exponential backoff on transient errors
// 2. Provider chain: next configured provider in order
package genai

import (
	"context"
	"time"
)

// Provider represents an LLM provider.
type Provider string

const (
	// ProviderOpenAI represents the OpenAI Chat Completions API.
	ProviderOpenAI Provider = "openai"
	// ProviderGemini represents Google's Gemini API.
	ProviderGemini Provider = "gemini"
)

// String returns the string representation of the provider.
func (p Provider) String() string {
	return string(p)
}

// Generator defines the interface for course structure generation.
// Implementations are OpenAI and Gemini backends plus the fallback
// gateway that chains them.
type Generator interface {
	// Generate produces a course structure for the given prompt.
	Generate(ctx context.Context, prompt string) (string, error)
	// Provider returns the provider type for logging and metrics.
	Provider() Provider
	// Close releases any resources held by the generator.
	Close() error
}

// Generation parameters shared by all providers. The temperature keeps
// output varied enough for course design without drifting off format.
const (
	generationTemperature = 0.7
	generationMaxTokens   = 4096
)

// RetryConfig defines retry behavior for LLM API calls.
// Uses AWS-recommended Full Jitter exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial).
	MaxAttempts int

	// InitialDelay is the base delay before first retry.
	InitialDelay time.Duration

	// MaxDelay is the maximum delay between retries.
	MaxDelay time.Duration
}

// Retry configuration defaults.
const (
	DefaultMaxRetryAttempts  = 2
	DefaultInitialRetryDelay = 500 * time.Millisecond
	DefaultMaxRetryDelay     = 3 * time.Second
)

// DefaultRetryConfig returns the standard retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  DefaultMaxRetryAttempts,
		InitialDelay: DefaultInitialRetryDelay,
		MaxDelay:     DefaultMaxRetryDelay,
	}
}
