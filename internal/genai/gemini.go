// Gemini-backed course structure generation.
package genai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/courseforge/courseplan-go/internal/logger"
)

// geminiGenerator generates course structures through the Gemini API.
// It implements the Generator interface.
type geminiGenerator struct {
	client *genai.Client
	model  string
	logger *logger.Logger
}

// newGeminiGenerator creates a Gemini-backed generator.
// Returns nil if apiKey is empty (provider disabled).
func newGeminiGenerator(ctx context.Context, apiKey, model string, log *logger.Logger) (*geminiGenerator, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // provider disabled when no API key
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiGenerator{
		client: client,
		model:  model,
		logger: log.WithModule("genai.gemini"),
	}, nil
}

// Generate produces a course structure for the prompt.
func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](generationTemperature),
		MaxOutputTokens: generationMaxTokens,
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	duration := time.Since(start)

	if err != nil {
		g.logger.WithError(err).
			WithField("model", g.model).
			WithField("duration_ms", duration.Milliseconds()).
			Warn("Generate content failed")
		return "", &LLMError{Err: fmt.Errorf("generate content failed: %w", err), Provider: ProviderGemini}
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &LLMError{Err: fmt.Errorf("generate content returned no candidates"), Provider: ProviderGemini}
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}

	result := strings.TrimSpace(sb.String())
	if result == "" {
		return "", &LLMError{Err: fmt.Errorf("generate content returned empty content"), Provider: ProviderGemini}
	}

	if resp.UsageMetadata != nil {
		g.logger.WithField("model", g.model).
			WithField("input_tokens", resp.UsageMetadata.PromptTokenCount).
			WithField("output_tokens", resp.UsageMetadata.CandidatesTokenCount).
			WithField("duration_ms", duration.Milliseconds()).
			Debug("Generation completed")
	}

	return result, nil
}

// Provider returns the provider type for this generator.
func (g *geminiGenerator) Provider() Provider {
	return ProviderGemini
}

// Close releases resources. The genai client needs no explicit cleanup.
func (g *geminiGenerator) Close() error {
	return nil
}
