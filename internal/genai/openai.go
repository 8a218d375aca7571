// OpenAI-backed course structure generation.
package genai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/courseforge/courseplan-go/internal/logger"
)

// openaiGenerator generates course structures through the OpenAI
// Chat Completions API. It implements the Generator interface.
type openaiGenerator struct {
	client openai.Client
	model  string
	logger *logger.Logger
}

// newOpenAIGenerator creates an OpenAI-backed generator.
// Returns nil if apiKey is empty (provider disabled).
func newOpenAIGenerator(apiKey, model string, log *logger.Logger) *openaiGenerator {
	if apiKey == "" {
		return nil
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &openaiGenerator{
		client: client,
		model:  model,
		logger: log.WithModule("genai.openai"),
	}
}

// Generate produces a course structure for the prompt.
func (g *openaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(generationTemperature),
		MaxTokens:   openai.Int(generationMaxTokens),
	}

	start := time.Now()
	resp, err := g.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)

	if err != nil {
		g.logger.WithError(err).
			WithField("model", g.model).
			WithField("duration_ms", duration.Milliseconds()).
			Warn("Chat completion failed")
		return "", &LLMError{Err: fmt.Errorf("chat completion failed: %w", err), Provider: ProviderOpenAI}
	}

	if len(resp.Choices) == 0 {
		return "", &LLMError{Err: fmt.Errorf("chat completion returned no choices"), Provider: ProviderOpenAI}
	}

	result := strings.TrimSpace(resp.Choices[0].Message.Content)
	if result == "" {
		return "", &LLMError{Err: fmt.Errorf("chat completion returned empty content"), Provider: ProviderOpenAI}
	}

	if resp.Usage.TotalTokens > 0 {
		g.logger.WithField("model", g.model).
			WithField("input_tokens", resp.Usage.PromptTokens).
			WithField("output_tokens", resp.Usage.CompletionTokens).
			WithField("duration_ms", duration.Milliseconds()).
			Debug("Generation completed")
	}

	return result, nil
}

// Provider returns the provider type for this generator.
func (g *openaiGenerator) Provider() Provider {
	return ProviderOpenAI
}

// Close releases resources. The openai-go client needs no cleanup.
func (g *openaiGenerator) Close() error {
	return nil
}
