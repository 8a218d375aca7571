package genai

import (
	"context"
	"fmt"

	"github.com/courseforge/courseplan-go/internal/config"
	apperrors "github.com/courseforge/courseplan-go/internal/errors"
	"github.com/courseforge/courseplan-go/internal/logger"
)

// Gateway chains configured providers behind the Generator interface.
// Each provider is retried on transient errors; when a provider is
// exhausted or reports quota exhaustion the next one is tried. The
// gateway is safe for concurrent use.
type Gateway struct {
	generators []Generator
	retry      RetryConfig
	logger     *logger.Logger
}

// NewGateway builds the provider chain from configuration: OpenAI first,
// Gemini as fallback. At least one provider must be configured.
func NewGateway(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Gateway, error) {
	var generators []Generator

	if g := newOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel, log); g != nil {
		generators = append(generators, g)
	}

	gemini, err := newGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
	if err != nil {
		return nil, err
	}
	if gemini != nil {
		generators = append(generators, gemini)
	}

	if len(generators) == 0 {
		return nil, fmt.Errorf("no generation provider configured")
	}

	return NewGatewayWith(log, DefaultRetryConfig(), generators...), nil
}

// NewGatewayWith assembles a gateway over explicit generators, in
// fallback order.
func NewGatewayWith(log *logger.Logger, retry RetryConfig, generators ...Generator) *Gateway {
	return &Gateway{
		generators: generators,
		retry:      retry,
		logger:     log.WithModule("genai"),
	}
}

// Generate runs the prompt through the provider chain. The returned
// error wraps ErrGenerationFailed and names the last provider tried.
func (gw *Gateway) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	lastProvider := ""

	for _, gen := range gw.generators {
		provider := gen.Provider()
		lastProvider = provider.String()

		var result string
		err := WithRetry(ctx, gw.retry,
			func(attempt int, retryErr error) {
				gw.logger.WithError(retryErr).
					WithField("provider", provider).
					WithField("attempt", attempt).
					Warn("Generation attempt failed, retrying")
			},
			func() error {
				var genErr error
				result, genErr = gen.Generate(ctx, prompt)
				return genErr
			})
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}

		gw.logger.WithError(err).
			WithField("provider", provider).
			Warn("Provider exhausted, falling back")
	}

	return "", apperrors.NewGenerationError(lastProvider, lastErr)
}

// Provider returns the primary provider of the chain.
func (gw *Gateway) Provider() Provider {
	if len(gw.generators) == 0 {
		return ""
	}
	return gw.generators[0].Provider()
}

// Close closes every generator in the chain.
func (gw *Gateway) Close() error {
	var firstErr error
	for _, gen := range gw.generators {
		if err := gen.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
