// Package errors provides domain-specific error types and sentinel errors
// for the course planner. Callers distinguish failure kinds with errors.Is.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
var (
	// ErrTitleRequired indicates prompt construction was attempted without a title.
	ErrTitleRequired = errors.New("title required")

	// ErrUnsupportedApproach indicates an unknown prompting approach was requested.
	ErrUnsupportedApproach = errors.New("unsupported approach")

	// ErrIndexUnavailable indicates the search index is not built or unreachable.
	ErrIndexUnavailable = errors.New("search index unavailable")

	// ErrGenerationFailed indicates the text generation gateway failed.
	ErrGenerationFailed = errors.New("text generation failed")

	// ErrTimeout indicates an operation exceeded its deadline.
	ErrTimeout = errors.New("operation timed out")

	// ErrInvalidInput indicates the caller provided invalid input.
	ErrInvalidInput = errors.New("invalid input")
)

// ConfigError represents a prompt or service configuration failure.
// It wraps one of the configuration sentinels so callers can still use
// errors.Is while seeing which field caused the failure.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("configuration error on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error on %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a configuration error for a field.
func NewConfigError(field, message string, err error) *ConfigError {
	return &ConfigError{Field: field, Message: message, Err: err}
}

// GenerationError carries provider context for a failed generation call.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (provider=%s): %v", e.Provider, e.Err)
}

// Unwrap exposes both the generation sentinel and the provider error,
// so errors.Is(err, ErrGenerationFailed) and errors.Is(err, context.DeadlineExceeded)
// both hold where applicable.
func (e *GenerationError) Unwrap() []error {
	return []error{ErrGenerationFailed, e.Err}
}

// NewGenerationError creates a generation error with provider context.
func NewGenerationError(provider string, err error) *GenerationError {
	return &GenerationError{Provider: provider, Err: err}
}
