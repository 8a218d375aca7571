package genai

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	t.Parallel()

	initial := 100 * time.Millisecond
	max := 1 * time.Second

	if got := CalculateBackoff(0, initial, max); got != 0 {
		t.Errorf("Backoff for attempt 0 = %v, want 0", got)
	}

	// Full Jitter: delay is uniform in [0, min(max, initial*2^(n-1))).
	for attempt := 1; attempt <= 6; attempt++ {
		limit := time.Duration(float64(initial) * float64(int(1)<<(attempt-1)))
		if limit > max {
			limit = max
		}
		for i := 0; i < 20; i++ {
			got := CalculateBackoff(attempt, initial, max)
			if got < 0 || got > limit {
				t.Fatalf("Backoff(attempt %d) = %v, want within [0, %v]", attempt, got, limit)
			}
		}
	}
}

func TestSleep_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Sleep(ctx, time.Minute); !errors.Is(err, context.Canceled) {
		t.Errorf("Sleep on cancelled context: err = %v, want context.Canceled", err)
	}
	if err := Sleep(context.Background(), 0); err != nil {
		t.Errorf("Sleep(0) = %v, want nil", err)
	}
}

func fastRetryConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
	}
}

func TestWithRetry_SucceedsFirstTry(t *testing.T) {
	t.Parallel()

	calls := 0
	err := WithRetry(context.Background(), fastRetryConfig(3), nil, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("WithRetry = %v, want nil", err)
	}
	if calls != 1 {
		t.Errorf("Function called %d times, want 1", calls)
	}
}

func TestWithRetry_RetriesTransient(t *testing.T) {
	t.Parallel()

	calls := 0
	retries := 0
	err := WithRetry(context.Background(), fastRetryConfig(3),
		func(attempt int, err error) { retries++ },
		func() error {
			calls++
			if calls < 3 {
				return errors.New("503 service unavailable")
			}
			return nil
		})
	if err != nil {
		t.Fatalf("WithRetry = %v, want nil after recovery", err)
	}
	if calls != 3 {
		t.Errorf("Function called %d times, want 3", calls)
	}
	if retries != 2 {
		t.Errorf("onRetry called %d times, want 2", retries)
	}
}

func TestWithRetry_PermanentStopsImmediately(t *testing.T) {
	t.Parallel()

	calls := 0
	permanent := errors.New("401 unauthorized")
	err := WithRetry(context.Background(), fastRetryConfig(5), nil, func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("WithRetry = %v, want the permanent error", err)
	}
	if calls != 1 {
		t.Errorf("Function called %d times, want 1 for a permanent error", calls)
	}
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	calls := 0
	transient := errors.New("connection reset")
	err := WithRetry(context.Background(), fastRetryConfig(3), nil, func() error {
		calls++
		return transient
	})
	if !errors.Is(err, transient) {
		t.Fatalf("WithRetry = %v, want last transient error", err)
	}
	if calls != 3 {
		t.Errorf("Function called %d times, want 3", calls)
	}
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := WithRetry(ctx, fastRetryConfig(3), nil, func() error {
		calls++
		return errors.New("503")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("WithRetry on cancelled context = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("Function called %d times, want 0", calls)
	}
}
