package retry

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

func fastConfig() *Config {
	return &Config{
		MaxAttempts:       3,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}
}

func TestDoSucceedsAfterFailures(t *testing.T) {
	attempts := 0
	result, err := Do(context.Background(), fastConfig(), slog.Default(), "connect", func(ctx context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", errors.New("not yet")
		}
		return "connected", nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if result != "connected" {
		t.Fatalf("result = %q", result)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
}

func TestDoGivesUpAfterMaxAttempts(t *testing.T) {
	attempts := 0
	_, err := Do(context.Background(), fastConfig(), slog.Default(), "connect", func(ctx context.Context) (int, error) {
		attempts++
		return 0, errors.New("always down")
	})
	if err == nil {
		t.Fatalf("expected failure")
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
}

func TestDoStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Do(ctx, fastConfig(), slog.Default(), "connect", func(ctx context.Context) (int, error) {
		t.Fatalf("should not be called with a cancelled context")
		return 0, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCalculateBackoffCapped(t *testing.T) {
	cfg := fastConfig()
	if got := calculateBackoff(0, cfg); got != time.Millisecond {
		t.Errorf("first backoff = %v", got)
	}
	if got := calculateBackoff(10, cfg); got != cfg.MaxBackoff {
		t.Errorf("backoff should cap at %v, got %v", cfg.MaxBackoff, got)
	}
}
