package worker

import (
	"context"
	"testing"
	"time"
)

func TestNewLimiter_ClampsBurst(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 1 {
		t.Errorf("expected burst clamped to 1 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1) // 100 rps, burst 1
	ctx := context.Background()

	if err := limiter.Wait(ctx, "openai"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// A different provider has its own bucket
	if err := limiter.Wait(ctx, "anthropic"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_ProvidersThrottledIndependently(t *testing.T) {
	limiter := NewLimiter(1, 1) // 1 rps, burst 1
	ctx := context.Background()

	if err := limiter.Wait(ctx, "openai"); err != nil {
		t.Errorf("first wait failed: %v", err)
	}

	// Burst of 1 is consumed, so an immediate call must be refused
	if limiter.Allow("openai") {
		t.Errorf("expected openai tokens to be exhausted")
	}

	// Another provider's bucket is untouched
	if !limiter.Allow("anthropic") {
		t.Errorf("expected anthropic to be allowed")
	}
}

func TestLimiter_WaitRespectsCancellation(t *testing.T) {
	limiter := NewLimiter(0.1, 1) // One call every ten seconds
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Drain the burst token, then the next wait must give up with the
	// context instead of blocking for ten seconds
	if err := limiter.Wait(ctx, "ollama"); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	start := time.Now()
	err := limiter.Wait(ctx, "ollama")
	if err == nil {
		t.Fatal("expected context error, got nil")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("wait did not honor cancellation, took %v", elapsed)
	}
}

func TestLimiter_SetProviderRate(t *testing.T) {
	limiter := NewLimiter(10, 10) // fast default

	// One provider gets a strict override
	limiter.SetProviderRate("ollama", 0.1, 1)

	if !limiter.Allow("ollama") {
		t.Errorf("first request should pass")
	}
	if limiter.Allow("ollama") {
		t.Errorf("second request should be refused")
	}

	// Other providers still use the fast default
	if !limiter.Allow("openai") {
		t.Errorf("other provider should pass")
	}
}
