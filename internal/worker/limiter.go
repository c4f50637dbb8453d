package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter spreads LLM calls out per provider so a batch run does not
// trip API rate limits. Keys are provider names ("openai", "anthropic",
// "ollama"); each gets its own token bucket, created on first use.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a limiter allowing requestsPerSecond per provider.
// A burst below one is clamped to one.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the provider's bucket has a token or the context is
// canceled
func (l *Limiter) Wait(ctx context.Context, provider string) error {
	return l.getLimiter(provider).Wait(ctx)
}

// Allow reports whether a call could proceed right now, consuming a
// token if so
func (l *Limiter) Allow(provider string) bool {
	return l.getLimiter(provider).Allow()
}

// getLimiter returns the bucket for a provider, creating it on demand
func (l *Limiter) getLimiter(provider string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[provider]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[provider]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[provider] = limiter

	return limiter
}

// SetProviderRate overrides the rate for one provider, replacing any
// existing bucket
func (l *Limiter) SetProviderRate(provider string, requestsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.limiters[provider] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}
