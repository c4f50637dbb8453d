// Package llm provides model-backed text extraction and fraud analysis.
// Every provider speaks the same JSON wire contract (model.TextExtraction,
// model.FraudAssessment), so swapping providers never changes downstream
// behavior, only answer quality.
package llm

import (
	"context"
	"errors"
	"time"

	"github.com/adjustkit/claimlens/internal/model"
)

// extractionMaxTokens bounds the extraction response. The JSON object is
// small; anything longer means the model is rambling.
const extractionMaxTokens = 1024

// ErrQuotaExceeded marks a provider rate or quota rejection. Retrying
// these within a request is pointless, so extractors stop immediately
// and degrade; cross-claim pacing is the batch limiter's job.
var ErrQuotaExceeded = errors.New("provider quota exceeded")

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", "heuristic", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, test servers)
	BaseURL string

	// HTTPProxy and HTTPSProxy override the standard proxy environment
	// variables for outbound provider calls
	HTTPProxy  string
	HTTPSProxy string

	// Timeout per API request
	Timeout time.Duration

	// MaxRetries is how many times a failed request is retried before
	// the extractor degrades to a default result
	MaxRetries int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:   "",
		Model:      "",
		Timeout:    30 * time.Second,
		MaxRetries: 3,
	}
}

// ConfigFromModel converts the application config section to an llm.Config
func ConfigFromModel(mc model.ExtractorConfig) Config {
	return Config{
		Provider:   mc.Provider,
		Model:      mc.Model,
		APIKey:     mc.APIKey,
		BaseURL:    mc.BaseURL,
		HTTPProxy:  mc.HTTPProxy,
		HTTPSProxy: mc.HTTPSProxy,
		Timeout:    mc.Timeout,
		MaxRetries: mc.MaxRetries,
	}
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 30 * time.Second
	}
	return c.Timeout
}

// Availability is implemented by extractors that can preflight their
// backing service. Local extractors have nothing to check and do not
// implement it.
type Availability interface {
	IsAvailable(ctx context.Context) bool
}

/// retryDelay backs off exponentially: 500ms, 1s, 2s, ...
func retryDelay(attempt int) time.Duration {
	return time.Duration(1<<attempt) * 500 * time.Millisecond
}

// sleep waits for d or until the context is done, whichever comes first
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
