package llm

import (
	"fmt"
	"strings"

	"github.com/adjustkit/claimlens/internal/extract"
)

// NewExtractor creates a text extractor based on configuration. An empty
// provider means the heuristic extractor: deterministic, local, and
// free, which is the right default for development and offline runs.
func NewExtractor(config Config) (extract.TextExtractor, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIExtractor(config)

	case "anthropic", "claude":
		return NewAnthropicExtractor(config)

	case "ollama":
		return NewOllamaExtractor(config)

	case "heuristic", "mock", "":
		return extract.NewHeuristicExtractor(), nil

	default:
		return nil, fmt.Errorf("unknown extractor provider: %s (supported: heuristic, openai, anthropic, ollama)", config.Provider)
	}
}
