package model

import "time"

// Config is the full runtime configuration, assembled from defaults,
// ~/.claimlens/config.yaml, CLAIMLENS_* environment variables, and CLI
// flags (highest priority last).
type Config struct {
	Extractor   ExtractorConfig   `yaml:"extractor" json:"extractor"`
	Imaging     ImagingConfig     `yaml:"imaging" json:"imaging"`
	Fusion      FusionConfig      `yaml:"fusion" json:"fusion"`
	Routing     RoutingConfig     `yaml:"routing" json:"routing"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// ExtractorConfig selects and tunes the text extractor
type ExtractorConfig struct {
	Provider   string        `yaml:"provider" json:"provider"` // heuristic, openai, anthropic
	Model      string        `yaml:"model" json:"model"`       // Provider model name
	APIKey     string        `yaml:"-" json:"-"`               // From env only, never persisted
	BaseURL    string        `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	HTTPProxy  string        `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy string        `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout"`
	MaxRetries int           `yaml:"max_retries" json:"max_retries"`
}

// ImagingConfig selects the image analyzer
type ImagingConfig struct {
	Analyzer string `yaml:"analyzer" json:"analyzer"` // baseline, vision
}

// FusionConfig tunes claim assembly
type FusionConfig struct {
	ClaimIDPrefix     string  `yaml:"claim_id_prefix" json:"claim_id_prefix"`
	DefaultConfidence float64 `yaml:"default_confidence" json:"default_confidence"` // Used when an extractor reports a value without a confidence

	// RequiredEvidence names the checklist items a submission is
	// expected to include. Empty means the standard three:
	// damage_photos, repair_estimate, incident_report. At most three
	// entries are honored.
	RequiredEvidence []string `yaml:"required_evidence,omitempty" json:"required_evidence,omitempty"`
}

// RoutingConfig tunes the post-check workflow
type RoutingConfig struct {
	Enabled       bool   `yaml:"enabled" json:"enabled"`
	FraudProvider string `yaml:"fraud_provider" json:"fraud_provider"` // heuristic, openai
	FraudModel    string `yaml:"fraud_model" json:"fraud_model"`
	APIKey        string `yaml:"-" json:"-"` // From env only, never persisted
}

// CacheConfig controls extraction result caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}

// ConcurrencyConfig tunes batch processing
type ConcurrencyConfig struct {
	Workers   int     `yaml:"workers" json:"workers"`       // Parallel pipeline runs
	RateLimit float64 `yaml:"rate_limit" json:"rate_limit"` // Requests/sec per LLM provider
	RateBurst int     `yaml:"rate_burst" json:"rate_burst"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose" json:"verbose"`
	Pretty  bool `yaml:"pretty" json:"pretty"` // Human-readable report instead of JSON
}

// DefaultConfig returns the baseline configuration. The default
// extractor is the deterministic heuristic one so the tool works
// offline with no keys.
func DefaultConfig() *Config {
	return &Config{
		Extractor: ExtractorConfig{
			Provider:   "heuristic",
			Model:      "",
			Timeout:    30 * time.Second,
			MaxRetries: 3,
		},
		Imaging: ImagingConfig{
			Analyzer: "baseline",
		},
		Fusion: FusionConfig{
			ClaimIDPrefix:     "CLM",
			DefaultConfidence: 0.5,
		},
		Routing: RoutingConfig{
			Enabled:       false,
			FraudProvider: "heuristic",
			FraudModel:    "gpt-4o-mini",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers:   4,
			RateLimit: 2.0,
			RateBurst: 1,
		},
		Output: OutputConfig{
			Verbose: false,
			Pretty:  false,
		},
	}
}

// DefaultModelFor returns the provider's default model when none is
// configured
func DefaultModelFor(provider string) string {
	switch provider {
	case "anthropic", "claude":
		return "claude-3-5-sonnet-20241022"
	case "openai":
		return "gpt-4-turbo"
	}
	return ""
}
