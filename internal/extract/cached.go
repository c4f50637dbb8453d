package extract

import (
	"context"
	"encoding/json"
	"time"

	"github.com/adjustkit/claimlens/internal/cache"
	"github.com/adjustkit/claimlens/internal/model"
)

// CachedExtractor memoizes another extractor's results. Batch runs often
// resubmit the same narrative (retries, duplicate manifests), and
// model-backed extraction is the slow, metered step worth skipping.
type CachedExtractor struct {
	inner TextExtractor
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedExtractor wraps an extractor with a cache
func NewCachedExtractor(inner TextExtractor, c cache.Cache, ttl time.Duration) *CachedExtractor {
	return &CachedExtractor{
		inner: inner,
		cache: c,
		ttl:   ttl,
	}
}

// Name returns the inner extractor's name; cached and uncached runs must
// produce identical provenance
func (e *CachedExtractor) Name() string {
	return e.inner.Name()
}

// Extract returns the cached extraction when available, otherwise runs
// the inner extractor and stores its result. Degraded extractions (Error
// set) are not cached so a transient provider failure does not stick for
// the TTL.
func (e *CachedExtractor) Extract(ctx context.Context, narrative string) (*model.TextExtraction, error) {
	key := cache.ExtractionKey(e.inner.Name(), narrative)

	if data, found := e.cache.Get(key); found {
		var cached model.TextExtraction
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		// Corrupt entry: drop it and re-extract
		_ = e.cache.Delete(key)
	}

	result, err := e.inner.Extract(ctx, narrative)
	if err != nil {
		return nil, err
	}

	if result.Error == "" {
		if data, err := json.Marshal(result); err == nil {
			_ = e.cache.Set(key, data, e.ttl)
		}
	}

	return result, nil
}
