package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching extraction results
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ExtractionKey generates a cache key for a narrative processed by a
// named extractor. Different extractors never share entries.
func ExtractionKey(extractor string, narrative string) string {
	hash := sha256.Sum256([]byte(extractor + "\x00" + narrative))
	return "claimlens:v1:" + hex.EncodeToString(hash[:])
}
