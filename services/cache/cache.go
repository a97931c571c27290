package cache

import (
	"time"
)

// CacheService represents a generic cache service. The harvester uses it
// to hold per-site backoff keys after a source answers 429.
type CacheService interface {
	// Get retrieves a value from the cache
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}
