package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the pluggable TTL cache the citation mention worker reads and
// writes through. Implementations must be safe for concurrent use.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "lumos:v1:" + hex.EncodeToString(hash[:])
}
