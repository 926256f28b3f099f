package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for response caching.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a query string.
func Key(query string) string {
	hash := sha256.Sum256([]byte(query))
	return "realitypatch:v1:" + hex.EncodeToString(hash[:])
}
