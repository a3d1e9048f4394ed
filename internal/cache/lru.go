// Package cache provides caching utilities for the generators.
package cache

import (
	"crypto/sha256"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/usestring/hargen/pkg/jsonvalue"
)

// BodyCache memoizes decoded JSON bodies so that model and client
// generation over the same capture parse each body once. Entries are keyed
// by a digest of the raw body text, so identical bodies from different
// calls share one decode.
type BodyCache struct {
	cache *lru.Cache[[32]byte, jsonvalue.Value]
}

// NewBodyCache creates an LRU cache with the given maximum number of
// decoded bodies.
func NewBodyCache(maxItems int) (*BodyCache, error) {
	c, err := lru.New[[32]byte, jsonvalue.Value](maxItems)
	if err != nil {
		return nil, err
	}
	return &BodyCache{cache: c}, nil
}

// Get returns the decoded value for a raw body, if cached.
func (c *BodyCache) Get(body string) (jsonvalue.Value, bool) {
	return c.cache.Get(sha256.Sum256([]byte(body)))
}

// Add stores the decoded value for a raw body.
func (c *BodyCache) Add(body string, v jsonvalue.Value) {
	c.cache.Add(sha256.Sum256([]byte(body)), v)
}

// Len returns the current number of cached bodies.
func (c *BodyCache) Len() int {
	return c.cache.Len()
}
