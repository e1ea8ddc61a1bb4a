package search

import (
	"context"
	"sync"

	"github.com/anilaldemir-collab/certificate-checker/internal/models"
)

// Cache memoizes settled outcomes by exact query string so the same query is
// never re-issued within a session. Backend failures are NOT cached: a later
// submission of the same query deserves a fresh attempt.
type Cache struct {
	mu    sync.RWMutex
	inner Searcher
	seen  map[string]models.SearchOutcome
}

// NewCache wraps a Searcher with the read-through memo cache.
func NewCache(inner Searcher) *Cache {
	return &Cache{
		inner: inner,
		seen:  make(map[string]models.SearchOutcome),
	}
}

// Search returns the cached outcome when present, otherwise delegates.
// Safe to share: cached values are idempotent results of pure lookups.
func (c *Cache) Search(ctx context.Context, query string, maxResults int) models.SearchOutcome {
	c.mu.RLock()
	outcome, ok := c.seen[query]
	c.mu.RUnlock()
	if ok {
		return outcome
	}

	outcome = c.inner.Search(ctx, query, maxResults)
	if outcome.Status != models.SearchAllBackendsFailed {
		c.mu.Lock()
		c.seen[query] = outcome
		c.mu.Unlock()
	}
	return outcome
}
