// Package cache provides the time-boxed result cache: a contract the
// orchestrator consumes, a generic in-process TTL cache, and (in the
// redis subpackage) a rueidis-backed driver.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/dealhive/dealsearch/internal/domain/search/result"
)

// Default expirations.
const (
	// ResultTTL bounds how long a composite search result is reused.
	ResultTTL = 5 * time.Minute
	// SuggestionTTL bounds the per-query auto-complete sub-cache.
	SuggestionTTL = 10 * time.Minute
)

// ResultCache short-circuits repeated identical searches.
type ResultCache interface {
	Get(ctx context.Context, key string) (*result.SearchResult, bool)
	Set(ctx context.Context, key string, value *result.SearchResult)
	Clear(ctx context.Context) error
}

// Clock abstracts time for TTL tests.
type Clock func() time.Time

type entry[V any] struct {
	value     V
	createdAt time.Time
}

// Memory is a generic in-process TTL cache. Expiry is lazy (checked at
// read time); writes are last-writer-wins.
type Memory[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     Clock
	entries map[string]entry[V]
}

// NewMemory creates a TTL cache. A nil clock uses time.Now.
func NewMemory[V any](ttl time.Duration, now Clock) *Memory[V] {
	if now == nil {
		now = time.Now
	}
	return &Memory[V]{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]entry[V]),
	}
}

// Get returns the cached value when present and not expired. Expired
// entries are evicted on read.
func (m *Memory[V]) Get(key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if m.now().Sub(e.createdAt) >= m.ttl {
		delete(m.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores a value, resetting its TTL.
func (m *Memory[V]) Set(key string, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry[V]{value: value, createdAt: m.now()}
}

// Clear evicts everything.
func (m *Memory[V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]entry[V])
}

// Len returns the number of entries, including not-yet-evicted expired ones.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// MemoryResults adapts Memory to the ResultCache contract.
type MemoryResults struct {
	inner *Memory[*result.SearchResult]
}

var _ ResultCache = (*MemoryResults)(nil)

// NewMemoryResults creates an in-process result cache.
func NewMemoryResults(ttl time.Duration, now Clock) *MemoryResults {
	return &MemoryResults{inner: NewMemory[*result.SearchResult](ttl, now)}
}

// Get returns a cached composite result.
func (c *MemoryResults) Get(_ context.Context, key string) (*result.SearchResult, bool) {
	return c.inner.Get(key)
}

// Set stores a composite result.
func (c *MemoryResults) Set(_ context.Context, key string, value *result.SearchResult) {
	c.inner.Set(key, value)
}

// Clear evicts everything.
func (c *MemoryResults) Clear(_ context.Context) error {
	c.inner.Clear()
	return nil
}
