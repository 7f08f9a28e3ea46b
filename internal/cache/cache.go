// Package cache implements the bounded search-result cache: a singly linked
// list with linear lookup, prepend-on-insert, and head eviction once full.
// Sizes are small enough (≤ 1000 entries) that the linear scan is acceptable.
package cache

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Ateeblj/Mini-Google/model"
)

// DefaultCapacity is the result-cache entry bound.
const DefaultCapacity = 1000

type entry struct {
	key     string
	results []model.RankedDoc
	next    *entry
}

// ResultCache maps a composite (query, page, page size) key to a result
// page. Values are owned copies in both directions.
type ResultCache struct {
	mu       sync.Mutex
	head     *entry
	size     int
	capacity int

	hits   atomic.Int64
	misses atomic.Int64
}

// New returns a ResultCache bounded to capacity entries; non-positive
// capacities fall back to DefaultCapacity.
func New(capacity int) *ResultCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ResultCache{capacity: capacity}
}

// Key builds the composite cache key for a ranked-search request.
func Key(query string, page, resultsPerPage int) string {
	return query + "|PAGE|" + strconv.Itoa(page) + "|" + strconv.Itoa(resultsPerPage)
}

// Get returns a copy of the cached results for key, if present.
func (c *ResultCache) Get(key string) ([]model.RankedDoc, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for e := c.head; e != nil; e = e.next {
		if e.key == key {
			c.hits.Add(1)
			return copyResults(e.results), true
		}
	}
	c.misses.Add(1)
	return nil, false
}

// Put stores an owned copy of results under key, evicting the head entry
// when the cache is full.
func (c *ResultCache) Put(key string, results []model.RankedDoc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.size >= c.capacity {
		c.head = c.head.next
		c.size--
	}
	c.head = &entry{key: key, results: copyResults(results), next: c.head}
	c.size++
}

// Clear discards all entries. Hit/miss counters are preserved.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.head = nil
	c.size = 0
}

// Len returns the current entry count.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Stats returns the lifetime hit and miss counts.
func (c *ResultCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func copyResults(src []model.RankedDoc) []model.RankedDoc {
	dst := make([]model.RankedDoc, len(src))
	copy(dst, src)
	return dst
}
