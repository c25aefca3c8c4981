package index

import (
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultStemCacheSize is the number of memoized stems kept per store.
const DefaultStemCacheSize = 65536

// StemCache memoizes word to stem lookups. Evictions only cost a recompute.
type StemCache struct {
	cache  *lru.Cache[string, string]
	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewStemCache(size int) *StemCache {
	if size <= 0 {
		size = DefaultStemCacheSize
	}
	cache, _ := lru.New[string, string](size)
	return &StemCache{cache: cache}
}

// Stem returns the lower-cased stem of word, computing it with stem on a miss.
func (c *StemCache) Stem(word string, stem func(string) string) string {
	if s, ok := c.cache.Get(word); ok {
		c.hits.Add(1)
		return s
	}
	c.misses.Add(1)
	s := strings.ToLower(stem(word))
	c.cache.Add(word, s)
	return s
}

// Purge empties the cache and resets its counters.
func (c *StemCache) Purge() {
	c.cache.Purge()
	c.hits.Store(0)
	c.misses.Store(0)
}

func (c *StemCache) Len() int {
	return c.cache.Len()
}

// Stats returns the hit and miss counts since creation or the last Purge.
func (c *StemCache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
