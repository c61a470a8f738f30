package compiler

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/KromDaniel/relex/internal/automaton"
)

// DefaultCacheSize is the number of DFAs kept by a Cache created with size 0.
const DefaultCacheSize = 256

type cacheKey struct {
	alphabet string
	pattern  string
}

// Cache memoizes compiled DFAs by (alphabet, pattern). DFAs are immutable,
// so a cached DFA can be shared by any number of lexers. Patterns that fail
// to compile are not cached. A Cache is safe for concurrent use.
type Cache struct {
	dfas *lru.Cache[cacheKey, *automaton.DFA]
}

// NewCache creates a cache holding at most size DFAs.
func NewCache(size int) (*Cache, error) {
	if size == 0 {
		size = DefaultCacheSize
	}
	dfas, err := lru.New[cacheKey, *automaton.DFA](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create compile cache: %w", err)
	}
	return &Cache{dfas: dfas}, nil
}

// Compile returns the cached DFA for config, compiling it on a miss.
func (c *Cache) Compile(config Config) (*automaton.DFA, error) {
	key := cacheKey{alphabet: config.Alphabet, pattern: config.Pattern}
	if d, ok := c.dfas.Get(key); ok {
		metricCacheLookups.WithLabelValues(resultHit).Inc()
		return d, nil
	}
	metricCacheLookups.WithLabelValues(resultMiss).Inc()

	d, err := New(config).Compile()
	if err != nil {
		return nil, err
	}
	c.dfas.Add(key, d)
	return d, nil
}

// Len returns the number of cached DFAs.
func (c *Cache) Len() int {
	return c.dfas.Len()
}

// Purge drops every cached DFA.
func (c *Cache) Purge() {
	c.dfas.Purge()
}
