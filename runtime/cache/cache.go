// Package cache memoizes parse results by source text.
package cache

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/opal-lang/mirror/core/ast"
	"github.com/opal-lang/mirror/runtime/parser"
)

// DefaultSize is the number of programs kept when no size is configured
const DefaultSize = 128

// Cache holds recently parsed programs keyed by the BLAKE2b-256 digest of
// their source. Every entry was produced with the cache's parser options.
// Failed parses are never stored. A Cache is safe for concurrent use.
//
// Returned programs are shared between callers and must not be modified.
type Cache struct {
	entries *lru.Cache[[32]byte, ast.Program]
	opts    []parser.ParserOpt

	hits   atomic.Uint64
	misses atomic.Uint64
}

// Stats are the lookup counters of a cache
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// New creates a cache holding at most size programs, parsed with opts
func New(size int, opts ...parser.ParserOpt) (*Cache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d", size)
	}
	entries, err := lru.New[[32]byte, ast.Program](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return &Cache{entries: entries, opts: opts}, nil
}

// Parse returns the cached program for source or parses and stores it
func (c *Cache) Parse(source string) (ast.Program, error) {
	key := blake2b.Sum256([]byte(source))
	if program, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return program, nil
	}
	c.misses.Add(1)

	program, err := parser.Parse(source, c.opts...)
	if err != nil {
		return nil, err
	}
	c.entries.Add(key, program)
	return program, nil
}

// Purge drops every entry; counters are kept
func (c *Cache) Purge() {
	c.entries.Purge()
}

// Stats returns the current counters
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.entries.Len(),
	}
}
