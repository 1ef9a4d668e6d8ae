package chunkmd

import (
	"fmt"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Caches is the shared mutable state of the engine: an LRU cache of chunking
// results keyed by content and config. Independent Chunker instances can
// share one Caches value or hold their own. The underlying LRU is safe for
// concurrent use, which matters because every read mutates recency order.
type Caches struct {
	results *lru.Cache[uint64, ChunkingResult]
}

// NewCaches creates a cache handle holding at most capacity results.
func NewCaches(capacity int) *Caches {
	if capacity <= 0 {
		capacity = DefaultConfig().CacheCapacity
	}
	cache, _ := lru.New[uint64, ChunkingResult](capacity)
	return &Caches{results: cache}
}

// getResult returns a deep copy of a cached result so callers can mutate
// their copy freely without corrupting the cache.
func (c *Caches) getResult(key uint64) (*ChunkingResult, bool) {
	res, ok := c.results.Get(key)
	if !ok {
		return nil, false
	}
	cp := copyResult(res)
	return &cp, true
}

func (c *Caches) putResult(key uint64, res *ChunkingResult) {
	c.results.Add(key, copyResult(*res))
}

// Len returns the number of cached results.
func (c *Caches) Len() int { return c.results.Len() }

// ClearAll drops every cached result.
func (c *Caches) ClearAll() { c.results.Purge() }

// resultKey hashes the document content together with the configuration, so
// the same text chunked under different settings never collides.
func resultKey(text string, cfg ChunkConfig) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(text)
	_, _ = fmt.Fprintf(d, "|%+v", cfg)
	return d.Sum64()
}

// copyResult deep-copies a result including chunk metadata maps.
func copyResult(r ChunkingResult) ChunkingResult {
	out := r
	out.Chunks = make([]Chunk, len(r.Chunks))
	for i, ch := range r.Chunks {
		cc := ch
		if ch.Metadata != nil {
			m := make(map[string]any, len(ch.Metadata))
			for k, v := range ch.Metadata {
				if sp, ok := v.([]string); ok {
					v = append([]string(nil), sp...)
				}
				m[k] = v
			}
			cc.Metadata = m
		}
		out.Chunks[i] = cc
	}
	out.Errors = append([]string(nil), r.Errors...)
	out.Warnings = append([]string(nil), r.Warnings...)
	return out
}

// Metrics counts engine activity. All counters are atomic so a Chunker can
// be shared across goroutines.
type Metrics struct {
	documents   atomic.Int64
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
	fallbacks   atomic.Int64
	windows     atomic.Int64
}

// MetricsSnapshot is a point-in-time copy of the performance counters.
type MetricsSnapshot struct {
	Documents     int64 `json:"documents"`
	CacheHits     int64 `json:"cache_hits"`
	CacheMisses   int64 `json:"cache_misses"`
	Fallbacks     int64 `json:"fallbacks"`
	StreamWindows int64 `json:"stream_windows"`
}

func (m *Metrics) snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Documents:     m.documents.Load(),
		CacheHits:     m.cacheHits.Load(),
		CacheMisses:   m.cacheMisses.Load(),
		Fallbacks:     m.fallbacks.Load(),
		StreamWindows: m.windows.Load(),
	}
}
