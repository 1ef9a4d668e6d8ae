package chunkmd

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// nopLogger discards all records. It keeps logger fields non-nil so call
// sites never check.
var nopLogger = slog.New(discardHandler{})

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// Chunker orchestrates the pipeline: select, apply, fall back, overlap,
// enrich. It holds no per-document state, so one instance may serve many
// goroutines; the result cache is the only shared mutable state and is
// concurrency-safe. A single Chunk call is synchronous and CPU-bound with
// deterministic termination; callers wanting timeouts wrap externally.
type Chunker struct {
	analyzer Analyzer
	registry *Registry
	selector *Selector
	caches   *Caches
	cfg      ChunkConfig
	logger   *slog.Logger
	metrics  Metrics
}

// Option configures a Chunker at construction.
type Option func(*Chunker)

// WithConfig sets the chunking configuration. The value is validated and
// normalized by New; the caller's copy never mutates.
func WithConfig(cfg ChunkConfig) Option {
	return func(c *Chunker) { c.cfg = cfg }
}

// WithLogger sets the structured logger. Without it, nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *Chunker) { c.logger = l }
}

// WithRegistry replaces the default strategy registry, allowing callers to
// add, remove, or reorder strategies.
func WithRegistry(r *Registry) Option {
	return func(c *Chunker) { c.registry = r }
}

// WithCaches shares a cache handle between chunker instances. Without it,
// each chunker gets its own.
func WithCaches(caches *Caches) Option {
	return func(c *Chunker) { c.caches = caches }
}

// New creates a Chunker around the given analyzer. Configuration problems
// surface here as *ErrConfig and are never silently recovered.
func New(analyzer Analyzer, opts ...Option) (*Chunker, error) {
	if analyzer == nil {
		return nil, &ErrConfig{Field: "analyzer", Message: "must not be nil"}
	}
	c := &Chunker{analyzer: analyzer, cfg: DefaultConfig(), logger: nopLogger}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	c.cfg = c.cfg.Normalized()
	if c.registry == nil {
		c.registry = DefaultRegistry()
	}
	if c.caches == nil {
		c.caches = NewCaches(c.cfg.CacheCapacity)
	}
	c.selector = NewSelector(c.registry)
	return c, nil
}

// Config returns the normalized configuration in effect.
func (c *Chunker) Config() ChunkConfig { return c.cfg }

// Metrics returns a snapshot of the performance counters.
func (c *Chunker) Metrics() MetricsSnapshot { return c.metrics.snapshot() }

// ClearAllCaches drops cached results and evicts pooled strategy instances.
func (c *Chunker) ClearAllCaches() {
	c.caches.ClearAll()
	c.registry.Clear()
}

// ChunkOption adjusts a single Chunk call.
type ChunkOption func(*chunkCall)

type chunkCall struct {
	strategy string
}

// WithStrategy overrides automatic selection with a named strategy for one
// call. The fallback chain still applies if it fails.
func WithStrategy(name string) ChunkOption {
	return func(cc *chunkCall) { cc.strategy = name }
}

// Chunk analyzes and chunks one markdown document. Empty (or whitespace-only)
// input is a valid degenerate success: zero chunks, Success true, and a
// warning noting the empty input. The only errors returned are configuration
// or input problems and terminal-strategy failures; everything recoverable
// is handled internally and reported through Warnings.
func (c *Chunker) Chunk(text string, opts ...ChunkOption) (*ChunkingResult, error) {
	started := time.Now()
	var call chunkCall
	for _, opt := range opts {
		opt(&call)
	}

	if !utf8.ValidString(text) {
		return nil, &ErrInput{Reason: "text is not valid UTF-8"}
	}
	text = norm.NFC.String(text)
	if strings.TrimSpace(text) == "" {
		return &ChunkingResult{
			ID:             NewID(),
			Chunks:         []Chunk{},
			StrategyUsed:   "none",
			Warnings:       []string{"empty input"},
			Success:        true,
			ProcessingTime: time.Since(started),
		}, nil
	}
	c.metrics.documents.Add(1)

	if c.shouldStream(len(text)) {
		return c.chunkStreaming(text, call.strategy, started)
	}

	cacheable := c.cfg.EnableCache && len(text) < cacheDocLimit
	var key uint64
	if cacheable {
		key = resultKey(call.strategy+"|"+text, c.cfg)
		if res, ok := c.caches.getResult(key); ok {
			c.metrics.cacheHits.Add(1)
			return res, nil
		}
		c.metrics.cacheMisses.Add(1)
	}

	res, _, err := c.chunkDocument(text, call.strategy)
	if err != nil {
		return nil, err
	}
	res.ID = NewID()
	res.ProcessingTime = time.Since(started)
	if cacheable {
		c.caches.putResult(key, res)
	}
	return res, nil
}

// shouldStream applies the streaming policy: the configured threshold when
// streaming is enabled, plus a hard floor above which large documents stream
// regardless of other settings.
func (c *Chunker) shouldStream(size int) bool {
	if c.cfg.EnableStreaming && size >= c.cfg.StreamingThreshold {
		return true
	}
	return size >= streamForceBytes
}

// chunkDocument runs the full pipeline on one in-memory document (or one
// streaming window). The analysis is returned so streaming can aggregate
// document rollups.
func (c *Chunker) chunkDocument(text, override string) (*ChunkingResult, ContentAnalysis, error) {
	analysis, elements, err := c.analyzer.Analyze(text)
	if err != nil {
		return nil, ContentAnalysis{}, &ErrInput{Reason: "analyze: " + err.Error()}
	}

	var primary Strategy
	if override != "" {
		st, ok := c.registry.Get(override)
		if !ok {
			return nil, analysis, &ErrSelection{Reason: "unknown strategy " + override}
		}
		primary = st
	} else {
		st, serr := c.selector.Select(analysis, c.cfg)
		if serr != nil {
			return nil, analysis, serr
		}
		primary = st
	}
	c.logger.Debug("strategy selected",
		"strategy", primary.Name(),
		"content_type", analysis.ContentType,
		"complexity", analysis.ComplexityScore)

	fm := &fallbackManager{registry: c.registry, logger: c.logger}
	att, err := fm.execute(text, elements, primary, c.cfg)
	if err != nil {
		return nil, analysis, err
	}
	if att.level > 0 {
		c.metrics.fallbacks.Add(1)
	}

	chunks := addOverlap(att.chunks, elements, c.cfg)
	chunks = enrichChunks(chunks, elements)

	for _, ch := range chunks {
		if ch.Meta("atomic_split") == true {
			att.warnings = append(att.warnings, "oversize atomic element split into line-bounded pieces")
			break
		}
	}

	res := &ChunkingResult{
		Chunks:        chunks,
		StrategyUsed:  att.strategy,
		FallbackUsed:  att.level > 0,
		FallbackLevel: att.level,
		Errors:        att.errs,
		Warnings:      att.warnings,
		Stats:         buildStats(chunks, analysis),
		Success:       len(chunks) > 0,
	}
	return res, analysis, nil
}

// buildStats derives chunk-size statistics and copies document-level rollups
// straight from the analysis rather than recomputing them from chunks.
func buildStats(chunks []Chunk, analysis ContentAnalysis) ResultStats {
	st := ResultStats{
		ChunkCount:     len(chunks),
		TotalChars:     analysis.TotalChars,
		TotalLines:     analysis.TotalLines,
		HeaderCount:    analysis.HeaderCount,
		CodeBlockCount: analysis.CodeBlockCount,
		TableCount:     analysis.TableCount,
		ListCount:      analysis.ListCount,
	}
	if len(chunks) == 0 {
		return st
	}
	total := 0
	st.MinSize = chunks[0].Size()
	for _, ch := range chunks {
		s := ch.Size()
		total += s
		if s < st.MinSize {
			st.MinSize = s
		}
		if s > st.MaxSize {
			st.MaxSize = s
		}
	}
	st.AvgSize = total / len(chunks)
	return st
}
