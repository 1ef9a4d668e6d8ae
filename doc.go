// Package chunkmd is a markdown-aware text chunking engine for
// retrieval-augmented-generation pipelines.
//
// Given a markdown document it analyzes structure, selects the best
// segmentation strategy, produces size-bounded chunks that respect
// sentence, code, list, and table boundaries, attaches overlap context and
// structural metadata to each chunk, and guarantees a usable result even
// when specialized strategies fail.
//
// # Quick Start
//
//	chunker, err := chunkmd.New(analyze.New())
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := chunker.Chunk(markdownText)
//
// Configuration is a plain value object:
//
//	cfg := chunkmd.DefaultConfig()
//	cfg.MaxChunkSize = 1200
//	cfg.SelectionMode = chunkmd.SelectWeighted
//	chunker, err := chunkmd.New(analyze.New(), chunkmd.WithConfig(cfg))
//
// # Core pieces
//
//   - [Analyzer] — parses markdown into [ContentAnalysis] facts and an
//     ordered [Element] list (goldmark-backed implementation in the analyze
//     package)
//   - [Strategy] — pluggable segmentation algorithm; six built-ins (code,
//     table, list, mixed, structural, sentences) live in a [Registry]
//   - [Selector] — strict or weighted strategy selection
//   - [Chunker] — the orchestrator: select, apply, fall back, overlap,
//     enrich
//   - [Caches] — shareable LRU result cache with explicit invalidation
//
// The engine is single-threaded and CPU-bound per call; callers parallelize
// across documents. The observer package wraps a Chunker with OpenTelemetry
// instrumentation.
package chunkmd
