package observer

import (
	"context"
	"time"

	chunkmd "github.com/nevindra/chunkmd"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ObservedChunker wraps a chunkmd.Chunker with OTEL instrumentation.
type ObservedChunker struct {
	inner *chunkmd.Chunker
	inst  *Instruments
}

// Wrap returns an instrumented chunker.
func Wrap(inner *chunkmd.Chunker, inst *Instruments) *ObservedChunker {
	return &ObservedChunker{inner: inner, inst: inst}
}

// Config returns the effective configuration of the wrapped chunker.
func (o *ObservedChunker) Config() chunkmd.ChunkConfig { return o.inner.Config() }

// Chunk runs the wrapped chunker and records a span, counters, a duration
// histogram, and a structured log record for the call.
func (o *ObservedChunker) Chunk(ctx context.Context, text string, opts ...chunkmd.ChunkOption) (*chunkmd.ChunkingResult, error) {
	ctx, span := o.inst.Tracer.Start(ctx, "chunk.document", trace.WithAttributes(
		AttrDocBytes.Int(len(text)),
	))
	defer span.End()
	start := time.Now()
	before := o.inner.Metrics()

	result, err := o.inner.Chunk(text, opts...)

	durationMs := float64(time.Since(start).Microseconds()) / 1000
	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	strategy := ""
	if result != nil {
		strategy = result.StrategyUsed
		span.SetAttributes(
			AttrStrategy.String(strategy),
			AttrChunkCount.Int(len(result.Chunks)),
			AttrFallbackUsed.Bool(result.FallbackUsed),
			AttrFallbackLevel.Int(result.FallbackLevel),
		)
		attrs := metric.WithAttributes(AttrStrategy.String(strategy))
		o.inst.Chunks.Add(ctx, int64(len(result.Chunks)), attrs)
		if result.FallbackUsed {
			o.inst.Fallbacks.Add(ctx, 1, attrs)
		}
		if result.Stats.AvgSize > 0 {
			o.inst.ChunkSize.Record(ctx, float64(result.Stats.AvgSize), attrs)
		}
	}

	after := o.inner.Metrics()
	if hits := after.CacheHits - before.CacheHits; hits > 0 {
		o.inst.CacheHits.Add(ctx, hits)
	}
	if misses := after.CacheMisses - before.CacheMisses; misses > 0 {
		o.inst.CacheMisses.Add(ctx, misses)
	}

	o.inst.Documents.Add(ctx, 1, metric.WithAttributes(
		AttrStrategy.String(strategy),
		attribute.String("status", status),
	))
	o.inst.ChunkDuration.Record(ctx, durationMs, metric.WithAttributes(
		AttrStrategy.String(strategy),
	))

	// Structured log
	var rec otellog.Record
	rec.SetSeverity(otellog.SeverityInfo)
	rec.SetBody(otellog.StringValue("document chunked"))
	chunkCount := 0
	if result != nil {
		chunkCount = len(result.Chunks)
	}
	rec.AddAttributes(
		otellog.String("chunk.strategy", strategy),
		otellog.Int("chunk.count", chunkCount),
		otellog.Int("doc.bytes", len(text)),
		otellog.Float64("chunk.duration_ms", durationMs),
		otellog.String("status", status),
	)
	o.inst.Logger.Emit(ctx, rec)

	return result, err
}
