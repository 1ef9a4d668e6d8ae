// Package observer provides OTEL-based observability for chunking operations.
//
// It wraps a Chunker with an instrumented version that emits traces, metrics,
// and logs via OpenTelemetry. Users export to any OTEL-compatible backend by
// setting standard OTEL env vars.
package observer

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const scopeName = "github.com/nevindra/chunkmd/observer"

// Instruments holds all OTEL instruments used by the observer wrappers.
type Instruments struct {
	Tracer trace.Tracer
	Meter  metric.Meter
	Logger otellog.Logger

	// Counters
	Documents   metric.Int64Counter
	Chunks      metric.Int64Counter
	Fallbacks   metric.Int64Counter
	CacheHits   metric.Int64Counter
	CacheMisses metric.Int64Counter

	// Histograms
	ChunkDuration metric.Float64Histogram
	ChunkSize     metric.Float64Histogram
}

// Init sets up OTEL trace, metric, and log providers with OTLP HTTP exporters.
// Configuration comes from standard OTEL env vars (OTEL_EXPORTER_OTLP_ENDPOINT, etc.).
// Returns a shutdown function that must be called on application exit.
func Init(ctx context.Context) (*Instruments, func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName("chunkmd")),
		resource.WithFromEnv(),
	)
	if err != nil {
		return nil, nil, err
	}

	// Trace provider
	traceExp, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	// Metric provider
	metricExp, err := otlpmetrichttp.New(ctx)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, nil, err
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	// Log provider
	logExp, err := otlploghttp.New(ctx)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, nil, err
	}
	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExp)),
		sdklog.WithResource(res),
	)
	global.SetLoggerProvider(lp)

	inst, err := NewInstruments()
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		_ = lp.Shutdown(ctx)
		return nil, nil, err
	}

	shutdown := func(ctx context.Context) error {
		return errors.Join(
			tp.Shutdown(ctx),
			mp.Shutdown(ctx),
			lp.Shutdown(ctx),
		)
	}

	return inst, shutdown, nil
}

// NewInstruments builds instruments against the globally registered
// providers. Callers who configure providers themselves (or tests using the
// no-op defaults) use this directly instead of Init.
func NewInstruments() (*Instruments, error) {
	tracer := otel.Tracer(scopeName)
	meter := otel.Meter(scopeName)
	logger := global.GetLoggerProvider().Logger(scopeName)

	documents, err := meter.Int64Counter("chunk.documents",
		metric.WithDescription("Documents chunked"),
		metric.WithUnit("{document}"))
	if err != nil {
		return nil, err
	}

	chunks, err := meter.Int64Counter("chunk.chunks",
		metric.WithDescription("Chunks produced"),
		metric.WithUnit("{chunk}"))
	if err != nil {
		return nil, err
	}

	fallbacks, err := meter.Int64Counter("chunk.fallbacks",
		metric.WithDescription("Documents that needed a fallback strategy"),
		metric.WithUnit("{document}"))
	if err != nil {
		return nil, err
	}

	cacheHits, err := meter.Int64Counter("chunk.cache.hits",
		metric.WithDescription("Result cache hits"),
		metric.WithUnit("{hit}"))
	if err != nil {
		return nil, err
	}

	cacheMisses, err := meter.Int64Counter("chunk.cache.misses",
		metric.WithDescription("Result cache misses"),
		metric.WithUnit("{miss}"))
	if err != nil {
		return nil, err
	}

	chunkDuration, err := meter.Float64Histogram("chunk.duration",
		metric.WithDescription("Document chunking duration"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	chunkSize, err := meter.Float64Histogram("chunk.size",
		metric.WithDescription("Average chunk size per document"),
		metric.WithUnit("{char}"))
	if err != nil {
		return nil, err
	}

	return &Instruments{
		Tracer:        tracer,
		Meter:         meter,
		Logger:        logger,
		Documents:     documents,
		Chunks:        chunks,
		Fallbacks:     fallbacks,
		CacheHits:     cacheHits,
		CacheMisses:   cacheMisses,
		ChunkDuration: chunkDuration,
		ChunkSize:     chunkSize,
	}, nil
}
