package observer

import "go.opentelemetry.io/otel/attribute"

// Attribute keys for chunking observability spans and metrics.
var (
	AttrStrategy      = attribute.Key("chunk.strategy")
	AttrContentType   = attribute.Key("chunk.content_type")
	AttrChunkCount    = attribute.Key("chunk.count")
	AttrFallbackUsed  = attribute.Key("chunk.fallback_used")
	AttrFallbackLevel = attribute.Key("chunk.fallback_level")

	AttrDocBytes = attribute.Key("doc.bytes")
	AttrDocLines = attribute.Key("doc.lines")
)
