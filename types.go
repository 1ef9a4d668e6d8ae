package chunkmd

import "time"

// --- Structural elements (produced by the parsing collaborator) ---

// ElementKind identifies the structural type of a parsed markdown element.
type ElementKind string

const (
	ElementHeader   ElementKind = "header"
	ElementCode     ElementKind = "code"
	ElementList     ElementKind = "list"
	ElementListItem ElementKind = "list_item"
	ElementTable    ElementKind = "table"
)

// Element is one structural unit of a markdown document: a header, a fenced
// code block, a list (or one of its top-level items), or a table. Line
// numbers are 1-based and inclusive. For list items the range covers the
// item and everything nested under it.
type Element struct {
	Kind      ElementKind `json:"kind"`
	Level     int         `json:"level,omitempty"` // header depth or list nesting depth
	StartLine int         `json:"start_line"`
	EndLine   int         `json:"end_line"`
	Text      string      `json:"text"`
	Language  string      `json:"language,omitempty"` // fenced code info string
	Ordered   bool        `json:"ordered,omitempty"`
}

// Lines returns the number of lines the element spans.
func (e Element) Lines() int { return e.EndLine - e.StartLine + 1 }

// ContentAnalysis holds read-only structural facts about a document,
// produced once per input by the analyzer. Strategies use it to decide
// applicability; the enricher uses it for document-level rollups.
type ContentAnalysis struct {
	ContentType     string  `json:"content_type"`
	CodeRatio       float64 `json:"code_ratio"`
	ComplexityScore float64 `json:"complexity_score"`
	HeaderCount     int     `json:"header_count"`
	ListCount       int     `json:"list_count"`
	ListItemCount   int     `json:"list_item_count"`
	TableCount      int     `json:"table_count"`
	CodeBlockCount  int     `json:"code_block_count"`
	TotalChars      int     `json:"total_chars"`
	TotalLines      int     `json:"total_lines"`
}

// Analyzer parses markdown text into structural facts and an ordered element
// list. The analyze package provides a goldmark-backed implementation; tests
// inject fakes.
type Analyzer interface {
	Analyze(text string) (ContentAnalysis, []Element, error)
}

// --- Chunks ---

// Chunk is a contiguous, line-bounded slice of the document plus descriptive
// metadata. Content and line range are fixed at creation; only Metadata may
// gain entries afterwards.
type Chunk struct {
	Content   string         `json:"content"`
	StartLine int            `json:"start_line"` // 1-based, inclusive
	EndLine   int            `json:"end_line"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Size returns the content length in bytes.
func (c Chunk) Size() int { return len(c.Content) }

// LineCount returns the number of lines the chunk spans.
func (c Chunk) LineCount() int { return c.EndLine - c.StartLine + 1 }

// SetMeta stores a metadata entry, allocating the map on first use.
func (c *Chunk) SetMeta(key string, value any) {
	if c.Metadata == nil {
		c.Metadata = make(map[string]any)
	}
	c.Metadata[key] = value
}

// Meta returns a metadata entry, or nil when absent.
func (c Chunk) Meta(key string) any {
	if c.Metadata == nil {
		return nil
	}
	return c.Metadata[key]
}

// --- Results ---

// ResultStats aggregates chunk-level sizes and document-level facts. The
// document rollups come straight from the original ContentAnalysis, not
// recomputed from chunks.
type ResultStats struct {
	ChunkCount     int `json:"chunk_count"`
	AvgSize        int `json:"avg_size"`
	MinSize        int `json:"min_size"`
	MaxSize        int `json:"max_size"`
	TotalChars     int `json:"total_chars"`
	TotalLines     int `json:"total_lines"`
	HeaderCount    int `json:"header_count"`
	CodeBlockCount int `json:"code_block_count"`
	TableCount     int `json:"table_count"`
	ListCount      int `json:"list_count"`
}

// ChunkingResult is the outcome of chunking one document: the ordered chunk
// sequence plus execution facts (strategy, fallback depth, timing, warnings).
type ChunkingResult struct {
	ID             string        `json:"id"`
	Chunks         []Chunk       `json:"chunks"`
	StrategyUsed   string        `json:"strategy_used"`
	FallbackUsed   bool          `json:"fallback_used"`
	FallbackLevel  int           `json:"fallback_level"`
	ProcessingTime time.Duration `json:"processing_time"`
	Errors         []string      `json:"errors,omitempty"`
	Warnings       []string      `json:"warnings,omitempty"`
	Stats          ResultStats   `json:"stats"`
	Success        bool          `json:"success"`
}

// --- Strategy outcomes ---

// Outcome is the result of one strategy application. Expected, recoverable
// failures (inapplicable content, empty result) travel here as values so the
// fallback chain can inspect them; they are not Go errors returned across
// the public API.
type Outcome struct {
	Chunks []Chunk
	Err    error
}

// Success wraps a chunk list in a successful Outcome.
func Success(chunks []Chunk) Outcome { return Outcome{Chunks: chunks} }

// Failure wraps a strategy failure in an Outcome.
func Failure(err error) Outcome { return Outcome{Err: err} }

// OK reports whether the outcome is usable: no error and at least one chunk.
func (o Outcome) OK() bool { return o.Err == nil && len(o.Chunks) > 0 }
