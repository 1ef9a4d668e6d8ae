package chunkmd

// Selection modes.
const (
	SelectStrict   = "strict"   // first applicable strategy in registry order
	SelectWeighted = "weighted" // priority/quality score, highest wins
)

// Hard limits of the caching and streaming policy. Documents at or above
// streamForceBytes always stream; documents at or above cacheDocLimit are
// never cached.
const (
	cacheDocLimit    = 50 * 1024
	streamForceBytes = 1 << 20
)

// ChunkConfig is an immutable value object carrying every knob the engine
// recognizes. Construct it with DefaultConfig, adjust fields, and hand it to
// New; the chunker validates it and works on a normalized copy, so the value
// a caller holds never mutates.
type ChunkConfig struct {
	// Size bounds, in bytes of content.
	MaxChunkSize    int `toml:"max_chunk_size" json:"max_chunk_size"`
	MinChunkSize    int `toml:"min_chunk_size" json:"min_chunk_size"`
	TargetChunkSize int `toml:"target_chunk_size" json:"target_chunk_size"`

	// Overlap between adjacent chunks (metadata-only, never primary content).
	OverlapSize       int     `toml:"overlap_size" json:"overlap_size"`
	OverlapPercentage float64 `toml:"overlap_percentage" json:"overlap_percentage"`
	EnableOverlap     bool    `toml:"enable_overlap" json:"enable_overlap"`

	// Per-strategy applicability thresholds.
	CodeRatioThreshold   float64 `toml:"code_ratio_threshold" json:"code_ratio_threshold"`
	ListCountThreshold   int     `toml:"list_count_threshold" json:"list_count_threshold"`
	TableCountThreshold  int     `toml:"table_count_threshold" json:"table_count_threshold"`
	HeaderCountThreshold int     `toml:"header_count_threshold" json:"header_count_threshold"`
	MinComplexity        float64 `toml:"min_complexity" json:"min_complexity"`

	// Atomic-unit policy.
	AllowOversize         bool `toml:"allow_oversize" json:"allow_oversize"`
	PreserveCodeBlocks    bool `toml:"preserve_code_blocks" json:"preserve_code_blocks"`
	PreserveTables        bool `toml:"preserve_tables" json:"preserve_tables"`
	PreserveListHierarchy bool `toml:"preserve_list_hierarchy" json:"preserve_list_hierarchy"`

	// Fallback chain.
	EnableFallback   bool   `toml:"enable_fallback" json:"enable_fallback"`
	FallbackStrategy string `toml:"fallback_strategy" json:"fallback_strategy"`
	MaxFallbackLevel int    `toml:"max_fallback_level" json:"max_fallback_level"`

	// Streaming for large documents.
	EnableStreaming    bool `toml:"enable_streaming" json:"enable_streaming"`
	StreamingThreshold int  `toml:"streaming_threshold" json:"streaming_threshold"`

	// Result caching.
	EnableCache   bool `toml:"enable_cache" json:"enable_cache"`
	CacheCapacity int  `toml:"cache_capacity" json:"cache_capacity"`

	// Structural segmentation.
	ExtractPreamble      bool `toml:"extract_preamble" json:"extract_preamble"`
	SectionBoundaryLevel int  `toml:"section_boundary_level" json:"section_boundary_level"`

	// Strategy selection.
	SelectionMode           string  `toml:"selection_mode" json:"selection_mode"`
	SelectionPriorityWeight float64 `toml:"selection_priority_weight" json:"selection_priority_weight"`
	SelectionQualityWeight  float64 `toml:"selection_quality_weight" json:"selection_quality_weight"`
}

// DefaultConfig returns the configuration the engine uses when a field is
// left at its zero value.
func DefaultConfig() ChunkConfig {
	return ChunkConfig{
		MaxChunkSize:    2000,
		MinChunkSize:    200,
		TargetChunkSize: 1000,

		OverlapSize:       100,
		OverlapPercentage: 0.15,
		EnableOverlap:     true,

		CodeRatioThreshold:   0.3,
		ListCountThreshold:   3,
		TableCountThreshold:  2,
		HeaderCountThreshold: 2,
		MinComplexity:        0.5,

		AllowOversize:         true,
		PreserveCodeBlocks:    true,
		PreserveTables:        true,
		PreserveListHierarchy: true,

		EnableFallback:   true,
		FallbackStrategy: StrategySentences,
		MaxFallbackLevel: 2,

		EnableStreaming:    true,
		StreamingThreshold: streamForceBytes,

		EnableCache:   true,
		CacheCapacity: 128,

		ExtractPreamble:      true,
		SectionBoundaryLevel: 3,

		SelectionMode:           SelectStrict,
		SelectionPriorityWeight: 0.5,
		SelectionQualityWeight:  0.5,
	}
}

// Validate rejects values that cannot be auto-corrected. It returns
// *ErrConfig on the first violation.
func (c ChunkConfig) Validate() error {
	switch {
	case c.MaxChunkSize < 0:
		return &ErrConfig{Field: "max_chunk_size", Message: "must not be negative"}
	case c.MinChunkSize < 0:
		return &ErrConfig{Field: "min_chunk_size", Message: "must not be negative"}
	case c.TargetChunkSize < 0:
		return &ErrConfig{Field: "target_chunk_size", Message: "must not be negative"}
	case c.OverlapSize < 0:
		return &ErrConfig{Field: "overlap_size", Message: "must not be negative"}
	case c.OverlapPercentage < 0 || c.OverlapPercentage > 1:
		return &ErrConfig{Field: "overlap_percentage", Message: "must be within [0, 1]"}
	case c.CodeRatioThreshold < 0 || c.CodeRatioThreshold > 1:
		return &ErrConfig{Field: "code_ratio_threshold", Message: "must be within [0, 1]"}
	case c.MinComplexity < 0 || c.MinComplexity > 1:
		return &ErrConfig{Field: "min_complexity", Message: "must be within [0, 1]"}
	case c.MaxFallbackLevel < 0:
		return &ErrConfig{Field: "max_fallback_level", Message: "must not be negative"}
	case c.StreamingThreshold < 0:
		return &ErrConfig{Field: "streaming_threshold", Message: "must not be negative"}
	case c.CacheCapacity < 0:
		return &ErrConfig{Field: "cache_capacity", Message: "must not be negative"}
	}
	if c.SelectionMode != "" && c.SelectionMode != SelectStrict && c.SelectionMode != SelectWeighted {
		return &ErrConfig{Field: "selection_mode", Message: "must be strict or weighted"}
	}
	return nil
}

// Normalized returns a copy with zero values filled from defaults and
// inconsistent bounds auto-corrected: min <= target <= max and overlap
// strictly below max.
func (c ChunkConfig) Normalized() ChunkConfig {
	def := DefaultConfig()

	if c.MaxChunkSize == 0 {
		c.MaxChunkSize = def.MaxChunkSize
	}
	if c.MinChunkSize == 0 {
		c.MinChunkSize = def.MinChunkSize
	}
	if c.TargetChunkSize == 0 {
		c.TargetChunkSize = def.TargetChunkSize
	}
	if c.MinChunkSize > c.MaxChunkSize {
		c.MinChunkSize = c.MaxChunkSize / 4
	}
	if c.TargetChunkSize < c.MinChunkSize {
		c.TargetChunkSize = c.MinChunkSize
	}
	if c.TargetChunkSize > c.MaxChunkSize {
		c.TargetChunkSize = c.MaxChunkSize
	}
	if c.OverlapSize >= c.MaxChunkSize {
		c.OverlapSize = c.MaxChunkSize / 4
	}
	if c.OverlapPercentage == 0 {
		c.OverlapPercentage = def.OverlapPercentage
	}
	if c.OverlapPercentage > 0.5 {
		c.OverlapPercentage = 0.5
	}

	if c.FallbackStrategy == "" {
		c.FallbackStrategy = def.FallbackStrategy
	}
	if c.StreamingThreshold == 0 {
		c.StreamingThreshold = def.StreamingThreshold
	}
	if c.CacheCapacity == 0 {
		c.CacheCapacity = def.CacheCapacity
	}
	if c.SectionBoundaryLevel <= 0 || c.SectionBoundaryLevel > 6 {
		c.SectionBoundaryLevel = def.SectionBoundaryLevel
	}
	if c.SelectionMode == "" {
		c.SelectionMode = def.SelectionMode
	}
	if c.SelectionPriorityWeight <= 0 && c.SelectionQualityWeight <= 0 {
		c.SelectionPriorityWeight = def.SelectionPriorityWeight
		c.SelectionQualityWeight = def.SelectionQualityWeight
	}
	return c
}
