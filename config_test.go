package chunkmd

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxChunkSize != 2000 || cfg.MinChunkSize != 200 || cfg.TargetChunkSize != 1000 {
		t.Errorf("size bounds = %d/%d/%d, want 2000/200/1000", cfg.MaxChunkSize, cfg.MinChunkSize, cfg.TargetChunkSize)
	}
	if !cfg.EnableOverlap || !cfg.EnableFallback || !cfg.AllowOversize {
		t.Error("overlap, fallback, and oversize must default on")
	}
	if cfg.FallbackStrategy != StrategySentences {
		t.Errorf("FallbackStrategy = %q, want sentences", cfg.FallbackStrategy)
	}
	if cfg.SelectionMode != SelectStrict {
		t.Errorf("SelectionMode = %q, want strict", cfg.SelectionMode)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*ChunkConfig)
		field string
	}{
		{"negative max", func(c *ChunkConfig) { c.MaxChunkSize = -1 }, "max_chunk_size"},
		{"negative overlap", func(c *ChunkConfig) { c.OverlapSize = -5 }, "overlap_size"},
		{"overlap percentage above 1", func(c *ChunkConfig) { c.OverlapPercentage = 1.5 }, "overlap_percentage"},
		{"code ratio above 1", func(c *ChunkConfig) { c.CodeRatioThreshold = 2 }, "code_ratio_threshold"},
		{"negative fallback depth", func(c *ChunkConfig) { c.MaxFallbackLevel = -1 }, "max_fallback_level"},
		{"bad selection mode", func(c *ChunkConfig) { c.SelectionMode = "random" }, "selection_mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mut(&cfg)
			err := cfg.Validate()
			var ce *ErrConfig
			if !errors.As(err, &ce) {
				t.Fatalf("Validate = %v, want *ErrConfig", err)
			}
			if ce.Field != tt.field {
				t.Errorf("field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestNormalizedFillsZeroValues(t *testing.T) {
	var cfg ChunkConfig
	n := cfg.Normalized()
	def := DefaultConfig()
	if n.MaxChunkSize != def.MaxChunkSize || n.TargetChunkSize != def.TargetChunkSize {
		t.Errorf("sizes = %d/%d, want defaults", n.MaxChunkSize, n.TargetChunkSize)
	}
	if n.FallbackStrategy != StrategySentences || n.SelectionMode != SelectStrict {
		t.Errorf("fallback/mode = %q/%q, want defaults", n.FallbackStrategy, n.SelectionMode)
	}
	if n.SectionBoundaryLevel != def.SectionBoundaryLevel {
		t.Errorf("SectionBoundaryLevel = %d, want %d", n.SectionBoundaryLevel, def.SectionBoundaryLevel)
	}
	if n.OverlapPercentage != def.OverlapPercentage {
		t.Errorf("OverlapPercentage = %v, want %v", n.OverlapPercentage, def.OverlapPercentage)
	}
}

func TestNormalizedCorrectsBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinChunkSize = 5000 // above max
	cfg.TargetChunkSize = 4000
	cfg.OverlapSize = 3000 // above max
	n := cfg.Normalized()

	if n.MinChunkSize > n.MaxChunkSize {
		t.Errorf("min %d still above max %d", n.MinChunkSize, n.MaxChunkSize)
	}
	if n.TargetChunkSize < n.MinChunkSize || n.TargetChunkSize > n.MaxChunkSize {
		t.Errorf("target %d outside [%d, %d]", n.TargetChunkSize, n.MinChunkSize, n.MaxChunkSize)
	}
	if n.OverlapSize >= n.MaxChunkSize {
		t.Errorf("overlap %d not below max %d", n.OverlapSize, n.MaxChunkSize)
	}
}

func TestNormalizedClampsOverlapPercentage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OverlapPercentage = 0.9
	if n := cfg.Normalized(); n.OverlapPercentage != 0.5 {
		t.Errorf("OverlapPercentage = %f, want 0.5", n.OverlapPercentage)
	}
}

func TestNormalizedIsIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinChunkSize = 3000
	once := cfg.Normalized()
	twice := once.Normalized()
	if once != twice {
		t.Errorf("Normalized not idempotent: %+v vs %+v", once, twice)
	}
}
