package chunkmd

import (
	"strings"
	"testing"
)

func overlapCfg() ChunkConfig {
	cfg := DefaultConfig()
	cfg.OverlapSize = 30
	cfg.OverlapPercentage = 0.5
	return cfg
}

func TestAddOverlapTrailingContext(t *testing.T) {
	chunks := []Chunk{
		{Content: "first part of the document\nlast line of chunk one", StartLine: 1, EndLine: 2},
		{Content: "second chunk content keeps going for a while here", StartLine: 4, EndLine: 4},
	}
	out := addOverlap(chunks, nil, overlapCfg())

	if out[0].Meta("overlap_context") != nil {
		t.Error("first chunk must not receive overlap")
	}
	ctx, _ := out[1].Meta("overlap_context").(string)
	if ctx == "" {
		t.Fatal("second chunk missing overlap_context")
	}
	if !strings.HasSuffix(out[0].Content, ctx) {
		t.Errorf("overlap %q is not a suffix of the previous chunk", ctx)
	}
	if out[1].Meta("overlap_type") != "trailing" {
		t.Errorf("overlap_type = %v, want trailing", out[1].Meta("overlap_type"))
	}
	if out[1].Meta("overlap_size") != len(ctx) {
		t.Errorf("overlap_size = %v, want %d", out[1].Meta("overlap_size"), len(ctx))
	}
}

func TestAddOverlapNeverModifiesContent(t *testing.T) {
	chunks := []Chunk{
		{Content: "alpha beta gamma delta", StartLine: 1, EndLine: 1},
		{Content: "epsilon zeta eta theta", StartLine: 3, EndLine: 3},
	}
	before0, before1 := chunks[0].Content, chunks[1].Content
	out := addOverlap(chunks, nil, overlapCfg())
	if out[0].Content != before0 || out[1].Content != before1 {
		t.Error("overlap must never change primary content")
	}
}

func TestAddOverlapSizeBounds(t *testing.T) {
	prev := Chunk{Content: strings.Repeat("word ", 40), StartLine: 1, EndLine: 1} // 200 bytes
	cur := Chunk{Content: "tiny next", StartLine: 3, EndLine: 3}                  // 9 bytes
	cfg := overlapCfg()
	cfg.OverlapSize = 100

	out := addOverlap([]Chunk{prev, cur}, nil, cfg)
	ctx, _ := out[1].Meta("overlap_context").(string)
	// Bounded by half the destination: 9/2 = 4 bytes.
	if len(ctx) > 4 {
		t.Errorf("overlap %q exceeds half the destination size", ctx)
	}
}

func TestAddOverlapDisabled(t *testing.T) {
	cfg := overlapCfg()
	cfg.EnableOverlap = false
	chunks := []Chunk{
		{Content: "one two three", StartLine: 1, EndLine: 1},
		{Content: "four five six", StartLine: 2, EndLine: 2},
	}
	out := addOverlap(chunks, nil, cfg)
	if out[1].Meta("overlap_context") != nil {
		t.Error("overlap added despite being disabled")
	}
}

func TestOverlapDoesNotCrossAtomicBoundary(t *testing.T) {
	// The previous chunk ends with the interior of a code block; the suffix
	// must not start inside it.
	prev := Chunk{
		Content:   "prose before\n```\ncode a\ncode b\n```",
		StartLine: 1, EndLine: 5,
	}
	cur := Chunk{Content: strings.Repeat("following prose text ", 5), StartLine: 7, EndLine: 7}
	atomics := []Element{{Kind: ElementCode, StartLine: 2, EndLine: 5}}
	cfg := overlapCfg()
	cfg.OverlapSize = 20 // fits the tail lines of the code block only

	out := addOverlap([]Chunk{prev, cur}, atomics, cfg)
	ctx, _ := out[1].Meta("overlap_context").(string)
	if strings.Contains(ctx, "code b") && !strings.Contains(ctx, "```\ncode a") {
		t.Errorf("overlap %q starts inside the code block", ctx)
	}
}

func TestOverlapWordBoundaryTail(t *testing.T) {
	prev := Chunk{Content: "alpha bravo charlie delta echo foxtrot", StartLine: 1, EndLine: 1}
	cur := Chunk{Content: strings.Repeat("x", 40), StartLine: 3, EndLine: 3}
	cfg := overlapCfg()
	cfg.OverlapSize = 10
	cfg.OverlapPercentage = 0.5

	out := addOverlap([]Chunk{prev, cur}, nil, cfg)
	ctx, _ := out[1].Meta("overlap_context").(string)
	if ctx == "" {
		t.Fatal("missing overlap")
	}
	if strings.HasPrefix(ctx, "x") || len(ctx) > 10 {
		t.Errorf("ctx = %q", ctx)
	}
	// Must start at a word boundary of the source line.
	if !strings.Contains(" "+prev.Content, " "+strings.Fields(ctx)[0]) {
		t.Errorf("overlap %q does not start on a word boundary", ctx)
	}
}
