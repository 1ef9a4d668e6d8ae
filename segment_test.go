package chunkmd

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewChunkTrimsBlankEdges(t *testing.T) {
	lines := []string{"", "first", "second", "", ""}
	c, ok := newChunk(lines, 1, 5)
	if !ok {
		t.Fatal("expected a chunk")
	}
	if c.StartLine != 2 || c.EndLine != 3 {
		t.Errorf("range = %d-%d, want 2-3", c.StartLine, c.EndLine)
	}
	if c.Content != "first\nsecond" {
		t.Errorf("content = %q", c.Content)
	}
}

func TestNewChunkEmptyRange(t *testing.T) {
	if _, ok := newChunk([]string{"", "  ", ""}, 1, 3); ok {
		t.Error("blank-only range must not produce a chunk")
	}
}

func TestRangeSize(t *testing.T) {
	lines := []string{"ab", "c", "defg"}
	if got := rangeSize(lines, 1, 3); got != len("ab\nc\ndefg") {
		t.Errorf("rangeSize = %d, want %d", got, len("ab\nc\ndefg"))
	}
	if got := rangeSize(lines, 2, 2); got != 1 {
		t.Errorf("single line = %d, want 1", got)
	}
}

func TestAtomicElementsFiltersByConfig(t *testing.T) {
	els := []Element{
		{Kind: ElementCode, StartLine: 1, EndLine: 3},
		{Kind: ElementTable, StartLine: 5, EndLine: 7},
		{Kind: ElementListItem, StartLine: 9, EndLine: 9},
		{Kind: ElementHeader, StartLine: 11, EndLine: 11},
	}
	cfg := DefaultConfig()
	if got := len(atomicElements(els, cfg)); got != 3 {
		t.Errorf("atomic count = %d, want 3", got)
	}

	cfg.PreserveTables = false
	cfg.PreserveListHierarchy = false
	out := atomicElements(els, cfg)
	if len(out) != 1 || out[0].Kind != ElementCode {
		t.Errorf("atomic = %+v, want only code", out)
	}
}

func TestAtomicElementsDeOverlaps(t *testing.T) {
	els := []Element{
		{Kind: ElementListItem, StartLine: 2, EndLine: 6},
		{Kind: ElementCode, StartLine: 4, EndLine: 5}, // inside the item
		{Kind: ElementCode, StartLine: 8, EndLine: 9},
	}
	out := atomicElements(els, DefaultConfig())
	if len(out) != 2 {
		t.Fatalf("atomic = %+v, want 2 non-overlapping", out)
	}
	if out[0].EndLine >= out[1].StartLine {
		t.Errorf("still overlapping: %+v", out)
	}
}

func TestEmitAtomicOversizeAllowed(t *testing.T) {
	lines := []string{"```", strings.Repeat("x", 50), strings.Repeat("y", 50), "```"}
	el := Element{Kind: ElementCode, StartLine: 1, EndLine: 4}
	cfg := DefaultConfig()
	cfg.MaxChunkSize = 40

	chunks := emitAtomic(lines, el, len(lines), cfg)
	if len(chunks) != 1 {
		t.Fatalf("chunks = %d, want 1", len(chunks))
	}
	if chunks[0].Meta("is_oversize") != true {
		t.Error("missing is_oversize marker")
	}
	if chunks[0].StartLine != 1 || chunks[0].EndLine != 4 {
		t.Errorf("range = %d-%d, want 1-4", chunks[0].StartLine, chunks[0].EndLine)
	}
}

func TestEmitAtomicOversizeForbidden(t *testing.T) {
	lines := []string{"| h |", "|---|", "| " + strings.Repeat("a", 30) + " |", "| " + strings.Repeat("b", 30) + " |"}
	el := Element{Kind: ElementTable, StartLine: 1, EndLine: 4}
	cfg := DefaultConfig()
	cfg.MaxChunkSize = 40
	cfg.AllowOversize = false

	chunks := emitAtomic(lines, el, len(lines), cfg)
	if len(chunks) < 2 {
		t.Fatalf("chunks = %d, want a row-bounded split", len(chunks))
	}
	for _, c := range chunks {
		if c.Meta("atomic_split") != true {
			t.Error("missing atomic_split marker")
		}
		if c.Size() > cfg.MaxChunkSize {
			t.Errorf("piece of %d bytes exceeds max", c.Size())
		}
	}
}

func TestEmitAtomicClipsToRegionEnd(t *testing.T) {
	var lines []string
	for i := 0; i < 8; i++ {
		lines = append(lines, fmt.Sprintf("- item %02d", i))
	}
	el := Element{Kind: ElementListItem, StartLine: 1, EndLine: 8}
	cfg := DefaultConfig()
	cfg.MaxChunkSize = 30

	chunks := emitAtomic(lines, el, 5, cfg)
	if len(chunks) == 0 {
		t.Fatal("no chunks emitted")
	}
	for _, c := range chunks {
		if c.EndLine > 5 {
			t.Errorf("chunk %d-%d emits past the region end 5", c.StartLine, c.EndLine)
		}
	}
}

func TestSplitRegionRespectsBounds(t *testing.T) {
	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, fmt.Sprintf("line %02d with some padding text", i))
	}
	cfg := DefaultConfig()
	cfg.MaxChunkSize = 120
	cfg.TargetChunkSize = 90

	chunks := splitRegion(lines, 1, len(lines), nil, cfg, nil)
	if len(chunks) < 2 {
		t.Fatalf("chunks = %d, want several", len(chunks))
	}
	prev := 0
	for i, c := range chunks {
		if c.Size() > cfg.MaxChunkSize {
			t.Errorf("chunk %d size %d exceeds max", i, c.Size())
		}
		if c.StartLine <= prev {
			t.Errorf("chunk %d start %d not after previous end %d", i, c.StartLine, prev)
		}
		prev = c.EndLine
	}
}

func TestSplitRegionKeepsAtomicTogether(t *testing.T) {
	lines := []string{
		"intro text",
		"```",
		"code line one",
		"code line two",
		"```",
		"outro text",
	}
	atomics := []Element{{Kind: ElementCode, StartLine: 2, EndLine: 5}}
	cfg := DefaultConfig()
	cfg.MaxChunkSize = 45
	cfg.TargetChunkSize = 30

	chunks := splitRegion(lines, 1, len(lines), atomics, cfg, nil)
	for _, c := range chunks {
		in := c.StartLine <= 2 && c.EndLine >= 5
		out := c.EndLine < 2 || c.StartLine > 5
		if !in && !out {
			t.Errorf("chunk %d-%d cuts through the code block", c.StartLine, c.EndLine)
		}
	}
}

func TestSplitRegionPreferredBreak(t *testing.T) {
	lines := []string{"aaaa", "bbbb", "cccc", "dddd", "eeee"}
	cfg := DefaultConfig()
	cfg.MaxChunkSize = 100
	cfg.TargetChunkSize = 8
	prefer := map[int]bool{2: true}

	chunks := splitRegion(lines, 1, len(lines), nil, cfg, prefer)
	if len(chunks) < 2 {
		t.Fatalf("chunks = %d, want a break at the preferred line", len(chunks))
	}
	if chunks[0].EndLine != 2 {
		t.Errorf("first chunk ends at %d, want 2", chunks[0].EndLine)
	}
}

func TestSectionize(t *testing.T) {
	doc := "intro line\n\n# One\nalpha\n\n## One A\nbeta\n\n# Two\ngamma"
	lines := splitLines(doc)
	els := []Element{
		{Kind: ElementHeader, Level: 1, StartLine: 3, EndLine: 3, Text: "# One"},
		{Kind: ElementHeader, Level: 2, StartLine: 6, EndLine: 6, Text: "## One A"},
		{Kind: ElementHeader, Level: 1, StartLine: 9, EndLine: 9, Text: "# Two"},
	}

	secs := sectionize(lines, els, 2)
	if len(secs) != 4 {
		t.Fatalf("sections = %d, want 4 (preamble + three)", len(secs))
	}
	if !secs[0].preamble || secs[0].start != 1 || secs[0].end != 2 {
		t.Errorf("preamble = %+v", secs[0])
	}
	if secs[1].title != "One" || secs[1].start != 3 || secs[1].end != 5 {
		t.Errorf("section 1 = %+v", secs[1])
	}
	wantPath := []string{"One", "One A"}
	if len(secs[2].path) != 2 || secs[2].path[0] != wantPath[0] || secs[2].path[1] != wantPath[1] {
		t.Errorf("nested path = %v, want %v", secs[2].path, wantPath)
	}
	if secs[3].title != "Two" || secs[3].end != len(lines) {
		t.Errorf("section 3 = %+v", secs[3])
	}
}

func TestSectionizeBoundaryLevel(t *testing.T) {
	doc := "# One\na\n## Sub\nb"
	lines := splitLines(doc)
	els := []Element{
		{Kind: ElementHeader, Level: 1, StartLine: 1, EndLine: 1, Text: "# One"},
		{Kind: ElementHeader, Level: 2, StartLine: 3, EndLine: 3, Text: "## Sub"},
	}
	secs := sectionize(lines, els, 1)
	if len(secs) != 1 {
		t.Fatalf("sections = %d, want 1 (level-2 header below boundary)", len(secs))
	}
	if secs[0].end != 4 {
		t.Errorf("section end = %d, want 4", secs[0].end)
	}
}

func TestHeaderTitle(t *testing.T) {
	tests := []struct{ in, want string }{
		{"# Plain", "Plain"},
		{"### Deep Title ###", "Deep Title"},
		{"##   Spaced  ", "Spaced"},
	}
	for _, tt := range tests {
		if got := headerTitle(Element{Text: tt.in}); got != tt.want {
			t.Errorf("headerTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
