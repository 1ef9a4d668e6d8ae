package chunkmd

import (
	"strings"
	"testing"
)

func TestSentenceEnds(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int // number of boundaries
	}{
		{"two sentences", "First one. Second one.", 1},
		{"abbreviation", "Ask Dr. Smith about it. Then leave.", 1},
		{"decimal number", "Pi is 3.14 roughly. Next sentence.", 1},
		{"e.g. abbreviation", "Use tools, e.g. Hammers work. Done now.", 1},
		{"question and exclaim", "Really? Yes! Fine.", 2},
		{"cjk terminators", "これは文です。これも文です。", 2},
		{"lowercase after dot", "see file.txt for details", 0},
		{"trailing dot only", "Just one sentence.", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ends := sentenceEnds(tt.text)
			if len(ends) != tt.want {
				t.Errorf("sentenceEnds(%q) = %v (%d boundaries), want %d", tt.text, ends, len(ends), tt.want)
			}
			for _, e := range ends {
				if e <= 0 || e > len(tt.text) {
					t.Errorf("boundary %d out of range", e)
				}
			}
		})
	}
}

func TestEndsSentence(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"It ends here.", true},
		{"Does it end?", true},
		{"It ends! ", true},
		{"A heading:", true},
		{"quoted.\"", true},
		{"emphasized.*", true},
		{"no terminator", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		if got := endsSentence(tt.line); got != tt.want {
			t.Errorf("endsSentence(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestSplitTextBounded(t *testing.T) {
	text := "First sentence here. Second sentence follows. Third one ends it."
	parts := splitTextBounded(text, 30)
	if len(parts) < 2 {
		t.Fatalf("parts = %v, want a split", parts)
	}
	for _, p := range parts {
		if len(p) > 30 {
			t.Errorf("part %q exceeds bound", p)
		}
		if strings.TrimSpace(p) == "" {
			t.Error("blank part")
		}
	}
}

func TestSplitTextBoundedLongWord(t *testing.T) {
	word := strings.Repeat("x", 25)
	parts := splitTextBounded(word, 10)
	total := 0
	for _, p := range parts {
		if len(p) > 10 {
			t.Errorf("part %q exceeds bound", p)
		}
		total += len(p)
	}
	if total != 25 {
		t.Errorf("lost characters: got %d of 25", total)
	}
}

func TestSplitLongLineKeepsLineNumber(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxChunkSize = 20
	line := "One sentence. Two sentence. Three sentence."
	chunks := splitLongLine(line, 7, cfg)
	if len(chunks) < 2 {
		t.Fatalf("chunks = %d, want several", len(chunks))
	}
	for _, c := range chunks {
		if c.StartLine != 7 || c.EndLine != 7 {
			t.Errorf("chunk lines = %d-%d, want 7-7", c.StartLine, c.EndLine)
		}
	}
}
