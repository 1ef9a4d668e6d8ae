package chunkmd

import (
	"fmt"
	"unicode"
)

// coverageTolerance is the minimum share of the document's non-whitespace
// characters that must survive into the chunk contents.
const coverageTolerance = 0.95

// checkChunks verifies the hard chunk invariants: non-empty content, sane
// line ranges, non-decreasing start lines. It returns a description of the
// first violation, or the empty string.
func checkChunks(chunks []Chunk) string {
	prev := 0
	for i, c := range chunks {
		if isBlank(c.Content) {
			return fmt.Sprintf("chunk %d has empty content", i)
		}
		if c.StartLine < 1 || c.EndLine < c.StartLine {
			return fmt.Sprintf("chunk %d has invalid line range %d-%d", i, c.StartLine, c.EndLine)
		}
		if c.StartLine < prev {
			return fmt.Sprintf("chunk %d breaks start-line ordering", i)
		}
		prev = c.StartLine
	}
	return ""
}

// coverage returns the share of non-whitespace characters of content that
// appear in the chunk contents. Overlap context never inflates the share
// since it lives in metadata, not in Content.
func coverage(content string, chunks []Chunk) float64 {
	total := countInk(content)
	if total == 0 {
		return 1
	}
	got := 0
	for _, c := range chunks {
		got += countInk(c.Content)
	}
	if got > total {
		return 1
	}
	return float64(got) / float64(total)
}

func countInk(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
