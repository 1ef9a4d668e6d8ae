package chunkmd

import "strings"

// addOverlap copies a trailing slice of each chunk into its successor's
// metadata. The effective size is bounded three ways to prevent degenerate
// duplication: the configured overlap size, a percentage of the source
// chunk, and half the destination chunk. Primary content is never modified,
// and the slice never crosses an atomic element boundary. No-op when overlap
// is disabled.
func addOverlap(chunks []Chunk, elements []Element, cfg ChunkConfig) []Chunk {
	if !cfg.EnableOverlap || len(chunks) < 2 {
		return chunks
	}
	atomics := atomicElements(elements, cfg)
	for i := 1; i < len(chunks); i++ {
		prev, cur := chunks[i-1], &chunks[i]
		eff := cfg.OverlapSize
		if cfg.OverlapPercentage > 0 {
			if p := int(cfg.OverlapPercentage * float64(prev.Size())); p < eff {
				eff = p
			}
		}
		if h := cur.Size() / 2; h < eff {
			eff = h
		}
		if eff <= 0 {
			continue
		}
		tail := overlapTail(prev, atomics, eff)
		if tail == "" {
			continue
		}
		cur.SetMeta("overlap_context", tail)
		cur.SetMeta("overlap_type", "trailing")
		cur.SetMeta("overlap_size", len(tail))
	}
	return chunks
}

// overlapTail returns a suffix of the chunk of at most eff bytes, built from
// whole trailing lines where possible. The suffix never starts inside an
// atomic element; when that would be unavoidable it shrinks or vanishes.
func overlapTail(c Chunk, atomics []Element, eff int) string {
	lines := strings.Split(c.Content, "\n")

	// Extend the suffix upward line by line while it fits.
	j := len(lines)
	size := 0
	for j > 0 {
		add := len(lines[j-1])
		if size > 0 {
			add++
		}
		if size+add > eff {
			break
		}
		size += add
		j--
	}

	if j == len(lines) {
		// No whole line fits. Take a word-trimmed suffix of the last line,
		// unless that line sits inside an atomic unit.
		if startsInsideAtomic(c.StartLine+len(lines)-1, atomics) {
			return ""
		}
		return tailOfLine(lines[len(lines)-1], eff)
	}

	for j < len(lines) && startsInsideAtomic(c.StartLine+j, atomics) {
		j++
	}
	if j >= len(lines) {
		return ""
	}
	return strings.TrimSpace(strings.Join(lines[j:], "\n"))
}

// startsInsideAtomic reports whether the absolute line number falls strictly
// inside an atomic element (after its first line).
func startsInsideAtomic(ln int, atomics []Element) bool {
	for _, el := range atomics {
		if ln > el.StartLine && ln <= el.EndLine {
			return true
		}
	}
	return false
}

// tailOfLine returns the last n bytes of a line, trimmed forward to the next
// word boundary.
func tailOfLine(line string, n int) string {
	if len(line) <= n {
		return strings.TrimSpace(line)
	}
	suffix := line[len(line)-n:]
	if idx := strings.IndexByte(suffix, ' '); idx >= 0 {
		return strings.TrimSpace(suffix[idx+1:])
	}
	return strings.TrimSpace(suffix)
}
