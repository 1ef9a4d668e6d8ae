package chunkmd

import (
	"sort"
	"strings"
)

// splitLines splits content into lines. Line n of the document is lines[n-1].
func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

// newChunk builds a chunk from the 1-based inclusive line range [start, end],
// trimming blank edge lines while keeping line numbers accurate. Returns
// false when the range holds no content.
func newChunk(lines []string, start, end int) (Chunk, bool) {
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	for start <= end && isBlank(lines[start-1]) {
		start++
	}
	for end >= start && isBlank(lines[end-1]) {
		end--
	}
	if start > end {
		return Chunk{}, false
	}
	return Chunk{
		Content:   strings.Join(lines[start-1:end], "\n"),
		StartLine: start,
		EndLine:   end,
	}, true
}

// rangeSize returns the byte size of the line range [start, end] including
// the newlines joining them.
func rangeSize(lines []string, start, end int) int {
	size := 0
	for i := start; i <= end; i++ {
		if i > start {
			size++
		}
		size += len(lines[i-1])
	}
	return size
}

// atomicElements filters elements down to the units the config forbids
// splitting, sorted and de-overlapped by line range.
func atomicElements(elements []Element, cfg ChunkConfig) []Element {
	var out []Element
	for _, el := range elements {
		switch el.Kind {
		case ElementCode:
			if cfg.PreserveCodeBlocks {
				out = append(out, el)
			}
		case ElementTable:
			if cfg.PreserveTables {
				out = append(out, el)
			}
		case ElementListItem:
			if cfg.PreserveListHierarchy {
				out = append(out, el)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartLine < out[j].StartLine })
	kept := out[:0]
	lastEnd := 0
	for _, el := range out {
		if el.StartLine <= lastEnd {
			continue
		}
		kept = append(kept, el)
		lastEnd = el.EndLine
	}
	return kept
}

// emitAtomic turns one atomic element into chunks under the oversize policy:
// whole when it fits, whole and marked is_oversize when the config allows
// oversize chunks, otherwise line-bounded pieces marked atomic_split. The
// element is clipped to regionEnd so it never emits past the caller's
// region.
func emitAtomic(lines []string, el Element, regionEnd int, cfg ChunkConfig) []Chunk {
	start, end := el.StartLine, el.EndLine
	if end > regionEnd {
		end = regionEnd
	}
	if end > len(lines) {
		end = len(lines)
	}
	size := rangeSize(lines, start, end)
	if size <= cfg.MaxChunkSize {
		if c, ok := newChunk(lines, start, end); ok {
			return []Chunk{c}
		}
		return nil
	}
	if cfg.AllowOversize {
		if c, ok := newChunk(lines, start, end); ok {
			c.SetMeta("is_oversize", true)
			return []Chunk{c}
		}
		return nil
	}
	var chunks []Chunk
	ps, sz := start, 0
	for ln := start; ln <= end; ln++ {
		l := len(lines[ln-1])
		if sz > 0 && sz+1+l > cfg.MaxChunkSize {
			if c, ok := newChunk(lines, ps, ln-1); ok {
				c.SetMeta("atomic_split", true)
				chunks = append(chunks, c)
			}
			ps, sz = ln, l
			continue
		}
		if sz > 0 {
			sz++
		}
		sz += l
	}
	if c, ok := newChunk(lines, ps, end); ok {
		c.SetMeta("atomic_split", true)
		chunks = append(chunks, c)
	}
	return chunks
}

// splitRegion splits the 1-based line range [start, end] into size-bounded
// chunks. Atomic elements are treated as indivisible units (emitAtomic
// governs the oversize case). preferBreak marks line numbers after which a
// break is preferred once the accumulated chunk reaches the target size.
func splitRegion(lines []string, start, end int, atomics []Element, cfg ChunkConfig, preferBreak map[int]bool) []Chunk {
	var chunks []Chunk
	ai := 0
	cs, sz := -1, 0

	flush := func(through int) {
		if cs < 0 {
			return
		}
		if c, ok := newChunk(lines, cs, through); ok {
			chunks = append(chunks, c)
		}
		cs, sz = -1, 0
	}

	ln := start
	for ln <= end {
		for ai < len(atomics) && atomics[ai].EndLine < ln {
			ai++
		}
		if ai < len(atomics) && atomics[ai].StartLine == ln {
			el := atomics[ai]
			elEnd := min(el.EndLine, end)
			esz := rangeSize(lines, ln, elEnd)
			switch {
			case cs < 0:
				if esz <= cfg.MaxChunkSize {
					cs, sz = ln, esz
				} else {
					chunks = append(chunks, emitAtomic(lines, el, end, cfg)...)
				}
			case sz+1+esz <= cfg.MaxChunkSize:
				sz += 1 + esz
			default:
				flush(ln - 1)
				continue // retry the element with an empty accumulator
			}
			ai++
			ln = elEnd + 1
			if cs >= 0 && sz >= cfg.TargetChunkSize && preferBreak[elEnd] {
				flush(elEnd)
			}
			continue
		}

		line := lines[ln-1]
		l := len(line)
		switch {
		case cs < 0:
			if !isBlank(line) {
				if l > cfg.MaxChunkSize {
					chunks = append(chunks, splitLongLine(line, ln, cfg)...)
					ln++
					continue
				}
				cs, sz = ln, l
			}
		case sz+1+l > cfg.MaxChunkSize:
			flush(ln - 1)
			continue
		default:
			sz += 1 + l
		}
		if cs >= 0 && sz >= cfg.TargetChunkSize && (preferBreak[ln] || isBlank(line)) {
			flush(ln)
		}
		ln++
	}
	flush(end)
	return chunks
}

// section is one header-delimited region of the document.
type section struct {
	start, end int
	path       []string
	title      string
	preamble   bool
}

// sectionize cuts the document at headers with level <= boundary. Each
// section carries the accumulated header path (ordered ancestor titles,
// ending with its own). Content before the first boundary header becomes a
// preamble section.
func sectionize(lines []string, elements []Element, boundary int) []section {
	var headers []Element
	for _, el := range elements {
		if el.Kind == ElementHeader {
			headers = append(headers, el)
		}
	}
	n := len(lines)
	var cuts []int
	for i, h := range headers {
		if h.Level <= boundary {
			cuts = append(cuts, i)
		}
	}
	if len(cuts) == 0 {
		return []section{{start: 1, end: n}}
	}

	var secs []section
	if first := headers[cuts[0]].StartLine; first > 1 {
		secs = append(secs, section{start: 1, end: first - 1, preamble: true})
	}
	for ci, hi := range cuts {
		h := headers[hi]
		end := n
		if ci+1 < len(cuts) {
			end = headers[cuts[ci+1]].StartLine - 1
		}
		path := headerPath(headers, hi)
		secs = append(secs, section{
			start: h.StartLine,
			end:   end,
			path:  path,
			title: path[len(path)-1],
		})
	}
	return secs
}

// headerPath returns the ordered ancestor titles for headers[idx], including
// the header itself, by replaying the header stack up to that point.
func headerPath(headers []Element, idx int) []string {
	var stack []Element
	for i := 0; i <= idx; i++ {
		h := headers[i]
		for len(stack) > 0 && stack[len(stack)-1].Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, h)
	}
	path := make([]string, len(stack))
	for i, h := range stack {
		path[i] = headerTitle(h)
	}
	return path
}

// headerTitle strips the ATX markers from a header line.
func headerTitle(h Element) string {
	t := strings.TrimSpace(h.Text)
	t = strings.TrimLeft(t, "#")
	return strings.TrimSpace(strings.TrimRight(t, "#"))
}
