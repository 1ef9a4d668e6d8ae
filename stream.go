package chunkmd

import (
	"fmt"
	"strings"
	"time"
)

// streamWindowBytes picks the processing window for a document size tier.
func streamWindowBytes(docSize int) int {
	switch {
	case docSize >= 16<<20:
		return 1 << 20
	case docSize >= 4<<20:
		return 512 << 10
	default:
		return 256 << 10
	}
}

// isFenceLine reports a code fence delimiter at the start of a line.
func isFenceLine(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "```") || strings.HasPrefix(t, "~~~")
}

// chunkStreaming processes a large document in sequential line-bounded
// windows, bounding the per-window pipeline state to O(window) while
// preserving chunk order. Windows cut at blank lines near the size budget
// (hard cut at twice the budget), never inside a fenced code block, and
// chunk line numbers are rebased to the whole document.
func (c *Chunker) chunkStreaming(text, override string, started time.Time) (*ChunkingResult, error) {
	window := streamWindowBytes(len(text))
	lines := splitLines(text)

	res := &ChunkingResult{StrategyUsed: "none"}
	var agg ContentAnalysis
	windows := 0
	wstart := 0 // 0-based index of the first line of the open window
	wsize := 0

	flush := func(end int) error { // lines[wstart:end]
		if end <= wstart {
			return nil
		}
		wtext := strings.Join(lines[wstart:end], "\n")
		base := wstart
		wstart, wsize = end, 0
		if strings.TrimSpace(wtext) == "" {
			return nil
		}
		sub, analysis, err := c.chunkDocument(wtext, override)
		if err != nil {
			return err
		}
		for i := range sub.Chunks {
			sub.Chunks[i].StartLine += base
			sub.Chunks[i].EndLine += base
		}
		res.Chunks = append(res.Chunks, sub.Chunks...)
		res.Warnings = append(res.Warnings, sub.Warnings...)
		res.Errors = append(res.Errors, sub.Errors...)
		res.FallbackUsed = res.FallbackUsed || sub.FallbackUsed
		if sub.FallbackLevel > res.FallbackLevel {
			res.FallbackLevel = sub.FallbackLevel
		}
		if res.StrategyUsed == "none" {
			res.StrategyUsed = sub.StrategyUsed
		}
		agg.TotalChars += analysis.TotalChars
		agg.TotalLines += analysis.TotalLines
		agg.HeaderCount += analysis.HeaderCount
		agg.CodeBlockCount += analysis.CodeBlockCount
		agg.TableCount += analysis.TableCount
		agg.ListCount += analysis.ListCount
		agg.ListItemCount += analysis.ListItemCount
		windows++
		c.metrics.windows.Add(1)
		return nil
	}

	// Blank lines are legal inside fenced code blocks, so cuts wait until
	// the fence closes; the hard cut defers the same way.
	inFence := false
	for i, line := range lines {
		wsize += len(line) + 1
		if isFenceLine(line) {
			inFence = !inFence
		}
		if inFence {
			continue
		}
		if (wsize >= window && isBlank(line)) || wsize >= 2*window {
			if err := flush(i + 1); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(len(lines)); err != nil {
		return nil, err
	}

	// Chunk indexes and section ids were assigned per window; renumber them
	// across the whole document.
	for i := range res.Chunks {
		ch := &res.Chunks[i]
		ch.SetMeta("chunk_index", i)
		path, _ := ch.Meta("section_path").([]string)
		ch.SetMeta("section_id", sectionID(path, i))
	}

	res.Stats = buildStats(res.Chunks, agg)
	res.Success = len(res.Chunks) > 0
	res.Warnings = append(res.Warnings, fmt.Sprintf("streaming: processed %d windows of ~%d bytes", windows, window))
	res.ID = NewID()
	res.ProcessingTime = time.Since(started)
	return res, nil
}
