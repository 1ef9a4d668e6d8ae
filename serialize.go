package chunkmd

import (
	"fmt"
	"time"
)

// ToMap converts the chunk to a plain key-value representation preserving
// every field, including nested metadata.
func (c Chunk) ToMap() map[string]any {
	m := map[string]any{
		"content":    c.Content,
		"start_line": c.StartLine,
		"end_line":   c.EndLine,
	}
	if c.Metadata != nil {
		meta := make(map[string]any, len(c.Metadata))
		for k, v := range c.Metadata {
			meta[k] = v
		}
		m["metadata"] = meta
	}
	return m
}

// ChunkFromMap rebuilds a chunk from its key-value representation. Numeric
// values may arrive as int, int64, or float64 (after a JSON round trip).
func ChunkFromMap(m map[string]any) (Chunk, error) {
	var c Chunk
	var ok bool
	if c.Content, ok = m["content"].(string); !ok {
		return c, fmt.Errorf("chunk map: missing or invalid content")
	}
	if c.StartLine, ok = asInt(m["start_line"]); !ok {
		return c, fmt.Errorf("chunk map: missing or invalid start_line")
	}
	if c.EndLine, ok = asInt(m["end_line"]); !ok {
		return c, fmt.Errorf("chunk map: missing or invalid end_line")
	}
	if meta, ok := m["metadata"].(map[string]any); ok {
		c.Metadata = make(map[string]any, len(meta))
		for k, v := range meta {
			c.Metadata[k] = v
		}
	}
	return c, nil
}

// ToMap converts the result to a plain key-value representation.
// ProcessingTime is carried as integer nanoseconds.
func (r ChunkingResult) ToMap() map[string]any {
	chunks := make([]map[string]any, len(r.Chunks))
	for i, c := range r.Chunks {
		chunks[i] = c.ToMap()
	}
	m := map[string]any{
		"id":                 r.ID,
		"chunks":             chunks,
		"strategy_used":      r.StrategyUsed,
		"fallback_used":      r.FallbackUsed,
		"fallback_level":     r.FallbackLevel,
		"processing_time_ns": int64(r.ProcessingTime),
		"success":            r.Success,
		"stats": map[string]any{
			"chunk_count":      r.Stats.ChunkCount,
			"avg_size":         r.Stats.AvgSize,
			"min_size":         r.Stats.MinSize,
			"max_size":         r.Stats.MaxSize,
			"total_chars":      r.Stats.TotalChars,
			"total_lines":      r.Stats.TotalLines,
			"header_count":     r.Stats.HeaderCount,
			"code_block_count": r.Stats.CodeBlockCount,
			"table_count":      r.Stats.TableCount,
			"list_count":       r.Stats.ListCount,
		},
	}
	if len(r.Errors) > 0 {
		m["errors"] = append([]string(nil), r.Errors...)
	}
	if len(r.Warnings) > 0 {
		m["warnings"] = append([]string(nil), r.Warnings...)
	}
	return m
}

// ResultFromMap rebuilds a result from its key-value representation.
func ResultFromMap(m map[string]any) (ChunkingResult, error) {
	var r ChunkingResult
	r.ID, _ = m["id"].(string)
	r.StrategyUsed, _ = m["strategy_used"].(string)
	r.FallbackUsed, _ = m["fallback_used"].(bool)
	r.FallbackLevel, _ = asIntOr(m["fallback_level"], 0)
	r.Success, _ = m["success"].(bool)
	if ns, ok := asInt64(m["processing_time_ns"]); ok {
		r.ProcessingTime = time.Duration(ns)
	}

	switch cs := m["chunks"].(type) {
	case []map[string]any:
		r.Chunks = make([]Chunk, 0, len(cs))
		for _, cm := range cs {
			c, err := ChunkFromMap(cm)
			if err != nil {
				return r, err
			}
			r.Chunks = append(r.Chunks, c)
		}
	case []any:
		r.Chunks = make([]Chunk, 0, len(cs))
		for _, v := range cs {
			cm, ok := v.(map[string]any)
			if !ok {
				return r, fmt.Errorf("result map: invalid chunk entry")
			}
			c, err := ChunkFromMap(cm)
			if err != nil {
				return r, err
			}
			r.Chunks = append(r.Chunks, c)
		}
	case nil:
		return r, fmt.Errorf("result map: missing chunks")
	default:
		return r, fmt.Errorf("result map: invalid chunks")
	}

	r.Errors = asStrings(m["errors"])
	r.Warnings = asStrings(m["warnings"])

	if sm, ok := m["stats"].(map[string]any); ok {
		r.Stats.ChunkCount, _ = asIntOr(sm["chunk_count"], 0)
		r.Stats.AvgSize, _ = asIntOr(sm["avg_size"], 0)
		r.Stats.MinSize, _ = asIntOr(sm["min_size"], 0)
		r.Stats.MaxSize, _ = asIntOr(sm["max_size"], 0)
		r.Stats.TotalChars, _ = asIntOr(sm["total_chars"], 0)
		r.Stats.TotalLines, _ = asIntOr(sm["total_lines"], 0)
		r.Stats.HeaderCount, _ = asIntOr(sm["header_count"], 0)
		r.Stats.CodeBlockCount, _ = asIntOr(sm["code_block_count"], 0)
		r.Stats.TableCount, _ = asIntOr(sm["table_count"], 0)
		r.Stats.ListCount, _ = asIntOr(sm["list_count"], 0)
	}
	return r, nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func asIntOr(v any, def int) (int, bool) {
	if n, ok := asInt(v); ok {
		return n, true
	}
	return def, false
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func asStrings(v any) []string {
	switch s := v.(type) {
	case []string:
		return append([]string(nil), s...)
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			if str, ok := e.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}
