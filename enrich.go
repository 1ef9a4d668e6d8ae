package chunkmd

import "strings"

// enrichChunks attaches descriptive metadata to every chunk: content
// classification, sizes, structural flags, code language, list and table
// dimensions, and a stable section identity. Enrichment is pure and never
// fails for well-formed chunks.
func enrichChunks(chunks []Chunk, elements []Element) []Chunk {
	var headers []Element
	for _, el := range elements {
		if el.Kind == ElementHeader {
			headers = append(headers, el)
		}
	}

	for i := range chunks {
		c := &chunks[i]
		c.SetMeta("chunk_index", i)
		c.SetMeta("size", c.Size())
		c.SetMeta("line_count", c.LineCount())

		var hasCode, hasTable, hasList bool
		var codeLines, tableLines, listLines, listItems, tableCount int
		var table Element
		langs := make(map[string]bool)
		for _, el := range elements {
			ov := linesInChunk(*c, el)
			if ov <= 0 {
				continue
			}
			switch el.Kind {
			case ElementCode:
				hasCode = true
				codeLines += ov
				if el.Language != "" {
					langs[el.Language] = true
				}
			case ElementTable:
				hasTable = true
				tableLines += ov
				tableCount++
				table = el
			case ElementList:
				hasList = true
				listLines += ov
			case ElementListItem:
				if el.StartLine >= c.StartLine && el.EndLine <= c.EndLine {
					listItems++
				}
			}
		}

		c.SetMeta("has_code", hasCode)
		c.SetMeta("has_table", hasTable)
		c.SetMeta("has_list", hasList)
		if len(langs) == 1 {
			for lang := range langs {
				c.SetMeta("language", lang)
			}
		}
		if listItems > 0 {
			c.SetMeta("list_item_count", listItems)
		}
		if tableCount == 1 && table.StartLine >= c.StartLine && table.EndLine <= c.EndLine {
			rows, cols := tableDims(table.Text)
			c.SetMeta("table_rows", rows)
			c.SetMeta("table_columns", cols)
		}
		c.SetMeta("content_type", classifyChunk(*c, hasCode, hasTable, hasList, codeLines, tableLines, listLines))

		path, _ := c.Meta("section_path").([]string)
		if path == nil {
			path = pathForLine(headers, c.StartLine)
			if len(path) > 0 {
				c.SetMeta("section_path", path)
			}
		}
		c.SetMeta("section_id", sectionID(path, i))
	}
	return chunks
}

// classifyChunk labels a chunk by its dominant structural kind.
func classifyChunk(c Chunk, hasCode, hasTable, hasList bool, codeLines, tableLines, listLines int) string {
	kinds := 0
	for _, b := range []bool{hasCode, hasTable, hasList} {
		if b {
			kinds++
		}
	}
	total := c.LineCount()
	switch {
	case kinds >= 2:
		return "mixed"
	case hasCode && codeLines*2 >= total:
		return "code"
	case hasTable && tableLines*2 >= total:
		return "table"
	case hasList && listLines*2 >= total:
		return "list"
	default:
		return "text"
	}
}

// linesInChunk returns how many lines of the element fall inside the chunk.
func linesInChunk(c Chunk, el Element) int {
	s := max(c.StartLine, el.StartLine)
	e := min(c.EndLine, el.EndLine)
	if e < s {
		return 0
	}
	return e - s + 1
}

// pathForLine replays the header stack down to the last header at or above
// the given line, yielding the ordered ancestor titles.
func pathForLine(headers []Element, line int) []string {
	idx := -1
	for i, h := range headers {
		if h.StartLine > line {
			break
		}
		idx = i
	}
	if idx < 0 {
		return nil
	}
	return headerPath(headers, idx)
}

// tableDims parses row and column counts from a table's raw text, skipping
// the separator row.
func tableDims(text string) (rows, cols int) {
	for _, line := range strings.Split(text, "\n") {
		t := strings.TrimSpace(line)
		if t == "" || !strings.Contains(t, "|") || isTableSeparator(t) {
			continue
		}
		rows++
		if cols == 0 {
			cols = len(strings.Split(strings.Trim(t, "|"), "|"))
		}
	}
	return rows, cols
}

func isTableSeparator(t string) bool {
	return strings.Trim(t, "|-: \t") == ""
}
