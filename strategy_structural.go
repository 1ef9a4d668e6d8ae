package chunkmd

var _ Strategy = (*structuralStrategy)(nil)

// structuralStrategy segments at header boundaries down to the configured
// depth, preserving nesting via the accumulated header path. Sections below
// the minimum size merge with their successors; oversize sections split on
// inner line boundaries without breaking atomic units.
type structuralStrategy struct{}

func (s *structuralStrategy) Name() string  { return StrategyStructural }
func (s *structuralStrategy) Priority() int { return 5 }

func (s *structuralStrategy) CanHandle(a ContentAnalysis, cfg ChunkConfig) bool {
	return a.HeaderCount > 0 && a.HeaderCount >= cfg.HeaderCountThreshold
}

// Quality scales with header density: roughly one header per 300 chars
// scores 1.
func (s *structuralStrategy) Quality(a ContentAnalysis) float64 {
	if a.TotalChars == 0 {
		return 0
	}
	q := float64(a.HeaderCount*300) / float64(a.TotalChars)
	if q > 1 {
		return 1
	}
	return q
}

func (s *structuralStrategy) Apply(content string, elements []Element, cfg ChunkConfig) Outcome {
	lines := splitLines(content)
	secs := sectionize(lines, elements, cfg.SectionBoundaryLevel)
	if len(secs) == 1 && len(secs[0].path) == 0 && !secs[0].preamble {
		return Failure(&ErrStrategy{Strategy: StrategyStructural, Message: "no header boundaries"})
	}
	if !cfg.ExtractPreamble && len(secs) > 1 && secs[0].preamble {
		secs[1].start = secs[0].start
		secs = secs[1:]
	}

	atomics := atomicElements(elements, cfg)
	var chunks []Chunk
	for i := 0; i < len(secs); {
		sec := secs[i]
		size := rangeSize(lines, sec.start, sec.end)
		end := sec.end
		j := i + 1
		for size < cfg.MinChunkSize && j < len(secs) {
			next := rangeSize(lines, secs[j].start, secs[j].end)
			if size+1+next > cfg.MaxChunkSize {
				break
			}
			size += 1 + next
			end = secs[j].end
			j++
		}
		if size <= cfg.MaxChunkSize {
			if c, ok := newChunk(lines, sec.start, end); ok {
				annotateSection(&c, sec)
				chunks = append(chunks, c)
			}
		} else {
			sub := splitRegion(lines, sec.start, end, atomics, cfg, nil)
			for k := range sub {
				annotateSection(&sub[k], sec)
			}
			chunks = append(chunks, sub...)
		}
		i = j
	}

	if len(chunks) == 0 {
		return Failure(&ErrStrategy{Strategy: StrategyStructural, Message: "no content in sections"})
	}
	return Success(chunks)
}

// annotateSection records section identity on a chunk.
func annotateSection(c *Chunk, sec section) {
	if sec.preamble {
		c.SetMeta("is_preamble", true)
		return
	}
	if len(sec.path) > 0 {
		c.SetMeta("section_path", append([]string(nil), sec.path...))
		c.SetMeta("section_title", sec.title)
	}
}
