package chunkmd

var _ Strategy = (*mixedStrategy)(nil)

// mixedStrategy segments structurally first, then applies atomic-aware
// splitting within each section, so documents combining code, lists, and
// tables chunk along both header and element boundaries.
type mixedStrategy struct{}

func (s *mixedStrategy) Name() string  { return StrategyMixed }
func (s *mixedStrategy) Priority() int { return 4 }

func (s *mixedStrategy) CanHandle(a ContentAnalysis, cfg ChunkConfig) bool {
	return a.ComplexityScore >= cfg.MinComplexity && elementKindsPresent(a) >= 2
}

func (s *mixedStrategy) Quality(a ContentAnalysis) float64 {
	return a.ComplexityScore
}

func (s *mixedStrategy) Apply(content string, elements []Element, cfg ChunkConfig) Outcome {
	lines := splitLines(content)
	secs := sectionize(lines, elements, cfg.SectionBoundaryLevel)
	if !cfg.ExtractPreamble && len(secs) > 1 && secs[0].preamble {
		secs[1].start = secs[0].start
		secs = secs[1:]
	}

	atomics := atomicElements(elements, cfg)
	prefer := make(map[int]bool)
	for _, el := range elements {
		prefer[el.EndLine] = true
	}

	var chunks []Chunk
	for _, sec := range secs {
		if rangeSize(lines, sec.start, sec.end) <= cfg.MaxChunkSize {
			if c, ok := newChunk(lines, sec.start, sec.end); ok {
				annotateSection(&c, sec)
				chunks = append(chunks, c)
			}
			continue
		}
		sub := splitRegion(lines, sec.start, sec.end, atomics, cfg, prefer)
		for k := range sub {
			annotateSection(&sub[k], sec)
		}
		chunks = append(chunks, sub...)
	}

	if len(chunks) == 0 {
		return Failure(&ErrStrategy{Strategy: StrategyMixed, Message: "no content"})
	}
	return Success(chunks)
}

// elementKindsPresent counts how many distinct structural kinds the analysis
// reports (headers, code, lists, tables).
func elementKindsPresent(a ContentAnalysis) int {
	kinds := 0
	if a.HeaderCount > 0 {
		kinds++
	}
	if a.CodeBlockCount > 0 {
		kinds++
	}
	if a.ListCount > 0 {
		kinds++
	}
	if a.TableCount > 0 {
		kinds++
	}
	return kinds
}
