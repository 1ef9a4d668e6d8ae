package chunkmd

var _ Strategy = (*listStrategy)(nil)

// listStrategy keeps list items (including their nested content) intact and
// splits between top-level items.
type listStrategy struct{}

func (s *listStrategy) Name() string  { return StrategyList }
func (s *listStrategy) Priority() int { return 3 }

func (s *listStrategy) CanHandle(a ContentAnalysis, cfg ChunkConfig) bool {
	return a.ListCount > 0 && a.ListItemCount >= cfg.ListCountThreshold
}

func (s *listStrategy) Quality(a ContentAnalysis) float64 {
	q := float64(a.ListItemCount) / 10
	if q > 1 {
		return 1
	}
	return q
}

func (s *listStrategy) Apply(content string, elements []Element, cfg ChunkConfig) Outcome {
	hasList := false
	prefer := make(map[int]bool)
	for _, el := range elements {
		switch el.Kind {
		case ElementList:
			hasList = true
			prefer[el.EndLine] = true
		case ElementListItem:
			prefer[el.EndLine] = true
		}
	}
	if !hasList {
		return Failure(&ErrStrategy{Strategy: StrategyList, Message: "no lists"})
	}

	lines := splitLines(content)
	chunks := splitRegion(lines, 1, len(lines), atomicElements(elements, cfg), cfg, prefer)
	if len(chunks) == 0 {
		return Failure(&ErrStrategy{Strategy: StrategyList, Message: "no content"})
	}
	return Success(chunks)
}
