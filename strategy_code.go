package chunkmd

var _ Strategy = (*codeStrategy)(nil)

// codeStrategy groups fenced code blocks with their surrounding prose,
// preferring chunk breaks right after a block ends. Code blocks are atomic.
type codeStrategy struct{}

func (s *codeStrategy) Name() string  { return StrategyCode }
func (s *codeStrategy) Priority() int { return 1 }

func (s *codeStrategy) CanHandle(a ContentAnalysis, cfg ChunkConfig) bool {
	return a.CodeBlockCount >= 1 && a.CodeRatio >= cfg.CodeRatioThreshold
}

func (s *codeStrategy) Quality(a ContentAnalysis) float64 {
	q := a.CodeRatio * 1.5
	if q > 1 {
		return 1
	}
	return q
}

func (s *codeStrategy) Apply(content string, elements []Element, cfg ChunkConfig) Outcome {
	hasCode := false
	prefer := make(map[int]bool)
	for _, el := range elements {
		if el.Kind == ElementCode {
			hasCode = true
			prefer[el.EndLine] = true
		}
	}
	if !hasCode {
		return Failure(&ErrStrategy{Strategy: StrategyCode, Message: "no code blocks"})
	}

	lines := splitLines(content)
	chunks := splitRegion(lines, 1, len(lines), atomicElements(elements, cfg), cfg, prefer)
	if len(chunks) == 0 {
		return Failure(&ErrStrategy{Strategy: StrategyCode, Message: "no content"})
	}
	return Success(chunks)
}
