package chunkmd

var _ Strategy = (*tableStrategy)(nil)

// tableStrategy keeps whole tables intact and splits between them. A table
// that alone exceeds the max size is either emitted oversize or split
// between rows, per the oversize allowance.
type tableStrategy struct{}

func (s *tableStrategy) Name() string  { return StrategyTable }
func (s *tableStrategy) Priority() int { return 2 }

func (s *tableStrategy) CanHandle(a ContentAnalysis, cfg ChunkConfig) bool {
	return a.TableCount > 0 && a.TableCount >= cfg.TableCountThreshold
}

func (s *tableStrategy) Quality(a ContentAnalysis) float64 {
	q := float64(a.TableCount) / 5
	if q > 1 {
		return 1
	}
	return q
}

func (s *tableStrategy) Apply(content string, elements []Element, cfg ChunkConfig) Outcome {
	hasTable := false
	prefer := make(map[int]bool)
	for _, el := range elements {
		if el.Kind == ElementTable {
			hasTable = true
			prefer[el.EndLine] = true
		}
	}
	if !hasTable {
		return Failure(&ErrStrategy{Strategy: StrategyTable, Message: "no tables"})
	}

	lines := splitLines(content)
	chunks := splitRegion(lines, 1, len(lines), atomicElements(elements, cfg), cfg, prefer)
	if len(chunks) == 0 {
		return Failure(&ErrStrategy{Strategy: StrategyTable, Message: "no content"})
	}
	return Success(chunks)
}
