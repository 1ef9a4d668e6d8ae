package chunkmd

// fakeAnalyzer returns canned analysis results and counts calls. Tests drive
// strategy selection by shaping the analysis instead of writing markdown the
// real parser would have to agree on.
type fakeAnalyzer struct {
	analysis ContentAnalysis
	elements []Element
	err      error
	calls    int
}

func (f *fakeAnalyzer) Analyze(text string) (ContentAnalysis, []Element, error) {
	f.calls++
	if f.err != nil {
		return ContentAnalysis{}, nil, f.err
	}
	a := f.analysis
	if a.TotalChars == 0 {
		a.TotalChars = len(text)
	}
	if a.TotalLines == 0 {
		a.TotalLines = len(splitLines(text))
	}
	return a, f.elements, nil
}

// proseAnalyzer reports no structure at all, which routes every document to
// the terminal sentences strategy.
func proseAnalyzer() *fakeAnalyzer { return &fakeAnalyzer{} }

// stubStrategy is a fully scriptable strategy for registry, selector, and
// fallback tests.
type stubStrategy struct {
	name     string
	priority int
	handles  bool
	quality  float64
	outcome  Outcome
	applied  int
}

func (s *stubStrategy) Name() string                                 { return s.name }
func (s *stubStrategy) Priority() int                                { return s.priority }
func (s *stubStrategy) CanHandle(ContentAnalysis, ChunkConfig) bool  { return s.handles }
func (s *stubStrategy) Quality(ContentAnalysis) float64              { return s.quality }
func (s *stubStrategy) Apply(string, []Element, ChunkConfig) Outcome {
	s.applied++
	return s.outcome
}

var _ Strategy = (*stubStrategy)(nil)

// wholeDocOutcome wraps the full content in one valid chunk so coverage and
// ordering checks pass.
func wholeDocOutcome(content string) Outcome {
	lines := splitLines(content)
	c, _ := newChunk(lines, 1, len(lines))
	return Success([]Chunk{c})
}
