package chunkmd

var _ Strategy = (*sentencesStrategy)(nil)

// sentencesStrategy splits prose at sentence boundaries honoring the size
// bounds. It has no preconditions, which makes it the terminal entry of
// every fallback chain.
type sentencesStrategy struct{}

func (s *sentencesStrategy) Name() string  { return StrategySentences }
func (s *sentencesStrategy) Priority() int { return 6 }

func (s *sentencesStrategy) CanHandle(ContentAnalysis, ChunkConfig) bool { return true }

// Quality favors plain prose: the fewer structural constructs, the better
// the fit.
func (s *sentencesStrategy) Quality(a ContentAnalysis) float64 {
	q := 1 - a.ComplexityScore
	if q < 0 {
		return 0
	}
	return q
}

func (s *sentencesStrategy) Apply(content string, _ []Element, cfg ChunkConfig) Outcome {
	lines := splitLines(content)
	var chunks []Chunk
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

	for i, line := range lines {
		ln := i + 1
		l := len(line)
		if l > cfg.MaxChunkSize {
			flush(ln - 1)
			chunks = append(chunks, splitLongLine(line, ln, cfg)...)
			continue
		}
		switch {
		case cs < 0:
			if isBlank(line) {
				continue
			}
			cs, sz = ln, l
		case sz+1+l > cfg.MaxChunkSize:
			flush(ln - 1)
			if isBlank(line) {
				continue
			}
			cs, sz = ln, l
		default:
			sz += 1 + l
		}
		if sz >= cfg.TargetChunkSize && sz >= cfg.MinChunkSize && (endsSentence(line) || isBlank(line)) {
			flush(ln)
		}
	}
	flush(len(lines))

	if len(chunks) == 0 {
		return Failure(&ErrStrategy{Strategy: StrategySentences, Message: "no prose content"})
	}
	return Success(chunks)
}
