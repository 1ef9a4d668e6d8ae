package chunkmd

// Selector picks the strategy to run for an analyzed document. Strict mode
// takes the first applicable strategy in registry order; weighted mode
// scores every applicable strategy and takes the best, breaking ties toward
// the lower priority number. Selection is deterministic for identical
// inputs.
type Selector struct {
	registry *Registry
}

// NewSelector creates a selector over the given registry.
func NewSelector(registry *Registry) *Selector {
	return &Selector{registry: registry}
}

// Select returns the strategy for the document. It fails with *ErrSelection
// only when no strategy applies and fallback is disabled; with fallback
// enabled the configured terminal strategy is returned instead.
func (s *Selector) Select(analysis ContentAnalysis, cfg ChunkConfig) (Strategy, error) {
	var best Strategy
	var bestScore float64
	for _, name := range s.registry.Names() {
		st, ok := s.registry.Get(name)
		if !ok || !st.CanHandle(analysis, cfg) {
			continue
		}
		if cfg.SelectionMode != SelectWeighted {
			return st, nil
		}
		score := weightedScore(st, analysis, cfg)
		if best == nil || score > bestScore || (score == bestScore && st.Priority() < best.Priority()) {
			best, bestScore = st, score
		}
	}
	if best != nil {
		return best, nil
	}
	if cfg.EnableFallback {
		if st, ok := s.registry.Get(cfg.FallbackStrategy); ok {
			return st, nil
		}
		return nil, &ErrSelection{Reason: "no applicable strategy and fallback strategy " + cfg.FallbackStrategy + " not registered"}
	}
	return nil, &ErrSelection{Reason: "no applicable strategy and fallback disabled"}
}

// weightedScore combines inverse priority with the strategy's own quality
// estimate. Both weights come from the config so callers can tune the
// balance.
func weightedScore(st Strategy, analysis ContentAnalysis, cfg ChunkConfig) float64 {
	p := st.Priority()
	if p < 1 {
		p = 1
	}
	return cfg.SelectionPriorityWeight/float64(p) + cfg.SelectionQualityWeight*st.Quality(analysis)
}
