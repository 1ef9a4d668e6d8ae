package chunkmd

import (
	"fmt"
	"log/slog"
)

// attempt records the outcome of one fallback-chain execution: the winning
// chunks, which strategy produced them, how deep the chain went (0 = the
// primary succeeded), and everything worth reporting along the way.
type attempt struct {
	chunks   []Chunk
	strategy string
	level    int
	warnings []string
	errs     []string
}

// fallbackManager runs the ordered strategy chain until one attempt yields a
// valid chunk set. Attempts are isolated: strategies are stateless and each
// receives fresh arguments, so a failure cannot corrupt the next attempt.
type fallbackManager struct {
	registry *Registry
	logger   *slog.Logger
}

// chain builds the ordered strategy names to try: primary, then structural,
// then the configured terminal strategy. Depth is bounded by
// MaxFallbackLevel, but the last entry must have no preconditions, so the
// terminal strategy always stays even when the bound trims the middle.
func (f *fallbackManager) chain(primary string, cfg ChunkConfig) []string {
	if !cfg.EnableFallback {
		return []string{primary}
	}
	names := []string{primary, StrategyStructural, cfg.FallbackStrategy}
	if cfg.FallbackStrategy != StrategySentences {
		names = append(names, StrategySentences)
	}
	seen := make(map[string]bool, len(names))
	out := names[:0]
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	terminal := out[len(out)-1]
	if maxLen := cfg.MaxFallbackLevel + 1; len(out) > maxLen {
		out = out[:maxLen]
		if out[len(out)-1] != terminal {
			if len(out) > 1 {
				out[len(out)-1] = terminal
			} else {
				out = append(out, terminal)
			}
		}
	}
	return out
}

// execute runs the chain for the document. The returned error is non-nil
// only when the terminal no-precondition strategy itself fails, which is a
// programmer error rather than a recoverable condition.
func (f *fallbackManager) execute(content string, elements []Element, primary Strategy, cfg ChunkConfig) (attempt, error) {
	names := f.chain(primary.Name(), cfg)
	var att attempt
	for level, name := range names {
		last := level == len(names)-1
		st, ok := f.registry.Get(name)

		var reason string
		var chunks []Chunk
		switch {
		case !ok:
			reason = "not registered"
		default:
			out := st.Apply(content, elements, cfg)
			switch {
			case out.Err != nil:
				reason = out.Err.Error()
			case len(out.Chunks) == 0:
				reason = "empty result"
			default:
				if v := checkChunks(out.Chunks); v != "" {
					reason = v
				} else {
					chunks = out.Chunks
				}
			}
		}

		if chunks == nil {
			if last {
				f.logger.Error("terminal strategy failed", "strategy", name, "reason", reason)
				return att, &ErrStrategy{Strategy: name, Message: "terminal strategy failed: " + reason}
			}
			att.warnings = append(att.warnings, fmt.Sprintf("strategy %s failed, falling back: %s", name, reason))
			f.logger.Warn("strategy failed, falling back", "strategy", name, "reason", reason)
			continue
		}

		if cov := coverage(content, chunks); cov < coverageTolerance {
			att.errs = append(att.errs, fmt.Sprintf("content coverage %.2f below tolerance %.2f (strategy %s)", cov, coverageTolerance, name))
		}
		att.chunks = chunks
		att.strategy = name
		att.level = level
		return att, nil
	}
	return att, &ErrStrategy{Strategy: primary.Name(), Message: "fallback chain exhausted"}
}
