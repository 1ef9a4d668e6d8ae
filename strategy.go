package chunkmd

import "sync"

// Strategy names, in fixed priority order.
const (
	StrategyCode       = "code"
	StrategyTable      = "table"
	StrategyList       = "list"
	StrategyMixed      = "mixed"
	StrategyStructural = "structural"
	StrategySentences  = "sentences"
)

// Strategy is a pluggable segmentation algorithm specialized for one content
// shape. Implementations are stateless; a single instance may serve many
// documents.
type Strategy interface {
	// Name identifies the strategy in results, config, and the registry.
	Name() string
	// Priority orders strategies for strict selection and tie-breaking.
	// Lower values are tried first.
	Priority() int
	// CanHandle reports whether the strategy applies to the analyzed
	// document under the given config.
	CanHandle(analysis ContentAnalysis, cfg ChunkConfig) bool
	// Quality scores how well the strategy fits the document, in [0, 1].
	Quality(analysis ContentAnalysis) float64
	// Apply segments content into chunks. Expected failures travel inside
	// the Outcome; Apply never panics on well-formed input.
	Apply(content string, elements []Element, cfg ChunkConfig) Outcome
}

// StrategyFactory constructs a strategy. The registry instantiates lazily on
// first use and caches the instance until evicted.
type StrategyFactory func() Strategy

// Registry is an ordered name->strategy registry with lazy instantiation and
// explicit eviction. Selection logic operates only over registry contents,
// never concrete types, so strategies can be added or removed freely.
// All methods are safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	order     []string
	factories map[string]StrategyFactory
	instances map[string]Strategy
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]StrategyFactory),
		instances: make(map[string]Strategy),
	}
}

// DefaultRegistry returns a registry with the six built-in strategies in
// priority order: code, table, list, mixed, structural, sentences.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(StrategyCode, func() Strategy { return &codeStrategy{} })
	r.Register(StrategyTable, func() Strategy { return &tableStrategy{} })
	r.Register(StrategyList, func() Strategy { return &listStrategy{} })
	r.Register(StrategyMixed, func() Strategy { return &mixedStrategy{} })
	r.Register(StrategyStructural, func() Strategy { return &structuralStrategy{} })
	r.Register(StrategySentences, func() Strategy { return &sentencesStrategy{} })
	return r
}

// Register adds a strategy factory under the given name. Re-registering a
// name replaces the factory and drops any cached instance.
func (r *Registry) Register(name string, f StrategyFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; !exists {
		r.order = append(r.order, name)
	}
	r.factories[name] = f
	delete(r.instances, name)
}

// Get returns the strategy registered under name, instantiating it on first
// use. The second return is false for unknown names.
func (r *Registry) Get(name string) (Strategy, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.instances[name]; ok {
		return st, true
	}
	f, ok := r.factories[name]
	if !ok {
		return nil, false
	}
	st := f()
	r.instances[name] = st
	return st, true
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Evict drops the cached instance for name. The factory stays registered;
// the next Get re-instantiates.
func (r *Registry) Evict(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.instances, name)
}

// Clear drops every cached instance, keeping factories registered.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances = make(map[string]Strategy)
}

// Remove unregisters a strategy entirely.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.factories, name)
	delete(r.instances, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}
