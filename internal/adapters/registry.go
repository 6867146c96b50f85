package adapters

import (
	"fmt"
	"sync"

	"chartscout/pkg/contracts/domain"
)

// EngineOptions carries kind-specific rendering engine configuration.
type EngineOptions map[string]any

// Adapter is the capability triple resolved per chart kind.
type Adapter interface {
	// Kind returns the chart kind this adapter serves.
	Kind() domain.ChartKind

	// Validate reports whether the payload is acceptable for this kind.
	// A false return is a validation failure, not an error; the
	// orchestrator moves to the next fallback candidate.
	Validate(data any) bool

	// Transform canonicalizes the payload into an engine-ready spec.
	// Warnings describe repairs that did not reject the payload.
	Transform(data any) (*domain.ChartSpec, []string, error)

	// Configure returns the engine options for this kind.
	Configure() EngineOptions
}

// Registry is the dispatch table from chart kind to adapter.
type Registry struct {
	mu       sync.RWMutex
	adapters map[domain.ChartKind]Adapter
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[domain.ChartKind]Adapter)}
}

// Register adds an adapter under its kind.
func (r *Registry) Register(a Adapter) error {
	if a == nil {
		return fmt.Errorf("cannot register nil adapter")
	}
	kind := a.Kind()
	if kind == "" {
		return fmt.Errorf("adapter kind cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.adapters[kind]; exists {
		return fmt.Errorf("adapter for kind %q already registered", kind)
	}
	r.adapters[kind] = a
	return nil
}

// Resolve returns the adapter for the kind. Unknown kinds resolve to the
// default adapter, never nil.
func (r *Registry) Resolve(kind domain.ChartKind) Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if a, ok := r.adapters[kind]; ok {
		return a
	}
	return NewDefaultAdapter(kind)
}

// Has reports whether a dedicated adapter is registered for the kind.
func (r *Registry) Has(kind domain.ChartKind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.adapters[kind]
	return ok
}

// Kinds returns the registered kinds.
func (r *Registry) Kinds() []domain.ChartKind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ChartKind, 0, len(r.adapters))
	for kind := range r.adapters {
		out = append(out, kind)
	}
	return out
}

// NewBuiltinRegistry returns a registry with every built-in adapter wired.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, kind := range []domain.ChartKind{
		domain.KindLine, domain.KindBar, domain.KindPie, domain.KindDonut,
		domain.KindPolar, domain.KindRadar, domain.KindScatter, domain.KindBubble,
	} {
		_ = r.Register(NewDefaultAdapter(kind))
	}
	_ = r.Register(NewFinancialAdapter(domain.KindCandlestick))
	_ = r.Register(NewFinancialAdapter(domain.KindOHLC))
	_ = r.Register(NewFlowAdapter())
	_ = r.Register(NewCompositeAdapter())
	_ = r.Register(NewMirroredAdapter())
	return r
}
