package render

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"chartscout/internal/errors"
	"chartscout/pkg/contracts/domain"
)

// Binding records one live engine instance on a surface.
type Binding struct {
	SurfaceID string
	Token     uint64
	Instance  Instance
	LastSpec  *domain.ChartSpec
	BoundAt   time.Time
}

// Manager enforces the surface lifecycle: destroy-before-create, at most
// one binding per surface, stale requests refused.
type Manager struct {
	engine Engine
	logger *slog.Logger

	mu       sync.Mutex
	bindings map[string]*Binding
	tokens   map[string]uint64
}

// NewManager creates a lifecycle manager over the given engine.
func NewManager(engine Engine, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		engine:   engine,
		logger:   logger.With(slog.String("component", "render.manager")),
		bindings: make(map[string]*Binding),
		tokens:   make(map[string]uint64),
	}
}

// NextToken issues the next request token for a surface. Tokens increase
// monotonically per surface; a bind presenting an older token than the
// newest issued one is stale and refused.
func (m *Manager) NextToken(surfaceID string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tokens[surfaceID]++
	return m.tokens[surfaceID]
}

// Bind destroys any existing binding for the surface, then constructs a
// new engine instance for the spec. The whole sequence runs under the
// manager lock, so binds to the same surface are never interleaved
// mid-step.
func (m *Manager) Bind(ctx context.Context, surfaceID string, token uint64, spec *domain.ChartSpec) (*Binding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if latest := m.tokens[surfaceID]; token < latest {
		m.logger.InfoContext(ctx, "stale_bind_discarded",
			slog.String("surface_id", surfaceID),
			slog.Uint64("token", token),
			slog.Uint64("latest", latest))
		return nil, errors.NewResourceConflictError(surfaceID, "superseded by a newer render request")
	}

	if old, ok := m.bindings[surfaceID]; ok {
		m.destroyLocked(ctx, old)
	}

	instance, err := m.engine.Create(ctx, surfaceID, spec)
	if err != nil {
		return nil, &errors.RenderError{SurfaceID: surfaceID, Err: err}
	}

	binding := &Binding{
		SurfaceID: surfaceID,
		Token:     token,
		Instance:  instance,
		LastSpec:  spec,
		BoundAt:   time.Now(),
	}
	m.bindings[surfaceID] = binding

	m.logger.InfoContext(ctx, "surface_bound",
		slog.String("surface_id", surfaceID),
		slog.String("kind", string(spec.Kind)),
		slog.Uint64("token", token))
	return binding, nil
}

// destroyLocked tears the old instance down before a new one may exist.
// If the engine's destroy throws, the table entry is still removed so a
// failed teardown cannot wedge the surface.
func (m *Manager) destroyLocked(ctx context.Context, b *Binding) {
	delete(m.bindings, b.SurfaceID)
	if err := b.Instance.Destroy(); err != nil {
		m.logger.WarnContext(ctx, "engine_destroy_failed",
			slog.String("surface_id", b.SurfaceID),
			slog.String("error", err.Error()))
	}
}

// Teardown destroys the binding for a surface, if any.
func (m *Manager) Teardown(ctx context.Context, surfaceID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bindings[surfaceID]
	if !ok {
		return false
	}
	m.destroyLocked(ctx, b)
	return true
}

// Shutdown destroys every live binding.
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.bindings {
		m.destroyLocked(ctx, b)
	}
}

// Binding returns the live binding for a surface.
func (m *Manager) Binding(surfaceID string) (*Binding, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bindings[surfaceID]
	return b, ok
}

// Surfaces lists the surface ids with live bindings.
func (m *Manager) Surfaces() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.bindings))
	for id := range m.bindings {
		out = append(out, id)
	}
	return out
}

// Count returns the number of live bindings.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.bindings)
}
