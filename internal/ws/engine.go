package ws

import (
	"context"
	"log/slog"
	"sync"

	"chartscout/internal/render"
	"chartscout/pkg/contracts/domain"
)

// HubEngine implements the rendering engine contract by pushing specs to
// the browser over the hub. The page-side runtime owns the actual drawing;
// this side owns the instance lifecycle.
type HubEngine struct {
	hub    *Hub
	logger *slog.Logger
}

// NewHubEngine creates an engine over the hub.
func NewHubEngine(hub *Hub, logger *slog.Logger) *HubEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &HubEngine{
		hub:    hub,
		logger: logger.With(slog.String("component", "ws.engine")),
	}
}

// Create pushes a render message and returns the live instance handle.
func (e *HubEngine) Create(ctx context.Context, surfaceID string, spec *domain.ChartSpec) (render.Instance, error) {
	e.hub.Broadcast(Message{Type: TypeRender, SurfaceID: surfaceID, Payload: spec})
	return &hubInstance{engine: e, surfaceID: surfaceID}, nil
}

type hubInstance struct {
	engine    *HubEngine
	surfaceID string

	mu        sync.Mutex
	destroyed bool
}

func (i *hubInstance) UpdateOptions(spec *domain.ChartSpec) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.destroyed {
		return nil
	}
	i.engine.hub.Broadcast(Message{Type: TypeUpdate, SurfaceID: i.surfaceID, Payload: spec})
	return nil
}

func (i *hubInstance) Destroy() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.destroyed {
		return nil
	}
	i.destroyed = true
	i.engine.hub.Broadcast(Message{Type: TypeDestroy, SurfaceID: i.surfaceID})
	return nil
}

// DiagnosticSink streams pipeline diagnostics to connected clients.
type DiagnosticSink struct {
	hub *Hub
}

// NewDiagnosticSink creates a diagnostics stream over the hub.
func NewDiagnosticSink(hub *Hub) *DiagnosticSink {
	return &DiagnosticSink{hub: hub}
}

// Emit pushes one diagnostic.
func (s *DiagnosticSink) Emit(d domain.Diagnostic) {
	s.hub.Broadcast(Message{Type: TypeDiagnostic, SurfaceID: d.SurfaceID, Payload: d})
}
