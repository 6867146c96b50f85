package render

import (
	"context"

	"chartscout/pkg/contracts/domain"
)

// Engine is the rendering engine contract. The pipeline never reaches
// into engine internals beyond this interface.
type Engine interface {
	// Create constructs a new engine instance bound to the surface.
	Create(ctx context.Context, surfaceID string, spec *domain.ChartSpec) (Instance, error)
}

// Instance is one live engine instance on a surface.
type Instance interface {
	// UpdateOptions replaces the instance's spec in place.
	UpdateOptions(spec *domain.ChartSpec) error

	// Destroy releases the instance: engine listeners are unbound and
	// the drawing surface is cleared.
	Destroy() error
}
