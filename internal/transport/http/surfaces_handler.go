package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"chartscout/internal/errors"
	rnd "chartscout/internal/render"
)

// SurfacesHandler exposes the live surface bindings.
type SurfacesHandler struct {
	manager *rnd.Manager
	logger  *slog.Logger
}

// NewSurfacesHandler creates a surfaces handler.
func NewSurfacesHandler(manager *rnd.Manager, logger *slog.Logger) *SurfacesHandler {
	return &SurfacesHandler{
		manager: manager,
		logger:  logger.With(slog.String("handler", "surfaces")),
	}
}

type surfaceInfo struct {
	SurfaceID string `json:"surface_id"`
	Kind      string `json:"kind"`
	BoundAt   string `json:"bound_at"`
}

// List handles GET /api/surfaces.
func (h *SurfacesHandler) List(w http.ResponseWriter, r *http.Request) {
	ids := h.manager.Surfaces()
	out := make([]surfaceInfo, 0, len(ids))
	for _, id := range ids {
		b, ok := h.manager.Binding(id)
		if !ok {
			continue
		}
		out = append(out, surfaceInfo{
			SurfaceID: b.SurfaceID,
			Kind:      string(b.LastSpec.Kind),
			BoundAt:   b.BoundAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	render.JSON(w, r, map[string]any{"surfaces": out, "count": len(out)})
}

// Teardown handles DELETE /api/surfaces/{id}.
func (h *SurfacesHandler) Teardown(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.manager.Teardown(r.Context(), id) {
		render.Render(w, r, errors.NewErrorResponse(errors.NotFoundError(id)))
		return
	}
	h.logger.InfoContext(r.Context(), "surface_torn_down", slog.String("surface_id", id))
	render.JSON(w, r, map[string]any{"success": true})
}
