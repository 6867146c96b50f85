package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"chartscout/internal/errors"
	"chartscout/internal/store"
)

// ExamplesHandler serves the bundled example datasets.
type ExamplesHandler struct {
	store  *store.LocalStore
	logger *slog.Logger
}

// NewExamplesHandler creates an examples handler.
func NewExamplesHandler(localStore *store.LocalStore, logger *slog.Logger) *ExamplesHandler {
	return &ExamplesHandler{
		store:  localStore,
		logger: logger.With(slog.String("handler", "examples")),
	}
}

// List handles GET /api/examples.
func (h *ExamplesHandler) List(w http.ResponseWriter, r *http.Request) {
	files, err := h.store.List()
	if err != nil {
		h.logger.ErrorContext(r.Context(), "example_list_failed", slog.String("error", err.Error()))
		render.Render(w, r, errors.NewErrorResponse(errors.ErrInternalServer))
		return
	}
	render.JSON(w, r, map[string]any{"examples": files})
}

// Get handles GET /api/examples/{name}.
func (h *ExamplesHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	payload, err := h.store.Load(name)
	if err != nil {
		render.Render(w, r, errors.NewErrorResponse(errors.NotFoundError(name)))
		return
	}
	render.JSON(w, r, payload)
}
