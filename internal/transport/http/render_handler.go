package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"chartscout/internal/errors"
	"chartscout/internal/pipeline"
	"chartscout/internal/store"
	"chartscout/pkg/contracts/domain"
)

// SourceRef names one fallback candidate in a render request.
type SourceRef struct {
	Type     string `json:"type" validate:"required,oneof=store local"`
	Filename string `json:"filename" validate:"required"`
	FileType string `json:"file_type"`
}

// RenderPayload is the POST /api/render request body. Sources are tried
// in order; inline data, when present, is tried first.
type RenderPayload struct {
	SurfaceID string      `json:"surface_id" validate:"required"`
	Kind      string      `json:"kind" validate:"required"`
	Data      any         `json:"data,omitempty"`
	Sources   []SourceRef `json:"sources,omitempty" validate:"dive"`
}

// Bind implements render.Binder.
func (p *RenderPayload) Bind(r *http.Request) error { return nil }

// RenderHandler handles chart render requests.
type RenderHandler struct {
	service       RenderService
	storeClient   *store.Client
	localStore    *store.LocalStore
	maxCandidates int
	validate      *validator.Validate
	logger        *slog.Logger
}

// NewRenderHandler creates a render handler.
func NewRenderHandler(service RenderService, storeClient *store.Client, localStore *store.LocalStore, maxCandidates int, logger *slog.Logger) *RenderHandler {
	return &RenderHandler{
		service:       service,
		storeClient:   storeClient,
		localStore:    localStore,
		maxCandidates: maxCandidates,
		validate:      validator.New(),
		logger:        logger.With(slog.String("handler", "render")),
	}
}

// Render handles POST /api/render.
func (h *RenderHandler) Render(w http.ResponseWriter, r *http.Request) {
	payload := &RenderPayload{}
	if err := render.Bind(r, payload); err != nil {
		render.Render(w, r, errors.NewErrorResponse(errors.InvalidRequestWithError(err)))
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		render.Render(w, r, errors.NewErrorResponse(errors.NewWithDetails(
			http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", err.Error())))
		return
	}
	if payload.Data == nil && len(payload.Sources) == 0 {
		render.Render(w, r, errors.NewErrorResponse(errors.ErrValidation("sources", "either data or sources is required")))
		return
	}
	if len(payload.Sources) > h.maxCandidates {
		render.Render(w, r, errors.NewErrorResponse(errors.ErrValidation("sources", "too many fallback candidates")))
		return
	}

	plan := h.buildPlan(payload)
	outcome, err := h.service.Render(r.Context(), pipeline.RenderRequest{
		SurfaceID: payload.SurfaceID,
		Kind:      domain.ChartKind(payload.Kind),
		Plan:      plan,
	})
	if err != nil {
		render.Render(w, r, errors.NewErrorResponse(errors.InvalidRequestWithError(err)))
		return
	}

	h.logger.InfoContext(r.Context(), "render_resolved",
		slog.String("surface_id", outcome.SurfaceID),
		slog.String("status", string(outcome.Status)))
	render.JSON(w, r, outcome)
}

func (h *RenderHandler) buildPlan(payload *RenderPayload) pipeline.FallbackPlan {
	var sources []pipeline.DataSource
	if payload.Data != nil {
		sources = append(sources, &pipeline.InlineSource{Label: "request", Payload: payload.Data})
	}
	for _, ref := range payload.Sources {
		switch ref.Type {
		case "store":
			fileType := ref.FileType
			if fileType == "" {
				fileType = "examples"
			}
			sources = append(sources, &pipeline.StoreSource{
				Client:   h.storeClient,
				Filename: ref.Filename,
				FileType: fileType,
			})
		case "local":
			sources = append(sources, &pipeline.LocalSource{
				Store:    h.localStore,
				Filename: ref.Filename,
			})
		}
	}
	return pipeline.FallbackPlan{Sources: sources}
}
