package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	rnd "chartscout/internal/render"
	"chartscout/internal/ws"
)

// HealthHandler reports service liveness and basic runtime stats.
type HealthHandler struct {
	manager *rnd.Manager
	hub     *ws.Hub
	started time.Time
	version string
	logger  *slog.Logger
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(manager *rnd.Manager, hub *ws.Hub, version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		manager: manager,
		hub:     hub,
		started: time.Now(),
		version: version,
		logger:  logger.With(slog.String("handler", "health")),
	}
}

// Check handles GET /api/health.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"status":     "ok",
		"version":    h.version,
		"uptime":     time.Since(h.started).String(),
		"surfaces":   h.manager.Count(),
		"ws_clients": h.hub.ClientCount(),
	})
}
