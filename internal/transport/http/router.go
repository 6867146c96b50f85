package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chartscout/internal/config"
	"chartscout/internal/middleware"
	rnd "chartscout/internal/render"
	"chartscout/internal/store"
	"chartscout/internal/ws"
)

// RouterDeps carries everything the router wires together.
type RouterDeps struct {
	Service     RenderService
	StoreClient *store.Client
	LocalStore  *store.LocalStore
	Manager     *rnd.Manager
	Hub         *ws.Hub
	Registry    *prometheus.Registry
	Version     string
	Logger      *slog.Logger
}

// NewRouter builds the chi router with the full middleware chain and all
// API routes.
func NewRouter(cfg *config.Config, deps RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, logger)
		r.Use(limiter.Handler)
	}

	renderHandler := NewRenderHandler(deps.Service, deps.StoreClient, deps.LocalStore, cfg.Pipeline.MaxCandidates, logger)
	examplesHandler := NewExamplesHandler(deps.LocalStore, logger)
	surfacesHandler := NewSurfacesHandler(deps.Manager, logger)
	healthHandler := NewHealthHandler(deps.Manager, deps.Hub, deps.Version, logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/render", renderHandler.Render)
		r.Get("/examples", examplesHandler.List)
		r.Get("/examples/{name}", examplesHandler.Get)
		r.Get("/surfaces", surfacesHandler.List)
		r.Delete("/surfaces/{id}", surfacesHandler.Teardown)
		r.Get("/health", healthHandler.Check)
	})

	r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
		ws.ServeWS(deps.Hub, w, req)
	})

	if deps.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	return r
}
