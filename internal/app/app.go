package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"chartscout/internal/adapters"
	"chartscout/internal/callable"
	"chartscout/internal/config"
	"chartscout/internal/infrastructure"
	"chartscout/internal/pipeline"
	"chartscout/internal/render"
	"chartscout/internal/store"
	handlers "chartscout/internal/transport/http"
	"chartscout/internal/ws"
	"chartscout/pkg/contracts"
)

// Application is the assembled service.
type Application struct {
	Config         *config.Config
	Logger         *slog.Logger
	Server         *http.Server
	Hub            *ws.Hub
	Manager        *render.Manager
	Orchestrator   *pipeline.Orchestrator
	Registry       *prometheus.Registry
	TracerProvider *sdktrace.TracerProvider
}

// NewApplication wires the service together from configuration.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("application_starting",
		slog.String("version", contracts.Version),
		slog.Int("port", cfg.Server.Port))

	tp, err := infrastructure.InitTracing(context.Background(), "chartscout", contracts.Version, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	hub := ws.NewHub(logger)
	engine := ws.NewHubEngine(hub, logger)
	manager := render.NewManager(engine, logger)

	storeClient := store.NewClient(cfg.Store.BaseURL, cfg.Store.Timeout, logger)
	localStore := store.NewLocalStore(cfg.Store.ExamplesDir, logger)

	orchestrator := pipeline.NewOrchestrator(
		adapters.NewBuiltinRegistry(),
		manager,
		callable.New(logger),
		ws.NewDiagnosticSink(hub),
		pipeline.NewMetrics(registry),
		logger,
	)

	router := handlers.NewRouter(cfg, handlers.RouterDeps{
		Service:     orchestrator,
		StoreClient: storeClient,
		LocalStore:  localStore,
		Manager:     manager,
		Hub:         hub,
		Registry:    registry,
		Version:     contracts.Version,
		Logger:      logger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Application{
		Config:         cfg,
		Logger:         logger,
		Server:         server,
		Hub:            hub,
		Manager:        manager,
		Orchestrator:   orchestrator,
		Registry:       registry,
		TracerProvider: tp,
	}, nil
}

// Run starts the hub and HTTP server and blocks until shutdown.
func (app *Application) Run() error {
	app.Hub.Start()

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("server_listening", slog.String("addr", app.Server.Addr))
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigCh:
		app.Logger.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	}

	return app.Shutdown()
}

// Shutdown stops the server, tears down every surface binding and closes
// the hub and tracer within the configured timeout.
func (app *Application) Shutdown() error {
	timeout := app.Config.Server.ShutdownTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Logger.Error("server_shutdown_failed", slog.String("error", err.Error()))
	}

	app.Manager.Shutdown(ctx)
	app.Hub.Stop()

	if app.TracerProvider != nil {
		if err := app.TracerProvider.Shutdown(ctx); err != nil {
			app.Logger.Error("tracer_shutdown_failed", slog.String("error", err.Error()))
		}
	}

	app.Logger.Info("application_stopped")
	return nil
}
