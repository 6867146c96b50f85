package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"chartscout/internal/adapters"
	"chartscout/internal/callable"
	"chartscout/internal/errors"
	"chartscout/internal/render"
	"chartscout/pkg/contracts/domain"
)

// DiagnosticSink receives every diagnostic the pipeline emits, on top of
// logging and the outcome record.
type DiagnosticSink interface {
	Emit(d domain.Diagnostic)
}

// RenderRequest asks for chart kind Kind on surface SurfaceID, fed from
// the candidates in Plan.
type RenderRequest struct {
	SurfaceID string
	Kind      domain.ChartKind
	Plan      FallbackPlan
}

// Orchestrator drives render requests through fetch, validation and
// binding, falling back across the plan on failure.
type Orchestrator struct {
	registry     *adapters.Registry
	lifecycle    *render.Manager
	materializer *callable.Materializer
	sink         DiagnosticSink
	metrics      *Metrics
	logger       *slog.Logger
	tracer       trace.Tracer
}

// NewOrchestrator wires the pipeline components together. sink and
// metrics may be nil.
func NewOrchestrator(registry *adapters.Registry, lifecycle *render.Manager, materializer *callable.Materializer, sink DiagnosticSink, metrics *Metrics, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		registry:     registry,
		lifecycle:    lifecycle,
		materializer: materializer,
		sink:         sink,
		metrics:      metrics,
		logger:       logger.With(slog.String("component", "pipeline.orchestrator")),
		tracer:       otel.Tracer("chartscout/pipeline"),
	}
}

// Render runs one request to a terminal status. It never propagates a
// pipeline failure as an error: whatever happens, the outcome reports a
// terminal status and the collected diagnostics. The returned error is
// reserved for malformed requests.
func (o *Orchestrator) Render(ctx context.Context, req RenderRequest) (*domain.RenderOutcome, error) {
	if req.SurfaceID == "" {
		return nil, errors.NewValidationError(req.Kind, "surface id is required")
	}
	if req.Kind == "" {
		return nil, errors.NewValidationError(req.Kind, "chart kind is required")
	}

	ctx, span := o.tracer.Start(ctx, "pipeline.render",
		trace.WithAttributes(
			attribute.String("chart.kind", string(req.Kind)),
			attribute.String("chart.surface_id", req.SurfaceID),
		))
	defer span.End()

	start := time.Now()
	run := &renderRun{
		orchestrator: o,
		requestID:    uuid.New().String(),
		req:          req,
		span:         span,
		outcome: &domain.RenderOutcome{
			SurfaceID: req.SurfaceID,
			Kind:      req.Kind,
		},
	}

	// The token is issued when the request arrives, not when its data
	// resolves, which is what makes concurrent renders to one surface
	// last-request-wins.
	run.token = o.lifecycle.NextToken(req.SurfaceID)

	run.execute(ctx)

	if o.metrics != nil {
		o.metrics.RendersTotal.WithLabelValues(string(run.outcome.Status), string(req.Kind)).Inc()
		o.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	}
	span.SetAttributes(attribute.String("chart.render_status", string(run.outcome.Status)))
	return run.outcome, nil
}

// renderRun is the per-request state machine.
type renderRun struct {
	orchestrator *Orchestrator
	requestID    string
	req          RenderRequest
	token        uint64
	span         trace.Span
	outcome      *domain.RenderOutcome
}

func (r *renderRun) execute(ctx context.Context) {
	for _, source := range r.req.Plan.Sources {
		select {
		case <-ctx.Done():
			r.diag(domain.StageError, "request cancelled: "+ctx.Err().Error())
			r.outcome.Status = domain.RenderFailed
			return
		default:
		}

		spec, ok := r.attempt(ctx, source)
		if !ok {
			if r.orchestrator.metrics != nil {
				r.orchestrator.metrics.FallbackAttempts.Inc()
			}
			continue
		}

		if r.bind(ctx, spec, domain.RenderOK) {
			return
		}
		if r.outcome.Status == domain.RenderFailed {
			// Superseded by a newer request; the plan stops here.
			return
		}
	}

	r.defaulted(ctx)
}

// attempt runs one candidate through fetch, materialization and
// adaptation. A false return moves the orchestrator to the next
// candidate.
func (r *renderRun) attempt(ctx context.Context, source DataSource) (*domain.ChartSpec, bool) {
	r.diag(domain.StageFetching, "fetching "+source.Name())
	payload, err := source.Fetch(ctx)
	if err != nil {
		r.diag(domain.StageError, "fetch failed: "+err.Error())
		return nil, false
	}

	payload, issues := r.orchestrator.materializer.Materialize(payload)
	for _, issue := range issues {
		// Deserialization failures are recovered locally: the leaf was
		// dropped, the spec remains renderable.
		r.diag(domain.StageValidating, "callable dropped: "+issue.Error())
	}
	callbacks := callable.Extract(payload)

	adapter := r.orchestrator.registry.Resolve(r.req.Kind)
	r.diag(domain.StageValidating, "validating against "+string(r.req.Kind)+" adapter")
	if !adapter.Validate(payload) {
		r.diag(domain.StageError, "payload rejected by "+string(r.req.Kind)+" adapter")
		return nil, false
	}

	spec, warnings, err := adapter.Transform(payload)
	if err != nil {
		r.diag(domain.StageError, "transform failed: "+err.Error())
		return nil, false
	}
	for _, w := range warnings {
		r.diag(domain.StageValidating, w)
	}

	spec.Callbacks = callbacks
	spec.Options = mergeOptions(adapter.Configure(), spec.Options)
	return spec, true
}

// bind hands the spec to the lifecycle manager. On success the run
// terminates with wantStatus. A resource conflict means a newer request
// owns the surface: the result is discarded and the run fails without
// touching further candidates. Any other bind error falls through to the
// caller for fallback.
func (r *renderRun) bind(ctx context.Context, spec *domain.ChartSpec, wantStatus domain.RenderStatus) bool {
	r.diag(domain.StageRendering, "binding surface")
	_, err := r.orchestrator.lifecycle.Bind(ctx, r.req.SurfaceID, r.token, spec)
	if err == nil {
		r.outcome.Status = wantStatus
		stage := domain.StageDone
		if wantStatus == domain.RenderDefaulted {
			stage = domain.StageDefaulted
		}
		r.diag(stage, "surface bound")
		return true
	}

	if errors.IsResourceConflict(err) {
		r.diag(domain.StageError, "discarded: "+err.Error())
		r.outcome.Status = domain.RenderFailed
		return false
	}

	r.diag(domain.StageError, "render failed: "+err.Error())
	return false
}

// defaulted terminates an exhausted plan with the synthetic dataset. The
// spec is already canonical, so it skips normalization and adaptation.
func (r *renderRun) defaulted(ctx context.Context) {
	r.diag(domain.StageDefaulted, "fallback plan exhausted, rendering synthetic default")
	spec := SyntheticSpec(r.req.Kind)

	if r.bind(ctx, spec, domain.RenderDefaulted) {
		return
	}
	if r.outcome.Status != domain.RenderFailed {
		r.outcome.Status = domain.RenderFailed
	}
}

// diag emits one structured diagnostic: outcome record, log line, sink.
func (r *renderRun) diag(stage domain.PipelineStage, cause string) {
	d := domain.Diagnostic{
		Stage:     stage,
		Kind:      r.req.Kind,
		SurfaceID: r.req.SurfaceID,
		Cause:     cause,
		RequestID: r.requestID,
		Time:      time.Now().UTC(),
	}
	r.outcome.Diagnostics = append(r.outcome.Diagnostics, d)

	level := slog.LevelInfo
	if stage == domain.StageError {
		level = slog.LevelWarn
	}
	r.orchestrator.logger.Log(context.Background(), level, "pipeline_"+string(stage),
		slog.String("surface_id", d.SurfaceID),
		slog.String("kind", string(d.Kind)),
		slog.String("request_id", d.RequestID),
		slog.String("cause", d.Cause))

	r.span.AddEvent(string(stage))

	if r.orchestrator.sink != nil {
		r.orchestrator.sink.Emit(d)
	}
}

func mergeOptions(base adapters.EngineOptions, overrides map[string]any) map[string]any {
	if base == nil && overrides == nil {
		return nil
	}
	out := make(map[string]any, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
