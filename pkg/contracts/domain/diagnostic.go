package domain

import "time"

// PipelineStage names the orchestrator state a diagnostic was emitted from.
type PipelineStage string

const (
	StageFetching   PipelineStage = "fetching"
	StageValidating PipelineStage = "validating"
	StageRendering  PipelineStage = "rendering"
	StageDone       PipelineStage = "done"
	StageError      PipelineStage = "error"
	StageDefaulted  PipelineStage = "defaulted"
)

// Diagnostic is the structured record emitted on every pipeline transition.
// No diagnostic is silently swallowed; each one is logged, attached to the
// render outcome and offered to the diagnostics stream.
type Diagnostic struct {
	Stage     PipelineStage `json:"stage"`
	Kind      ChartKind     `json:"kind"`
	SurfaceID string        `json:"surface_id"`
	Cause     string        `json:"cause"`
	RequestID string        `json:"request_id,omitempty"`
	Time      time.Time     `json:"time"`
}

// RenderStatus is the terminal status of a render request.
type RenderStatus string

const (
	RenderOK        RenderStatus = "ok"
	RenderDefaulted RenderStatus = "defaulted"
	RenderFailed    RenderStatus = "failed"
)

// RenderOutcome is returned to the caller of Orchestrator.Render.
type RenderOutcome struct {
	Status      RenderStatus `json:"status"`
	SurfaceID   string       `json:"surface_id"`
	Kind        ChartKind    `json:"kind"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}
