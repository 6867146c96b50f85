package http

import (
	"context"

	"chartscout/internal/pipeline"
	"chartscout/pkg/contracts/domain"
)

// RenderService runs render requests to a terminal outcome. Satisfied by
// pipeline.Orchestrator; handler tests substitute their own.
type RenderService interface {
	Render(ctx context.Context, req pipeline.RenderRequest) (*domain.RenderOutcome, error)
}
