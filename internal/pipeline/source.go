package pipeline

import (
	"context"

	"chartscout/internal/store"
)

// DataSource is one candidate in a fallback plan.
type DataSource interface {
	// Name identifies the source in diagnostics.
	Name() string

	// Fetch retrieves the raw chart payload.
	Fetch(ctx context.Context) (any, error)
}

// StoreSource fetches a document from the remote example/upload store.
type StoreSource struct {
	Client   *store.Client
	Filename string
	FileType string
}

func (s *StoreSource) Name() string { return s.FileType + ":" + s.Filename }

func (s *StoreSource) Fetch(ctx context.Context) (any, error) {
	return s.Client.Fetch(ctx, s.Filename, s.FileType)
}

// LocalSource loads a bundled example dataset.
type LocalSource struct {
	Store    *store.LocalStore
	Filename string
}

func (s *LocalSource) Name() string { return "local:" + s.Filename }

func (s *LocalSource) Fetch(ctx context.Context) (any, error) {
	return s.Store.Load(s.Filename)
}

// InlineSource wraps a payload the caller already holds.
type InlineSource struct {
	Label   string
	Payload any
}

func (s *InlineSource) Name() string {
	if s.Label != "" {
		return "inline:" + s.Label
	}
	return "inline"
}

func (s *InlineSource) Fetch(ctx context.Context) (any, error) {
	return s.Payload, nil
}

// FallbackPlan is the ordered list of candidate sources for one request,
// consumed left to right and discarded after first success or exhaustion.
// The terminal synthetic-default generator is implicit; exhaustion always
// resolves to a defaulted render, never a blank surface.
type FallbackPlan struct {
	Sources []DataSource
}

// NewFallbackPlan builds a plan over the given candidates.
func NewFallbackPlan(sources ...DataSource) FallbackPlan {
	return FallbackPlan{Sources: sources}
}
