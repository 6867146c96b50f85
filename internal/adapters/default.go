package adapters

import (
	"chartscout/internal/chartdata"
	"chartscout/pkg/contracts/domain"
)

// DefaultAdapter performs only shape coercion (array to single labeled
// series) with no domain validation. It backs the basic axis and category
// kinds and is the terminal resolution for unknown kinds.
type DefaultAdapter struct {
	kind domain.ChartKind
}

// NewDefaultAdapter creates the default adapter for the given kind.
func NewDefaultAdapter(kind domain.ChartKind) *DefaultAdapter {
	return &DefaultAdapter{kind: kind}
}

func (a *DefaultAdapter) Kind() domain.ChartKind { return a.kind }

func (a *DefaultAdapter) Validate(data any) bool { return data != nil }

func (a *DefaultAdapter) Transform(data any) (*domain.ChartSpec, []string, error) {
	res, err := chartdata.Normalize(data, a.kind)
	if err != nil {
		return nil, nil, err
	}
	return &domain.ChartSpec{
		Kind:       a.kind,
		Series:     res.Series,
		Categories: res.Categories,
	}, nil, nil
}

func (a *DefaultAdapter) Configure() EngineOptions {
	opts := EngineOptions{"responsive": true}
	if a.kind.IsCategorical() {
		opts["legend"] = map[string]any{"show": true}
	}
	return opts
}
