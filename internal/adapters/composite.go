package adapters

import (
	"fmt"

	"chartscout/internal/chartdata"
	"chartscout/pkg/contracts/domain"
)

// CompositeAdapter serves the mixed kind, where each series declares its
// own sub-kind. A series without a kind tag defaults to line with a
// recorded warning; a composite chart is never rejected solely for missing
// per-series tags.
type CompositeAdapter struct{}

// NewCompositeAdapter creates the mixed-kind adapter.
func NewCompositeAdapter() *CompositeAdapter { return &CompositeAdapter{} }

func (a *CompositeAdapter) Kind() domain.ChartKind { return domain.KindMixed }

func (a *CompositeAdapter) Validate(data any) bool {
	obj, ok := data.(map[string]any)
	if !ok {
		return false
	}
	for _, key := range []string{"series", "datasets"} {
		if list, ok := obj[key].([]any); ok && len(list) > 0 {
			return true
		}
	}
	return false
}

func (a *CompositeAdapter) Transform(data any) (*domain.ChartSpec, []string, error) {
	res, err := chartdata.Normalize(data, domain.KindMixed)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	for i := range res.Series {
		if res.Series[i].Kind == "" {
			res.Series[i].Kind = domain.KindLine
			warnings = append(warnings,
				fmt.Sprintf("series %q declares no kind, defaulting to line", res.Series[i].Name))
		}
	}

	return &domain.ChartSpec{
		Kind:       domain.KindMixed,
		Series:     res.Series,
		Categories: res.Categories,
	}, warnings, nil
}

func (a *CompositeAdapter) Configure() EngineOptions {
	return EngineOptions{
		"responsive": true,
		"tooltip":    map[string]any{"trigger": "axis"},
	}
}
