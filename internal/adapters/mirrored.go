package adapters

import (
	"chartscout/internal/chartdata"
	"chartscout/internal/errors"
	"chartscout/pkg/contracts/domain"
)

// MirroredAdapter serves diverging (butterfly) charts. It requires at
// least two series and negates every value in the first series only,
// placing it on the opposite side of the shared axis. The left/right
// convention is fixed by series position, not by name.
type MirroredAdapter struct{}

// NewMirroredAdapter creates the butterfly adapter.
func NewMirroredAdapter() *MirroredAdapter { return &MirroredAdapter{} }

func (a *MirroredAdapter) Kind() domain.ChartKind { return domain.KindButterfly }

func (a *MirroredAdapter) Validate(data any) bool {
	res, err := chartdata.Normalize(data, domain.KindButterfly)
	return err == nil && len(res.Series) >= 2
}

func (a *MirroredAdapter) Transform(data any) (*domain.ChartSpec, []string, error) {
	res, err := chartdata.Normalize(data, domain.KindButterfly)
	if err != nil {
		return nil, nil, err
	}
	if len(res.Series) < 2 {
		return nil, nil, errors.NewValidationError(domain.KindButterfly,
			"a mirrored chart needs at least two series")
	}

	first := res.Series[0]
	mirrored := make([]domain.Point, len(first.Points))
	for i, p := range first.Points {
		p.Value = -p.Value
		p.Y = -p.Y
		mirrored[i] = p
	}
	res.Series[0] = domain.Series{Name: first.Name, Kind: first.Kind, Points: mirrored}

	return &domain.ChartSpec{
		Kind:       domain.KindButterfly,
		Series:     res.Series,
		Categories: res.Categories,
		Axes:       &domain.AxisConfig{Mirrored: true},
	}, nil, nil
}

func (a *MirroredAdapter) Configure() EngineOptions {
	return EngineOptions{
		"responsive": true,
		"xAxis":      map[string]any{"axisLabel": map[string]any{"formatter": "abs"}},
	}
}
