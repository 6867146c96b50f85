package pipeline

import (
	"time"

	"chartscout/pkg/contracts/domain"
)

// SyntheticSpec generates the fixed default dataset for a kind. The spec
// is already canonical, so the defaulted path hands it straight to the
// lifecycle manager, bypassing normalization and adaptation.
func SyntheticSpec(kind domain.ChartKind) *domain.ChartSpec {
	switch {
	case kind.IsFinancial():
		return syntheticOHLC(kind)
	case kind == domain.KindSankey:
		return syntheticFlow()
	case kind == domain.KindButterfly:
		return syntheticMirrored()
	case kind == domain.KindMixed:
		return syntheticMixed()
	case kind == domain.KindScatter || kind == domain.KindBubble:
		return syntheticXY(kind)
	default:
		return syntheticScalar(kind)
	}
}

func syntheticScalar(kind domain.ChartKind) *domain.ChartSpec {
	values := []float64{3, 7, 5, 9, 6}
	points := make([]domain.Point, len(values))
	labels := make([]string, len(values))
	for i, v := range values {
		points[i] = domain.Scalar(v)
		labels[i] = "Sample " + string(rune('A'+i))
	}
	return &domain.ChartSpec{
		Kind:       kind,
		Title:      "Sample data",
		Series:     []domain.Series{{Name: "Sample", Points: points}},
		Categories: labels,
	}
}

func syntheticXY(kind domain.ChartKind) *domain.ChartSpec {
	points := []domain.Point{
		domain.XY(1, 2), domain.XY(2, 4), domain.XY(3, 3),
		domain.XY(4, 6), domain.XY(5, 5),
	}
	return &domain.ChartSpec{
		Kind:   kind,
		Title:  "Sample data",
		Series: []domain.Series{{Name: "Sample", Points: points}},
	}
}

func syntheticOHLC(kind domain.ChartKind) *domain.ChartSpec {
	base := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, -5)
	bars := []struct{ o, h, l, c float64 }{
		{100, 104, 98, 102},
		{102, 106, 101, 105},
		{105, 107, 100, 101},
		{101, 103, 97, 99},
		{99, 105, 99, 104},
	}
	points := make([]domain.Point, len(bars))
	for i, b := range bars {
		points[i] = domain.OHLC(base.AddDate(0, 0, i), b.o, b.h, b.l, b.c)
	}
	return &domain.ChartSpec{
		Kind:   kind,
		Title:  "Sample data",
		Series: []domain.Series{{Name: "Sample", Points: points}},
		Axes:   &domain.AxisConfig{TimeUnit: domain.UnitDay},
	}
}

func syntheticFlow() *domain.ChartSpec {
	points := []domain.Point{
		domain.FlowEdge("Source", "Middle", 5),
		domain.FlowEdge("Middle", "Sink", 3),
		domain.FlowEdge("Middle", "Loss", 2),
	}
	return &domain.ChartSpec{
		Kind:       domain.KindSankey,
		Title:      "Sample data",
		Series:     []domain.Series{{Name: "Flow", Points: points}},
		Categories: []string{"Source", "Middle", "Sink", "Loss"},
	}
}

func syntheticMirrored() *domain.ChartSpec {
	left := []domain.Point{domain.Scalar(-4), domain.Scalar(-6), domain.Scalar(-5)}
	right := []domain.Point{domain.Scalar(5), domain.Scalar(6), domain.Scalar(4)}
	return &domain.ChartSpec{
		Kind:       domain.KindButterfly,
		Title:      "Sample data",
		Series:     []domain.Series{{Name: "Left", Points: left}, {Name: "Right", Points: right}},
		Categories: []string{"Group A", "Group B", "Group C"},
		Axes:       &domain.AxisConfig{Mirrored: true},
	}
}

func syntheticMixed() *domain.ChartSpec {
	bars := []domain.Point{domain.Scalar(3), domain.Scalar(5), domain.Scalar(4)}
	line := []domain.Point{domain.Scalar(2), domain.Scalar(4), domain.Scalar(6)}
	return &domain.ChartSpec{
		Kind:  domain.KindMixed,
		Title: "Sample data",
		Series: []domain.Series{
			{Name: "Volume", Kind: domain.KindBar, Points: bars},
			{Name: "Trend", Kind: domain.KindLine, Points: line},
		},
		Categories: []string{"Sample A", "Sample B", "Sample C"},
	}
}
