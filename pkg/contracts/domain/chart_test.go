package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartSpecMarshalCallbackPathsSorted(t *testing.T) {
	spec := &ChartSpec{
		Kind:   KindLine,
		Series: []Series{{Name: "s", Points: []Point{Scalar(1)}}},
		Callbacks: map[string]any{
			"tooltip.formatter":       func(v float64) float64 { return v },
			"axes.y.label_formatter":  func(v float64) float64 { return v },
			"legend.formatter":        func(v float64) float64 { return v },
			"series[0].item_callback": func(v float64) float64 { return v },
		},
	}

	var paths []string
	for i := 0; i < 10; i++ {
		data, err := json.Marshal(spec)
		require.NoError(t, err)

		var decoded struct {
			CallbackPaths []string `json:"callback_paths"`
		}
		require.NoError(t, json.Unmarshal(data, &decoded))

		want := []string{
			"axes.y.label_formatter",
			"legend.formatter",
			"series[0].item_callback",
			"tooltip.formatter",
		}
		assert.Equal(t, want, decoded.CallbackPaths)
		if paths != nil {
			assert.Equal(t, paths, decoded.CallbackPaths, "payload must be byte-stable across marshals")
		}
		paths = decoded.CallbackPaths
	}
}

func TestChartSpecMarshalOmitsEmptyCallbackPaths(t *testing.T) {
	spec := &ChartSpec{
		Kind:   KindBar,
		Series: []Series{{Name: "s", Points: []Point{Scalar(2)}}},
	}
	data, err := json.Marshal(spec)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "callback_paths")
}
