package chartdata_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chartscout/internal/chartdata"
	"chartscout/pkg/contracts/domain"
)

func timesEvery(step time.Duration, n int) []time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = base.Add(time.Duration(i) * step)
	}
	return out
}

func TestInferUnitBuckets(t *testing.T) {
	tests := []struct {
		name string
		step time.Duration
		want domain.TimeUnit
	}{
		{"seconds", 10 * time.Second, domain.UnitSecond},
		{"minutes", 5 * time.Minute, domain.UnitMinute},
		{"hours", 4 * time.Hour, domain.UnitHour},
		{"days", 24 * time.Hour, domain.UnitDay},
		{"weeks", 7 * 24 * time.Hour, domain.UnitWeek},
		{"months", 31 * 24 * time.Hour, domain.UnitMonth},
		{"years", 400 * 24 * time.Hour, domain.UnitYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chartdata.InferUnit(timesEvery(tt.step, 10))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInferUnitTooFewPoints(t *testing.T) {
	assert.Equal(t, domain.UnitDay, chartdata.InferUnit(nil))
	assert.Equal(t, domain.UnitDay, chartdata.InferUnit(timesEvery(time.Second, 1)))
}

func TestInferUnitResistsOutlier(t *testing.T) {
	// Nine one-day gaps plus one 60-day outlier: the mean delta stays
	// just under a week, so a single gap cannot skew the unit.
	ts := timesEvery(24*time.Hour, 10)
	ts = append(ts, ts[len(ts)-1].Add(60*24*time.Hour))
	assert.Equal(t, domain.UnitDay, chartdata.InferUnit(ts))
}
