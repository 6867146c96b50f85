package chartdata

import (
	"time"

	"chartscout/pkg/contracts/domain"
)

// Granularity thresholds against the mean inter-point delta.
const (
	minuteThreshold = time.Minute
	hourThreshold   = time.Hour
	dayThreshold    = 24 * time.Hour
	weekThreshold   = 7 * 24 * time.Hour
	monthThreshold  = 30 * 24 * time.Hour
	yearThreshold   = 365 * 24 * time.Hour
)

// InferUnit derives a display time unit from the statistical spacing of a
// sorted timestamp sequence. The mean delta is used rather than the min or
// the first-pair delta so a single outlier gap cannot skew the unit. With
// fewer than two points the default is day.
func InferUnit(sorted []time.Time) domain.TimeUnit {
	if len(sorted) < 2 {
		return domain.UnitDay
	}

	total := sorted[len(sorted)-1].Sub(sorted[0])
	mean := total / time.Duration(len(sorted)-1)

	switch {
	case mean < minuteThreshold:
		return domain.UnitSecond
	case mean < hourThreshold:
		return domain.UnitMinute
	case mean < dayThreshold:
		return domain.UnitHour
	case mean < weekThreshold:
		return domain.UnitDay
	case mean < monthThreshold:
		return domain.UnitWeek
	case mean < yearThreshold:
		return domain.UnitMonth
	default:
		return domain.UnitYear
	}
}

// SeriesTimes extracts the timestamps of an OHLC series in order.
func SeriesTimes(s domain.Series) []time.Time {
	out := make([]time.Time, 0, len(s.Points))
	for _, p := range s.Points {
		if p.Kind == domain.PointOHLC {
			out = append(out, p.Time)
		}
	}
	return out
}
