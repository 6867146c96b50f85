package chartdata

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimestampChain(t *testing.T) {
	utc := func(y int, m time.Month, d, hh, mm, ss int) time.Time {
		return time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
	}

	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"date only at utc midnight", "2024-06-01", utc(2024, 6, 1, 0, 0, 0)},
		{"iso datetime", "2024-06-01T09:30:00Z", utc(2024, 6, 1, 9, 30, 0)},
		{"space separated datetime", "2024-06-01 09:30:00", utc(2024, 6, 1, 9, 30, 0)},
		{"epoch seconds string", "1717200000", time.Unix(1717200000, 0).UTC()},
		{"epoch millis number", float64(1717200000000), time.UnixMilli(1717200000000).UTC()},
		{"epoch seconds json number", json.Number("1704067200"), time.Unix(1704067200, 0).UTC()},
		{"fractional epoch json number", json.Number("1704067200.5"), time.Unix(1704067200, 0).UTC()},
		{"slash date", "2024/06/01", utc(2024, 6, 1, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, flagged := parseTimestamp(tt.in)
			assert.True(t, ok)
			assert.False(t, flagged)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestParseTimestampFallbackAndDrop(t *testing.T) {
	before := time.Now().UTC()
	got, ok, flagged := parseTimestamp("definitely not a date")
	assert.True(t, ok)
	assert.True(t, flagged)
	assert.False(t, got.Before(before.Add(-time.Second)))

	_, ok, _ = parseTimestamp(true)
	assert.False(t, ok, "non-coercible types are dropped by the caller")

	_, ok, _ = parseTimestamp(nil)
	assert.False(t, ok)
}
