package chartdata

import (
	"encoding/json"
	"regexp"
	"strconv"
	"time"
)

var (
	dateOnlyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	isoPattern      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}`)
	digitsPattern   = regexp.MustCompile(`^\d+$`)
)

// Layouts tried by the terminal generic parse, loosest last.
var genericLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04",
	time.RFC1123,
}

// parseTimestamp resolves a raw timestamp value. The parse chain is tried
// in order: native time value, strict date-only (interpreted at UTC
// midnight to avoid timezone drift), strict ISO datetime, pure-digit epoch,
// then a generic layout sweep. On total string failure the point falls
// back to "now" and is flagged; values that are not a date, string or
// number at all report ok=false and the caller drops the point.
func parseTimestamp(raw any) (t time.Time, ok bool, flagged bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, true, false
	case string:
		return parseTimestampString(v)
	case float64:
		return fromEpoch(int64(v)), true, false
	case int:
		return fromEpoch(int64(v)), true, false
	case int64:
		return fromEpoch(v), true, false
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return fromEpoch(n), true, false
		}
		if f, err := v.Float64(); err == nil {
			return fromEpoch(int64(f)), true, false
		}
		return time.Now().UTC(), true, true
	default:
		return time.Time{}, false, false
	}
}

func parseTimestampString(s string) (time.Time, bool, bool) {
	if dateOnlyPattern.MatchString(s) {
		if t, err := time.ParseInLocation("2006-01-02", s, time.UTC); err == nil {
			return t, true, false
		}
	}
	if isoPattern.MatchString(s) {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, true, false
		}
		if t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC); err == nil {
			return t, true, false
		}
		if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC); err == nil {
			return t, true, false
		}
	}
	if digitsPattern.MatchString(s) {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return fromEpoch(n), true, false
		}
	}
	for _, layout := range genericLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true, false
		}
	}
	return time.Now().UTC(), true, true
}

// fromEpoch distinguishes second and millisecond epochs by magnitude.
func fromEpoch(n int64) time.Time {
	if n > 1e12 {
		return time.UnixMilli(n).UTC()
	}
	return time.Unix(n, 0).UTC()
}
