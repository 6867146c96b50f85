package adapters

import (
	"chartscout/internal/chartdata"
	"chartscout/pkg/contracts/domain"
)

var (
	ohlcRequired = [][]string{
		{"o", "open", "opening"},
		{"h", "high", "highest"},
		{"l", "low", "lowest"},
		{"c", "close", "closing"},
	}
	timeFieldAliases = []string{"t", "time", "timestamp", "date", "datetime"}
)

// FinancialAdapter serves the candlestick and ohlc kinds. Unlike the
// lenient normalizer, it rejects payloads whose bars do not carry all four
// price fields and a recognized time field, so malformed bars become a
// validation failure instead of a zero-filled render.
type FinancialAdapter struct {
	kind domain.ChartKind
}

// NewFinancialAdapter creates a financial adapter for candlestick or ohlc.
func NewFinancialAdapter(kind domain.ChartKind) *FinancialAdapter {
	return &FinancialAdapter{kind: kind}
}

func (a *FinancialAdapter) Kind() domain.ChartKind { return a.kind }

// Validate requires at least one record with the full OHLC quad and one
// recognized time-field alias.
func (a *FinancialAdapter) Validate(data any) bool {
	records, ok := recordList(data)
	if !ok {
		return false
	}
	for _, record := range records {
		if hasOHLCQuad(record) && hasAnyField(record, timeFieldAliases) {
			return true
		}
	}
	return false
}

func (a *FinancialAdapter) Transform(data any) (*domain.ChartSpec, []string, error) {
	res, err := chartdata.Normalize(data, a.kind)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	if res.Flagged > 0 {
		warnings = append(warnings, "some bar timestamps were unparsable and defaulted to now")
	}
	if res.Dropped > 0 {
		warnings = append(warnings, "some bars were dropped for unusable timestamps")
	}

	unit := chartdata.InferUnit(chartdata.SeriesTimes(res.Series[0]))
	return &domain.ChartSpec{
		Kind:   a.kind,
		Series: res.Series,
		Axes:   &domain.AxisConfig{TimeUnit: unit},
	}, warnings, nil
}

func (a *FinancialAdapter) Configure() EngineOptions {
	return EngineOptions{
		"responsive": true,
		"xAxis":      map[string]any{"type": "time"},
		"upColor":    "#26a69a",
		"downColor":  "#ef5350",
	}
}

// recordList extracts the bar records from either a bare array or a
// canonical-envelope object.
func recordList(data any) ([]map[string]any, bool) {
	items, ok := data.([]any)
	if !ok {
		if obj, isObj := data.(map[string]any); isObj {
			if inner, innerOK := obj["data"].([]any); innerOK {
				items = inner
				ok = true
			}
		}
	}
	if !ok || len(items) == 0 {
		return nil, false
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if record, isRecord := item.(map[string]any); isRecord {
			out = append(out, record)
		}
	}
	return out, len(out) > 0
}

func hasOHLCQuad(record map[string]any) bool {
	for _, aliases := range ohlcRequired {
		if !hasAnyField(record, aliases) {
			return false
		}
	}
	return true
}

func hasAnyField(record map[string]any, aliases []string) bool {
	for _, key := range aliases {
		if _, ok := record[key]; ok {
			return true
		}
	}
	return false
}
