package chartdata

import (
	"encoding/json"
	"fmt"
	"sort"

	"chartscout/internal/errors"
	"chartscout/pkg/contracts/domain"
)

// Result is the canonical output of Normalize. Feeding a Result (or its
// decoded JSON form) back through Normalize returns it unchanged.
type Result struct {
	Series     []domain.Series `json:"series"`
	Categories []string        `json:"categories,omitempty"`

	// Dropped counts points removed because their timestamp field held a
	// value that is not a date, string or number. Flagged counts points
	// whose timestamp string was unparsable and fell back to "now".
	Dropped int `json:"dropped,omitempty"`
	Flagged int `json:"flagged,omitempty"`
}

// Normalize canonicalizes a loosely typed payload for the declared kind.
// Accepted shapes: an already-canonical Result, a bare numeric array, an
// array of records, or an object carrying labels/values or a series list
// under any recognized alias.
func Normalize(raw any, kind domain.ChartKind) (*Result, error) {
	if raw == nil {
		return nil, errors.NewDataFormatError("normalize", "payload is nil", nil)
	}

	if res, ok := asCanonical(raw); ok {
		return res, nil
	}

	switch v := raw.(type) {
	case []any:
		return normalizeArray(v, kind)
	case map[string]any:
		return normalizeObject(v, kind)
	case *Result:
		return v, nil
	default:
		return nil, errors.NewDataFormatError("normalize",
			fmt.Sprintf("unsupported payload type %T", raw), nil)
	}
}

// asCanonical detects the normalizer's own output, either live or after a
// JSON round trip, so that normalization is idempotent.
func asCanonical(raw any) (*Result, bool) {
	if res, ok := raw.(*Result); ok {
		return res, true
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	rawSeries, ok := obj["series"].([]any)
	if !ok || len(rawSeries) == 0 {
		return nil, false
	}
	for _, s := range rawSeries {
		sm, ok := s.(map[string]any)
		if !ok {
			return nil, false
		}
		points, ok := sm["points"].([]any)
		if !ok {
			return nil, false
		}
		for _, p := range points {
			pm, ok := p.(map[string]any)
			if !ok {
				return nil, false
			}
			if _, ok := pm["kind"].(string); !ok {
				return nil, false
			}
		}
	}
	// Round-trip through JSON into the typed form.
	buf, err := json.Marshal(obj)
	if err != nil {
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(buf, &res); err != nil {
		return nil, false
	}
	return &res, true
}

func normalizeArray(items []any, kind domain.ChartKind) (*Result, error) {
	if len(items) == 0 {
		return nil, errors.NewDataFormatError("normalize", "payload array is empty", nil)
	}

	if _, ok := toFloat(items[0]); ok {
		return wrapNumericArray(items, kind)
	}

	if _, ok := items[0].(map[string]any); ok {
		return normalizeRecords(items, kind)
	}

	return nil, errors.NewDataFormatError("normalize",
		fmt.Sprintf("array elements of type %T are not chartable", items[0]), nil)
}

// wrapNumericArray wraps a bare numeric array into a single synthetic
// series with generated "Item i" labels.
func wrapNumericArray(items []any, kind domain.ChartKind) (*Result, error) {
	points := make([]domain.Point, 0, len(items))
	labels := make([]string, 0, len(items))
	for i, item := range items {
		v, ok := toFloat(item)
		if !ok {
			return nil, errors.NewDataFormatError("normalize",
				fmt.Sprintf("element %d is not numeric", i), nil)
		}
		points = append(points, domain.Scalar(v))
		labels = append(labels, fmt.Sprintf("Item %d", i+1))
	}
	return &Result{
		Series:     []domain.Series{{Name: "Series 1", Points: points}},
		Categories: labels,
	}, nil
}

func normalizeRecords(items []any, kind domain.ChartKind) (*Result, error) {
	switch {
	case kind.IsFinancial():
		return normalizeOHLCRecords(items)
	case kind == domain.KindSankey:
		return normalizeFlowRecords(items)
	case kind == domain.KindScatter || kind == domain.KindBubble:
		return normalizeXYRecords(items)
	default:
		return normalizeLabeledRecords(items)
	}
}

// normalizeOHLCRecords merges alias spellings into OHLC points. All four
// price fields are required semantically, but an absent one is coerced to
// numeric 0 rather than rejecting the point (lenient policy). The bar is
// sorted by resolved timestamp afterwards.
func normalizeOHLCRecords(items []any) (*Result, error) {
	res := &Result{}
	points := make([]domain.Point, 0, len(items))
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rawTime, ok := lookupAlias(record, timeAliases)
		if !ok {
			res.Dropped++
			continue
		}
		t, ok, flagged := parseTimestamp(rawTime)
		if !ok {
			res.Dropped++
			continue
		}
		if flagged {
			res.Flagged++
		}
		p := domain.OHLC(t,
			floatField(record, openAliases),
			floatField(record, highAliases),
			floatField(record, lowAliases),
			floatField(record, closeAliases),
		)
		if rawVol, ok := lookupAlias(record, volumeAliases); ok {
			if vol, ok := toFloat(rawVol); ok {
				p.Volume = &vol
			}
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		return nil, errors.NewDataFormatError("normalize", "no usable OHLC points", nil)
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})
	res.Series = []domain.Series{{Name: "Series 1", Points: points}}
	return res, nil
}

func normalizeFlowRecords(items []any) (*Result, error) {
	points := make([]domain.Point, 0, len(items))
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		src, okS := lookupAlias(record, sourceAliases)
		dst, okT := lookupAlias(record, targetAliases)
		if !okS || !okT {
			continue
		}
		value := 1.0
		if raw, ok := lookupAlias(record, weightAliases); ok {
			if v, ok := toFloat(raw); ok {
				value = v
			}
		}
		points = append(points, domain.FlowEdge(toString(src), toString(dst), value))
	}
	if len(points) == 0 {
		return nil, errors.NewDataFormatError("normalize", "no usable flow edges", nil)
	}
	return &Result{Series: []domain.Series{{Name: "Series 1", Points: points}}}, nil
}

func normalizeXYRecords(items []any) (*Result, error) {
	points := make([]domain.Point, 0, len(items))
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		x, okX := toFloat(record["x"])
		y, okY := toFloat(record["y"])
		if !okX || !okY {
			continue
		}
		points = append(points, domain.XY(x, y))
	}
	if len(points) == 0 {
		return nil, errors.NewDataFormatError("normalize", "no usable x/y points", nil)
	}
	return &Result{Series: []domain.Series{{Name: "Series 1", Points: points}}}, nil
}

// normalizeLabeledRecords handles {label, value} style records for both
// category kinds and axis kinds; every record contributes one category.
func normalizeLabeledRecords(items []any) (*Result, error) {
	points := make([]domain.Point, 0, len(items))
	labels := make([]string, 0, len(items))
	for i, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rawValue, ok := lookupAlias(record, valueAliases)
		if !ok {
			continue
		}
		v, ok := toFloat(rawValue)
		if !ok {
			continue
		}
		label := fmt.Sprintf("Item %d", i+1)
		if rawLabel, ok := lookupAlias(record, labelAliases); ok {
			label = toString(rawLabel)
		}
		points = append(points, domain.Scalar(v))
		labels = append(labels, label)
	}
	if len(points) == 0 {
		return nil, errors.NewDataFormatError("normalize", "no usable records", nil)
	}
	return &Result{
		Series:     []domain.Series{{Name: "Series 1", Points: points}},
		Categories: labels,
	}, nil
}

// normalizeObject handles the object envelopes the example files use:
// a series/datasets list, or parallel labels/values arrays.
func normalizeObject(obj map[string]any, kind domain.ChartKind) (*Result, error) {
	if rawSeries, ok := objectSeriesList(obj); ok {
		return normalizeSeriesList(rawSeries, obj, kind)
	}

	labels, okL := objectStringList(obj, "labels", "categories")
	values, okV := objectAnyList(obj, "values", "data")
	if okV {
		res, err := normalizeArray(values, kind)
		if err != nil {
			return nil, err
		}
		if okL && len(labels) == len(res.Series[0].Points) {
			res.Categories = labels
		}
		return res, nil
	}

	return nil, errors.NewDataFormatError("normalize", "object carries no recognizable chart data", nil)
}

func normalizeSeriesList(rawSeries []any, obj map[string]any, kind domain.ChartKind) (*Result, error) {
	res := &Result{}
	for i, raw := range rawSeries {
		sm, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		name := fmt.Sprintf("Series %d", i+1)
		if rawName, ok := lookupAlias(sm, labelAliases); ok {
			name = toString(rawName)
		}
		data, ok := objectAnyList(sm, "points", "data", "values")
		if !ok {
			continue
		}
		inner, err := normalizeArray(data, kind)
		if err != nil {
			return nil, err
		}
		series := inner.Series[0]
		series.Name = name
		if rawKind, ok := sm["kind"].(string); ok {
			series.Kind = domain.ChartKind(rawKind)
		} else if rawKind, ok := sm["type"].(string); ok {
			series.Kind = domain.ChartKind(rawKind)
		}
		res.Series = append(res.Series, series)
		res.Dropped += inner.Dropped
		res.Flagged += inner.Flagged
		if res.Categories == nil {
			res.Categories = inner.Categories
		}
	}
	if len(res.Series) == 0 {
		return nil, errors.NewDataFormatError("normalize", "series list holds no usable series", nil)
	}
	if labels, ok := objectStringList(obj, "labels", "categories"); ok {
		res.Categories = labels
	}
	if kind.IsCategorical() {
		if err := uniformCategoryCount(res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// uniformCategoryCount enforces one category per point for category kinds,
// reshaping multi-series category input onto a shared label axis.
func uniformCategoryCount(res *Result) error {
	want := len(res.Categories)
	for _, s := range res.Series {
		if want == 0 {
			want = len(s.Points)
			continue
		}
		if len(s.Points) != want {
			return errors.NewDataFormatError("normalize",
				fmt.Sprintf("series %q has %d points, category axis has %d", s.Name, len(s.Points), want), nil)
		}
	}
	if len(res.Categories) == 0 {
		res.Categories = make([]string, want)
		for i := range res.Categories {
			res.Categories[i] = fmt.Sprintf("Item %d", i+1)
		}
	}
	return nil
}

func objectSeriesList(obj map[string]any) ([]any, bool) {
	for _, key := range []string{"series", "datasets"} {
		if list, ok := obj[key].([]any); ok && len(list) > 0 {
			return list, true
		}
	}
	return nil, false
}

func objectAnyList(obj map[string]any, keys ...string) ([]any, bool) {
	for _, key := range keys {
		if list, ok := obj[key].([]any); ok && len(list) > 0 {
			return list, true
		}
	}
	return nil, false
}

func objectStringList(obj map[string]any, keys ...string) ([]string, bool) {
	list, ok := objectAnyList(obj, keys...)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, toString(item))
	}
	return out, true
}

// floatField resolves an aliased numeric field, coercing absence to 0
// (lenient policy for partial OHLC quads).
func floatField(record map[string]any, aliases []string) float64 {
	raw, ok := lookupAlias(record, aliases)
	if !ok {
		return 0
	}
	v, ok := toFloat(raw)
	if !ok {
		return 0
	}
	return v
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func toString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
