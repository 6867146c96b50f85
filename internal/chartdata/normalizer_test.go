package chartdata_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartscout/internal/chartdata"
	"chartscout/internal/errors"
	"chartscout/pkg/contracts/domain"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestNormalizeCandlestickRecords(t *testing.T) {
	raw := decode(t, `[
		{"o":10,"h":12,"l":9,"c":11,"date":"2024-01-01"},
		{"o":11,"h":13,"l":10,"c":12,"date":"2024-01-02"}
	]`)

	res, err := chartdata.Normalize(raw, domain.KindCandlestick)
	require.NoError(t, err)
	require.Len(t, res.Series, 1)
	require.Len(t, res.Series[0].Points, 2)

	first := res.Series[0].Points[0]
	assert.Equal(t, domain.PointOHLC, first.Kind)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), first.Time)
	assert.Equal(t, 10.0, first.Open)
	assert.Equal(t, 12.0, first.High)
	assert.Equal(t, 9.0, first.Low)
	assert.Equal(t, 11.0, first.Close)

	second := res.Series[0].Points[1]
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), second.Time)

	unit := chartdata.InferUnit(chartdata.SeriesTimes(res.Series[0]))
	assert.Equal(t, domain.UnitDay, unit)
}

func TestNormalizeTimestampAliasEquivalence(t *testing.T) {
	aliases := []string{"t", "time", "timestamp", "date", "datetime"}

	var want domain.Point
	for i, alias := range aliases {
		raw := decode(t, `[{"o":1,"h":2,"l":0.5,"c":1.5,"`+alias+`":"2024-03-15"}]`)
		res, err := chartdata.Normalize(raw, domain.KindOHLC)
		require.NoError(t, err, "alias %q", alias)
		require.Len(t, res.Series[0].Points, 1)
		got := res.Series[0].Points[0]
		if i == 0 {
			want = got
			continue
		}
		assert.Equal(t, want, got, "alias %q should normalize identically", alias)
	}
}

func TestNormalizeOHLCMissingFieldZeroFilled(t *testing.T) {
	raw := decode(t, `[{"open":10,"high":12,"close":11,"date":"2024-01-01"}]`)

	res, err := chartdata.Normalize(raw, domain.KindCandlestick)
	require.NoError(t, err)
	p := res.Series[0].Points[0]
	assert.Equal(t, 0.0, p.Low)
	assert.Equal(t, 10.0, p.Open)
}

func TestNormalizeOHLCDropAndFlag(t *testing.T) {
	raw := decode(t, `[
		{"o":1,"h":2,"l":1,"c":2,"date":"2024-01-01"},
		{"o":1,"h":2,"l":1,"c":2,"date":true},
		{"o":1,"h":2,"l":1,"c":2,"date":"not a date at all"}
	]`)

	res, err := chartdata.Normalize(raw, domain.KindCandlestick)
	require.NoError(t, err)
	assert.Len(t, res.Series[0].Points, 2, "boolean timestamp should drop the point")
	assert.Equal(t, 1, res.Dropped)
	assert.Equal(t, 1, res.Flagged, "garbage string should fall back to now and be flagged")
}

func TestNormalizeBareNumericArray(t *testing.T) {
	raw := decode(t, `[5,10,15]`)

	res, err := chartdata.Normalize(raw, domain.KindBar)
	require.NoError(t, err)
	require.Len(t, res.Series, 1)
	assert.Equal(t, "Series 1", res.Series[0].Name)
	require.Len(t, res.Series[0].Points, 3)
	assert.Equal(t, []string{"Item 1", "Item 2", "Item 3"}, res.Categories)
	for i, want := range []float64{5, 10, 15} {
		p := res.Series[0].Points[i]
		assert.Equal(t, domain.PointScalar, p.Kind)
		assert.Equal(t, want, p.Value)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := decode(t, `[
		{"o":10,"h":12,"l":9,"c":11,"date":"2024-01-01"},
		{"o":11,"h":13,"l":10,"c":12,"date":"2024-01-02"}
	]`)
	first, err := chartdata.Normalize(raw, domain.KindCandlestick)
	require.NoError(t, err)

	// Round-trip the canonical form through JSON the way a cached
	// payload would arrive, then normalize again.
	buf, err := json.Marshal(first)
	require.NoError(t, err)
	second, err := chartdata.Normalize(decode(t, string(buf)), domain.KindCandlestick)
	require.NoError(t, err)

	assert.Equal(t, first.Series, second.Series)
	assert.Equal(t, first.Categories, second.Categories)
}

func TestNormalizeLabeledRecords(t *testing.T) {
	raw := decode(t, `[
		{"label":"Rent","value":1200},
		{"name":"Food","val":400},
		{"category":"Travel","y":250}
	]`)

	res, err := chartdata.Normalize(raw, domain.KindPie)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rent", "Food", "Travel"}, res.Categories)
	assert.Equal(t, 1200.0, res.Series[0].Points[0].Value)
	assert.Equal(t, 400.0, res.Series[0].Points[1].Value)
}

func TestNormalizeObjectEnvelope(t *testing.T) {
	raw := decode(t, `{
		"labels": ["Q1","Q2","Q3"],
		"series": [
			{"name":"Revenue","data":[10,20,30]},
			{"name":"Cost","data":[5,8,13]}
		]
	}`)

	res, err := chartdata.Normalize(raw, domain.KindBar)
	require.NoError(t, err)
	require.Len(t, res.Series, 2)
	assert.Equal(t, "Revenue", res.Series[0].Name)
	assert.Equal(t, "Cost", res.Series[1].Name)
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, res.Categories)
}

func TestNormalizeCategoricalCountMismatch(t *testing.T) {
	raw := decode(t, `{
		"labels": ["A","B"],
		"series": [{"name":"S","data":[1,2,3]}]
	}`)

	_, err := chartdata.Normalize(raw, domain.KindRadar)
	require.Error(t, err)
	assert.True(t, errors.IsDataFormat(err))
}

func TestNormalizeFlowRecords(t *testing.T) {
	raw := decode(t, `[
		{"source":"a","target":"b","value":5},
		{"from":"b","to":"c","weight":2},
		{"source":"c","target":"d"}
	]`)

	res, err := chartdata.Normalize(raw, domain.KindSankey)
	require.NoError(t, err)
	points := res.Series[0].Points
	require.Len(t, points, 3)
	assert.Equal(t, 5.0, points[0].Flow)
	assert.Equal(t, 2.0, points[1].Flow, "weight alias should back value")
	assert.Equal(t, 1.0, points[2].Flow, "missing value defaults to 1")
}

func TestNormalizeRejectsEmptyAndNil(t *testing.T) {
	_, err := chartdata.Normalize(nil, domain.KindLine)
	require.Error(t, err)
	assert.True(t, errors.IsDataFormat(err))

	_, err = chartdata.Normalize(decode(t, `[]`), domain.KindLine)
	require.Error(t, err)

	_, err = chartdata.Normalize(decode(t, `["a","b"]`), domain.KindLine)
	require.Error(t, err)
}
