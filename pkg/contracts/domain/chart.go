package domain

import (
	"encoding/json"
	"sort"
	"time"
)

// ChartKind identifies the declared chart type and is the dispatch key for
// the adapter registry.
type ChartKind string

const (
	KindLine        ChartKind = "line"
	KindBar         ChartKind = "bar"
	KindPie         ChartKind = "pie"
	KindDonut       ChartKind = "donut"
	KindPolar       ChartKind = "polar"
	KindRadar       ChartKind = "radar"
	KindScatter     ChartKind = "scatter"
	KindBubble      ChartKind = "bubble"
	KindCandlestick ChartKind = "candlestick"
	KindOHLC        ChartKind = "ohlc"
	KindSankey      ChartKind = "sankey"
	KindMixed       ChartKind = "mixed"
	KindButterfly   ChartKind = "butterfly"
)

// IsCategorical reports whether the kind plots one value per category label.
func (k ChartKind) IsCategorical() bool {
	switch k {
	case KindPie, KindDonut, KindPolar, KindRadar:
		return true
	}
	return false
}

// IsFinancial reports whether the kind renders OHLC bars.
func (k ChartKind) IsFinancial() bool {
	return k == KindCandlestick || k == KindOHLC
}

// PointKind tags the variant carried by a Point.
type PointKind string

const (
	PointScalar PointKind = "scalar"
	PointXY     PointKind = "xy"
	PointOHLC   PointKind = "ohlc"
	PointFlow   PointKind = "flow"
)

// Point is a tagged union over the point variants a series may carry.
// Exactly the fields belonging to Kind are meaningful; the rest stay zero.
type Point struct {
	Kind PointKind `json:"kind"`

	// PointScalar
	Value float64 `json:"value,omitempty"`

	// PointXY
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`

	// PointOHLC
	Time   time.Time `json:"time,omitempty"`
	Open   float64   `json:"open,omitempty"`
	High   float64   `json:"high,omitempty"`
	Low    float64   `json:"low,omitempty"`
	Close  float64   `json:"close,omitempty"`
	Volume *float64  `json:"volume,omitempty"`

	// PointFlow
	Source string  `json:"source,omitempty"`
	Target string  `json:"target,omitempty"`
	Flow   float64 `json:"flow,omitempty"`
}

// Scalar builds a scalar point.
func Scalar(v float64) Point {
	return Point{Kind: PointScalar, Value: v}
}

// XY builds a two-dimensional point.
func XY(x, y float64) Point {
	return Point{Kind: PointXY, X: x, Y: y}
}

// OHLC builds a financial bar point.
func OHLC(t time.Time, o, h, l, c float64) Point {
	return Point{Kind: PointOHLC, Time: t, Open: o, High: h, Low: l, Close: c}
}

// FlowEdge builds a flow-graph edge point.
func FlowEdge(source, target string, value float64) Point {
	return Point{Kind: PointFlow, Source: source, Target: target, Flow: value}
}

// Series is a named sequence of points, homogeneous in point variant for
// every non-mixed chart kind.
type Series struct {
	Name   string    `json:"name"`
	Kind   ChartKind `json:"kind,omitempty"`
	Points []Point   `json:"points"`
}

// Homogeneous reports whether every point in the series carries the same
// variant tag.
func (s Series) Homogeneous() bool {
	if len(s.Points) < 2 {
		return true
	}
	first := s.Points[0].Kind
	for _, p := range s.Points[1:] {
		if p.Kind != first {
			return false
		}
	}
	return true
}

// AxisConfig carries the axis hints derived during normalization.
type AxisConfig struct {
	TimeUnit TimeUnit `json:"time_unit,omitempty"`
	XLabel   string   `json:"x_label,omitempty"`
	YLabel   string   `json:"y_label,omitempty"`
	Mirrored bool     `json:"mirrored,omitempty"`
}

// ChartSpec is the canonical, engine-ready chart description. It is handed
// to the rendering engine by reference and never mutated after hand-off.
type ChartSpec struct {
	Kind       ChartKind      `json:"kind" validate:"required"`
	Title      string         `json:"title,omitempty"`
	Series     []Series       `json:"series" validate:"required,min=1"`
	Categories []string       `json:"categories,omitempty"`
	Axes       *AxisConfig    `json:"axes,omitempty"`
	Options    map[string]any `json:"options,omitempty"`

	// Callbacks maps a dotted option path (for example
	// "tooltip.formatter") to a materialized callable. Callables never
	// survive JSON round-trips; they exist only on the live spec.
	Callbacks map[string]any `json:"-"`
}

// MarshalJSON keeps callable paths visible to the engine payload without
// attempting to serialize the functions themselves.
func (s *ChartSpec) MarshalJSON() ([]byte, error) {
	type alias ChartSpec
	out := struct {
		*alias
		CallbackPaths []string `json:"callback_paths,omitempty"`
	}{alias: (*alias)(s)}
	for path := range s.Callbacks {
		out.CallbackPaths = append(out.CallbackPaths, path)
	}
	sort.Strings(out.CallbackPaths)
	return json.Marshal(out)
}

// TimeUnit is the display granularity for a time axis.
type TimeUnit string

const (
	UnitSecond TimeUnit = "second"
	UnitMinute TimeUnit = "minute"
	UnitHour   TimeUnit = "hour"
	UnitDay    TimeUnit = "day"
	UnitWeek   TimeUnit = "week"
	UnitMonth  TimeUnit = "month"
	UnitYear   TimeUnit = "year"
)
