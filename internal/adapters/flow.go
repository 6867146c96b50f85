package adapters

import (
	"chartscout/internal/errors"
	"chartscout/pkg/contracts/domain"
)

// FlowAdapter serves sankey-style flow graphs. The payload must carry a
// node list and an edge list; edge values come from an explicit "value"
// field, falling back to a "weight" alias, falling back to 1.
type FlowAdapter struct{}

// NewFlowAdapter creates the sankey adapter.
func NewFlowAdapter() *FlowAdapter { return &FlowAdapter{} }

func (a *FlowAdapter) Kind() domain.ChartKind { return domain.KindSankey }

func (a *FlowAdapter) Validate(data any) bool {
	obj, ok := data.(map[string]any)
	if !ok {
		return false
	}
	nodes, okN := flowList(obj, "nodes")
	edges, okE := flowList(obj, "links", "edges")
	return okN && okE && len(nodes) > 0 && len(edges) > 0
}

func (a *FlowAdapter) Transform(data any) (*domain.ChartSpec, []string, error) {
	obj, ok := data.(map[string]any)
	if !ok {
		return nil, nil, errors.NewDataFormatError("flow", "payload is not an object", nil)
	}
	rawNodes, _ := flowList(obj, "nodes")
	rawEdges, ok := flowList(obj, "links", "edges")
	if !ok {
		return nil, nil, errors.NewDataFormatError("flow", "payload carries no edge list", nil)
	}

	var warnings []string
	points := make([]domain.Point, 0, len(rawEdges))
	for _, raw := range rawEdges {
		edge, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		src, okS := edgeString(edge, "source", "from")
		dst, okT := edgeString(edge, "target", "to")
		if !okS || !okT {
			warnings = append(warnings, "edge without source/target skipped")
			continue
		}
		points = append(points, domain.FlowEdge(src, dst, edgeValue(edge)))
	}
	if len(points) == 0 {
		return nil, nil, errors.NewDataFormatError("flow", "no usable edges", nil)
	}

	nodes := make([]string, 0, len(rawNodes))
	for _, raw := range rawNodes {
		switch n := raw.(type) {
		case string:
			nodes = append(nodes, n)
		case map[string]any:
			if name, ok := edgeString(n, "name", "id", "label"); ok {
				nodes = append(nodes, name)
			}
		}
	}

	return &domain.ChartSpec{
		Kind:       domain.KindSankey,
		Series:     []domain.Series{{Name: "Flow", Points: points}},
		Categories: nodes,
	}, warnings, nil
}

func (a *FlowAdapter) Configure() EngineOptions {
	return EngineOptions{
		"responsive": true,
		"layout":     "none",
		"nodeAlign":  "justify",
	}
}

// edgeValue resolves the flow weight: value, then weight, then 1.
func edgeValue(edge map[string]any) float64 {
	for _, key := range []string{"value", "weight"} {
		if raw, ok := edge[key]; ok {
			if v, ok := raw.(float64); ok {
				return v
			}
			if v, ok := raw.(int); ok {
				return float64(v)
			}
		}
	}
	return 1
}

func edgeString(m map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := m[key].(string); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func flowList(obj map[string]any, keys ...string) ([]any, bool) {
	for _, key := range keys {
		if list, ok := obj[key].([]any); ok {
			return list, true
		}
	}
	return nil, false
}
