package testutil

// Chart payload fixtures shaped like the loosely typed JSON documents
// the pipeline ingests.

// CandlestickRecords returns n daily OHLC records starting 2024-01-01.
func CandlestickRecords(n int) []any {
	out := make([]any, 0, n)
	price := 100.0
	for i := 0; i < n; i++ {
		out = append(out, map[string]any{
			"date": dayString(i),
			"o":    price,
			"h":    price + 4,
			"l":    price - 2,
			"c":    price + 2,
			"v":    1000.0 + float64(i*10),
		})
		price += 2
	}
	return out
}

// LabeledRecords returns label/value records.
func LabeledRecords(labels []string, values []float64) []any {
	out := make([]any, 0, len(labels))
	for i, l := range labels {
		out = append(out, map[string]any{"label": l, "value": values[i]})
	}
	return out
}

// FlowRecords returns source/target/value flow edges.
func FlowRecords() map[string]any {
	return map[string]any{
		"nodes": []any{
			map[string]any{"name": "A"},
			map[string]any{"name": "B"},
			map[string]any{"name": "C"},
		},
		"links": []any{
			map[string]any{"source": "A", "target": "B", "value": 5.0},
			map[string]any{"source": "B", "target": "C", "value": 3.0},
		},
	}
}

func dayString(offset int) string {
	day := 1 + offset
	return "2024-01-" + pad2(day)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + string(rune('0'+n))
	}
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}
