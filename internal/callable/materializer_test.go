package callable_test

import (
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartscout/internal/callable"
)

func newMaterializer() *callable.Materializer {
	return callable.New(slog.Default())
}

func TestMaterializeLegacyFunctionString(t *testing.T) {
	m := newMaterializer()

	tree := map[string]any{
		"tooltip": map[string]any{
			"formatter": "function(v){return v+1}",
		},
	}

	out, issues := m.Materialize(tree)
	require.Empty(t, issues)

	tooltip := out.(map[string]any)["tooltip"].(map[string]any)
	f, ok := tooltip["formatter"].(func(float64) float64)
	require.True(t, ok, "formatter should materialize to a callable, got %T", tooltip["formatter"])
	assert.Equal(t, 2.0, f(1))
}

func TestMaterializeArrowString(t *testing.T) {
	m := newMaterializer()

	out, issues := m.Materialize(map[string]any{"scale": "v => v * 2"})
	require.Empty(t, issues)

	f, ok := out.(map[string]any)["scale"].(func(float64) float64)
	require.True(t, ok)
	assert.Equal(t, 8.0, f(4))
}

func TestMaterializeGoLiteral(t *testing.T) {
	m := newMaterializer()

	out, issues := m.Materialize(map[string]any{
		"round": "func(v float64) float64 { return float64(int(v)) }",
	})
	require.Empty(t, issues)

	f, ok := out.(map[string]any)["round"].(func(float64) float64)
	require.True(t, ok)
	assert.Equal(t, 3.0, f(3.9))
}

func TestMaterializeMalformedLeafDropped(t *testing.T) {
	m := newMaterializer()

	tree := map[string]any{
		"title":     "Quarterly Revenue",
		"formatter": "function(v){return v+",
		"axis":      map[string]any{"label": "USD"},
	}

	out, issues := m.Materialize(tree)
	require.Len(t, issues, 1)
	assert.Equal(t, "formatter", issues[0].Path)

	result := out.(map[string]any)
	_, exists := result["formatter"]
	assert.False(t, exists, "broken leaf must be dropped, not handed to the engine")
	assert.Equal(t, "Quarterly Revenue", result["title"])
	assert.Equal(t, "USD", result["axis"].(map[string]any)["label"])
}

func TestMaterializePassesPlainStrings(t *testing.T) {
	m := newMaterializer()

	tree := map[string]any{
		"title":  "Sales by Region",
		"colors": []any{"#ff0000", "#00ff00"},
	}
	out, issues := m.Materialize(tree)
	require.Empty(t, issues)
	assert.Equal(t, tree, out)
}

func TestMaterializeRejectsDisallowedImport(t *testing.T) {
	m := newMaterializer()

	_, issues := m.Materialize(map[string]any{
		"hook": "func(v float64) float64 {\n\timport \"net/http\"\n\treturn v\n}",
	})
	require.Len(t, issues, 1)
}

func TestExtractKeepsTreeSerializable(t *testing.T) {
	m := newMaterializer()

	tree := map[string]any{
		"tooltip": map[string]any{"formatter": "function(v){return v*10}"},
		"title":   "T",
	}
	out, issues := m.Materialize(tree)
	require.Empty(t, issues)

	callbacks := callable.Extract(out)
	require.Len(t, callbacks, 1)
	f, ok := callbacks["tooltip.formatter"].(func(float64) float64)
	require.True(t, ok)
	assert.Equal(t, 50.0, f(5))

	// With the callables pulled out the remaining tree must marshal.
	_, err := json.Marshal(out)
	require.NoError(t, err)
}

func TestLooksLikeCallable(t *testing.T) {
	assert.True(t, callable.LooksLikeCallable("function(v){return v}"))
	assert.True(t, callable.LooksLikeCallable("v => v"))
	assert.True(t, callable.LooksLikeCallable("func(v float64) float64 { return v }"))
	assert.False(t, callable.LooksLikeCallable("Quarterly Revenue"))
	assert.False(t, callable.LooksLikeCallable("2024-01-01"))
}
