package callable

import (
	"fmt"
	"log/slog"
	"reflect"
	"regexp"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"chartscout/internal/errors"
)

var (
	jsFunctionPattern = regexp.MustCompile(`^function\s*\(([^)]*)\)\s*\{([\s\S]*)\}$`)
	arrowPattern      = regexp.MustCompile(`^\(?([\w\s,]*?)\)?\s*=>\s*([\s\S]+)$`)
)

// Materializer turns function-literal strings inside a spec tree into live
// callables. Each evaluation runs in a fresh interpreter restricted to an
// allow-listed slice of the standard library.
type Materializer struct {
	logger         *slog.Logger
	allowedImports map[string]bool
}

// New creates a Materializer with the default import allow-list.
func New(logger *slog.Logger) *Materializer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Materializer{
		logger: logger.With(slog.String("component", "callable.materializer")),
		allowedImports: map[string]bool{
			"fmt":     true,
			"math":    true,
			"strconv": true,
			"strings": true,
			"time":    true,
			// Blocked deliberately: os, os/exec, net, net/http,
			// syscall, unsafe, io.
		},
	}
}

// Materialize walks the tree and binds a live callable into every position
// whose string value looks like a function literal. Non-matching strings
// pass through untouched. A leaf whose evaluation fails is dropped (a map
// key is removed, a list element becomes nil) and reported; the rest of
// the tree is returned intact.
func (m *Materializer) Materialize(spec any) (any, []*errors.DeserializationError) {
	var issues []*errors.DeserializationError
	out := m.walk(spec, "", &issues)
	return out, issues
}

func (m *Materializer) walk(node any, path string, issues *[]*errors.DeserializationError) any {
	switch v := node.(type) {
	case map[string]any:
		for key, child := range v {
			childPath := key
			if path != "" {
				childPath = path + "." + key
			}
			if s, ok := child.(string); ok && LooksLikeCallable(s) {
				fn, err := m.evaluate(s)
				if err != nil {
					delete(v, key)
					m.report(childPath, err, issues)
					continue
				}
				v[key] = fn
				continue
			}
			v[key] = m.walk(child, childPath, issues)
		}
		return v
	case []any:
		for i, child := range v {
			childPath := fmt.Sprintf("%s[%d]", path, i)
			if s, ok := child.(string); ok && LooksLikeCallable(s) {
				fn, err := m.evaluate(s)
				if err != nil {
					v[i] = nil
					m.report(childPath, err, issues)
					continue
				}
				v[i] = fn
				continue
			}
			v[i] = m.walk(child, childPath, issues)
		}
		return v
	default:
		return node
	}
}

func (m *Materializer) report(path string, err error, issues *[]*errors.DeserializationError) {
	issue := &errors.DeserializationError{Path: path, Err: err}
	*issues = append(*issues, issue)
	m.logger.Warn("callable_dropped",
		slog.String("path", path),
		slog.String("error", err.Error()))
}

// LooksLikeCallable is the matching heuristic: the string starts with a
// function-declaration token or contains an arrow token sequence.
func LooksLikeCallable(s string) bool {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "func(") || strings.HasPrefix(trimmed, "func (") {
		return true
	}
	if strings.HasPrefix(trimmed, "function") {
		return true
	}
	return strings.Contains(trimmed, "=>")
}

// evaluate repairs the expression into Go source and runs it through the
// interpreter, returning the resulting function value.
func (m *Materializer) evaluate(expr string) (any, error) {
	src, err := m.repair(expr)
	if err != nil {
		return nil, err
	}
	if err := m.validateImports(src); err != nil {
		return nil, err
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("loading interpreter symbols: %w", err)
	}

	// Parenthesize so the literal is evaluated as an expression; yaegi's
	// Eval of a bare function literal yields an empty *interface{}.
	v, err := i.Eval("(" + src + ")")
	if err != nil {
		return nil, fmt.Errorf("evaluating expression: %w", err)
	}
	// The interpreter hands function literals back behind a pointer.
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if v.Kind() != reflect.Func {
		return nil, fmt.Errorf("expression evaluated to %s, not a function", v.Kind())
	}
	return v.Interface(), nil
}

// repair rewrites the accepted spellings into a Go function literal.
// Legacy documents carry JavaScript-style formatters; the common
// single-expression shapes translate mechanically to Go with float64
// parameters. Anything the rewrite cannot express fails evaluation and is
// dropped by the caller.
func (m *Materializer) repair(expr string) (string, error) {
	trimmed := strings.TrimSpace(expr)

	if strings.HasPrefix(trimmed, "func(") || strings.HasPrefix(trimmed, "func (") {
		return trimmed, nil
	}

	if match := jsFunctionPattern.FindStringSubmatch(trimmed); match != nil {
		return buildFuncSource(match[1], match[2])
	}

	if match := arrowPattern.FindStringSubmatch(trimmed); match != nil {
		body := strings.TrimSpace(match[2])
		if strings.HasPrefix(body, "{") && strings.HasSuffix(body, "}") {
			return buildFuncSource(match[1], body[1:len(body)-1])
		}
		return buildFuncSource(match[1], "return "+body)
	}

	return "", fmt.Errorf("unrecognized callable syntax")
}

func buildFuncSource(params, body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", fmt.Errorf("callable body is empty")
	}

	var names []string
	for _, p := range strings.Split(params, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		names = append(names, p)
	}

	sig := ""
	if len(names) > 0 {
		sig = strings.Join(names, ", ") + " float64"
	}
	return fmt.Sprintf("func(%s) float64 { %s }", sig, body), nil
}

// validateImports rejects source that pulls in packages outside the
// allow-list. Formatter bodies normally import nothing; this is the
// backstop for hand-written Go literals in uploaded documents.
func (m *Materializer) validateImports(src string) error {
	if !strings.Contains(src, "import") {
		return nil
	}
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "import") && !strings.HasPrefix(trimmed, `"`) {
			continue
		}
		pkg := strings.Trim(strings.TrimPrefix(trimmed, "import"), " \t\"()")
		if pkg == "" {
			continue
		}
		if !m.allowedImports[pkg] {
			return fmt.Errorf("import %q is not allowed", pkg)
		}
	}
	return nil
}

// Extract removes materialized callables from the tree so the remainder
// stays JSON-serializable, returning them keyed by dotted path. The engine
// payload carries the paths; the callables live only on the ChartSpec.
func Extract(tree any) map[string]any {
	out := make(map[string]any)
	extractInto(tree, "", out)
	if len(out) == 0 {
		return nil
	}
	return out
}

func extractInto(node any, path string, out map[string]any) {
	switch v := node.(type) {
	case map[string]any:
		for key, child := range v {
			childPath := key
			if path != "" {
				childPath = path + "." + key
			}
			if isFunc(child) {
				out[childPath] = child
				delete(v, key)
				continue
			}
			extractInto(child, childPath, out)
		}
	case []any:
		for i, child := range v {
			childPath := fmt.Sprintf("%s[%d]", path, i)
			if isFunc(child) {
				out[childPath] = child
				v[i] = nil
				continue
			}
			extractInto(child, childPath, out)
		}
	}
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}
