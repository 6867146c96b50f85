// Package callable materializes serialized callback expressions into live
// functions.
//
// Declarative chart documents are JSON, but certain configuration leaves
// (axis-label formatters, tooltip templates) are inherently executable, so
// deserialization cannot be a plain decode. This package walks a decoded
// spec tree, detects string values that look like function literals,
// repairs the legacy spellings into Go source and evaluates them in a
// sandboxed interpreter. It is a controlled, best-effort materialization
// step, not a general eval sandbox: a leaf that fails to evaluate is
// dropped and reported so a broken formatter can never reach the engine.
package callable
