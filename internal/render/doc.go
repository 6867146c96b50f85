// Package render owns the live rendering-engine instances bound to display
// surfaces.
//
// The central resource-safety invariant of the whole subsystem lives here:
// at most one live binding exists per surface id, and a new engine
// instance is never constructed while an old binding is still registered.
// Destruction is best-effort and itself fault-tolerant, so a failed
// teardown can never block future renders to that surface. A monotonically
// increasing request token per surface makes concurrent renders
// last-request-wins: a stale bind is refused instead of overwriting a
// newer binding.
package render
