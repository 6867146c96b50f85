// Package pipeline orchestrates a render request end to end.
//
// Each request walks a fixed state machine: FETCHING, VALIDATING,
// RENDERING, DONE. An error in any of the first three states moves the
// request to the next candidate in its fallback plan; when the plan is
// exhausted the request terminates in DEFAULTED with a synthetic dataset,
// so a surface never renders empty and no failure escapes to the caller
// as an exception. Retries are bounded by the plan length; there is no
// unbounded retry loop.
//
// Every transition emits a structured diagnostic carrying the stage, chart
// kind, surface and cause. Diagnostics are logged, attached to the render
// outcome and offered to the diagnostics stream; none is silently
// swallowed.
package pipeline
