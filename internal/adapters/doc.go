// Package adapters maps a declared chart kind to the capability triple that
// prepares data for the rendering engine.
//
// Each Adapter validates a loosely typed payload for its kind, transforms
// it into a canonical ChartSpec and contributes kind-specific engine
// options. Dispatch is a flat registry lookup; unknown kinds resolve to a
// default adapter that performs only shape coercion with no domain
// validation, so an unrecognized kind degrades rather than fails.
package adapters
