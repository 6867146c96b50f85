// Package store provides the data-source layer: an HTTP client for the
// remote example/upload store and a local store serving bundled example
// datasets.
//
// Remote failures are distinguished by HTTP status versus body-level error
// fields; both normalize into a DataFormatError so the orchestrator can
// walk its fallback plan without caring which one occurred. Concurrent
// fetches of the same document are deduplicated.
package store
