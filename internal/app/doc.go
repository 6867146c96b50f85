// Package app assembles the service: configuration, logging, tracing,
// the WebSocket hub, the render pipeline and the HTTP server, with
// graceful shutdown tying them together.
package app
