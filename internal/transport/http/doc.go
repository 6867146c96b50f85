// Package http exposes the render pipeline over HTTP: render requests,
// example listing, surface lifecycle and health, all routed through chi
// with request-scoped structured logging.
package http
