// Package ws carries engine payloads and pipeline diagnostics to connected
// browsers over WebSocket.
//
// The hub fans messages out to every connected client; each message names
// the surface it targets, so a page subscribes once and routes locally.
// The hub also backs the production rendering engine: creating an engine
// instance pushes a render message for the surface, updating pushes an
// update, destroying pushes a destroy so the page clears the canvas and
// unbinds listeners.
package ws
