package ws

import (
	"encoding/json"
	"time"
)

// Message event types consumed by the frontend.
const (
	TypeRender     = "chart:render"
	TypeUpdate     = "chart:update"
	TypeDestroy    = "chart:destroy"
	TypeDiagnostic = "pipeline:diagnostic"
)

// Message is the envelope pushed to clients.
type Message struct {
	Type      string    `json:"type"`
	SurfaceID string    `json:"surface_id,omitempty"`
	Payload   any       `json:"payload,omitempty"`
	Time      time.Time `json:"time"`
}

// Encode marshals the message for the wire.
func (m Message) Encode() ([]byte, error) {
	if m.Time.IsZero() {
		m.Time = time.Now().UTC()
	}
	return json.Marshal(m)
}
