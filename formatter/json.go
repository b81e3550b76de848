package formatter

import (
	"encoding/json"

	"github.com/lmmx/roundel/render"
)

type responseBuilder struct{}

// NewResponseBuilder creates a new response builder
func NewResponseBuilder() *responseBuilder {
	return &responseBuilder{}
}

// BuildJSON serializes a vehicle snapshot to JSON
func (rb *responseBuilder) BuildJSON(res *Response) []byte {
	b, _ := json.Marshal(res)
	return b
}

// FrameMessage is the envelope frames travel in over the socket.
type FrameMessage struct {
	Type  string        `json:"type"`
	Frame *render.Frame `json:"frame"`
}

// BuildFrameJSON serializes a render frame inside a {"type":"frame"}
// envelope.
func BuildFrameJSON(f *render.Frame) ([]byte, error) {
	return json.Marshal(FrameMessage{Type: "frame", Frame: f})
}
