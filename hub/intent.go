package hub

import (
	"encoding/json"
	"fmt"

	"github.com/lmmx/roundel/resolver"
)

// Intent types accepted from clients.
const (
	IntentDragStart  = "dragStart"
	IntentDragMove   = "dragMove"
	IntentDragEnd    = "dragEnd"
	IntentWheel      = "wheel"
	IntentClick      = "click"
	IntentPinchStart = "pinchStart"
	IntentPinchMove  = "pinchMove"
	IntentPause      = "pause"
	IntentToggle     = "toggle"
	IntentInterval   = "interval"
	IntentSource     = "source"
	IntentFollow     = "follow"
	IntentResize     = "resize"
)

// Intent is one input event from a client.
type Intent struct {
	Type    string  `json:"type"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Delta   float64 `json:"delta,omitempty"`
	Dist    float64 `json:"dist,omitempty"`
	Paused  *bool   `json:"paused,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
	MS      int     `json:"ms,omitempty"`
	Mode    string  `json:"mode,omitempty"`
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
}

// Reply answers an intent.
type Reply struct {
	Type   string `json:"type"`
	Intent string `json:"intent"`
	OK     bool   `json:"ok"`
	Index  *int   `json:"index,omitempty"`
	Paused *bool  `json:"paused,omitempty"`
	Follow *bool  `json:"follow,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Target receives decoded intents.
type Target interface {
	DragStart(x, y float64)
	DragMove(x, y float64)
	DragEnd()
	Zoom(wheelDelta float64)
	PinchStart(dist float64)
	PinchMove(dist float64)
	PickVehicle(x, y float64) (int, bool)
	SetPaused(paused bool) bool
	TogglePaused() bool
	SetTickInterval(ms int)
	SetDataSource(mode resolver.Mode) error
	SetFollow(on bool) bool
	Resize(width, height float64)
}

// DecodeIntent parses one client message.
func DecodeIntent(data []byte) (Intent, error) {
	var in Intent
	if err := json.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("invalid intent: %w", err)
	}
	if in.Type == "" {
		return in, fmt.Errorf("intent has no type")
	}
	return in, nil
}

// Dispatch applies an intent to t. Fire-and-forget intents return a nil
// reply.
func Dispatch(t Target, in Intent) (*Reply, error) {
	switch in.Type {
	case IntentDragStart:
		t.DragStart(in.X, in.Y)
	case IntentDragMove:
		t.DragMove(in.X, in.Y)
	case IntentDragEnd:
		t.DragEnd()
	case IntentWheel:
		t.Zoom(in.Delta)
	case IntentPinchStart:
		t.PinchStart(in.Dist)
	case IntentPinchMove:
		t.PinchMove(in.Dist)
	case IntentResize:
		if in.Width <= 0 || in.Height <= 0 {
			return nil, fmt.Errorf("resize needs positive width and height")
		}
		t.Resize(in.Width, in.Height)
	case IntentClick:
		idx, ok := t.PickVehicle(in.X, in.Y)
		r := &Reply{OK: ok}
		if ok {
			r.Index = &idx
		}
		return r, nil
	case IntentPause:
		if in.Paused == nil {
			return nil, fmt.Errorf("pause needs a paused field")
		}
		p := t.SetPaused(*in.Paused)
		return &Reply{OK: true, Paused: &p}, nil
	case IntentToggle:
		p := t.TogglePaused()
		return &Reply{OK: true, Paused: &p}, nil
	case IntentInterval:
		if in.MS <= 0 {
			return nil, fmt.Errorf("interval needs a positive ms")
		}
		t.SetTickInterval(in.MS)
	case IntentSource:
		mode, err := resolver.ParseMode(in.Mode)
		if err != nil {
			return nil, err
		}
		if err := t.SetDataSource(mode); err != nil {
			return nil, err
		}
		return &Reply{OK: true}, nil
	case IntentFollow:
		if in.Enabled == nil {
			return nil, fmt.Errorf("follow needs an enabled field")
		}
		f := t.SetFollow(*in.Enabled)
		return &Reply{OK: f == *in.Enabled, Follow: &f}, nil
	default:
		return nil, fmt.Errorf("unknown intent %q", in.Type)
	}
	return nil, nil
}
