package camera

import (
	"sync"

	"github.com/paulmach/orb"
	"github.com/samber/lo"
)

const (
	zoomInFactor  = 1.1
	zoomOutFactor = 0.9
)

// Limits bounds the zoom and sets the pick radius.
type Limits struct {
	ScaleMin    float64
	ScaleMax    float64
	ThresholdPx float64
}

// DefaultLimits returns scale in [0.1, 50] and a 10px pick radius.
func DefaultLimits() Limits {
	return Limits{ScaleMin: 0.1, ScaleMax: 50, ThresholdPx: 10}
}

// State is a copy of the camera for readers outside the lock.
type State struct {
	Pan      orb.Point `json:"pan"`
	Scale    float64   `json:"scale"`
	Selected int       `json:"selected"`
	HasPick  bool      `json:"hasSelection"`
	Follow   bool      `json:"follow"`
	Viewport orb.Point `json:"viewport"`
	Dragging bool      `json:"dragging"`
}

// WorldToScreen applies this state's transform.
func (s State) WorldToScreen(p orb.Point) orb.Point {
	return orb.Point{(p[0] - s.Pan[0]) * s.Scale, (p[1] - s.Pan[1]) * s.Scale}
}

// ScreenToWorld is the inverse of WorldToScreen.
func (s State) ScreenToWorld(p orb.Point) orb.Point {
	return orb.Point{p[0]/s.Scale + s.Pan[0], p[1]/s.Scale + s.Pan[1]}
}

// Camera is the view transform. All methods are safe for concurrent use.
type Camera struct {
	mu     sync.Mutex
	limits Limits

	pan      orb.Point
	scale    float64
	selected int
	hasPick  bool
	follow   bool
	viewport orb.Point

	dragging  bool
	last      orb.Point
	pinchDist float64
}

// New returns a camera at the origin with scale 1.
func New(limits Limits, width, height float64) *Camera {
	return &Camera{
		limits:   limits,
		scale:    lo.Clamp(1.0, limits.ScaleMin, limits.ScaleMax),
		viewport: orb.Point{width, height},
	}
}

// State returns a snapshot of the camera.
func (c *Camera) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state()
}

func (c *Camera) state() State {
	return State{
		Pan:      c.pan,
		Scale:    c.scale,
		Selected: c.selected,
		HasPick:  c.hasPick,
		Follow:   c.follow,
		Viewport: c.viewport,
		Dragging: c.dragging,
	}
}

func (c *Camera) WorldToScreen(p orb.Point) orb.Point {
	return c.State().WorldToScreen(p)
}

func (c *Camera) ScreenToWorld(p orb.Point) orb.Point {
	return c.State().ScreenToWorld(p)
}

// SetView sets pan and scale directly. Scale is clamped.
func (c *Camera) SetView(pan orb.Point, scale float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pan = pan
	c.scale = c.clamp(scale)
}

// Resize records a new viewport size in pixels.
func (c *Camera) Resize(width, height float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport = orb.Point{width, height}
}

func (c *Camera) clamp(s float64) float64 {
	return lo.Clamp(s, c.limits.ScaleMin, c.limits.ScaleMax)
}

// Pan moves the view by a screen-space delta. Dragging right moves the world
// right, so pan decreases.
func (c *Camera) Pan(dx, dy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panBy(dx, dy)
}

func (c *Camera) panBy(dx, dy float64) {
	c.pan[0] -= dx / c.scale
	c.pan[1] -= dy / c.scale
}

func (c *Camera) DragStart(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = true
	c.last = orb.Point{x, y}
}

// DragMove pans by the distance moved since the last drag event. It does
// nothing unless a drag is in progress.
func (c *Camera) DragMove(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dragging {
		return
	}
	c.panBy(x-c.last[0], y-c.last[1])
	c.last = orb.Point{x, y}
}

func (c *Camera) DragEnd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = false
}

func (c *Camera) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragging
}

// Zoom applies one wheel step: negative delta zooms in, anything else out.
func (c *Camera) Zoom(wheelDelta float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if wheelDelta < 0 {
		c.scale = c.clamp(c.scale * zoomInFactor)
	} else {
		c.scale = c.clamp(c.scale * zoomOutFactor)
	}
	return c.scale
}

// PinchStart records the distance between two touch points.
func (c *Camera) PinchStart(dist float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pinchDist = dist
}

// PinchMove scales by the ratio of the new finger distance to the previous
// one. A move without a valid previous distance only records dist.
func (c *Camera) PinchMove(dist float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pinchDist > 0 && dist > 0 {
		c.scale = c.clamp(c.scale * dist / c.pinchDist)
	}
	c.pinchDist = dist
	return c.scale
}
