package camera

import (
	"math"

	"github.com/paulmach/orb"
)

// Pick selects the vehicle nearest the screen point within the pick radius.
// A miss clears the selection and turns follow off. Clicks while dragging are
// ignored and leave the selection alone.
func (c *Camera) Pick(screen orb.Point, positions []orb.Point) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dragging {
		return c.selected, c.hasPick
	}

	world := c.state().ScreenToWorld(screen)
	r := c.limits.ThresholdPx / c.scale
	best, bestD := -1, math.MaxFloat64
	for i, p := range positions {
		dx, dy := p[0]-world[0], p[1]-world[1]
		d := dx*dx + dy*dy
		if d < r*r && d < bestD {
			best, bestD = i, d
		}
	}
	if best < 0 {
		c.clearSelection()
		return 0, false
	}
	c.selected, c.hasPick = best, true
	return best, true
}

// Select sets the selection directly.
func (c *Camera) Select(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected, c.hasPick = i, i >= 0
	if !c.hasPick {
		c.clearSelection()
	}
}

// Selected returns the selected fleet index.
func (c *Camera) Selected() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected, c.hasPick
}

func (c *Camera) clearSelection() {
	c.selected, c.hasPick = 0, false
	c.follow = false
}

// SetFollow turns follow on or off and returns the resulting state. Follow
// cannot be enabled without a selection.
func (c *Camera) SetFollow(on bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.follow = on && c.hasPick
	return c.follow
}

// Follow centres the view on the selected vehicle when follow is on. A
// selection beyond the end of positions is stale and is cleared.
func (c *Camera) Follow(positions []orb.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasPick {
		return
	}
	if c.selected >= len(positions) {
		c.clearSelection()
		return
	}
	if !c.follow {
		return
	}
	v := positions[c.selected]
	c.pan = orb.Point{
		v[0] - c.viewport[0]/(2*c.scale),
		v[1] - c.viewport[1]/(2*c.scale),
	}
}

// FitBounds centres the view on b and picks the largest scale that shows all
// of it. Degenerate bounds only recentre.
func (c *Camera) FitBounds(b orb.Bound) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, h := b.Max[0]-b.Min[0], b.Max[1]-b.Min[1]
	if w > 0 && h > 0 {
		c.scale = c.clamp(math.Min(c.viewport[0]/w, c.viewport[1]/h))
	}
	centre := b.Center()
	c.pan = orb.Point{
		centre[0] - c.viewport[0]/(2*c.scale),
		centre[1] - c.viewport[1]/(2*c.scale),
	}
}
