package camera

import (
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCamera() *Camera {
	return New(DefaultLimits(), 1000, 1000)
}

func TestRoundTrip(t *testing.T) {
	c := newCamera()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		c.SetView(orb.Point{rng.Float64()*2000 - 1000, rng.Float64()*2000 - 1000}, 0.1+rng.Float64()*49.9)
		p := orb.Point{rng.Float64()*4000 - 2000, rng.Float64()*4000 - 2000}
		back := c.ScreenToWorld(c.WorldToScreen(p))
		assert.InDelta(t, p[0], back[0], 1e-6)
		assert.InDelta(t, p[1], back[1], 1e-6)
	}
}

func TestZoomClamping(t *testing.T) {
	c := newCamera()
	for i := 0; i < 100; i++ {
		c.Zoom(-1)
	}
	assert.Equal(t, 50.0, c.State().Scale)
	for i := 0; i < 200; i++ {
		c.Zoom(1)
	}
	assert.Equal(t, 0.1, c.State().Scale)

	c.SetView(orb.Point{}, 1)
	assert.InDelta(t, 1.1, c.Zoom(-3), 1e-12)
	assert.InDelta(t, 0.99, c.Zoom(3), 1e-12)
	assert.InDelta(t, 0.891, c.Zoom(0), 1e-12, "zero delta zooms out")

	c.SetView(orb.Point{}, 500)
	assert.Equal(t, 50.0, c.State().Scale)
}

func TestDragAndPan(t *testing.T) {
	c := newCamera()
	c.SetView(orb.Point{100, 100}, 2)

	c.DragMove(50, 50)
	assert.Equal(t, orb.Point{100, 100}, c.State().Pan, "move without drag is ignored")

	c.DragStart(10, 10)
	c.DragMove(30, 0)
	assert.Equal(t, orb.Point{90, 105}, c.State().Pan)
	c.DragMove(30, 0)
	assert.Equal(t, orb.Point{90, 105}, c.State().Pan)
	c.DragEnd()
	assert.False(t, c.Dragging())

	c.Pan(-20, 40)
	assert.Equal(t, orb.Point{100, 85}, c.State().Pan)
}

func TestPinch(t *testing.T) {
	c := newCamera()
	assert.Equal(t, 1.0, c.PinchMove(100), "no previous distance")
	c.PinchStart(100)
	assert.InDelta(t, 2.0, c.PinchMove(200), 1e-12)
	assert.InDelta(t, 1.0, c.PinchMove(100), 1e-12)
	assert.Equal(t, 50.0, c.PinchMove(100000))
}

func TestPick(t *testing.T) {
	c := newCamera()
	c.SetView(orb.Point{0, 0}, 2)
	// radius is 10px / 2 = 5 world units; the click lands at world (0, 0)
	tests := []struct {
		name string
		pos  orb.Point
		hit  bool
	}{
		{"inside radius", orb.Point{4.99, 0}, true},
		{"exactly on radius", orb.Point{5.0, 0}, false},
		{"outside radius", orb.Point{5.01, 0}, false},
		{"diagonal inside", orb.Point{3, 3.9}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := c.Pick(orb.Point{0, 0}, []orb.Point{{100, 100}, tt.pos})
			assert.Equal(t, tt.hit, ok)
			if tt.hit {
				assert.Equal(t, 1, idx)
			}
		})
	}
}

func TestPick_NearestFirstOnTie(t *testing.T) {
	c := newCamera()
	c.SetView(orb.Point{0, 0}, 1)
	positions := []orb.Point{{8, 0}, {3, 0}, {0, 3}, {1, 1}}
	idx, ok := c.Pick(orb.Point{0, 0}, positions)
	require.True(t, ok)
	assert.Equal(t, 3, idx)

	positions = []orb.Point{{8, 0}, {3, 0}, {0, 3}}
	idx, _ = c.Pick(orb.Point{0, 0}, positions)
	assert.Equal(t, 1, idx, "first index wins among equal distances")
}

func TestPick_MissClearsSelectionAndFollow(t *testing.T) {
	c := newCamera()
	positions := []orb.Point{{10, 10}}
	_, ok := c.Pick(orb.Point{10, 10}, positions)
	require.True(t, ok)
	assert.True(t, c.SetFollow(true))

	_, ok = c.Pick(orb.Point{500, 500}, positions)
	assert.False(t, ok)
	_, has := c.Selected()
	assert.False(t, has)
	assert.False(t, c.State().Follow)
	assert.False(t, c.SetFollow(true), "follow needs a selection")
}

func TestPick_IgnoredWhileDragging(t *testing.T) {
	c := newCamera()
	positions := []orb.Point{{10, 10}}
	c.Pick(orb.Point{10, 10}, positions)
	c.DragStart(0, 0)
	idx, ok := c.Pick(orb.Point{900, 900}, positions)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
	c.DragEnd()
	_, ok = c.Pick(orb.Point{900, 900}, positions)
	assert.False(t, ok)
}

func TestFollow(t *testing.T) {
	c := newCamera()
	c.SetView(orb.Point{0, 0}, 2)
	positions := []orb.Point{{0, 0}, {300, 400}}
	c.Select(1)
	c.Follow(positions)
	assert.Equal(t, orb.Point{0, 0}, c.State().Pan, "follow off leaves pan alone")

	require.True(t, c.SetFollow(true))
	c.Follow(positions)
	assert.Equal(t, orb.Point{50, 150}, c.State().Pan)
	centre := c.WorldToScreen(positions[1])
	assert.Equal(t, orb.Point{500, 500}, centre)

	c.Follow(positions[:1])
	_, has := c.Selected()
	assert.False(t, has, "stale selection is cleared")
	assert.False(t, c.State().Follow)
}

func TestFitBounds(t *testing.T) {
	c := newCamera()
	c.FitBounds(orb.Bound{Min: orb.Point{100, 200}, Max: orb.Point{300, 300}})
	s := c.State()
	assert.Equal(t, 5.0, s.Scale)
	assert.Equal(t, orb.Point{500, 500}, s.WorldToScreen(orb.Point{200, 250}))

	c.FitBounds(orb.Bound{Min: orb.Point{10, 10}, Max: orb.Point{10, 10}})
	assert.Equal(t, 5.0, c.State().Scale, "degenerate bounds keep the scale")
}
