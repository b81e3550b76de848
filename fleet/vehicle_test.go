package fleet

import (
	"math/rand"
	"testing"

	"github.com/lmmx/roundel/catalog"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func twoPointRoute() *catalog.Route {
	return &catalog.Route{Waypoints: orb.LineString{{0, 0}, {10, 0}}}
}

func TestUpdatePosition_BounceAtEnd(t *testing.T) {
	route := twoPointRoute()
	v := &Vehicle{Speed: 0.3, Direction: 1, Fraction: 0.9, LastIndex: 0, NextIndex: 1}

	UpdatePosition(v, route)

	assert.InDelta(t, 0.2, v.Fraction, 1e-9)
	assert.Equal(t, 1, v.LastIndex)
	assert.Equal(t, -1, v.Direction)
	assert.Equal(t, 0, v.NextIndex)
	assert.InDelta(t, 8.0, v.X, 1e-9)
	assert.InDelta(t, 0.0, v.Y, 1e-9)
}

func TestUpdatePosition_BounceAtStart(t *testing.T) {
	route := &catalog.Route{Waypoints: orb.LineString{{0, 0}, {10, 0}, {20, 0}}}
	v := &Vehicle{Speed: 0.5, Direction: -1, Fraction: 0.5, LastIndex: 1, NextIndex: 0}

	UpdatePosition(v, route)

	assert.Equal(t, 0, v.LastIndex)
	assert.Equal(t, 1, v.NextIndex)
	assert.Equal(t, 1, v.Direction)
	assert.InDelta(t, 0.0, v.X, 1e-9)
}

func TestUpdatePosition_SpeedAboveOneResolvesFully(t *testing.T) {
	route := &catalog.Route{Waypoints: orb.LineString{{0, 0}, {1, 0}, {2, 0}, {3, 0}}}
	v := &Vehicle{Speed: 2.5, Direction: 1, LastIndex: 0, NextIndex: 1}

	UpdatePosition(v, route)

	assert.InDelta(t, 0.5, v.Fraction, 1e-9)
	assert.Equal(t, 2, v.LastIndex)
	assert.Equal(t, 3, v.NextIndex)
	assert.InDelta(t, 2.5, v.X, 1e-9)
}

func TestUpdatePosition_ZeroSpeedIsIdempotent(t *testing.T) {
	route := &catalog.Route{Waypoints: orb.LineString{{0, 0}, {4, 4}, {8, 0}}}
	v := &Vehicle{Speed: 0, Direction: 1, Fraction: 0.25, LastIndex: 1, NextIndex: 2}
	UpdatePosition(v, route)
	before := *v

	for i := 0; i < 100; i++ {
		UpdatePosition(v, route)
	}
	assert.Equal(t, before, *v)
}

func TestUpdatePosition_InvariantsHoldOverManyTicks(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.Intn(8)
		route := &catalog.Route{}
		for i := 0; i < n; i++ {
			route.Waypoints = append(route.Waypoints, orb.Point{rng.Float64() * 100, rng.Float64() * 100})
		}
		v := &Vehicle{Speed: rng.Float64() * 3, Direction: 1, LastIndex: 0, NextIndex: 1}
		for tick := 0; tick < 500; tick++ {
			UpdatePosition(v, route)
			if v.Fraction < 0 || v.Fraction >= 1 {
				t.Fatalf("trial %d tick %d: fraction %v out of [0,1)", trial, tick, v.Fraction)
			}
			if v.LastIndex < 0 || v.LastIndex >= n || v.NextIndex < 0 || v.NextIndex >= n {
				t.Fatalf("trial %d tick %d: indices %d/%d out of range for %d waypoints", trial, tick, v.LastIndex, v.NextIndex, n)
			}
			if v.NextIndex != v.LastIndex+v.Direction {
				t.Fatalf("trial %d tick %d: next %d not one step from last %d in direction %d", trial, tick, v.NextIndex, v.LastIndex, v.Direction)
			}
		}
	}
}

func TestCount(t *testing.T) {
	vs := []Vehicle{{Type: catalog.Bus}, {Type: catalog.Train}, {Type: catalog.Bus}}
	assert.Equal(t, Counts{Buses: 2, Trains: 1, Total: 3}, Count(vs))
	assert.Equal(t, Counts{}, Count(nil))
}
