package fleet

import (
	"github.com/lmmx/roundel/catalog"
	"github.com/paulmach/orb"
)

// Vehicle is one simulated bus or train bound to a route by index.
type Vehicle struct {
	ID         int               `json:"id"`
	ExternalID string            `json:"externalId,omitempty"`
	RouteIndex int               `json:"routeIndex"`
	LineID     string            `json:"lineId"`
	Type       catalog.RouteType `json:"type"`
	LastIndex  int               `json:"lastIndex"`
	NextIndex  int               `json:"nextIndex"`
	Direction  int               `json:"direction"`
	Fraction   float64           `json:"fraction"`
	Speed      float64           `json:"speed"`
	X          float64           `json:"x"`
	Y          float64           `json:"y"`
}

// Position returns the derived world position.
func (v *Vehicle) Position() orb.Point {
	return orb.Point{v.X, v.Y}
}

// UpdatePosition advances the vehicle by one tick along route.
//
// Speed may exceed a whole segment per tick, so segment crossings are
// resolved in a loop. Hitting either end of the route reverses direction.
func UpdatePosition(v *Vehicle, route *catalog.Route) {
	n := len(route.Waypoints)
	v.Fraction += v.Speed
	for v.Fraction >= 1.0 {
		v.Fraction -= 1.0
		v.LastIndex = v.NextIndex
		candidate := v.NextIndex + v.Direction
		if candidate < 0 || candidate >= n {
			v.Direction *= -1
			candidate = v.LastIndex + v.Direction
		}
		v.NextIndex = candidate
	}
	a := route.Waypoints[v.LastIndex]
	b := route.Waypoints[v.NextIndex]
	v.X = a[0] + (b[0]-a[0])*v.Fraction
	v.Y = a[1] + (b[1]-a[1])*v.Fraction
}

// Counts is the per-type aggregate of a fleet.
type Counts struct {
	Buses  int `json:"buses"`
	Trains int `json:"trains"`
	Total  int `json:"total"`
}

// Count tallies vehicles by type.
func Count(vehicles []Vehicle) Counts {
	var c Counts
	for i := range vehicles {
		if vehicles[i].Type == catalog.Train {
			c.Trains++
		} else {
			c.Buses++
		}
	}
	c.Total = len(vehicles)
	return c
}
