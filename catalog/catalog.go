package catalog

import (
	"strings"

	"github.com/paulmach/orb"
)

// RouteType tags a route (and the vehicles on it) as bus-like or train-like.
type RouteType int

const (
	Bus RouteType = iota
	Train
)

func (t RouteType) String() string {
	if t == Train {
		return "train"
	}
	return "bus"
}

// TypeForMode classifies a transport mode name. Only "bus" (and coach) is
// bus-like; every rail family mode maps to Train.
func TypeForMode(mode string) RouteType {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "bus", "coach":
		return Bus
	default:
		return Train
	}
}

// Route is an ordered list of waypoints that vehicles traverse back and forth.
type Route struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	LineID    string         `json:"lineId"`
	Type      RouteType      `json:"type"`
	Waypoints orb.LineString `json:"waypoints"`
}

// Drivable reports whether vehicles may be spawned on the route.
func (r Route) Drivable() bool {
	return len(r.Waypoints) >= 2
}

// Placement pins a vehicle to a route at a known progress, used when vehicles
// come from live predictions rather than the spawner.
type Placement struct {
	RouteIndex int
	VehicleID  string
	LineID     string
	Fraction   float64
	Direction  int
}

// Catalog is the set of routes in use plus optional pinned placements.
type Catalog struct {
	Source     string
	Routes     []Route
	Placements []Placement
}

// New builds a catalog, renumbering route IDs to match their index.
func New(source string, routes []Route) *Catalog {
	c := &Catalog{Source: source}
	for _, r := range routes {
		c.Add(r)
	}
	return c
}

// Add appends a route and returns its index.
func (c *Catalog) Add(r Route) int {
	r.ID = len(c.Routes)
	c.Routes = append(c.Routes, r)
	return r.ID
}

// Len returns the number of routes.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Routes)
}

// Empty reports whether the catalog has no routes at all.
func (c *Catalog) Empty() bool {
	return c.Len() == 0
}

// DrivableCount returns how many routes can host vehicles.
func (c *Catalog) DrivableCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, r := range c.Routes {
		if r.Drivable() {
			n++
		}
	}
	return n
}

// Route returns the route at index i.
func (c *Catalog) Route(i int) (*Route, bool) {
	if i < 0 || i >= c.Len() {
		return nil, false
	}
	return &c.Routes[i], true
}

// Bound returns the bounding box of every waypoint. ok is false when the
// catalog has no waypoints.
func (c *Catalog) Bound() (b orb.Bound, ok bool) {
	for _, r := range c.Routes {
		if len(r.Waypoints) == 0 {
			continue
		}
		rb := r.Waypoints.Bound()
		if !ok {
			b, ok = rb, true
			continue
		}
		b = b.Union(rb)
	}
	return b, ok
}
