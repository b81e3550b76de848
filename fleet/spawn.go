package fleet

import (
	"math/rand"

	"github.com/lmmx/roundel/catalog"
)

// SpawnConfig controls fleet density and speed range.
type SpawnConfig struct {
	BusesPerRoute  int
	TrainsPerRoute int
	MinSpeed       float64
	MaxSpeed       float64
}

// DefaultSpawnConfig returns two vehicles per route with speeds in [0.005, 0.015).
func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{BusesPerRoute: 2, TrainsPerRoute: 2, MinSpeed: 0.005, MaxSpeed: 0.015}
}

func (c SpawnConfig) perRoute(t catalog.RouteType) int {
	if t == catalog.Train {
		return c.TrainsPerRoute
	}
	return c.BusesPerRoute
}

func (c SpawnConfig) speed(rng *rand.Rand) float64 {
	return c.MinSpeed + rng.Float64()*(c.MaxSpeed-c.MinSpeed)
}

// Spawn creates vehicles for every drivable route in cat.
//
// Vehicles alternate forward and backward by spawn order. Vehicle i of count
// starts at a fraction jittered inside [i/count, (i+1)/count), so vehicles
// sharing a route never start co-located.
func Spawn(cat *catalog.Catalog, cfg SpawnConfig, rng *rand.Rand) []Vehicle {
	var vehicles []Vehicle
	for ri := range cat.Routes {
		route := &cat.Routes[ri]
		if !route.Drivable() {
			continue
		}
		count := cfg.perRoute(route.Type)
		n := len(route.Waypoints)
		for i := 0; i < count; i++ {
			v := Vehicle{
				ID:         len(vehicles),
				RouteIndex: ri,
				LineID:     route.LineID,
				Type:       route.Type,
				Fraction:   (float64(i) + rng.Float64()) / float64(count),
				Speed:      cfg.speed(rng),
			}
			if i%2 == 0 {
				v.LastIndex, v.NextIndex, v.Direction = 0, 1, 1
			} else {
				v.LastIndex, v.NextIndex, v.Direction = n-1, n-2, -1
			}
			UpdatePosition(&v, route)
			vehicles = append(vehicles, v)
		}
	}
	return vehicles
}

// Place creates one vehicle per catalog placement. Placements on routes that
// cannot host vehicles are skipped.
func Place(cat *catalog.Catalog, cfg SpawnConfig, rng *rand.Rand) []Vehicle {
	var vehicles []Vehicle
	for _, p := range cat.Placements {
		route, ok := cat.Route(p.RouteIndex)
		if !ok || !route.Drivable() {
			continue
		}
		n := len(route.Waypoints)
		v := Vehicle{
			ID:         len(vehicles),
			ExternalID: p.VehicleID,
			RouteIndex: p.RouteIndex,
			LineID:     p.LineID,
			Type:       route.Type,
			Fraction:   p.Fraction,
			Speed:      cfg.speed(rng),
		}
		if v.LineID == "" {
			v.LineID = route.LineID
		}
		if p.Direction < 0 {
			v.LastIndex, v.NextIndex, v.Direction = n-1, n-2, -1
		} else {
			v.LastIndex, v.NextIndex, v.Direction = 0, 1, 1
		}
		UpdatePosition(&v, route)
		vehicles = append(vehicles, v)
	}
	return vehicles
}

// Build places pinned vehicles when the catalog carries placements and
// spawns by density otherwise.
func Build(cat *catalog.Catalog, cfg SpawnConfig, rng *rand.Rand) []Vehicle {
	if len(cat.Placements) > 0 {
		return Place(cat, cfg, rng)
	}
	return Spawn(cat, cfg, rng)
}
