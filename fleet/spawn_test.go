package fleet

import (
	"math/rand"
	"testing"

	"github.com/lmmx/roundel/catalog"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *catalog.Catalog {
	return catalog.New("test", []catalog.Route{
		{LineID: "central", Type: catalog.Train, Waypoints: orb.LineString{{0, 0}, {10, 0}, {20, 0}}},
		{LineID: "stub", Type: catalog.Bus, Waypoints: orb.LineString{{5, 5}}},
		{LineID: "88", Type: catalog.Bus, Waypoints: orb.LineString{{0, 0}, {0, 10}}},
	})
}

func TestSpawn_SkipsUndrivableRoutes(t *testing.T) {
	cfg := SpawnConfig{BusesPerRoute: 3, TrainsPerRoute: 4, MinSpeed: 0.01, MaxSpeed: 0.02}
	vs := Spawn(testCatalog(), cfg, rand.New(rand.NewSource(1)))

	require.Len(t, vs, 7)
	for i, v := range vs {
		assert.Equal(t, i, v.ID)
		assert.NotEqual(t, 1, v.RouteIndex, "vehicle spawned on single-waypoint route")
	}
	assert.Equal(t, Counts{Buses: 3, Trains: 4, Total: 7}, Count(vs))
}

func TestSpawn_AlternatesDirectionAndSlicesFractions(t *testing.T) {
	cat := catalog.New("test", []catalog.Route{
		{Type: catalog.Train, Waypoints: orb.LineString{{0, 0}, {10, 0}, {20, 0}, {30, 0}}},
	})
	cfg := SpawnConfig{TrainsPerRoute: 4}
	vs := Spawn(cat, cfg, rand.New(rand.NewSource(9)))

	require.Len(t, vs, 4)
	for i, v := range vs {
		lo, hi := float64(i)/4, float64(i+1)/4
		assert.GreaterOrEqual(t, v.Fraction, lo)
		assert.Less(t, v.Fraction, hi)
		if i%2 == 0 {
			assert.Equal(t, 1, v.Direction)
			assert.Equal(t, 0, v.LastIndex)
			assert.Equal(t, 1, v.NextIndex)
		} else {
			assert.Equal(t, -1, v.Direction)
			assert.Equal(t, 3, v.LastIndex)
			assert.Equal(t, 2, v.NextIndex)
		}
	}
}

func TestSpawn_SpeedRangeAndInitialPosition(t *testing.T) {
	cfg := DefaultSpawnConfig()
	vs := Spawn(testCatalog(), cfg, rand.New(rand.NewSource(3)))
	cat := testCatalog()
	for _, v := range vs {
		assert.GreaterOrEqual(t, v.Speed, cfg.MinSpeed)
		assert.Less(t, v.Speed, cfg.MaxSpeed)

		route := cat.Routes[v.RouteIndex]
		a, b := route.Waypoints[v.LastIndex], route.Waypoints[v.NextIndex]
		assert.InDelta(t, a[0]+(b[0]-a[0])*v.Fraction, v.X, 1e-9)
		assert.InDelta(t, a[1]+(b[1]-a[1])*v.Fraction, v.Y, 1e-9)
	}
}

func TestPlace_UsesPlacements(t *testing.T) {
	cat := testCatalog()
	cat.Placements = []catalog.Placement{
		{RouteIndex: 0, VehicleID: "241", Fraction: 0.5, Direction: 1},
		{RouteIndex: 1, VehicleID: "skipped", Fraction: 0.5, Direction: 1},
		{RouteIndex: 9, VehicleID: "missing", Fraction: 0.5, Direction: 1},
		{RouteIndex: 2, VehicleID: "007", LineID: "88", Fraction: 0.1, Direction: -1},
	}
	cfg := SpawnConfig{MinSpeed: 0, MaxSpeed: 0}
	vs := Build(cat, cfg, rand.New(rand.NewSource(1)))

	require.Len(t, vs, 2)
	assert.Equal(t, "241", vs[0].ExternalID)
	assert.Equal(t, "central", vs[0].LineID)
	assert.Equal(t, catalog.Train, vs[0].Type)
	assert.InDelta(t, 5.0, vs[0].X, 1e-9)

	assert.Equal(t, "007", vs[1].ExternalID)
	assert.Equal(t, -1, vs[1].Direction)
	assert.Equal(t, 1, vs[1].LastIndex)
	assert.Equal(t, 0, vs[1].NextIndex)
	assert.InDelta(t, 9.0, vs[1].Y, 1e-9)
}

func TestBuild_SpawnsWithoutPlacements(t *testing.T) {
	vs := Build(testCatalog(), DefaultSpawnConfig(), rand.New(rand.NewSource(1)))
	assert.Len(t, vs, 4)
}
