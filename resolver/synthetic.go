package resolver

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/lmmx/roundel/catalog"
	"github.com/lmmx/roundel/geo"
	"github.com/paulmach/orb"
)

// syntheticCentre is roughly Oxford Circus.
var syntheticCentre = [2]float64{51.51, -0.12}

// trainTargets are suburb termini (lat, lon) the radial train routes head to.
var trainTargets = [...][2]float64{
	{51.59, -0.33}, // Harrow
	{51.69, 0.11},  // Epping
	{51.49, -0.22}, // Hammersmith
	{51.54, 0.08},  // Barking
	{51.62, -0.28}, // Edgware
	{51.40, -0.19}, // Morden
	{51.47, -0.48}, // Heathrow
	{51.65, -0.14}, // Cockfosters
	{51.58, -0.02}, // Walthamstow
	{51.46, -0.11}, // Brixton
}

// MaxSyntheticTrainRoutes is the number of suburb termini radial trains can
// run to.
const MaxSyntheticTrainRoutes = len(trainTargets)

// SyntheticCounts sets how many routes of each family are generated.
type SyntheticCounts struct {
	// TrainRoutes is capped at MaxSyntheticTrainRoutes, one per suburb terminus.
	TrainRoutes        int
	RadialBusRoutes    int
	OrbitalBusRoutes   int
	CrossTownBusRoutes int
}

// DefaultSyntheticCounts returns 10 train routes and 100 bus routes.
func DefaultSyntheticCounts() SyntheticCounts {
	return SyntheticCounts{TrainRoutes: 10, RadialBusRoutes: 30, OrbitalBusRoutes: 20, CrossTownBusRoutes: 50}
}

// SyntheticTier procedurally generates a London-like network. It never fails.
type SyntheticTier struct {
	Counts     SyntheticCounts
	Projection geo.Projection

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSyntheticTier creates a generator driven by rng.
func NewSyntheticTier(rng *rand.Rand, counts SyntheticCounts, proj geo.Projection) *SyntheticTier {
	return &SyntheticTier{Counts: counts, Projection: proj, rng: rng}
}

func (t *SyntheticTier) Name() string { return string(ModeSynthetic) }

func (t *SyntheticTier) Resolve(_ context.Context) (*catalog.Catalog, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.rng == nil {
		t.rng = rand.New(rand.NewSource(1))
	}
	cat := catalog.New(string(ModeSynthetic), nil)
	for _, r := range t.trainRoutes() {
		cat.Add(r)
	}
	for _, r := range t.busRoutes() {
		cat.Add(r)
	}
	return cat, nil
}

func (t *SyntheticTier) project(lat, lon float64) orb.Point {
	return t.Projection.Project(lat, lon)
}

func (t *SyntheticTier) trainRoutes() []catalog.Route {
	n := min(t.Counts.TrainRoutes, MaxSyntheticTrainRoutes)
	centre := t.project(syntheticCentre[0], syntheticCentre[1])
	routes := make([]catalog.Route, 0, n)
	for i := 0; i < n; i++ {
		end := t.project(trainTargets[i][0], trainTargets[i][1])
		stations := 4 + t.rng.Intn(4)
		routes = append(routes, catalog.Route{
			Name:      fmt.Sprintf("radial train %d", i),
			LineID:    fmt.Sprintf("train-%d", i),
			Type:      catalog.Train,
			Waypoints: geo.GeneratePath(t.rng, centre, end, stations, 0.2),
		})
	}
	return routes
}

func (t *SyntheticTier) busRoutes() []catalog.Route {
	var routes []catalog.Route
	lat0, lon0 := syntheticCentre[0], syntheticCentre[1]
	centre := t.project(lat0, lon0)

	for i := 0; i < t.Counts.RadialBusRoutes; i++ {
		angle := t.rng.Float64() * 2 * math.Pi
		dist := 0.1 + t.rng.Float64()*0.2
		end := t.project(lat0+dist*math.Sin(angle), lon0+dist*math.Cos(angle))
		routes = append(routes, catalog.Route{
			Name:      fmt.Sprintf("radial bus %d", i),
			LineID:    fmt.Sprintf("bus-radial-%d", i),
			Type:      catalog.Bus,
			Waypoints: geo.GeneratePath(t.rng, centre, end, 5+t.rng.Intn(7), 0.3),
		})
	}

	for i := 0; i < t.Counts.OrbitalBusRoutes; i++ {
		radius := 0.03 + float64(i)/20*0.15
		start := t.rng.Float64() * 2 * math.Pi
		segments := 8 + t.rng.Intn(8)
		jitter := radius * 0.1
		loop := make(orb.LineString, 0, segments+2)
		for j := 0; j <= segments; j++ {
			a := start + float64(j)/float64(segments)*2*math.Pi
			p := t.project(lat0+radius*math.Sin(a), lon0+radius*math.Cos(a))
			off := t.Projection.Offset((t.rng.Float64()*2-1)*jitter, (t.rng.Float64()*2-1)*jitter)
			loop = append(loop, orb.Point{p[0] + off[0], p[1] + off[1]})
		}
		loop = append(loop, loop[0])
		routes = append(routes, catalog.Route{
			Name:      fmt.Sprintf("orbital bus %d", i),
			LineID:    fmt.Sprintf("bus-orbital-%d", i),
			Type:      catalog.Bus,
			Waypoints: loop,
		})
	}

	for i := 0; i < t.Counts.CrossTownBusRoutes; i++ {
		eastWest := t.rng.Float64() > 0.5
		offset := -0.1 + t.rng.Float64()*0.2
		var start, end orb.Point
		if eastWest {
			start = t.project(lat0+offset, lon0-0.15-t.rng.Float64()*0.1)
			end = t.project(lat0+offset, lon0+0.15+t.rng.Float64()*0.1)
		} else {
			start = t.project(lat0-0.15-t.rng.Float64()*0.1, lon0+offset)
			end = t.project(lat0+0.15+t.rng.Float64()*0.1, lon0+offset)
		}
		routes = append(routes, catalog.Route{
			Name:      fmt.Sprintf("cross-town bus %d", i),
			LineID:    fmt.Sprintf("bus-cross-%d", i),
			Type:      catalog.Bus,
			Waypoints: geo.GeneratePath(t.rng, start, end, 6+t.rng.Intn(10), 0.25),
		})
	}
	return routes
}
