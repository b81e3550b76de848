package geo

import (
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestProjection_CenterMapsToCanvasMiddle(t *testing.T) {
	p := LondonCentered(1000, 1000)
	pt := p.Project(51.5, -0.12)
	assert.InDelta(t, 500, pt[0], 1e-9)
	assert.InDelta(t, 500, pt[1], 1e-9)
}

func TestProjection_NorthIsUp(t *testing.T) {
	p := LondonCentered(1000, 1000)
	north := p.Project(51.6, -0.12)
	east := p.Project(51.5, 0.0)
	assert.Less(t, north[1], 500.0)
	assert.Greater(t, east[0], 500.0)
}

func TestProjection_UnprojectRoundTrip(t *testing.T) {
	p := LondonCentered(1000, 800)
	tests := []struct {
		name     string
		lat, lon float64
	}{
		{"center", 51.5, -0.12},
		{"bank", 51.5133, -0.0886},
		{"heathrow", 51.47, -0.4543},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon := p.Unproject(p.Project(tt.lat, tt.lon))
			assert.InDelta(t, tt.lat, lat, 1e-9)
			assert.InDelta(t, tt.lon, lon, 1e-9)
		})
	}
}

func TestProjectLineString_UsesLonLatOrder(t *testing.T) {
	p := LondonCentered(1000, 1000)
	ls := p.ProjectLineString(orb.LineString{{-0.12, 51.5}, {-0.12, 51.6}})
	assert.Len(t, ls, 2)
	assert.InDelta(t, 500, ls[0][0], 1e-9)
	assert.InDelta(t, 500-0.1*5000, ls[1][1], 1e-6)
}

func TestGeneratePath_EndpointsAndCount(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	start, end := orb.Point{0, 0}, orb.Point{100, 50}
	path := GeneratePath(rng, start, end, 5, 0.2)
	assert.Len(t, path, 7)
	assert.Equal(t, start, path[0])
	assert.Equal(t, end, path[len(path)-1])
	for i, pt := range path[1 : len(path)-1] {
		base := float64(i+1) / 6
		assert.InDelta(t, 100*base, pt[0], 0.2*100+1e-9)
		assert.InDelta(t, 50*base, pt[1], 0.2*50+1e-9)
	}
}

func TestGeneratePath_NoInteriorPoints(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	path := GeneratePath(rng, orb.Point{1, 1}, orb.Point{2, 2}, 0, 0.5)
	assert.Equal(t, orb.LineString{{1, 1}, {2, 2}}, path)
}
