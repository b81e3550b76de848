package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// Projection projects lat/lon onto a canvas with the centre point in the middle.
type Projection struct {
	CenterLat float64
	CenterLon float64
	// Scale is pixels per degree.
	Scale  float64
	Width  float64
	Height float64
}

// LondonCentered returns the default projection used for the TfL network.
func LondonCentered(width, height float64) Projection {
	return Projection{CenterLat: 51.5, CenterLon: -0.12, Scale: 5000, Width: width, Height: height}
}

func (p Projection) lonFactor() float64 {
	return math.Cos(p.CenterLat*math.Pi/180) * p.Scale
}

// Project converts a lat/lon pair to world coordinates.
func (p Projection) Project(lat, lon float64) orb.Point {
	x := p.Width/2 + (lon-p.CenterLon)*p.lonFactor()
	y := p.Height/2 + (p.CenterLat-lat)*p.Scale
	return orb.Point{x, y}
}

// Unproject is the inverse of Project.
func (p Projection) Unproject(pt orb.Point) (lat, lon float64) {
	lon = p.CenterLon + (pt[0]-p.Width/2)/p.lonFactor()
	lat = p.CenterLat - (pt[1]-p.Height/2)/p.Scale
	return lat, lon
}

// ProjectLineString projects a GeoJSON-ordered ([lon, lat]) line string.
func (p Projection) ProjectLineString(ls orb.LineString) orb.LineString {
	out := make(orb.LineString, len(ls))
	for i, c := range ls {
		out[i] = p.Project(c[1], c[0])
	}
	return out
}

// Offset returns the world-space offset of a delta given in degrees.
func (p Projection) Offset(dLat, dLon float64) orb.Point {
	return orb.Point{dLon * p.lonFactor(), -dLat * p.Scale}
}
