package gtfs

import (
	"math"

	"github.com/paulmach/orb"
)

// Thin drops shape points closer than minKM to the last kept point. The
// first and last points are always kept.
func Thin(ls orb.LineString, minKM float64) orb.LineString {
	if len(ls) <= 2 {
		return ls
	}
	out := orb.LineString{ls[0]}
	for _, p := range ls[1 : len(ls)-1] {
		last := out[len(out)-1]
		if HaversineKM(last[1], last[0], p[1], p[0]) >= minKM {
			out = append(out, p)
		}
	}
	return append(out, ls[len(ls)-1])
}

// HaversineKM returns the great-circle distance between two lat/lon points.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}
