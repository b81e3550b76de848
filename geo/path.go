package geo

import (
	"math"
	"math/rand"

	"github.com/paulmach/orb"
)

// GeneratePath builds a path from start to end through n interior points.
// Each interior point sits on the straight line and is then pushed off it by
// up to randomness * |end-start| on each axis, with a random sign.
func GeneratePath(rng *rand.Rand, start, end orb.Point, n int, randomness float64) orb.LineString {
	path := make(orb.LineString, 0, n+2)
	path = append(path, start)
	spanX := math.Abs(end[0] - start[0])
	spanY := math.Abs(end[1] - start[1])
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n+1)
		x := start[0] + (end[0]-start[0])*t
		y := start[1] + (end[1]-start[1])*t
		dx := rng.Float64() * randomness * spanX
		dy := rng.Float64() * randomness * spanY
		if rng.Float64() > 0.5 {
			dx = -dx
		}
		if rng.Float64() > 0.5 {
			dy = -dy
		}
		path = append(path, orb.Point{x + dx, y + dy})
	}
	return append(path, end)
}
