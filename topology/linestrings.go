package topology

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// DecodeLineStrings parses a route-sequence geometry string of the form
// "[[[lon,lat],[lon,lat],...],[...]]" into one line string per inner array.
func DecodeLineStrings(s string) ([]orb.LineString, error) {
	var raw [][][]float64
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, errors.Wrap(err, "Can't decode line strings")
	}
	out := make([]orb.LineString, 0, len(raw))
	for _, coords := range raw {
		ls := make(orb.LineString, 0, len(coords))
		for _, c := range coords {
			if len(c) < 2 {
				return nil, errors.Errorf("coordinate with %d values", len(c))
			}
			ls = append(ls, orb.Point{c[0], c[1]})
		}
		out = append(out, ls)
	}
	return out, nil
}
