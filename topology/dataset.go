package topology

import (
	"context"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/samber/lo"
)

// Provider loads a topology dataset.
type Provider interface {
	Load(ctx context.Context, includeBuses bool) (*Dataset, error)
}

// Station is a named stop.
type Station struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Line is one transit line and its geometry segments.
type Line struct {
	ID       string
	Mode     string
	Segments []orb.LineString
}

// Dataset is a loaded network.
type Dataset struct {
	Lines    map[string]*Line
	Stations []Station
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{Lines: map[string]*Line{}}
}

// IsBusMode reports whether mode names a bus service.
func IsBusMode(mode string) bool {
	m := strings.ToLower(strings.TrimSpace(mode))
	return m == "bus" || m == "coach"
}

// AddSegment appends a segment to a line, creating the line on first use.
// The first non-empty mode seen for a line wins.
func (d *Dataset) AddSegment(lineID, mode string, seg orb.LineString) {
	l, ok := d.Lines[lineID]
	if !ok {
		l = &Line{ID: lineID}
		d.Lines[lineID] = l
	}
	if l.Mode == "" {
		l.Mode = mode
	}
	l.Segments = append(l.Segments, seg)
}

// LineIDs returns line ids in sorted order so route numbering is stable.
func (d *Dataset) LineIDs() []string {
	ids := lo.Keys(d.Lines)
	sort.Strings(ids)
	return ids
}

// Line looks up a line by id.
func (d *Dataset) Line(id string) (*Line, bool) {
	if d == nil {
		return nil, false
	}
	l, ok := d.Lines[id]
	return l, ok
}

// SegmentCount returns the total number of segments over all lines.
func (d *Dataset) SegmentCount() int {
	n := 0
	for _, l := range d.Lines {
		n += len(l.Segments)
	}
	return n
}
