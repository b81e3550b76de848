package resolver

import (
	"context"
	"fmt"

	"github.com/lmmx/roundel/catalog"
	"github.com/lmmx/roundel/geo"
	"github.com/lmmx/roundel/topology"
	"github.com/paulmach/orb"
	"github.com/samber/lo"
)

// StaticTier builds one route per usable line segment of the topology.
type StaticTier struct {
	Topology     *TopologySource
	Projection   geo.Projection
	IncludeBuses bool
	// SampleFallback serves SampleRoutes when the dataset has lines but none
	// of them are usable.
	SampleFallback bool
}

func (t *StaticTier) Name() string { return string(ModeStatic) }

func (t *StaticTier) Resolve(ctx context.Context) (*catalog.Catalog, error) {
	ds, err := t.Topology.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	cat := RoutesFromDataset(ds, t.Projection, t.IncludeBuses)
	if cat.DrivableCount() > 0 {
		return cat, nil
	}
	if t.SampleFallback && len(ds.Lines) > 0 {
		return catalog.New("sample", SampleRoutes(t.Projection)), nil
	}
	return nil, fmt.Errorf("topology has no usable routes (%d lines)", len(ds.Lines))
}

// RoutesFromDataset projects every segment with at least two points. Lines
// are visited in sorted id order so route indices are stable across loads.
func RoutesFromDataset(ds *topology.Dataset, proj geo.Projection, includeBuses bool) *catalog.Catalog {
	cat := catalog.New(string(ModeStatic), nil)
	for _, id := range ds.LineIDs() {
		line := ds.Lines[id]
		if !includeBuses && topology.IsBusMode(line.Mode) {
			continue
		}
		typ := catalog.TypeForMode(line.Mode)
		for i, seg := range line.Segments {
			if len(seg) < 2 {
				continue
			}
			cat.Add(catalog.Route{
				Name:      fmt.Sprintf("%s (segment %d)", id, i),
				LineID:    id,
				Type:      typ,
				Waypoints: proj.ProjectLineString(seg),
			})
		}
	}
	return cat
}

// firstUsableSegment returns the first segment of a line with two or more
// points.
func firstUsableSegment(line *topology.Line) (orb.LineString, bool) {
	return lo.Find(line.Segments, func(s orb.LineString) bool { return len(s) >= 2 })
}
