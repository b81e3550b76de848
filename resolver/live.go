package resolver

import (
	"context"
	"fmt"
	"math"

	"github.com/lmmx/roundel/catalog"
	"github.com/lmmx/roundel/geo"
	"github.com/lmmx/roundel/live"
	"github.com/paulmach/orb"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// placeholderSpan is the length in degrees of the stub route a line gets when
// the topology has no geometry for it.
const placeholderSpan = 0.0141

// LiveTier places one vehicle per live prediction.
type LiveTier struct {
	Providers  []live.Provider
	Lines      []string
	CapSeconds float64
	Projection geo.Projection
	// Topology, when set, supplies real line geometry for placements.
	Topology *TopologySource
}

func (t *LiveTier) Name() string { return string(ModeLive) }

func (t *LiveTier) Resolve(ctx context.Context) (*catalog.Catalog, error) {
	if len(t.Providers) == 0 {
		return nil, fmt.Errorf("no live providers configured")
	}
	lines := lo.Uniq(t.Lines)
	cat := catalog.New(string(ModeLive), nil)
	for i, lineID := range lines {
		arrivals := t.arrivals(ctx, lineID)
		if len(arrivals) == 0 {
			continue
		}
		ri := cat.Add(t.routeFor(ctx, lineID, i, len(lines)))
		for _, a := range arrivals {
			cat.Placements = append(cat.Placements, catalog.Placement{
				RouteIndex: ri,
				VehicleID:  a.VehicleID,
				LineID:     a.LineID,
				Fraction:   live.Fraction(a.TimeToStation, t.CapSeconds),
				Direction:  1,
			})
		}
	}
	if len(cat.Placements) == 0 {
		return nil, fmt.Errorf("no live vehicles found across %d lines", len(lines))
	}
	return cat, nil
}

// arrivals gathers predictions for one line from every provider and
// deduplicates them. Provider failures only lose that provider's data.
func (t *LiveTier) arrivals(ctx context.Context, lineID string) []live.Arrival {
	var preds []live.Prediction
	for _, p := range t.Providers {
		got, err := p.Predictions(ctx, lineID)
		if err != nil {
			logrus.WithFields(logrus.Fields{"tier": t.Name(), "line": lineID}).
				Warnf("failed to fetch arrivals: %v", err)
			continue
		}
		preds = append(preds, got...)
	}
	arrivals := live.Dedupe(preds)
	logrus.WithFields(logrus.Fields{"tier": t.Name(), "line": lineID}).
		Debugf("processing %d arrivals from %d predictions", len(arrivals), len(preds))
	return arrivals
}

// routeFor returns the route hosting a line's live vehicles: the line's first
// usable topology segment when one is known, else a short stub leaving the
// centre at an angle unique to the line.
func (t *LiveTier) routeFor(ctx context.Context, lineID string, i, n int) catalog.Route {
	r := catalog.Route{
		Name:   fmt.Sprintf("%s (segment 0)", lineID),
		LineID: lineID,
		Type:   live.VehicleTypeForLine(lineID),
	}
	if t.Topology != nil {
		if ds, err := t.Topology.Dataset(ctx); err == nil {
			if line, ok := ds.Line(lineID); ok {
				if seg, ok := firstUsableSegment(line); ok {
					if line.Mode != "" {
						r.Type = catalog.TypeForMode(line.Mode)
					}
					r.Waypoints = t.Projection.ProjectLineString(seg)
					return r
				}
			}
		}
	}
	r.Waypoints = placeholderRoute(t.Projection, i, n)
	return r
}

func placeholderRoute(proj geo.Projection, i, n int) orb.LineString {
	const lat0, lon0 = 51.5074, -0.1278
	a := math.Pi / 4
	if n > 0 {
		a += 2 * math.Pi * float64(i) / float64(n)
	}
	return orb.LineString{
		proj.Project(lat0, lon0),
		proj.Project(lat0+placeholderSpan*math.Sin(a), lon0+placeholderSpan*math.Cos(a)),
	}
}
