package render

import (
	"fmt"
	"sync/atomic"

	"github.com/lmmx/roundel/camera"
	"github.com/lmmx/roundel/catalog"
	"github.com/lmmx/roundel/fleet"
	"github.com/lmmx/roundel/store"
	"github.com/paulmach/orb"
)

// Sink receives finished frames.
type Sink interface {
	Publish(f *Frame)
}

// Builder renders the store through the camera. It satisfies clock.Renderer.
type Builder struct {
	Store  *store.Store
	Camera *camera.Camera
	Sink   Sink

	seq atomic.Uint64
}

// NewBuilder creates a builder. sink may be nil, in which case Render only
// builds frames.
func NewBuilder(s *store.Store, cam *camera.Camera, sink Sink) *Builder {
	return &Builder{Store: s, Camera: cam, Sink: sink}
}

// Render builds a frame and publishes it.
func (b *Builder) Render() {
	f := b.Build()
	if b.Sink != nil {
		b.Sink.Publish(f)
	}
}

// Build draws routes first, then stations, then vehicles, so vehicles end
// up on top.
func (b *Builder) Build() *Frame {
	view := b.Camera.State()
	f := &Frame{
		Seq:    b.seq.Add(1),
		Clear:  true,
		Width:  view.Viewport[0],
		Height: view.Viewport[1],
		Scale:  view.Scale,
	}
	var counts fleet.Counts
	b.Store.View(func(cat *catalog.Catalog, vehicles []fleet.Vehicle) {
		f.Stats.Source = cat.Source
		for i := range cat.Routes {
			drawRoute(f, &cat.Routes[i], view)
		}
		for i := range vehicles {
			drawVehicle(f, &vehicles[i], view, view.HasPick && view.Selected == i)
		}
		counts = fleet.Count(vehicles)
	})
	f.Stats.Buses, f.Stats.Trains, f.Stats.Total = counts.Buses, counts.Trains, counts.Total
	f.Stats.Paused = b.Store.Paused()
	f.Stats.Follow = view.Follow
	if view.HasPick {
		sel := view.Selected
		f.Stats.Selected = &sel
	}
	f.Overlay = statsOverlay(counts)
	return f
}

func drawRoute(f *Frame, r *catalog.Route, view camera.State) {
	if !r.Drivable() {
		return
	}
	pts := make(orb.LineString, len(r.Waypoints))
	for i, w := range r.Waypoints {
		pts[i] = view.WorldToScreen(w)
	}
	stroke := busRouteStroke
	if r.Type == catalog.Train {
		stroke = trainRouteStroke
	}
	f.Polylines = append(f.Polylines, Polyline{Points: pts, Stroke: stroke, Width: routeWidth * view.Scale})

	last := len(pts) - 1
	for i, p := range pts {
		c := Circle{Kind: KindStation, Center: p}
		switch {
		case r.Type == catalog.Train:
			c.Radius, c.Fill = stationRadius, trainStationFill
		case i == 0 || i == last:
			c.Radius, c.Fill = stationRadius, busTerminalFill
		default:
			c.Radius, c.Fill = busStopRadius, busStopFill
		}
		c.Radius *= view.Scale
		f.Circles = append(f.Circles, c)
	}
}

func drawVehicle(f *Frame, v *fleet.Vehicle, view camera.State, selected bool) {
	p := view.WorldToScreen(v.Position())
	c := Circle{Kind: KindVehicle, Center: p, Radius: vehicleRadius * view.Scale}
	switch {
	case v.Type == catalog.Train && selected:
		c.Fill = trainSelectedFill
	case v.Type == catalog.Train:
		c.Fill = trainFill
	case selected:
		c.Fill = busSelectedFill
	default:
		c.Fill = busFill
	}
	if !selected {
		f.Circles = append(f.Circles, c)
		return
	}
	c.Radius = selectedRadius * view.Scale
	f.Circles = append(f.Circles, c, Circle{
		Kind:      KindHighlight,
		Center:    p,
		Radius:    highlightRadius * view.Scale,
		Stroke:    highlightStroke,
		LineWidth: highlightLineWidth,
	})
}

func statsOverlay(c fleet.Counts) Overlay {
	return Overlay{
		Box:        orb.Bound{Min: orb.Point{10, 10}, Max: orb.Point{210, 90}},
		Background: overlayBackground,
		Color:      overlayText,
		Font:       overlayFont,
		Lines: []Text{
			{Text: "Vehicles in transit:", At: orb.Point{20, 30}},
			{Text: fmt.Sprintf("Buses: %d", c.Buses), At: orb.Point{30, 50}},
			{Text: fmt.Sprintf("Trains: %d", c.Trains), At: orb.Point{30, 70}},
			{Text: fmt.Sprintf("Total: %d", c.Total), At: orb.Point{130, 70}},
		},
	}
}
