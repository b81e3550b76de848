package render

import "github.com/paulmach/orb"

// Styles lifted from the canvas renderer. Trains are drawn in reds, buses in
// blues.
const (
	trainRouteStroke   = "rgba(255, 0, 0, 0.4)"
	busRouteStroke     = "rgba(0, 0, 255, 0.4)"
	trainStationFill   = "rgba(255, 100, 100, 0.7)"
	busTerminalFill    = "rgba(50, 50, 255, 0.9)"
	busStopFill        = "rgba(100, 100, 255, 0.6)"
	busFill            = "blue"
	busSelectedFill    = "lime"
	trainFill          = "red"
	trainSelectedFill  = "orange"
	highlightStroke    = "yellow"
	overlayBackground  = "rgba(255, 255, 255, 0.7)"
	overlayText        = "black"
	overlayFont        = "16px Arial"
	routeWidth         = 2.0
	stationRadius      = 5.0
	busStopRadius      = 2.0
	vehicleRadius      = 2.0
	selectedRadius     = 3.0
	highlightRadius    = 6.0
	highlightLineWidth = 2.0
)

// Kind tags a circle so clients can layer or filter them.
type Kind string

const (
	KindStation   Kind = "station"
	KindVehicle   Kind = "vehicle"
	KindHighlight Kind = "highlight"
)

// Polyline is a stroked route.
type Polyline struct {
	Points orb.LineString `json:"points"`
	Stroke string         `json:"stroke"`
	Width  float64        `json:"width"`
}

// Circle is a filled and/or stroked disc.
type Circle struct {
	Kind      Kind      `json:"kind"`
	Center    orb.Point `json:"center"`
	Radius    float64   `json:"radius"`
	Fill      string    `json:"fill,omitempty"`
	Stroke    string    `json:"stroke,omitempty"`
	LineWidth float64   `json:"lineWidth,omitempty"`
}

// Text is one overlay label.
type Text struct {
	Text string    `json:"text"`
	At   orb.Point `json:"at"`
}

// Overlay is the stats box in the top-left corner, in unscaled pixels.
type Overlay struct {
	Box        orb.Bound `json:"box"`
	Background string    `json:"background"`
	Color      string    `json:"color"`
	Font       string    `json:"font"`
	Lines      []Text    `json:"lines"`
}

// Stats mirrors the overlay as data.
type Stats struct {
	Buses    int    `json:"buses"`
	Trains   int    `json:"trains"`
	Total    int    `json:"total"`
	Paused   bool   `json:"paused"`
	Source   string `json:"source"`
	Selected *int   `json:"selected,omitempty"`
	Follow   bool   `json:"follow"`
}

// Frame is everything needed to draw one tick.
type Frame struct {
	Seq       uint64     `json:"seq"`
	Clear     bool       `json:"clear"`
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Scale     float64    `json:"scale"`
	Polylines []Polyline `json:"polylines"`
	Circles   []Circle   `json:"circles"`
	Overlay   Overlay    `json:"overlay"`
	Stats     Stats      `json:"stats"`
}
