package live

import (
	"context"

	"github.com/lmmx/roundel/catalog"
)

// Provider fetches arrival predictions for one line.
type Provider interface {
	Predictions(ctx context.Context, lineID string) ([]Prediction, error)
}

// Prediction is one upstream arrival prediction. Fields are pointers because
// the upstream may omit any of them.
type Prediction struct {
	ID              *string `json:"id,omitempty"`
	VehicleID       *string `json:"vehicleId,omitempty"`
	NaptanID        *string `json:"naptanId,omitempty"`
	StationName     *string `json:"stationName,omitempty"`
	LineID          *string `json:"lineId,omitempty"`
	LineName        *string `json:"lineName,omitempty"`
	PlatformName    *string `json:"platformName,omitempty"`
	Direction       *string `json:"direction,omitempty"`
	DestinationName *string `json:"destinationName,omitempty"`
	TimeToStation   *int    `json:"timeToStation,omitempty"`
	CurrentLocation *string `json:"currentLocation,omitempty"`
	Towards         *string `json:"towards,omitempty"`
	ModeName        *string `json:"modeName,omitempty"`
}

// Arrival is a complete, deduplicated prediction.
type Arrival struct {
	VehicleID     string
	LineID        string
	TimeToStation int
	StationName   string
}

func (p Prediction) arrival() (Arrival, bool) {
	if p.VehicleID == nil || *p.VehicleID == "" || p.TimeToStation == nil || p.LineID == nil || *p.LineID == "" {
		return Arrival{}, false
	}
	a := Arrival{VehicleID: *p.VehicleID, LineID: *p.LineID, TimeToStation: *p.TimeToStation}
	if p.StationName != nil {
		a.StationName = *p.StationName
	}
	return a, true
}

// Dedupe keeps one arrival per vehicle id: the one with the smallest
// time-to-station, the first seen on ties. Output keeps first-seen order.
// Predictions missing a vehicle id, time or line id are skipped.
func Dedupe(preds []Prediction) []Arrival {
	index := map[string]int{}
	var out []Arrival
	for _, p := range preds {
		a, ok := p.arrival()
		if !ok {
			continue
		}
		i, seen := index[a.VehicleID]
		if !seen {
			index[a.VehicleID] = len(out)
			out = append(out, a)
			continue
		}
		if a.TimeToStation < out[i].TimeToStation {
			out[i] = a
		}
	}
	return out
}

// Fraction converts a time-to-station into progress toward the station over
// a horizon of capSeconds: 0 at or beyond the horizon, 1 on arrival. The
// placement step normalises a fraction of 1 onto the next segment.
func Fraction(timeToStation int, capSeconds float64) float64 {
	if capSeconds <= 0 {
		return 0
	}
	t := float64(timeToStation)
	if t < 0 {
		t = 0
	}
	if t > capSeconds {
		t = capSeconds
	}
	return (capSeconds - t) / capSeconds
}

// VehicleTypeForLine classifies a TfL line id. Known rail lines are trains;
// anything else is assumed to be a bus route.
func VehicleTypeForLine(lineID string) catalog.RouteType {
	switch lineID {
	case "dlr", "elizabeth", "london-cable-car",
		"waterloo-city", "victoria", "piccadilly", "northern", "metropolitan",
		"jubilee", "hammersmith-city", "district", "circle", "central", "bakerloo",
		"thameslink", "tram",
		"liberty", "lioness", "mildmay", "suffragette", "weaver", "windrush":
		return catalog.Train
	default:
		return catalog.Bus
	}
}
