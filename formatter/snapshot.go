package formatter

import (
	"strings"
	"time"

	"github.com/lmmx/roundel/catalog"
	"github.com/lmmx/roundel/geo"
	"github.com/lmmx/roundel/store"
)

// Response is the root of a vehicle snapshot.
type Response struct {
	Siri Siri `json:"Siri"`
}

type Siri struct {
	ServiceDelivery ServiceDelivery `json:"ServiceDelivery"`
}

type ServiceDelivery struct {
	ResponseTimestamp         string              `json:"ResponseTimestamp"`
	ProducerRef               string              `json:"ProducerRef"`
	VehicleMonitoringDelivery []VehicleMonitoring `json:"VehicleMonitoringDelivery"`
}

type VehicleMonitoring struct {
	ResponseTimestamp string            `json:"ResponseTimestamp"`
	ValidUntil        string            `json:"ValidUntil,omitempty"`
	Source            string            `json:"Source"`
	Paused            bool              `json:"Paused"`
	VehicleActivity   []VehicleActivity `json:"VehicleActivity"`
}

type VehicleActivity struct {
	RecordedAtTime          string                  `json:"RecordedAtTime"`
	MonitoredVehicleJourney MonitoredVehicleJourney `json:"MonitoredVehicleJourney"`
}

type MonitoredVehicleJourney struct {
	LineRef           string          `json:"LineRef"`
	DirectionRef      int             `json:"DirectionRef"`
	VehicleMode       string          `json:"VehicleMode"`
	PublishedLineName string          `json:"PublishedLineName,omitempty"`
	Monitored         bool            `json:"Monitored"`
	VehicleLocation   VehicleLocation `json:"VehicleLocation"`
	ProgressRate      float64         `json:"ProgressRate"`
	VehicleRef        string          `json:"VehicleRef"`
	RouteRef          int             `json:"RouteRef"`
}

type VehicleLocation struct {
	Latitude  float64 `json:"Latitude"`
	Longitude float64 `json:"Longitude"`
}

// Filter narrows a snapshot. Empty fields match everything.
type Filter struct {
	LineRef     string
	VehicleMode string
}

// BuildServiceDelivery creates the delivery wrapper with ResponseTimestamp
// and ProducerRef.
func BuildServiceDelivery(ts time.Time, producer string) ServiceDelivery {
	if producer == "" {
		producer = "UNKNOWN"
	}
	return ServiceDelivery{
		ResponseTimestamp: Iso8601(ts),
		ProducerRef:       producer,
	}
}

// BuildVehicleMonitoring converts a store snapshot into a response, with
// world positions unprojected back to lat/lon. validFor is how long the
// positions stay current, normally one tick interval.
func BuildVehicleMonitoring(snap store.Snapshot, proj geo.Projection, ts time.Time, validFor time.Duration, producer string) *Response {
	vm := VehicleMonitoring{
		ResponseTimestamp: Iso8601(ts),
		ValidUntil:        ValidUntil(ts, validFor),
		Source:            snap.Source,
		Paused:            snap.Paused,
		VehicleActivity:   make([]VehicleActivity, 0, len(snap.Vehicles)),
	}
	for _, v := range snap.Vehicles {
		lat, lon := proj.Unproject(v.Position())
		ref := v.ExternalID
		if ref == "" {
			ref = vehicleRef(v.ID)
		}
		mvj := MonitoredVehicleJourney{
			LineRef:         v.LineID,
			DirectionRef:    v.Direction,
			VehicleMode:     vehicleMode(v.Type),
			Monitored:       v.ExternalID != "",
			VehicleLocation: VehicleLocation{Latitude: lat, Longitude: lon},
			ProgressRate:    v.Speed,
			VehicleRef:      ref,
			RouteRef:        v.RouteIndex,
		}
		if v.RouteIndex < len(snap.Routes) {
			mvj.PublishedLineName = snap.Routes[v.RouteIndex].Name
		}
		vm.VehicleActivity = append(vm.VehicleActivity, VehicleActivity{
			RecordedAtTime:          Iso8601(ts),
			MonitoredVehicleJourney: mvj,
		})
	}
	sd := BuildServiceDelivery(ts, producer)
	sd.VehicleMonitoringDelivery = []VehicleMonitoring{vm}
	return &Response{Siri: Siri{ServiceDelivery: sd}}
}

// FilterVehicleMonitoring keeps activities whose line contains f.LineRef and
// whose mode equals f.VehicleMode, both compared case-insensitively.
func FilterVehicleMonitoring(res *Response, f Filter) *Response {
	lineRef := strings.ToLower(strings.TrimSpace(f.LineRef))
	mode := strings.ToLower(strings.TrimSpace(f.VehicleMode))
	if lineRef == "" && mode == "" {
		return res
	}
	out := *res
	out.Siri.ServiceDelivery.VehicleMonitoringDelivery = nil
	for _, vm := range res.Siri.ServiceDelivery.VehicleMonitoringDelivery {
		filtered := vm
		filtered.VehicleActivity = []VehicleActivity{}
		for _, va := range vm.VehicleActivity {
			mvj := va.MonitoredVehicleJourney
			if lineRef != "" && !strings.Contains(strings.ToLower(mvj.LineRef), lineRef) {
				continue
			}
			if mode != "" && mvj.VehicleMode != mode {
				continue
			}
			filtered.VehicleActivity = append(filtered.VehicleActivity, va)
		}
		out.Siri.ServiceDelivery.VehicleMonitoringDelivery = append(out.Siri.ServiceDelivery.VehicleMonitoringDelivery, filtered)
	}
	return &out
}

func vehicleMode(t catalog.RouteType) string {
	if t == catalog.Train {
		return "rail"
	}
	return "bus"
}
