package gtfsrt

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/lmmx/roundel/live"
	"google.golang.org/protobuf/proto"
)

// Provider serves live predictions from a TripUpdates feed.
type Provider struct {
	Client         *Client
	TripUpdatesURL string
	// TTL is how long a decoded feed is reused across lines.
	TTL time.Duration
	Now func() time.Time

	mu        sync.Mutex
	feed      *gtfsrtpb.FeedMessage
	fetchedAt time.Time
}

// NewProvider creates a provider with a 15 second feed TTL.
func NewProvider(client *Client, tripUpdatesURL string) *Provider {
	return &Provider{Client: client, TripUpdatesURL: tripUpdatesURL, TTL: 15 * time.Second, Now: time.Now}
}

// Predictions implements live.Provider.
func (p *Provider) Predictions(ctx context.Context, lineID string) ([]live.Prediction, error) {
	fm, err := p.currentFeed(ctx)
	if err != nil {
		return nil, err
	}
	return PredictionsFromFeed(fm, lineID, p.now()), nil
}

func (p *Provider) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Provider) currentFeed(ctx context.Context) (*gtfsrtpb.FeedMessage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.feed != nil && p.now().Sub(p.fetchedAt) < p.TTL {
		return p.feed, nil
	}
	if p.TripUpdatesURL == "" {
		return nil, fmt.Errorf("no trip updates url configured")
	}
	b, err := p.Client.Fetch(ctx, p.TripUpdatesURL)
	if err != nil {
		return nil, fmt.Errorf("trip updates: %w", err)
	}
	fm, err := DecodeFeed(b)
	if err != nil {
		return nil, err
	}
	p.feed, p.fetchedAt = fm, p.now()
	return fm, nil
}

// DecodeFeed unmarshals raw GTFS-RT bytes.
func DecodeFeed(b []byte) (*gtfsrtpb.FeedMessage, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return nil, fmt.Errorf("failed to decode gtfs-rt feed: %w", err)
	}
	return &fm, nil
}

// PredictionsFromFeed extracts one prediction per TripUpdate on lineID.
//
// Time-to-station is measured from the header timestamp, or now when the
// header has none, to the first stop whose arrival (else departure) time is
// not in the past. Updates without a vehicle id or upcoming stop still yield a
// prediction with those fields left nil.
func PredictionsFromFeed(fm *gtfsrtpb.FeedMessage, lineID string, now time.Time) []live.Prediction {
	ref := now.Unix()
	if ts := fm.GetHeader().GetTimestamp(); ts > 0 {
		ref = int64(ts)
	}
	var out []live.Prediction
	for _, e := range fm.GetEntity() {
		tu := e.GetTripUpdate()
		if tu == nil {
			continue
		}
		route := tu.GetTrip().GetRouteId()
		if !strings.EqualFold(route, lineID) {
			continue
		}
		p := live.Prediction{LineID: proto.String(lineID)}
		if id := tu.GetVehicle().GetId(); id != "" {
			p.VehicleID = proto.String(id)
		} else if label := tu.GetVehicle().GetLabel(); label != "" {
			p.VehicleID = proto.String(label)
		}
		for _, stu := range tu.GetStopTimeUpdate() {
			t := stu.GetArrival().GetTime()
			if t == 0 {
				t = stu.GetDeparture().GetTime()
			}
			if t == 0 || t < ref {
				continue
			}
			secs := int(t - ref)
			p.TimeToStation = &secs
			if stop := stu.GetStopId(); stop != "" {
				p.NaptanID = proto.String(stop)
			}
			break
		}
		out = append(out, p)
	}
	return out
}
