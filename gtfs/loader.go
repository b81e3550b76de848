package gtfs

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/lmmx/roundel/topology"
	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
)

// Provider loads a GTFS static zip as a topology dataset.
type Provider struct {
	// Source is a local path or an http(s) URL.
	Source       string
	CacheDir     string
	MinSpacingKM float64
	HTTPClient   *http.Client
}

// Load implements topology.Provider.
func (p *Provider) Load(ctx context.Context, includeBuses bool) (*topology.Dataset, error) {
	cachePath := p.cachePath(includeBuses)
	if cachePath != "" {
		if d, err := LoadDataset(cachePath); err == nil {
			logrus.WithField("cache", cachePath).Debug("gtfs dataset loaded from cache")
			return d, nil
		}
	}
	data, err := p.fetch(ctx)
	if err != nil {
		return nil, err
	}
	d, err := DecodeZip(data, includeBuses, p.MinSpacingKM)
	if err != nil {
		return nil, err
	}
	if cachePath != "" {
		if err := SaveDataset(cachePath, d); err != nil {
			logrus.WithField("cache", cachePath).Warnf("failed to cache gtfs dataset: %v", err)
		}
	}
	return d, nil
}

func (p *Provider) fetch(ctx context.Context) ([]byte, error) {
	if !strings.HasPrefix(p.Source, "http://") && !strings.HasPrefix(p.Source, "https://") {
		b, err := os.ReadFile(p.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p.Source, err)
		}
		return b, nil
	}
	client := p.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.Source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", p.Source, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, p.Source)
	}
	return io.ReadAll(resp.Body)
}

// DecodeZip consumes the geometry tables of a GTFS zip held in memory.
func DecodeZip(data []byte, includeBuses bool, minSpacingKM float64) (*topology.Dataset, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open gtfs zip: %w", err)
	}
	tables := newFeedTables()
	// routes before trips so the route set is known; zip order is arbitrary
	for _, want := range []string{"routes.txt", "trips.txt", "shapes.txt", "stops.txt"} {
		for _, f := range zr.File {
			if strings.EqualFold(baseName(f.Name), want) {
				if err := tables.consumeCSV(f, want); err != nil {
					return nil, fmt.Errorf("%s: %w", want, err)
				}
			}
		}
	}
	return tables.dataset(includeBuses, minSpacingKM), nil
}

func baseName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

func (t *feedTables) consumeCSV(f *zip.File, name string) error {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	rec, err := csvr.ReadAll()
	if err != nil {
		return err
	}
	if len(rec) == 0 {
		return nil
	}
	head := rec[0]
	if len(head) > 0 {
		head[0] = strings.TrimPrefix(head[0], "\ufeff")
	}
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	get := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	switch name {
	case "routes.txt":
		rID := idx("route_id")
		rSN := idx("route_short_name")
		rType := idx("route_type")
		if rID < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			id := get(row, rID)
			line := get(row, rSN)
			if line == "" {
				line = id
			}
			typeInt, err := strconv.Atoi(get(row, rType))
			if err != nil {
				typeInt = 3
			}
			t.routes[id] = routeInfo{lineID: line, routeType: typeInt}
		}
	case "trips.txt":
		rID := idx("route_id")
		sh := idx("shape_id")
		if rID < 0 || sh < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			route, shape := get(row, rID), get(row, sh)
			if shape == "" {
				continue
			}
			set, ok := t.routeShapes[route]
			if !ok {
				set = map[string]struct{}{}
				t.routeShapes[route] = set
			}
			if _, seen := set[shape]; !seen {
				set[shape] = struct{}{}
				t.shapeOrder[route] = append(t.shapeOrder[route], shape)
			}
		}
	case "shapes.txt":
		sh := idx("shape_id")
		latIdx := idx("shape_pt_lat")
		lonIdx := idx("shape_pt_lon")
		seqIdx := idx("shape_pt_sequence")
		if sh < 0 || latIdx < 0 || lonIdx < 0 || seqIdx < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			lat, errLat := strconv.ParseFloat(get(row, latIdx), 64)
			lon, errLon := strconv.ParseFloat(get(row, lonIdx), 64)
			seq, errSeq := strconv.Atoi(get(row, seqIdx))
			if errLat != nil || errLon != nil || errSeq != nil {
				continue
			}
			id := get(row, sh)
			t.shapes[id] = append(t.shapes[id], shapePoint{lon: lon, lat: lat, seq: seq})
		}
	case "stops.txt":
		sID := idx("stop_id")
		sN := idx("stop_name")
		sLat := idx("stop_lat")
		sLon := idx("stop_lon")
		lt := idx("location_type")
		for _, row := range rec[1:] {
			lat, errLat := strconv.ParseFloat(get(row, sLat), 64)
			lon, errLon := strconv.ParseFloat(get(row, sLon), 64)
			if errLat != nil || errLon != nil {
				continue
			}
			locType, _ := strconv.Atoi(get(row, lt))
			if locType == 1 {
				t.hasParents = true
			}
			t.stops = append(t.stops, stopRow{id: get(row, sID), name: get(row, sN), lat: lat, lon: lon, locationType: locType})
		}
	}
	return nil
}

func (t *feedTables) dataset(includeBuses bool, minSpacingKM float64) *topology.Dataset {
	d := topology.NewDataset()

	routeIDs := make([]string, 0, len(t.routes))
	for id := range t.routes {
		routeIDs = append(routeIDs, id)
	}
	sort.Strings(routeIDs)

	for _, routeID := range routeIDs {
		info := t.routes[routeID]
		mode := ModeForRouteType(info.routeType)
		if topology.IsBusMode(mode) && !includeBuses {
			continue
		}
		for _, shapeID := range t.shapeOrder[routeID] {
			pts := t.shapes[shapeID]
			if len(pts) == 0 {
				continue
			}
			sort.SliceStable(pts, func(i, j int) bool { return pts[i].seq < pts[j].seq })
			ls := make(orb.LineString, len(pts))
			for i, p := range pts {
				ls[i] = orb.Point{p.lon, p.lat}
			}
			if minSpacingKM > 0 {
				ls = Thin(ls, minSpacingKM)
			}
			d.AddSegment(info.lineID, mode, ls)
		}
	}

	for _, s := range t.stops {
		if t.hasParents && s.locationType != 1 {
			continue
		}
		d.Stations = append(d.Stations, topology.Station{ID: s.id, Name: s.name, Lat: s.lat, Lon: s.lon})
	}
	return d
}
