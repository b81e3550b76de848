package topology

import (
	"context"
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// GeoJSONProvider loads a FeatureCollection file.
type GeoJSONProvider struct {
	Path string
}

// Load implements Provider.
func (p *GeoJSONProvider) Load(_ context.Context, includeBuses bool) (*Dataset, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	return DecodeGeoJSON(data, includeBuses)
}

// DecodeGeoJSON builds a dataset from FeatureCollection bytes.
func DecodeGeoJSON(data []byte, includeBuses bool) (*Dataset, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "Can't parse GeoJSON")
	}
	d := NewDataset()
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		if f.Geometry.Type == geojson.GeometryPoint {
			d.Stations = append(d.Stations, featureStation(f))
			continue
		}
		lineID, _ := f.PropertyString("lineId")
		if lineID == "" {
			continue
		}
		mode, _ := f.PropertyString("mode")
		if IsBusMode(mode) && !includeBuses {
			continue
		}
		switch f.Geometry.Type {
		case geojson.GeometryLineString:
			d.AddSegment(lineID, mode, toLineString(f.Geometry.LineString))
		case geojson.GeometryMultiLineString:
			for _, coords := range f.Geometry.MultiLineString {
				d.AddSegment(lineID, mode, toLineString(coords))
			}
		}
	}
	return d, nil
}

func featureStation(f *geojson.Feature) Station {
	s := Station{}
	s.ID, _ = f.PropertyString("id")
	s.Name, _ = f.PropertyString("name")
	if len(f.Geometry.Point) >= 2 {
		s.Lon, s.Lat = f.Geometry.Point[0], f.Geometry.Point[1]
	}
	return s
}

func toLineString(coords [][]float64) orb.LineString {
	ls := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		ls = append(ls, orb.Point{c[0], c[1]})
	}
	return ls
}
