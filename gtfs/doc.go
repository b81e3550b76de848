/*
Package gtfs turns a GTFS static feed into a topology dataset.

Only the files that describe geometry are read:

  - routes.txt gives each route a line id (route_short_name, falling back to
    route_id) and a transport mode from route_type
  - trips.txt links routes to shape_ids
  - shapes.txt provides the polylines, ordered by shape_pt_sequence
  - stops.txt provides stations (location_type 1 when the feed has parent
    stations, every stop otherwise)

Each distinct shape used by a route becomes one segment of that line.

# Basic Usage

	p := &gtfs.Provider{Source: "https://example.com/gtfs.zip"}
	dataset, err := p.Load(ctx, true)

Source may be a local path or an http(s) URL.

# Performance: Cache the Dataset

Parsing a city-sized zip takes seconds. Set CacheDir and the parsed dataset is
written next to the other cached feeds as gob, keyed by the source, and
reused on the next start.

# Shape density

Raw shapes often carry a point every few metres. MinSpacingKM thins each
shape so that consecutive waypoints are at least that far apart, keeping the
endpoints, which keeps per-segment vehicle speed roughly even.
*/
package gtfs
