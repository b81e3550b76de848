package gtfs

// routeInfo is what routes.txt tells us about a route
type routeInfo struct {
	lineID    string
	routeType int
}

// shapePoint is one row of shapes.txt
type shapePoint struct {
	lon, lat float64
	seq      int
}

// feedTables holds the raw rows consumed from the zip
type feedTables struct {
	routes      map[string]routeInfo           // route_id -> info
	routeShapes map[string]map[string]struct{} // route_id -> set of shape_id
	shapeOrder  map[string][]string            // route_id -> shape_ids in first-seen order
	shapes      map[string][]shapePoint        // shape_id -> points
	stops       []stopRow
	hasParents  bool
}

type stopRow struct {
	id, name     string
	lat, lon     float64
	locationType int
}

func newFeedTables() *feedTables {
	return &feedTables{
		routes:      map[string]routeInfo{},
		routeShapes: map[string]map[string]struct{}{},
		shapeOrder:  map[string][]string{},
		shapes:      map[string][]shapePoint{},
	}
}

// ModeForRouteType maps the GTFS route_type enum (including the common
// extended bus range 700-799) to a mode name.
func ModeForRouteType(t int) string {
	switch {
	case t == 0:
		return "tram"
	case t == 1:
		return "subway"
	case t == 2:
		return "rail"
	case t == 3 || t == 11 || (t >= 700 && t < 800):
		return "bus"
	case t == 4:
		return "ferry"
	case t == 5:
		return "cable-car"
	case t == 6:
		return "gondola"
	case t == 7:
		return "funicular"
	case t == 12:
		return "monorail"
	default:
		return "rail"
	}
}
