/*
Package topology loads network geometry: per line, one or more polylines in
[lon, lat] order plus a transport mode, and optionally the stations.

Three providers ship with the package:

  - GeoJSONProvider reads a FeatureCollection where LineString and
    MultiLineString features carry "lineId" and "mode" properties and Point
    features are stations.
  - MongoProvider reads route-sequence documents from a db.coll collection.
  - RouteSequenceFile reads the same documents from a JSON array on disk.

Route-sequence documents store their geometry as JSON-encoded strings
("[[[lon,lat],...]]"), decoded by DecodeLineStrings.

Bus lines are dropped unless the caller asks for them.
*/
package topology
