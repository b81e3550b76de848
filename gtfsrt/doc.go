// Package gtfsrt adapts GTFS-Realtime TripUpdates feeds into live arrival
// predictions.
//
// Each TripUpdate whose route matches the requested line yields one
// prediction: the vehicle id from the update's VehicleDescriptor and the
// seconds until the first upcoming stop, measured from the feed header
// timestamp. The decoded feed is kept for a short TTL so that asking for
// every tracked line costs one download.
package gtfsrt
