// Package catalog holds the set of routes the simulation is currently using.
//
// A Catalog is produced by the resolver and consumed by the fleet spawner.
// Routes keep their waypoints in world units; vehicles refer to routes by
// index, so a catalog is never edited in place once vehicles exist for it.
package catalog
