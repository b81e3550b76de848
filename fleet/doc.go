// Package fleet spawns vehicles onto catalog routes and advances them.
//
// Every vehicle moves between two adjacent waypoints of its route. Fraction
// is the normalised progress toward NextIndex and always stays in [0, 1);
// the world position is derived from it on every step and never stored as
// the source of truth.
package fleet
