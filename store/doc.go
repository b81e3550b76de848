// Package store holds the simulation state: the route catalog, the fleet
// and the pause flag.
//
// Every mutation runs under the exclusive side of one read-biased lock, and
// routes and vehicles are only ever replaced together, so a vehicle's route
// index is valid whenever a reader can observe it.
package store
