package store

import (
	"github.com/lmmx/roundel/catalog"
	"github.com/lmmx/roundel/fleet"
	"github.com/paulmach/orb"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/samber/lo"
)

// Spawner builds the fleet for a freshly resolved catalog.
type Spawner func(cat *catalog.Catalog) []fleet.Vehicle

// Store is the single mutation point of the simulation.
type Store struct {
	mu       *xsync.RBMutex
	catalog  *catalog.Catalog
	vehicles []fleet.Vehicle
	paused   bool
	counts   fleet.Counts
	ticks    uint64
}

// New returns an empty, unpaused store.
func New() *Store {
	return &Store{
		mu:      xsync.NewRBMutex(),
		catalog: catalog.New("", nil),
	}
}

// Rebuild swaps in a new catalog and the fleet spawned on it. The spawner
// runs before the lock is taken; the swap itself is one exclusive section.
func (s *Store) Rebuild(cat *catalog.Catalog, spawn Spawner) fleet.Counts {
	vehicles := spawn(cat)
	counts := fleet.Count(vehicles)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = cat
	s.vehicles = vehicles
	s.counts = counts
	return counts
}

// Clear drops every route and vehicle. The pause flag is kept.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = catalog.New("", nil)
	s.vehicles = nil
	s.counts = fleet.Counts{}
}

// Tick advances every vehicle by one step. It returns false without doing
// anything while paused.
func (s *Store) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused {
		return false
	}
	for i := range s.vehicles {
		v := &s.vehicles[i]
		fleet.UpdatePosition(v, &s.catalog.Routes[v.RouteIndex])
	}
	s.counts = fleet.Count(s.vehicles)
	s.ticks++
	return true
}

// SetPaused sets the pause flag and returns the new value.
func (s *Store) SetPaused(paused bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
	return s.paused
}

// TogglePaused flips the pause flag and returns the new value.
func (s *Store) TogglePaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = !s.paused
	return s.paused
}

func (s *Store) Paused() bool {
	t := s.mu.RLock()
	defer s.mu.RUnlock(t)
	return s.paused
}

// Counts returns the aggregate computed on the last tick or rebuild.
func (s *Store) Counts() fleet.Counts {
	t := s.mu.RLock()
	defer s.mu.RUnlock(t)
	return s.counts
}

// Ticks returns how many kinematic passes have run.
func (s *Store) Ticks() uint64 {
	t := s.mu.RLock()
	defer s.mu.RUnlock(t)
	return s.ticks
}

// Source names the tier that produced the current catalog.
func (s *Store) Source() string {
	t := s.mu.RLock()
	defer s.mu.RUnlock(t)
	return s.catalog.Source
}

// Positions returns the world position of every vehicle, indexed like the
// fleet.
func (s *Store) Positions() []orb.Point {
	t := s.mu.RLock()
	defer s.mu.RUnlock(t)
	return lo.Map(s.vehicles, func(v fleet.Vehicle, _ int) orb.Point {
		return v.Position()
	})
}

// Bound returns the bounding box of the current catalog.
func (s *Store) Bound() (orb.Bound, bool) {
	t := s.mu.RLock()
	defer s.mu.RUnlock(t)
	return s.catalog.Bound()
}

// View calls fn with the current catalog and fleet under the read lock. fn
// must not retain or modify either.
func (s *Store) View(fn func(cat *catalog.Catalog, vehicles []fleet.Vehicle)) {
	t := s.mu.RLock()
	defer s.mu.RUnlock(t)
	fn(s.catalog, s.vehicles)
}

// Snapshot is a copy of the fleet safe to use outside the lock.
type Snapshot struct {
	Source   string
	Paused   bool
	Ticks    uint64
	Counts   fleet.Counts
	Vehicles []fleet.Vehicle
	Routes   []catalog.Route
}

// Snapshot copies the vehicles. Routes are shared: catalogs are never
// mutated after a rebuild.
func (s *Store) Snapshot() Snapshot {
	t := s.mu.RLock()
	defer s.mu.RUnlock(t)
	return Snapshot{
		Source:   s.catalog.Source,
		Paused:   s.paused,
		Ticks:    s.ticks,
		Counts:   s.counts,
		Vehicles: append([]fleet.Vehicle(nil), s.vehicles...),
		Routes:   s.catalog.Routes,
	}
}
