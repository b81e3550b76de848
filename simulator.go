package roundel

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/lmmx/roundel/camera"
	"github.com/lmmx/roundel/catalog"
	"github.com/lmmx/roundel/clock"
	"github.com/lmmx/roundel/config"
	"github.com/lmmx/roundel/fleet"
	"github.com/lmmx/roundel/geo"
	"github.com/lmmx/roundel/hub"
	"github.com/lmmx/roundel/render"
	"github.com/lmmx/roundel/resolver"
	"github.com/lmmx/roundel/store"
	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
)

// Options configures a Simulator.
type Options struct {
	Spawn          fleet.SpawnConfig
	Limits         camera.Limits
	Viewport       orb.Point
	Projection     geo.Projection
	Interval       time.Duration
	Calibrator     *clock.Calibrator
	ResolveTimeout time.Duration
	FitOnRebuild   bool
	Seed           int64
}

// OptionsFromConfig maps the loaded configuration onto Options.
func OptionsFromConfig(cfg config.AppConfig) Options {
	sim := cfg.Simulation
	opts := Options{
		Spawn: fleet.SpawnConfig{
			BusesPerRoute:  sim.BusesPerRoute,
			TrainsPerRoute: sim.TrainsPerRoute,
			MinSpeed:       sim.MinSpeed,
			MaxSpeed:       sim.MaxSpeed,
		},
		Limits: camera.Limits{
			ScaleMin:    cfg.Camera.ScaleMin,
			ScaleMax:    cfg.Camera.ScaleMax,
			ThresholdPx: cfg.Camera.ThresholdPx,
		},
		Viewport:       orb.Point{cfg.Camera.ViewportWidth, cfg.Camera.ViewportHeight},
		Projection:     ProjectionFromConfig(cfg.Projection),
		Interval:       time.Duration(sim.IntervalMS) * time.Millisecond,
		ResolveTimeout: time.Duration(cfg.Sources.TimeoutMS) * time.Millisecond,
		FitOnRebuild:   cfg.Camera.FitOnRebuild,
		Seed:           sim.Seed,
	}
	if sim.Calibrate {
		opts.Calibrator = &clock.Calibrator{
			Samples:   sim.CalibrationSamples,
			Threshold: time.Duration(sim.CostThresholdMS * float64(time.Millisecond)),
			Fast:      time.Duration(sim.FastIntervalMS) * time.Millisecond,
			Slow:      time.Duration(sim.SlowIntervalMS) * time.Millisecond,
		}
	}
	return opts
}

// ProjectionFromConfig builds the world projection.
func ProjectionFromConfig(p config.ProjectionConfig) geo.Projection {
	return geo.Projection{
		CenterLat: p.CenterLat,
		CenterLon: p.CenterLon,
		Scale:     p.Scale,
		Width:     p.CanvasWidth,
		Height:    p.CanvasHeight,
	}
}

// Simulator owns the simulation state, the view and the tick schedule, and
// is the target of every client intent.
type Simulator struct {
	store    *store.Store
	camera   *camera.Camera
	clock    *clock.Clock
	resolver *resolver.Resolver
	frames   *render.Builder
	hub      *hub.Hub

	spawn          fleet.SpawnConfig
	projection     geo.Projection
	resolveTimeout time.Duration
	fitOnRebuild   bool

	// mu guards mode, generation and rng, and serializes commits.
	mu         sync.Mutex
	mode       resolver.Mode
	generation uint64
	rng        *rand.Rand

	pending sync.WaitGroup
}

// NewSimulator creates a simulator with an empty fleet. Call SetDataSource
// or Start to populate it.
func NewSimulator(res *resolver.Resolver, opts Options) *Simulator {
	if opts.ResolveTimeout <= 0 {
		opts.ResolveTimeout = 10 * time.Second
	}
	if opts.Viewport[0] <= 0 || opts.Viewport[1] <= 0 {
		opts.Viewport = orb.Point{opts.Projection.Width, opts.Projection.Height}
	}
	s := &Simulator{
		store:          store.New(),
		camera:         camera.New(opts.Limits, opts.Viewport[0], opts.Viewport[1]),
		resolver:       res,
		spawn:          opts.Spawn,
		projection:     opts.Projection,
		resolveTimeout: opts.ResolveTimeout,
		fitOnRebuild:   opts.FitOnRebuild,
		rng:            rand.New(rand.NewSource(opts.Seed)),
	}
	s.hub = hub.New(s)
	s.frames = render.NewBuilder(s.store, s.camera, s.hub)
	s.clock = clock.New(clock.TickerFunc(s.advance), s.frames, opts.Interval, opts.Calibrator)
	return s
}

// Start resolves the initial data source and launches the clock.
func (s *Simulator) Start(ctx context.Context, mode resolver.Mode) error {
	if err := s.SetDataSource(mode); err != nil {
		return err
	}
	if err := s.clock.Start(ctx); err != nil {
		return err
	}
	s.clock.SetPaused(s.store.Paused())
	return nil
}

// Close stops the clock, waits for in-flight resolves and disconnects every
// client.
func (s *Simulator) Close() {
	s.clock.Stop()
	s.pending.Wait()
	s.hub.Close()
}

// Wait blocks until every asynchronous resolve has committed or been
// discarded.
func (s *Simulator) Wait() {
	s.pending.Wait()
}

func (s *Simulator) advance() {
	if s.store.Tick() {
		s.camera.Follow(s.store.Positions())
	}
}

// Tick advances one frame now and renders it. Paused simulations only
// render.
func (s *Simulator) Tick() {
	s.advance()
	s.frames.Render()
}

// SetPaused sets the pause flag and returns it.
func (s *Simulator) SetPaused(paused bool) bool {
	p := s.store.SetPaused(paused)
	s.clock.SetPaused(p)
	return p
}

// TogglePaused flips the pause flag and returns the new value.
func (s *Simulator) TogglePaused() bool {
	p := s.store.TogglePaused()
	s.clock.SetPaused(p)
	return p
}

func (s *Simulator) Paused() bool {
	return s.store.Paused()
}

// SetTickInterval changes the tick period to ms milliseconds.
func (s *Simulator) SetTickInterval(ms int) {
	s.clock.SetInterval(time.Duration(ms) * time.Millisecond)
}

func (s *Simulator) Interval() time.Duration {
	return s.clock.Interval()
}

// SetDataSource switches the data source. Static and synthetic modes rebuild
// before returning; live mode resolves in the background and commits only if
// no later SetDataSource call superseded it.
func (s *Simulator) SetDataSource(mode resolver.Mode) error {
	mode, err := resolver.ParseMode(string(mode))
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mode = mode
	s.mu.Unlock()

	if !mode.Async() {
		s.commit(mode, gen, s.resolver.Resolve(context.Background(), mode))
		return nil
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.resolveTimeout)
		defer cancel()
		s.commit(mode, gen, s.resolver.Resolve(ctx, mode))
	}()
	return nil
}

// commit rebuilds the fleet from cat unless the request that produced it is
// stale.
func (s *Simulator) commit(mode resolver.Mode, gen uint64, cat *catalog.Catalog) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := logrus.WithFields(logrus.Fields{"mode": mode, "generation": gen})
	if s.mode != mode || s.generation != gen {
		log.WithField("current", s.mode).Debug("discarding stale data source result")
		return false
	}
	// Selections index the old fleet. Clearing on both sides of the swap
	// also drops a pick that lands while the new fleet spawns.
	s.camera.Select(-1)
	counts := s.store.Rebuild(cat, func(c *catalog.Catalog) []fleet.Vehicle {
		return fleet.Build(c, s.spawn, s.rng)
	})
	s.camera.Select(-1)
	if s.fitOnRebuild {
		if b, ok := s.store.Bound(); ok {
			s.camera.FitBounds(b)
		}
	}
	log.WithField("source", cat.Source).Infof("fleet rebuilt: %d buses, %d trains", counts.Buses, counts.Trains)
	return true
}

// Mode returns the most recently requested data source.
func (s *Simulator) Mode() resolver.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// PickVehicle selects the vehicle nearest the screen point, if any is within
// the pick threshold.
func (s *Simulator) PickVehicle(x, y float64) (int, bool) {
	return s.camera.Pick(orb.Point{x, y}, s.store.Positions())
}

// SetFollow turns follow mode on or off and returns the effective value.
func (s *Simulator) SetFollow(on bool) bool {
	f := s.camera.SetFollow(on)
	if f {
		s.camera.Follow(s.store.Positions())
	}
	return f
}

func (s *Simulator) GetVehicleCounts() fleet.Counts {
	return s.store.Counts()
}

func (s *Simulator) DragStart(x, y float64) {
	s.camera.DragStart(x, y)
}

func (s *Simulator) DragMove(x, y float64) {
	s.camera.DragMove(x, y)
}

func (s *Simulator) DragEnd() {
	s.camera.DragEnd()
}

func (s *Simulator) Zoom(wheelDelta float64) {
	s.camera.Zoom(wheelDelta)
}

func (s *Simulator) PinchStart(dist float64) {
	s.camera.PinchStart(dist)
}

func (s *Simulator) PinchMove(dist float64) {
	s.camera.PinchMove(dist)
}

func (s *Simulator) Resize(width, height float64) {
	s.camera.Resize(width, height)
}

// Snapshot copies the current simulation state.
func (s *Simulator) Snapshot() store.Snapshot {
	return s.store.Snapshot()
}

func (s *Simulator) Projection() geo.Projection {
	return s.projection
}

func (s *Simulator) Camera() *camera.Camera {
	return s.camera
}

// Hub serves the frame stream and accepts intents.
func (s *Simulator) Hub() *hub.Hub {
	return s.hub
}

// Frame builds the current frame without publishing it.
func (s *Simulator) Frame() *render.Frame {
	return s.frames.Build()
}
