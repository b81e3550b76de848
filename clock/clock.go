package clock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// State of the clock.
type State string

const (
	Idle    State = "idle"
	Running State = "running"
	Paused  State = "paused"
)

// DefaultInterval is roughly 60 ticks per second.
const DefaultInterval = 16 * time.Millisecond

// ErrRunning is returned by Start on a clock that is already started.
var ErrRunning = errors.New("clock already running")

// Ticker advances the simulation by one step.
type Ticker interface {
	Tick()
}

// Renderer draws the current state.
type Renderer interface {
	Render()
}

// TickerFunc adapts a function to Ticker.
type TickerFunc func()

func (f TickerFunc) Tick() { f() }

// RendererFunc adapts a function to Renderer.
type RendererFunc func()

func (f RendererFunc) Render() { f() }

// Clock schedules ticks. Both Running and Paused render; only Running ticks.
type Clock struct {
	ticker   Ticker
	renderer Renderer

	mu         sync.Mutex
	state      State
	interval   time.Duration
	calibrator *Calibrator
	pinned     bool
	intervals  chan time.Duration
	cancel     context.CancelFunc
	done       chan struct{}
	frames     uint64
}

// New creates an idle clock. calibrator may be nil to disable calibration.
func New(ticker Ticker, renderer Renderer, interval time.Duration, calibrator *Calibrator) *Clock {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Clock{
		ticker:     ticker,
		renderer:   renderer,
		state:      Idle,
		interval:   interval,
		calibrator: calibrator,
	}
}

// Start launches the tick loop. The loop ends on Stop or when ctx is done.
func (c *Clock) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Idle {
		return ErrRunning
	}
	if c.calibrator != nil {
		c.calibrator.Reset()
		if c.pinned {
			c.calibrator.Finish()
		}
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.intervals = make(chan time.Duration, 1)
	c.done = make(chan struct{})
	c.state = Running
	go c.loop(ctx, c.interval, c.intervals, c.done)
	return nil
}

// Stop ends the loop, waits for it to exit and returns the clock to Idle.
func (c *Clock) Stop() {
	c.mu.Lock()
	if c.state == Idle {
		c.mu.Unlock()
		return
	}
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	cancel()
	<-done

	c.mu.Lock()
	c.state = Idle
	c.cancel, c.done, c.intervals = nil, nil, nil
	c.mu.Unlock()
}

// SetPaused switches between Running and Paused. It has no effect on an
// idle clock.
func (c *Clock) SetPaused(paused bool) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.state == Idle:
	case paused:
		c.state = Paused
	default:
		c.state = Running
	}
	return c.state
}

func (c *Clock) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Clock) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// Frames returns how many loop iterations have rendered.
func (c *Clock) Frames() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

// SetInterval changes the tick interval. A running loop swaps its ticker on
// its own goroutine; an idle clock uses d on the next Start. An explicit
// interval ends calibration and keeps it from running on later Starts.
func (c *Clock) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = d
	c.pinned = true
	if c.calibrator != nil {
		c.calibrator.Finish()
	}
	if c.intervals == nil {
		return
	}
	// keep only the latest request
	select {
	case <-c.intervals:
	default:
	}
	c.intervals <- d
}

func (c *Clock) loop(ctx context.Context, interval time.Duration, intervals <-chan time.Duration, done chan<- struct{}) {
	defer close(done)
	t := time.NewTicker(interval)
	defer func() { t.Stop() }()

	swap := func(d time.Duration) {
		t.Stop()
		t = time.NewTicker(d)
		logrus.WithField("interval", d).Debug("tick interval changed")
	}

	for {
		select {
		case <-ctx.Done():
			return
		case d := <-intervals:
			swap(d)
		case <-t.C:
			if d, ok := c.frame(); ok {
				swap(d)
			}
		}
	}
}

// frame runs one tick and render and feeds the calibrator. Render-only
// frames are not sampled. It returns a new interval when calibration has
// just finished.
func (c *Clock) frame() (time.Duration, bool) {
	start := time.Now()
	ticked := c.State() == Running
	if ticked {
		c.ticker.Tick()
	}
	c.renderer.Render()
	cost := time.Since(start)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames++
	if c.calibrator == nil || !ticked {
		return 0, false
	}
	d, ok := c.calibrator.Observe(cost)
	if !ok {
		return 0, false
	}
	c.interval = d
	logrus.WithFields(logrus.Fields{
		"interval": d,
		"average":  c.calibrator.Average(),
	}).Info("auto-adjusted tick interval")
	return d, true
}
