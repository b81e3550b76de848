package clock

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct{ n atomic.Int64 }

func (c *counter) Tick()   { c.n.Add(1) }
func (c *counter) Render() { c.n.Add(1) }
func (c *counter) Load() int64 {
	return c.n.Load()
}

func TestCalibrator(t *testing.T) {
	tests := []struct {
		name string
		cost time.Duration
		want time.Duration
	}{
		{"fast frames", 2 * time.Millisecond, 16 * time.Millisecond},
		{"on the threshold", 8 * time.Millisecond, 16 * time.Millisecond},
		{"slow frames", 9 * time.Millisecond, 33 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultCalibrator()
			for i := 0; i < 9; i++ {
				_, ok := c.Observe(tt.cost)
				require.False(t, ok)
			}
			d, ok := c.Observe(tt.cost)
			require.True(t, ok)
			assert.Equal(t, tt.want, d)

			_, ok = c.Observe(time.Hour)
			assert.False(t, ok, "calibration runs once")
			assert.Equal(t, tt.cost, c.Average())
		})
	}
}

func TestCalibrator_Finish(t *testing.T) {
	c := DefaultCalibrator()
	c.Observe(time.Millisecond)
	c.Finish()
	assert.True(t, c.Done())
	for i := 0; i < 20; i++ {
		_, ok := c.Observe(time.Millisecond)
		require.False(t, ok)
	}

	c.Reset()
	assert.False(t, c.Done())
	assert.Equal(t, time.Duration(0), c.Average())
}

func TestClock_StateMachine(t *testing.T) {
	ticks, renders := &counter{}, &counter{}
	c := New(ticks, renders, 5*time.Millisecond, nil)
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, Idle, c.SetPaused(true), "idle clock ignores pause")

	require.NoError(t, c.Start(context.Background()))
	assert.ErrorIs(t, c.Start(context.Background()), ErrRunning)
	assert.Equal(t, Running, c.State())

	assert.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)

	assert.Equal(t, Paused, c.SetPaused(true))
	time.Sleep(20 * time.Millisecond)
	frozen := ticks.Load()
	rendered := renders.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, frozen, ticks.Load(), "paused clock does not tick")
	assert.Greater(t, renders.Load(), rendered, "paused clock still renders")

	assert.Equal(t, Running, c.SetPaused(false))
	c.Stop()
	assert.Equal(t, Idle, c.State())
	after := renders.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, renders.Load(), "stopped clock is silent")

	require.NoError(t, c.Start(context.Background()), "restart after stop")
	c.Stop()
}

func TestClock_IntervalSwapStopsOldSchedule(t *testing.T) {
	renders := &counter{}
	c := New(TickerFunc(func() {}), renders, 2*time.Millisecond, nil)
	require.NoError(t, c.Start(context.Background()))
	defer c.Stop()

	assert.Eventually(t, func() bool { return renders.Load() >= 5 }, time.Second, time.Millisecond)
	c.SetInterval(time.Hour)
	assert.Equal(t, time.Hour, c.Interval())

	// allow an in-flight tick to land, then nothing more may fire
	time.Sleep(20 * time.Millisecond)
	settled := renders.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, renders.Load())

	c.SetInterval(2 * time.Millisecond)
	assert.Eventually(t, func() bool { return renders.Load() >= settled+5 }, time.Second, time.Millisecond)
}

func TestClock_SetIntervalWhileIdle(t *testing.T) {
	c := New(TickerFunc(func() {}), RendererFunc(func() {}), 0, nil)
	assert.Equal(t, DefaultInterval, c.Interval())
	c.SetInterval(-time.Second)
	assert.Equal(t, DefaultInterval, c.Interval())
	c.SetInterval(40 * time.Millisecond)
	assert.Equal(t, 40*time.Millisecond, c.Interval())
}

func TestClock_Calibration(t *testing.T) {
	tests := []struct {
		name  string
		sleep time.Duration
		want  time.Duration
	}{
		{"slow renderer drops to 33ms", 12 * time.Millisecond, 33 * time.Millisecond},
		{"fast renderer stays at 16ms", 0, 16 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := &Calibrator{Samples: 3, Threshold: 8 * time.Millisecond, Fast: 16 * time.Millisecond, Slow: 33 * time.Millisecond}
			r := RendererFunc(func() { time.Sleep(tt.sleep) })
			c := New(TickerFunc(func() {}), r, time.Millisecond, cal)
			require.NoError(t, c.Start(context.Background()))
			defer c.Stop()

			assert.Eventually(t, func() bool { return c.Interval() == tt.want }, 2*time.Second, time.Millisecond)
		})
	}
}

func TestClock_CalibrationSkipsRenderOnlyFrames(t *testing.T) {
	cal := &Calibrator{Samples: 3, Threshold: 8 * time.Millisecond, Fast: 16 * time.Millisecond, Slow: 33 * time.Millisecond}
	ticks := &counter{}
	r := RendererFunc(func() { time.Sleep(10 * time.Millisecond) })
	c := New(ticks, r, time.Millisecond, cal)

	c.state = Paused
	for i := 0; i < 5; i++ {
		_, ok := c.frame()
		require.False(t, ok)
	}
	assert.False(t, cal.Done())
	assert.Equal(t, time.Duration(0), cal.Average())
	assert.Equal(t, int64(0), ticks.Load())

	c.state = Running
	for i := 0; i < 2; i++ {
		_, ok := c.frame()
		require.False(t, ok)
	}
	d, ok := c.frame()
	require.True(t, ok)
	assert.Equal(t, 33*time.Millisecond, d)
	assert.Equal(t, 33*time.Millisecond, c.Interval())
	assert.Equal(t, uint64(8), c.Frames())
}

func TestClock_ExplicitIntervalEndsCalibration(t *testing.T) {
	newClock := func() (*Clock, *Calibrator) {
		cal := &Calibrator{Samples: 2, Threshold: time.Millisecond, Fast: 16 * time.Millisecond, Slow: 33 * time.Millisecond}
		r := RendererFunc(func() { time.Sleep(3 * time.Millisecond) })
		return New(TickerFunc(func() {}), r, time.Millisecond, cal), cal
	}

	t.Run("mid sample", func(t *testing.T) {
		c, cal := newClock()
		c.state = Running
		_, ok := c.frame()
		require.False(t, ok)

		c.SetInterval(40 * time.Millisecond)
		assert.True(t, cal.Done())
		for i := 0; i < 5; i++ {
			_, ok := c.frame()
			require.False(t, ok)
		}
		assert.Equal(t, 40*time.Millisecond, c.Interval())
	})

	t.Run("before start", func(t *testing.T) {
		c, _ := newClock()
		c.SetInterval(5 * time.Millisecond)
		require.NoError(t, c.Start(context.Background()))
		defer c.Stop()

		assert.Never(t, func() bool { return c.Interval() != 5*time.Millisecond }, 100*time.Millisecond, 5*time.Millisecond)
		assert.Greater(t, c.Frames(), uint64(2))
	})
}

func TestClock_ContextCancelEndsLoop(t *testing.T) {
	renders := &counter{}
	ctx, cancel := context.WithCancel(context.Background())
	c := New(TickerFunc(func() {}), renders, time.Millisecond, nil)
	require.NoError(t, c.Start(ctx))
	assert.Eventually(t, func() bool { return renders.Load() > 0 }, time.Second, time.Millisecond)
	cancel()
	c.Stop()
	assert.Equal(t, Idle, c.State())
}
