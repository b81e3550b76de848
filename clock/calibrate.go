package clock

import "time"

// Calibrator averages the cost of the first Samples ticks and then picks
// the Slow interval if the average exceeds Threshold, the Fast one otherwise.
type Calibrator struct {
	Samples   int
	Threshold time.Duration
	Fast      time.Duration
	Slow      time.Duration

	n        int
	total    time.Duration
	finished bool
}

// DefaultCalibrator samples 10 ticks against an 8ms budget.
func DefaultCalibrator() *Calibrator {
	return &Calibrator{Samples: 10, Threshold: 8 * time.Millisecond, Fast: 16 * time.Millisecond, Slow: 33 * time.Millisecond}
}

// Observe records one tick cost. It returns the chosen interval and true
// exactly once, on the tick that completes the sample.
func (c *Calibrator) Observe(cost time.Duration) (time.Duration, bool) {
	if c.Done() {
		return 0, false
	}
	c.n++
	c.total += cost
	if c.n < c.Samples {
		return 0, false
	}
	if c.Average() > c.Threshold {
		return c.Slow, true
	}
	return c.Fast, true
}

// Average is the mean cost observed so far.
func (c *Calibrator) Average() time.Duration {
	if c.n == 0 {
		return 0
	}
	return c.total / time.Duration(c.n)
}

func (c *Calibrator) Done() bool {
	return c.finished || c.n >= c.Samples
}

// Finish ends calibration without choosing an interval.
func (c *Calibrator) Finish() {
	c.finished = true
}

// Reset forgets every sample.
func (c *Calibrator) Reset() {
	c.n, c.total, c.finished = 0, 0, false
}
