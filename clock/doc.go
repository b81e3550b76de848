// Package clock drives the simulation at a fixed interval.
//
// A Clock owns one goroutine and one time.Ticker. Each tick it advances the
// simulation unless paused and then always renders. Interval changes,
// including the one made by the start-up calibration, replace the ticker on
// that same goroutine, so an old schedule never keeps firing alongside the
// new one.
package clock
