// Package frame tracks per-frame timing, window geometry, and the exit
// flag. One Clock is shared by the runtime loop, the states (through their
// resources), and the signal handler, so every field is atomic.
package frame

import (
	"time"

	"go.uber.org/atomic"
)

// initialDelta seeds the first frame, before any real delta is measured.
const initialDelta = 0.01

// Clock is the per-run timing and geometry resource.
type Clock struct {
	delta  atomic.Float64
	last   atomic.Int64
	frames atomic.Uint64
	width  atomic.Uint32
	height atomic.Uint32
	exit   atomic.Bool
}

// New creates a clock for a window of the given inner size.
func New(width, height uint32) *Clock {
	c := &Clock{}

	c.delta.Store(initialDelta)
	c.last.Store(time.Now().UnixNano())
	c.width.Store(width)
	c.height.Store(height)

	return c
}

// BeginFrame marks the start of a frame: it computes the time elapsed since
// the previous BeginFrame, stores it as the current delta, and increments
// the frame counter. Returns the delta in seconds.
func (c *Clock) BeginFrame() float64 {
	now := time.Now().UnixNano()
	prev := c.last.Swap(now)

	delta := float64(now-prev) / float64(time.Second)

	c.delta.Store(delta)
	c.frames.Inc()

	return delta
}

// DeltaSeconds returns the most recent frame delta in seconds.
func (c *Clock) DeltaSeconds() float64 {
	return c.delta.Load()
}

// FrameCount returns the number of frames begun so far.
func (c *Clock) FrameCount() uint64 {
	return c.frames.Load()
}

// SetWindowSize records the window's new inner size. The runtime calls this
// on resize events before dispatching them.
func (c *Clock) SetWindowSize(width, height uint32) {
	c.width.Store(width)
	c.height.Store(height)
}

// WindowSize returns the last recorded window inner size.
func (c *Clock) WindowSize() (uint32, uint32) {
	return c.width.Load(), c.height.Load()
}

// AspectRatio returns width divided by height. A zero-height window yields
// +Inf, matching float division semantics rather than panicking.
func (c *Clock) AspectRatio() float64 {
	width, height := c.WindowSize()

	return float64(width) / float64(height)
}

// Center returns the window's center point in pixels.
func (c *Clock) Center() (float64, float64) {
	width, height := c.WindowSize()

	return float64(width) / 2, float64(height) / 2
}

// RequestExit asks the runtime to shut down after the current frame.
// Safe to call from any goroutine; the flag latches.
func (c *Clock) RequestExit() {
	c.exit.Store(true)
}

// ExitRequested reports whether an exit has been requested.
func (c *Clock) ExitRequested() bool {
	return c.exit.Load()
}
