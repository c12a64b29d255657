// Package render defines the renderer contract threaded through state
// resources. Actual rendering backends live outside this module.
package render

import (
	"context"

	"go.uber.org/atomic"
)

// Renderer is the drawing surface handed to states. Implementations must
// tolerate Resize before the first Render.
type Renderer interface {
	// Resize adjusts the render surface to a new window inner size.
	Resize(width, height uint32) error

	// Render draws one frame. delta is the frame time in seconds.
	Render(ctx context.Context, delta float64) error
}

// Noop is a Renderer that draws nothing. It counts calls so tests and the
// headless harness can assert the frame loop ran.
type Noop struct {
	frames  atomic.Uint64
	resizes atomic.Uint64
}

var _ Renderer = (*Noop)(nil)

func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) Resize(_, _ uint32) error {
	n.resizes.Inc()

	return nil
}

func (n *Noop) Render(_ context.Context, _ float64) error {
	n.frames.Inc()

	return nil
}

// Frames returns the number of Render calls.
func (n *Noop) Frames() uint64 {
	return n.frames.Load()
}

// Resizes returns the number of Resize calls.
func (n *Noop) Resizes() uint64 {
	return n.resizes.Load()
}
