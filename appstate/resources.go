package appstate

import (
	"github.com/lanternworks/lantern-common/config"
	"github.com/lanternworks/lantern-common/frame"
	"github.com/lanternworks/lantern-common/gamepad"
	"github.com/lanternworks/lantern-common/input"
	"github.com/lanternworks/lantern-common/render"
	"github.com/lanternworks/lantern-common/window"
)

// Resources bundles the shared runtime collaborators handed to every
// state operation. The driver constructs it, and states borrow it for the
// duration of a single call only. Fields may be nil when a collaborator
// is absent (headless tests, tooling).
type Resources struct {
	Config   *config.Config
	Window   window.Window
	Input    *input.Snapshot
	Frame    *frame.Clock
	Gamepads gamepad.Poller
	Renderer render.Renderer
}

// AspectRatio returns the window aspect ratio, or zero without a frame
// clock.
func (r *Resources) AspectRatio() float64 {
	if r.Frame == nil {
		return 0
	}

	return r.Frame.AspectRatio()
}

// WindowCenter returns the window center in pixels, or the origin without
// a frame clock.
func (r *Resources) WindowCenter() (float64, float64) {
	if r.Frame == nil {
		return 0, 0
	}

	return r.Frame.Center()
}

// RequestExit asks the driver loop to shut down after the current frame.
func (r *Resources) RequestExit() {
	if r.Frame != nil {
		r.Frame.RequestExit()
	}
}
