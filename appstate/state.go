package appstate

import (
	"context"

	"github.com/lanternworks/lantern-common/events"
	"github.com/lanternworks/lantern-common/gamepad"
)

// State is a unit of application behavior held by one stack slot. The
// machine owns each state exclusively from the moment it is pushed until
// the moment it is stopped and discarded.
//
// Lifecycle notifications return only an error. Tick and event operations
// additionally return a Transition expressing the state's request for a
// stack change; returning the zero Transition requests none. A state must
// never mutate the stack directly and must not retain the Resources
// pointer beyond the call that received it.
type State interface {
	// Label returns a diagnostic name for the state.
	Label() string

	// OnStart runs when the state becomes active for the first time.
	OnStart(ctx context.Context, res *Resources) error

	// OnStop runs when the state is removed from the stack.
	OnStop(ctx context.Context, res *Resources) error

	// OnPause runs when another state is pushed on top of this one.
	OnPause(ctx context.Context, res *Resources) error

	// OnResume runs when the state above this one is popped.
	OnResume(ctx context.Context, res *Resources) error

	// Update runs once per frame.
	Update(ctx context.Context, res *Resources) (Transition, error)

	// UpdateGUI runs once per frame after Update, for overlay work.
	UpdateGUI(ctx context.Context, res *Resources) (Transition, error)

	// OnEvent receives every platform event, regardless of kind.
	OnEvent(ctx context.Context, res *Resources, event events.Event) (Transition, error)

	// OnKey receives keyboard events.
	OnKey(ctx context.Context, res *Resources, key events.Key) (Transition, error)

	// OnMouse receives mouse button events.
	OnMouse(ctx context.Context, res *Resources, button events.MouseButton) (Transition, error)

	// OnResize receives window resize events.
	OnResize(ctx context.Context, res *Resources, size events.Resize) (Transition, error)

	// OnFileDropped receives the path of a file dropped on the window.
	OnFileDropped(ctx context.Context, res *Resources, path string) (Transition, error)

	// OnGamepad receives gamepad events.
	OnGamepad(ctx context.Context, res *Resources, event gamepad.Event) (Transition, error)
}

// Base provides no-op implementations of every State operation. Embed it
// and override what you need. Base on its own is a usable empty state.
type Base struct{}

var _ State = (*Base)(nil)

func (Base) Label() string {
	return "unlabeled"
}

func (Base) OnStart(context.Context, *Resources) error {
	return nil
}

func (Base) OnStop(context.Context, *Resources) error {
	return nil
}

func (Base) OnPause(context.Context, *Resources) error {
	return nil
}

func (Base) OnResume(context.Context, *Resources) error {
	return nil
}

func (Base) Update(context.Context, *Resources) (Transition, error) {
	return Transition{}, nil
}

func (Base) UpdateGUI(context.Context, *Resources) (Transition, error) {
	return Transition{}, nil
}

func (Base) OnEvent(context.Context, *Resources, events.Event) (Transition, error) {
	return Transition{}, nil
}

func (Base) OnKey(context.Context, *Resources, events.Key) (Transition, error) {
	return Transition{}, nil
}

func (Base) OnMouse(context.Context, *Resources, events.MouseButton) (Transition, error) {
	return Transition{}, nil
}

func (Base) OnResize(context.Context, *Resources, events.Resize) (Transition, error) {
	return Transition{}, nil
}

func (Base) OnFileDropped(context.Context, *Resources, string) (Transition, error) {
	return Transition{}, nil
}

func (Base) OnGamepad(context.Context, *Resources, gamepad.Event) (Transition, error) {
	return Transition{}, nil
}
