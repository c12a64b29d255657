package appstate

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveState indicates the stack was empty when a dispatch call
	// needed to resolve the active state. The stack never empties on its
	// own while the machine runs, so this signals a usage bug, not a
	// recoverable runtime condition.
	ErrNoActiveState = errors.New("no active state")

	// ErrNilState indicates a Push or Switch transition carried a nil
	// state.
	ErrNilState = errors.New("transition carries a nil state")
)

// Operation names as they appear in errors, hooks, metrics, and traces.
const (
	OpStart       = "on_start"
	OpStop        = "on_stop"
	OpPause       = "on_pause"
	OpResume      = "on_resume"
	OpUpdate      = "update"
	OpUpdateGUI   = "update_gui"
	OpHandleEvent = "handle_event"
	OpKey         = "on_key"
	OpMouse       = "on_mouse"
	OpResize      = "on_resize"
	OpFileDropped = "on_file_dropped"
	OpGamepad     = "on_gamepad"
)

// HookError wraps a failure from a state operation with the state's label
// and the operation that failed. Unwrap reaches the state's own error.
type HookError struct {
	Label string
	Hook  string
	Err   error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("state %s: %s: %v", e.Label, e.Hook, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// WrapHookError wraps an error with state and operation context.
func WrapHookError(label, hook string, err error) error {
	if err == nil {
		return nil
	}

	return &HookError{
		Label: label,
		Hook:  hook,
		Err:   err,
	}
}
