// Package input maintains a rolling snapshot of keyboard and mouse state.
// The runtime applies every platform event to the snapshot before
// dispatching, so states can ask "is W held right now" during a tick
// instead of tracking key transitions themselves.
package input

import (
	"sort"

	"github.com/lanternworks/lantern-common/events"
	"github.com/lanternworks/lantern-common/set"
)

// Mouse is the pointer portion of the snapshot. Position is the last known
// cursor location in window pixels. The delta and wheel fields accumulate
// within a frame and are zeroed by EndFrame.
type Mouse struct {
	X float64
	Y float64

	DeltaX float64
	DeltaY float64

	WheelX float64
	WheelY float64

	LeftHeld   bool
	RightHeld  bool
	MiddleHeld bool
}

// Snapshot is the rolling input state. It is owned by the runtime's loop
// goroutine and is not safe for concurrent use.
type Snapshot struct {
	held      *set.Of[events.KeyCode]
	mouse     Mouse
	hasCursor bool
}

func New() *Snapshot {
	return &Snapshot{
		held: set.New[events.KeyCode](),
	}
}

// Apply folds one event into the snapshot. Events that carry no input
// state (resize, file drop, close) are ignored.
func (s *Snapshot) Apply(event events.Event) {
	switch event.Kind {
	case events.KindKey:
		s.applyKey(event.Key)
	case events.KindMouseButton:
		s.applyMouseButton(event.Mouse)
	case events.KindCursorMoved:
		s.applyCursorMoved(event.Cursor)
	case events.KindMouseWheel:
		s.mouse.WheelX += event.Wheel.DeltaX
		s.mouse.WheelY += event.Wheel.DeltaY
	case events.KindResize, events.KindFileDropped, events.KindCloseRequested, events.KindUnknown:
	}
}

func (s *Snapshot) applyKey(key events.Key) {
	switch key.State {
	case events.Pressed:
		s.held.Add(key.Code)
	case events.Released:
		s.held.Remove(key.Code)
	}
}

func (s *Snapshot) applyMouseButton(mouse events.MouseButton) {
	held := mouse.State == events.Pressed

	switch mouse.Button {
	case events.ButtonLeft:
		s.mouse.LeftHeld = held
	case events.ButtonRight:
		s.mouse.RightHeld = held
	case events.ButtonMiddle:
		s.mouse.MiddleHeld = held
	case events.ButtonBack, events.ButtonForward:
	}
}

func (s *Snapshot) applyCursorMoved(cursor events.CursorMoved) {
	if s.hasCursor {
		s.mouse.DeltaX += cursor.X - s.mouse.X
		s.mouse.DeltaY += cursor.Y - s.mouse.Y
	}

	s.mouse.X = cursor.X
	s.mouse.Y = cursor.Y
	s.hasCursor = true
}

// EndFrame zeroes the per-frame accumulators (cursor delta and wheel).
// The runtime calls it after the frame's dispatches.
func (s *Snapshot) EndFrame() {
	s.mouse.DeltaX = 0
	s.mouse.DeltaY = 0
	s.mouse.WheelX = 0
	s.mouse.WheelY = 0
}

// IsKeyHeld reports whether the key is currently down.
func (s *Snapshot) IsKeyHeld(code events.KeyCode) bool {
	return s.held.Contains(code)
}

// HeldKeys returns the currently held keys, sorted for stable output.
func (s *Snapshot) HeldKeys() []events.KeyCode {
	keys := s.held.Entries()

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

// Mouse returns a copy of the current pointer state.
func (s *Snapshot) Mouse() Mouse {
	return s.mouse
}

// OffsetFromCenter returns the cursor's offset from the given window
// center point.
func (s *Snapshot) OffsetFromCenter(centerX, centerY float64) (float64, float64) {
	return s.mouse.X - centerX, s.mouse.Y - centerY
}

// Reset clears all held keys and buttons, keeping the cursor position.
// Called when the window loses focus, so keys released outside the window
// do not stick.
func (s *Snapshot) Reset() {
	s.held.Clear()
	s.mouse.LeftHeld = false
	s.mouse.RightHeld = false
	s.mouse.MiddleHeld = false
}
