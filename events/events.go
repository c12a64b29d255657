// Package events defines the platform event values delivered to application
// states. The values are deliberately backend-agnostic: a windowing layer
// (or a test) produces them, the runtime routes them, and states consume
// them without knowing where they came from.
package events

import "fmt"

// Kind discriminates the variants of Event.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindKey
	KindMouseButton
	KindCursorMoved
	KindMouseWheel
	KindResize
	KindFileDropped
	KindCloseRequested
)

// String returns the snake_case name of the kind, as used in logs and
// journal entries.
func (k Kind) String() string {
	switch k {
	case KindKey:
		return "key"
	case KindMouseButton:
		return "mouse_button"
	case KindCursorMoved:
		return "cursor_moved"
	case KindMouseWheel:
		return "mouse_wheel"
	case KindResize:
		return "resize"
	case KindFileDropped:
		return "file_dropped"
	case KindCloseRequested:
		return "close_requested"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ButtonState reports whether a key or button transitioned down or up.
type ButtonState uint8

const (
	Released ButtonState = iota
	Pressed
)

func (s ButtonState) String() string {
	if s == Pressed {
		return "pressed"
	}

	return "released"
}

// KeyCode identifies a key independently of layout or scan code. Codes are
// readable strings so they survive journaling and log inspection unchanged.
type KeyCode string

const (
	KeyEscape KeyCode = "escape"
	KeyEnter  KeyCode = "enter"
	KeySpace  KeyCode = "space"
	KeyTab    KeyCode = "tab"
	KeyUp     KeyCode = "up"
	KeyDown   KeyCode = "down"
	KeyLeft   KeyCode = "left"
	KeyRight  KeyCode = "right"
	KeyShift  KeyCode = "shift"
	KeyW      KeyCode = "w"
	KeyA      KeyCode = "a"
	KeyS      KeyCode = "s"
	KeyD      KeyCode = "d"
	KeyP      KeyCode = "p"
	KeyQ      KeyCode = "q"
)

// Key is a keyboard transition.
type Key struct {
	Code   KeyCode
	State  ButtonState
	Repeat bool
}

func (k Key) String() string {
	return fmt.Sprintf("key %s %s", k.Code, k.State)
}

// Button identifies a mouse button.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	ButtonBack
	ButtonForward
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	case ButtonBack:
		return "back"
	case ButtonForward:
		return "forward"
	default:
		return fmt.Sprintf("button(%d)", uint8(b))
	}
}

// MouseButton is a mouse button transition.
type MouseButton struct {
	Button Button
	State  ButtonState
}

func (m MouseButton) String() string {
	return fmt.Sprintf("mouse %s %s", m.Button, m.State)
}

// CursorMoved is the cursor's new window position in pixels.
type CursorMoved struct {
	X float64
	Y float64
}

// MouseWheel is a scroll delta. Y is the common vertical axis.
type MouseWheel struct {
	DeltaX float64
	DeltaY float64
}

// Resize is the window's new inner size in pixels.
type Resize struct {
	Width  uint32
	Height uint32
}

func (r Resize) String() string {
	return fmt.Sprintf("resize %dx%d", r.Width, r.Height)
}

// Event is a tagged union over every platform event the runtime routes.
// Only the field matching Kind is meaningful. Construct via the New*
// helpers; the zero value is KindUnknown and is ignored by consumers.
type Event struct {
	Kind   Kind
	Key    Key
	Mouse  MouseButton
	Cursor CursorMoved
	Wheel  MouseWheel
	Resize Resize

	// Path is set for KindFileDropped.
	Path string
}

func NewKey(code KeyCode, state ButtonState) Event {
	return Event{Kind: KindKey, Key: Key{Code: code, State: state}}
}

func NewKeyRepeat(code KeyCode) Event {
	return Event{Kind: KindKey, Key: Key{Code: code, State: Pressed, Repeat: true}}
}

func NewMouseButton(button Button, state ButtonState) Event {
	return Event{Kind: KindMouseButton, Mouse: MouseButton{Button: button, State: state}}
}

func NewCursorMoved(x, y float64) Event {
	return Event{Kind: KindCursorMoved, Cursor: CursorMoved{X: x, Y: y}}
}

func NewMouseWheel(dx, dy float64) Event {
	return Event{Kind: KindMouseWheel, Wheel: MouseWheel{DeltaX: dx, DeltaY: dy}}
}

func NewResize(width, height uint32) Event {
	return Event{Kind: KindResize, Resize: Resize{Width: width, Height: height}}
}

func NewFileDropped(path string) Event {
	return Event{Kind: KindFileDropped, Path: path}
}

func NewCloseRequested() Event {
	return Event{Kind: KindCloseRequested}
}

// String renders the event for logs and journals.
func (e Event) String() string {
	switch e.Kind {
	case KindKey:
		return e.Key.String()
	case KindMouseButton:
		return e.Mouse.String()
	case KindCursorMoved:
		return fmt.Sprintf("cursor %.0f,%.0f", e.Cursor.X, e.Cursor.Y)
	case KindMouseWheel:
		return fmt.Sprintf("wheel %+.1f,%+.1f", e.Wheel.DeltaX, e.Wheel.DeltaY)
	case KindResize:
		return e.Resize.String()
	case KindFileDropped:
		return "file dropped " + e.Path
	case KindCloseRequested:
		return "close requested"
	case KindUnknown:
		return "unknown"
	default:
		return e.Kind.String()
	}
}
