// Package gamepad defines controller event values and the polling contract
// the runtime drains each frame.
package gamepad

import "fmt"

type Kind uint8

const (
	KindButtonDown Kind = iota
	KindButtonUp
	KindAxisMoved
	KindConnected
	KindDisconnected
)

func (k Kind) String() string {
	switch k {
	case KindButtonDown:
		return "button_down"
	case KindButtonUp:
		return "button_up"
	case KindAxisMoved:
		return "axis_moved"
	case KindConnected:
		return "connected"
	case KindDisconnected:
		return "disconnected"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Button is a layout-independent button name.
type Button string

const (
	ButtonSouth         Button = "south"
	ButtonEast          Button = "east"
	ButtonNorth         Button = "north"
	ButtonWest          Button = "west"
	ButtonStart         Button = "start"
	ButtonSelect        Button = "select"
	ButtonLeftShoulder  Button = "left_shoulder"
	ButtonRightShoulder Button = "right_shoulder"
	ButtonDPadUp        Button = "dpad_up"
	ButtonDPadDown      Button = "dpad_down"
	ButtonDPadLeft      Button = "dpad_left"
	ButtonDPadRight     Button = "dpad_right"
)

// Axis is an analog input axis. Values range -1..1 for sticks and 0..1 for
// triggers.
type Axis string

const (
	AxisLeftX        Axis = "left_x"
	AxisLeftY        Axis = "left_y"
	AxisRightX       Axis = "right_x"
	AxisRightY       Axis = "right_y"
	AxisLeftTrigger  Axis = "left_trigger"
	AxisRightTrigger Axis = "right_trigger"
)

// Event is one controller state change. Pad identifies the controller for
// multi-gamepad setups. Only the field matching Kind is meaningful.
type Event struct {
	Pad    int
	Kind   Kind
	Button Button
	Axis   Axis
	Value  float64
}

func ButtonDown(pad int, button Button) Event {
	return Event{Pad: pad, Kind: KindButtonDown, Button: button}
}

func ButtonUp(pad int, button Button) Event {
	return Event{Pad: pad, Kind: KindButtonUp, Button: button}
}

func AxisMoved(pad int, axis Axis, value float64) Event {
	return Event{Pad: pad, Kind: KindAxisMoved, Axis: axis, Value: value}
}

func Connected(pad int) Event {
	return Event{Pad: pad, Kind: KindConnected}
}

func Disconnected(pad int) Event {
	return Event{Pad: pad, Kind: KindDisconnected}
}

func (e Event) String() string {
	switch e.Kind {
	case KindButtonDown, KindButtonUp:
		return fmt.Sprintf("pad %d %s %s", e.Pad, e.Kind, e.Button)
	case KindAxisMoved:
		return fmt.Sprintf("pad %d axis %s %+.2f", e.Pad, e.Axis, e.Value)
	case KindConnected, KindDisconnected:
		return fmt.Sprintf("pad %d %s", e.Pad, e.Kind)
	default:
		return fmt.Sprintf("pad %d %s", e.Pad, e.Kind)
	}
}

// Poller is a non-blocking source of controller events. Poll returns the
// next pending event, or false when the queue is drained. The runtime
// drains the poller once per frame before dispatching.
type Poller interface {
	Poll() (Event, bool)
}
