package appstate

// TransitionKind identifies the structural change a Transition requests.
type TransitionKind int

const (
	// KindNone leaves the stack unchanged.
	KindNone TransitionKind = iota
	// KindPop removes the active state.
	KindPop
	// KindPush suspends the active state and activates a new one above it.
	KindPush
	// KindSwitch replaces the active state in place.
	KindSwitch
	// KindQuit unwinds the entire stack.
	KindQuit
)

func (k TransitionKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindPop:
		return "pop"
	case KindPush:
		return "push"
	case KindSwitch:
		return "switch"
	case KindQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Transition describes the stack change a state requests from a dispatch
// call. The zero value requests no change. A Transition built with Push or
// Switch hands its state to the machine; the caller must not retain a
// reference to it afterwards.
type Transition struct {
	kind  TransitionKind
	state State
}

// None requests no stack change. Equivalent to the zero value.
func None() Transition {
	return Transition{}
}

// Pop requests removal of the active state. The state below it resumes,
// or the machine stops if none remains.
func Pop() Transition {
	return Transition{kind: KindPop}
}

// Push requests pausing the active state and starting next on top of it.
func Push(next State) Transition {
	return Transition{kind: KindPush, state: next}
}

// Switch requests stopping the active state and starting next in its
// place. The replaced state is not paused and nothing is resumed.
func Switch(next State) Transition {
	return Transition{kind: KindSwitch, state: next}
}

// Quit requests unwinding the entire stack, stopping every state from the
// top down.
func Quit() Transition {
	return Transition{kind: KindQuit}
}

// Kind returns the structural change this transition requests.
func (t Transition) Kind() TransitionKind {
	return t.kind
}

func (t Transition) String() string {
	if t.state != nil {
		return t.kind.String() + "(" + t.state.Label() + ")"
	}

	return t.kind.String()
}
