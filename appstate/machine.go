// Package appstate implements a stack machine over application states.
// The state on top of the stack is active: it alone receives events and
// per-frame ticks, and it requests stack changes by returning Transition
// values. Push suspends the active state under a new one, Pop resumes the
// state underneath, Switch replaces in place, Quit unwinds everything.
//
// A Machine is strictly single-threaded. The driver must call entry
// points one at a time from one goroutine, and a state operation must
// never call back into the machine that invoked it.
package appstate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lanternworks/lantern-common/events"
	"github.com/lanternworks/lantern-common/gamepad"
	"github.com/lanternworks/lantern-common/optional"
)

// Metric outcome constants.
const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

// Machine owns an ordered stack of states and routes every event and tick
// to the state on top. At most one structural change is applied per
// dispatch call. Transition application never rolls back: a lifecycle
// failure mid-sequence aborts the remaining calls and leaves the stack as
// the failure found it.
type Machine struct {
	name    string
	stack   []State
	running bool
	hooks   []Hooks
}

type machineOptions struct {
	name  string
	hooks []Hooks
}

// Option configures a Machine at construction.
type Option func(*machineOptions)

// WithName sets the machine name used in logs, metrics, and traces.
func WithName(name string) Option {
	return func(o *machineOptions) {
		o.name = name
	}
}

// WithHooks registers observers for lifecycle and transition activity.
// Nil hooks are ignored.
func WithHooks(hooks ...Hooks) Option {
	return func(o *machineOptions) {
		for _, h := range hooks {
			if h != nil {
				o.hooks = append(o.hooks, h)
			}
		}
	}
}

// WithLogger registers slog-backed hooks writing to the given logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *machineOptions) {
		o.hooks = append(o.hooks, NewSlogHooks(logger))
	}
}

// New creates a machine with the given initial state as the bottom of the
// stack. The machine does not dispatch until Start is called. New panics
// on a nil initial state: the stack is never empty at construction.
func New(initial State, opts ...Option) *Machine {
	if initial == nil {
		panic("appstate: initial state must not be nil")
	}

	options := &machineOptions{
		name: "machine",
	}

	for _, opt := range opts {
		opt(options)
	}

	m := &Machine{
		name:  options.name,
		stack: []State{initial},
		hooks: options.hooks,
	}

	stackDepth.WithLabelValues(sanitizeMachine(m.name)).Set(1)

	return m
}

// Name returns the machine name.
func (m *Machine) Name() string {
	return m.name
}

// IsRunning reports whether the machine is accepting dispatch.
func (m *Machine) IsRunning() bool {
	return m.running
}

// Depth returns the number of states on the stack.
func (m *Machine) Depth() int {
	return len(m.stack)
}

// ActiveLabel returns the label of the state on top of the stack. The
// label is present whenever the stack is non-empty, whether or not the
// machine is running.
func (m *Machine) ActiveLabel() optional.Value[string] {
	top, ok := m.top()
	if !ok {
		return optional.None[string]()
	}

	return optional.Some(top.Label())
}

// Start marks the machine running and starts the state on top of the
// stack. Calling Start on a running machine is a no-op.
func (m *Machine) Start(ctx context.Context, res *Resources) error {
	if m.running {
		return nil
	}

	m.running = true

	top, ok := m.top()
	if !ok {
		return fmt.Errorf("start: %w", ErrNoActiveState)
	}

	return m.startState(ctx, res, top)
}

// Stop unwinds the stack, stopping every state from the top down, and
// marks the machine not running. Calling Stop on a stopped machine is a
// no-op. A failing OnStop aborts the remaining unwind and propagates, but
// the machine is marked not running regardless: Stop always leaves the
// machine terminal.
func (m *Machine) Stop(ctx context.Context, res *Resources) (err error) {
	if !m.running {
		return nil
	}

	defer func() {
		m.running = false
		stackDepth.WithLabelValues(sanitizeMachine(m.name)).Set(float64(len(m.stack)))

		if err != nil {
			m.notifyDispatchFailed(ctx, "stop", "", err)
		}
	}()

	return m.unwind(ctx, res)
}

// Update dispatches a per-frame tick to the active state.
func (m *Machine) Update(ctx context.Context, res *Resources) error {
	return m.dispatch(ctx, res, OpUpdate, func(ctx context.Context, s State) (Transition, error) {
		return s.Update(ctx, res)
	})
}

// UpdateGUI dispatches the per-frame overlay tick to the active state.
func (m *Machine) UpdateGUI(ctx context.Context, res *Resources) error {
	return m.dispatch(ctx, res, OpUpdateGUI, func(ctx context.Context, s State) (Transition, error) {
		return s.UpdateGUI(ctx, res)
	})
}

// HandleEvent dispatches a platform event to the active state.
func (m *Machine) HandleEvent(ctx context.Context, res *Resources, event events.Event) error {
	return m.dispatch(ctx, res, OpHandleEvent, func(ctx context.Context, s State) (Transition, error) {
		return s.OnEvent(ctx, res, event)
	})
}

// OnKey dispatches a keyboard event to the active state.
func (m *Machine) OnKey(ctx context.Context, res *Resources, key events.Key) error {
	return m.dispatch(ctx, res, OpKey, func(ctx context.Context, s State) (Transition, error) {
		return s.OnKey(ctx, res, key)
	})
}

// OnMouse dispatches a mouse button event to the active state.
func (m *Machine) OnMouse(ctx context.Context, res *Resources, button events.MouseButton) error {
	return m.dispatch(ctx, res, OpMouse, func(ctx context.Context, s State) (Transition, error) {
		return s.OnMouse(ctx, res, button)
	})
}

// OnResize dispatches a window resize event to the active state.
func (m *Machine) OnResize(ctx context.Context, res *Resources, size events.Resize) error {
	return m.dispatch(ctx, res, OpResize, func(ctx context.Context, s State) (Transition, error) {
		return s.OnResize(ctx, res, size)
	})
}

// OnFileDropped dispatches a dropped file path to the active state.
func (m *Machine) OnFileDropped(ctx context.Context, res *Resources, path string) error {
	return m.dispatch(ctx, res, OpFileDropped, func(ctx context.Context, s State) (Transition, error) {
		return s.OnFileDropped(ctx, res, path)
	})
}

// OnGamepad dispatches a gamepad event to the active state.
func (m *Machine) OnGamepad(ctx context.Context, res *Resources, event gamepad.Event) error {
	return m.dispatch(ctx, res, OpGamepad, func(ctx context.Context, s State) (Transition, error) {
		return s.OnGamepad(ctx, res, event)
	})
}

// dispatch is the template every event and tick entry point follows: a
// guarded no-op while stopped, resolve the active state, invoke the
// operation, apply the returned transition. A failing operation
// propagates without applying any transition.
func (m *Machine) dispatch(
	ctx context.Context,
	res *Resources,
	entry string,
	call func(context.Context, State) (Transition, error),
) (err error) {
	if !m.running {
		return nil
	}

	top, ok := m.top()
	if !ok {
		return fmt.Errorf("%s: %w", entry, ErrNoActiveState)
	}

	label := top.Label()
	ctx, span := startDispatchSpan(ctx, m.name, entry, label, len(m.stack))
	start := time.Now()

	defer func() {
		outcome := outcomeSuccess
		if err != nil {
			outcome = outcomeError
		}

		dispatchDuration.WithLabelValues(
			sanitizeMachine(m.name),
			entry,
		).Observe(time.Since(start).Seconds())

		dispatchTotal.WithLabelValues(
			sanitizeMachine(m.name),
			entry,
			sanitizeLabel(label),
			outcome,
		).Inc()

		stackDepth.WithLabelValues(sanitizeMachine(m.name)).Set(float64(len(m.stack)))

		endSpan(span, err)

		if err != nil {
			m.notifyDispatchFailed(ctx, entry, label, err)
		}
	}()

	transition, err := call(ctx, top)
	if err != nil {
		return WrapHookError(label, entry, err)
	}

	return m.apply(ctx, res, label, transition)
}

// apply performs the structural change a transition requests. Exactly one
// change per dispatch call. Call orderings follow the contract precisely:
// later states may depend on resource state left by a sibling's teardown.
func (m *Machine) apply(ctx context.Context, res *Resources, from string, transition Transition) error {
	switch transition.kind {
	case KindNone:
		return nil
	case KindPop:
		return m.applyPop(ctx, res, from)
	case KindPush:
		return m.applyPush(ctx, res, from, transition.state)
	case KindSwitch:
		return m.applySwitch(ctx, res, from, transition.state)
	case KindQuit:
		return m.applyQuit(ctx, res, from)
	default:
		return nil
	}
}

// applyPop removes the active state and stops it, then resumes the state
// underneath. Popping the last state stops the machine instead; there is
// nothing to resume.
func (m *Machine) applyPop(ctx context.Context, res *Resources, from string) error {
	if removed, ok := m.popTop(); ok {
		if err := m.stopState(ctx, res, removed); err != nil {
			return err
		}
	}

	next, ok := m.top()
	if !ok {
		m.running = false
		m.notifyTransition(ctx, from, "", KindPop)

		return nil
	}

	if err := m.resumeState(ctx, res, next); err != nil {
		return err
	}

	m.notifyTransition(ctx, from, next.Label(), KindPop)

	return nil
}

// applyPush pauses the active state, appends next, and starts it.
func (m *Machine) applyPush(ctx context.Context, res *Resources, from string, next State) error {
	if next == nil {
		return fmt.Errorf("push: %w", ErrNilState)
	}

	if top, ok := m.top(); ok {
		if err := m.pauseState(ctx, res, top); err != nil {
			return err
		}
	}

	m.stack = append(m.stack, next)

	if err := m.startState(ctx, res, next); err != nil {
		return err
	}

	m.notifyTransition(ctx, from, next.Label(), KindPush)

	return nil
}

// applySwitch removes and stops the active state, then appends and starts
// next in its place. No pause/resume pair fires: a switch replaces a
// sibling, it does not nest.
func (m *Machine) applySwitch(ctx context.Context, res *Resources, from string, next State) error {
	if next == nil {
		return fmt.Errorf("switch: %w", ErrNilState)
	}

	if old, ok := m.popTop(); ok {
		if err := m.stopState(ctx, res, old); err != nil {
			return err
		}
	}

	m.stack = append(m.stack, next)

	if err := m.startState(ctx, res, next); err != nil {
		return err
	}

	m.notifyTransition(ctx, from, next.Label(), KindSwitch)

	return nil
}

// applyQuit unwinds the entire stack. A failing OnStop aborts the
// remaining unwind with the machine still marked running; use Stop for
// the terminal guarantee.
func (m *Machine) applyQuit(ctx context.Context, res *Resources, from string) error {
	if err := m.unwind(ctx, res); err != nil {
		return err
	}

	m.notifyTransition(ctx, from, "", KindQuit)

	return nil
}

// unwind pops and stops every state from the top down, then marks the
// machine not running.
func (m *Machine) unwind(ctx context.Context, res *Resources) error {
	for {
		top, ok := m.popTop()
		if !ok {
			break
		}

		if err := m.stopState(ctx, res, top); err != nil {
			return err
		}
	}

	m.running = false

	return nil
}

func (m *Machine) top() (State, bool) {
	if len(m.stack) == 0 {
		return nil, false
	}

	return m.stack[len(m.stack)-1], true
}

func (m *Machine) popTop() (State, bool) {
	if len(m.stack) == 0 {
		return nil, false
	}

	top := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]

	return top, true
}

// runHook invokes one lifecycle notification with tracing and error
// wrapping.
func (m *Machine) runHook(
	ctx context.Context,
	res *Resources,
	hook string,
	s State,
	fn func(context.Context, *Resources) error,
) error {
	ctx, span := startLifecycleSpan(ctx, m.name, hook, s.Label())

	err := fn(ctx, res)
	endSpan(span, err)

	return WrapHookError(s.Label(), hook, err)
}

func (m *Machine) startState(ctx context.Context, res *Resources, s State) error {
	if err := m.runHook(ctx, res, OpStart, s, s.OnStart); err != nil {
		return err
	}

	for _, h := range m.hooks {
		h.StateStarted(ctx, m.name, s.Label())
	}

	return nil
}

func (m *Machine) stopState(ctx context.Context, res *Resources, s State) error {
	if err := m.runHook(ctx, res, OpStop, s, s.OnStop); err != nil {
		return err
	}

	for _, h := range m.hooks {
		h.StateStopped(ctx, m.name, s.Label())
	}

	return nil
}

func (m *Machine) pauseState(ctx context.Context, res *Resources, s State) error {
	if err := m.runHook(ctx, res, OpPause, s, s.OnPause); err != nil {
		return err
	}

	for _, h := range m.hooks {
		h.StatePaused(ctx, m.name, s.Label())
	}

	return nil
}

func (m *Machine) resumeState(ctx context.Context, res *Resources, s State) error {
	if err := m.runHook(ctx, res, OpResume, s, s.OnResume); err != nil {
		return err
	}

	for _, h := range m.hooks {
		h.StateResumed(ctx, m.name, s.Label())
	}

	return nil
}

func (m *Machine) notifyTransition(ctx context.Context, from, to string, kind TransitionKind) {
	transitionsTotal.WithLabelValues(sanitizeMachine(m.name), kind.String()).Inc()

	for _, h := range m.hooks {
		h.TransitionApplied(ctx, m.name, from, to, kind, len(m.stack))
	}
}

func (m *Machine) notifyDispatchFailed(ctx context.Context, entry, label string, err error) {
	for _, h := range m.hooks {
		h.DispatchFailed(ctx, m.name, entry, label, err)
	}
}
