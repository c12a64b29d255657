package statetest

import (
	"context"
	"sync"

	"github.com/lanternworks/lantern-common/appstate"
	"github.com/lanternworks/lantern-common/events"
	"github.com/lanternworks/lantern-common/gamepad"
)

// State is a scriptable state. Every operation records itself on the
// shared recorder, then consults the script: failures and transitions
// queued for that operation are consumed one per call, in order. An
// unscripted call succeeds and requests no transition.
type State struct {
	label    string
	recorder *Recorder

	mu       sync.Mutex
	returns  map[string][]appstate.Transition
	failures map[string][]error
}

var _ appstate.State = (*State)(nil)

// NewState creates a scriptable state. A nil recorder discards the call
// trace.
func NewState(label string, recorder *Recorder) *State {
	return &State{
		label:    label,
		recorder: recorder,
		returns:  make(map[string][]appstate.Transition),
		failures: make(map[string][]error),
	}
}

// ReturnOn queues a transition to return from the next unconsumed call of
// the given operation. Use the appstate.Op* constants for op.
func (s *State) ReturnOn(op string, transition appstate.Transition) *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.returns[op] = append(s.returns[op], transition)

	return s
}

// FailOn queues an error to return from the next unconsumed call of the
// given operation.
func (s *State) FailOn(op string, err error) *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[op] = append(s.failures[op], err)

	return s
}

func (s *State) Label() string {
	return s.label
}

func (s *State) OnStart(_ context.Context, _ *appstate.Resources) error {
	return s.lifecycle(appstate.OpStart)
}

func (s *State) OnStop(_ context.Context, _ *appstate.Resources) error {
	return s.lifecycle(appstate.OpStop)
}

func (s *State) OnPause(_ context.Context, _ *appstate.Resources) error {
	return s.lifecycle(appstate.OpPause)
}

func (s *State) OnResume(_ context.Context, _ *appstate.Resources) error {
	return s.lifecycle(appstate.OpResume)
}

func (s *State) Update(_ context.Context, _ *appstate.Resources) (appstate.Transition, error) {
	return s.dispatch(appstate.OpUpdate)
}

func (s *State) UpdateGUI(_ context.Context, _ *appstate.Resources) (appstate.Transition, error) {
	return s.dispatch(appstate.OpUpdateGUI)
}

func (s *State) OnEvent(_ context.Context, _ *appstate.Resources, _ events.Event) (appstate.Transition, error) {
	return s.dispatch(appstate.OpHandleEvent)
}

func (s *State) OnKey(_ context.Context, _ *appstate.Resources, _ events.Key) (appstate.Transition, error) {
	return s.dispatch(appstate.OpKey)
}

func (s *State) OnMouse(_ context.Context, _ *appstate.Resources, _ events.MouseButton) (appstate.Transition, error) {
	return s.dispatch(appstate.OpMouse)
}

func (s *State) OnResize(_ context.Context, _ *appstate.Resources, _ events.Resize) (appstate.Transition, error) {
	return s.dispatch(appstate.OpResize)
}

func (s *State) OnFileDropped(_ context.Context, _ *appstate.Resources, _ string) (appstate.Transition, error) {
	return s.dispatch(appstate.OpFileDropped)
}

func (s *State) OnGamepad(_ context.Context, _ *appstate.Resources, _ gamepad.Event) (appstate.Transition, error) {
	return s.dispatch(appstate.OpGamepad)
}

func (s *State) lifecycle(op string) error {
	s.record(op)

	return s.takeFailure(op)
}

func (s *State) dispatch(op string) (appstate.Transition, error) {
	s.record(op)

	if err := s.takeFailure(op); err != nil {
		return appstate.Transition{}, err
	}

	return s.takeReturn(op), nil
}

func (s *State) record(op string) {
	if s.recorder != nil {
		s.recorder.Record(s.label, op)
	}
}

func (s *State) takeFailure(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.failures[op]
	if len(queue) == 0 {
		return nil
	}

	err := queue[0]
	s.failures[op] = queue[1:]

	return err
}

func (s *State) takeReturn(op string) appstate.Transition {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.returns[op]
	if len(queue) == 0 {
		return appstate.Transition{}
	}

	transition := queue[0]
	s.returns[op] = queue[1:]

	return transition
}
