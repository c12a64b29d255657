package main

import (
	"context"

	"github.com/lanternworks/lantern-common/appstate"
	"github.com/lanternworks/lantern-common/events"
)

// The demo stack mirrors a small application. A menu sits at the bottom,
// a session runs on top of it, and a pause overlay suspends the session.
// Every structural change is key-driven so scripted sequences replay
// deterministically.

type menuState struct {
	appstate.Base
}

func (*menuState) Label() string {
	return "menu"
}

func (*menuState) OnKey(
	_ context.Context, _ *appstate.Resources, key events.Key,
) (appstate.Transition, error) {
	if key.State != events.Pressed {
		return appstate.None(), nil
	}

	switch key.Code {
	case events.KeyEnter:
		return appstate.Push(&sessionState{}), nil
	case events.KeyTab:
		return appstate.Switch(&aboutState{}), nil
	case events.KeyQ, events.KeyEscape:
		return appstate.Quit(), nil
	default:
		return appstate.None(), nil
	}
}

// sessionState accumulates active time across pauses, so a journal of a
// paused run shows the session resuming rather than restarting.
type sessionState struct {
	appstate.Base

	elapsed float64
	resumes int
}

func (*sessionState) Label() string {
	return "session"
}

func (s *sessionState) OnResume(context.Context, *appstate.Resources) error {
	s.resumes++

	return nil
}

func (s *sessionState) Update(
	_ context.Context, res *appstate.Resources,
) (appstate.Transition, error) {
	s.elapsed += res.Frame.DeltaSeconds()

	return appstate.None(), nil
}

func (*sessionState) OnKey(
	_ context.Context, _ *appstate.Resources, key events.Key,
) (appstate.Transition, error) {
	if key.State != events.Pressed {
		return appstate.None(), nil
	}

	switch key.Code {
	case events.KeyP:
		return appstate.Push(&pausedState{}), nil
	case events.KeyEscape:
		return appstate.Pop(), nil
	default:
		return appstate.None(), nil
	}
}

type pausedState struct {
	appstate.Base
}

func (*pausedState) Label() string {
	return "paused"
}

func (*pausedState) OnKey(
	_ context.Context, _ *appstate.Resources, key events.Key,
) (appstate.Transition, error) {
	if key.State != events.Pressed {
		return appstate.None(), nil
	}

	switch key.Code {
	case events.KeyEscape, events.KeyP:
		return appstate.Pop(), nil
	default:
		return appstate.None(), nil
	}
}

// aboutState replaces the menu wholesale. Popping it empties the stack
// and stops the machine, which is the quickest way to show that path.
type aboutState struct {
	appstate.Base
}

func (*aboutState) Label() string {
	return "about"
}

func (*aboutState) OnKey(
	_ context.Context, _ *appstate.Resources, key events.Key,
) (appstate.Transition, error) {
	if key.State != events.Pressed {
		return appstate.None(), nil
	}

	if key.Code == events.KeyEscape {
		return appstate.Pop(), nil
	}

	return appstate.None(), nil
}
