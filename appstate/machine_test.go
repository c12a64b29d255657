package appstate_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanternworks/lantern-common/appstate"
	"github.com/lanternworks/lantern-common/appstate/statetest"
	"github.com/lanternworks/lantern-common/events"
	"github.com/lanternworks/lantern-common/gamepad"
)

var errHookFailed = errors.New("hook failed")

func TestStartStartsInitialStateOnce(t *testing.T) {
	t.Parallel()

	rec := statetest.NewRecorder()
	menu := statetest.NewState("menu", rec)
	m := appstate.New(menu, appstate.WithName("shell"))
	res := &appstate.Resources{}

	assert.False(t, m.IsRunning())

	require.NoError(t, m.Start(t.Context(), res))
	require.NoError(t, m.Start(t.Context(), res))

	rec.AssertOrder(t, "menu.on_start")
	assert.True(t, m.IsRunning())
}

func TestNewNilInitialPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		appstate.New(nil)
	})
}

func TestStartFailurePropagates(t *testing.T) {
	t.Parallel()

	menu := statetest.NewState("menu", nil).FailOn(appstate.OpStart, errHookFailed)
	m := appstate.New(menu)

	err := m.Start(t.Context(), &appstate.Resources{})
	require.ErrorIs(t, err, errHookFailed)

	var hookErr *appstate.HookError
	require.ErrorAs(t, err, &hookErr)
	assert.Equal(t, "menu", hookErr.Label)
	assert.Equal(t, appstate.OpStart, hookErr.Hook)
}

func TestPushOrdering(t *testing.T) {
	t.Parallel()

	rec := statetest.NewRecorder()
	pause := statetest.NewState("pause", rec)
	game := statetest.NewState("game", rec).ReturnOn(appstate.OpUpdate, appstate.Push(pause))
	m := appstate.New(game)
	res := &appstate.Resources{}

	require.NoError(t, m.Start(t.Context(), res))
	rec.Clear()

	require.NoError(t, m.Update(t.Context(), res))

	rec.AssertOrder(t, "game.update", "game.on_pause", "pause.on_start")
	assert.Equal(t, 2, m.Depth())
	assert.Equal(t, "pause", m.ActiveLabel().GetOrElse(""))
	assert.True(t, m.IsRunning())
}

func TestPopOrdering(t *testing.T) {
	t.Parallel()

	rec := statetest.NewRecorder()
	pause := statetest.NewState("pause", rec).ReturnOn(appstate.OpUpdate, appstate.Pop())
	game := statetest.NewState("game", rec).ReturnOn(appstate.OpUpdate, appstate.Push(pause))
	m := appstate.New(game)
	res := &appstate.Resources{}

	require.NoError(t, m.Start(t.Context(), res))
	require.NoError(t, m.Update(t.Context(), res))
	rec.Clear()

	require.NoError(t, m.Update(t.Context(), res))

	rec.AssertOrder(t, "pause.update", "pause.on_stop", "game.on_resume")
	assert.Equal(t, 1, m.Depth())
	assert.Equal(t, "game", m.ActiveLabel().GetOrElse(""))
	assert.True(t, m.IsRunning())
}

func TestPopLastStateStopsMachine(t *testing.T) {
	t.Parallel()

	rec := statetest.NewRecorder()
	menu := statetest.NewState("menu", rec).ReturnOn(appstate.OpUpdate, appstate.Pop())
	m := appstate.New(menu)
	res := &appstate.Resources{}

	require.NoError(t, m.Start(t.Context(), res))
	rec.Clear()

	require.NoError(t, m.Update(t.Context(), res))

	rec.AssertOrder(t, "menu.update", "menu.on_stop")
	rec.AssertNotRecorded(t, "menu.on_resume")
	assert.False(t, m.IsRunning())
	assert.Zero(t, m.Depth())
	assert.True(t, m.ActiveLabel().Empty())
}

func TestSwitchOrdering(t *testing.T) {
	t.Parallel()

	rec := statetest.NewRecorder()
	game := statetest.NewState("game", rec)
	menu := statetest.NewState("menu", rec).ReturnOn(appstate.OpUpdate, appstate.Switch(game))
	m := appstate.New(menu)
	res := &appstate.Resources{}

	require.NoError(t, m.Start(t.Context(), res))
	rec.Clear()

	require.NoError(t, m.Update(t.Context(), res))

	rec.AssertOrder(t, "menu.update", "menu.on_stop", "game.on_start")
	rec.AssertNotRecorded(t, "menu.on_pause")
	rec.AssertNotRecorded(t, "game.on_resume")
	assert.Equal(t, 1, m.Depth())
	assert.Equal(t, "game", m.ActiveLabel().GetOrElse(""))
}

func TestStopUnwindsTopToBottom(t *testing.T) {
	t.Parallel()

	rec := statetest.NewRecorder()
	hud := statetest.NewState("hud", rec)
	game := statetest.NewState("game", rec).ReturnOn(appstate.OpUpdate, appstate.Push(hud))
	menu := statetest.NewState("menu", rec).ReturnOn(appstate.OpUpdate, appstate.Push(game))
	m := appstate.New(menu)
	res := &appstate.Resources{}

	require.NoError(t, m.Start(t.Context(), res))
	require.NoError(t, m.Update(t.Context(), res))
	require.NoError(t, m.Update(t.Context(), res))
	require.Equal(t, 3, m.Depth())
	rec.Clear()

	require.NoError(t, m.Stop(t.Context(), res))

	rec.AssertOrder(t, "hud.on_stop", "game.on_stop", "menu.on_stop")
	assert.False(t, m.IsRunning())
	assert.Zero(t, m.Depth())

	// Stopping again is a no-op.
	rec.Clear()
	require.NoError(t, m.Stop(t.Context(), res))
	assert.Empty(t, rec.Entries())
}

func TestDispatchBeforeStartIsNoOp(t *testing.T) {
	t.Parallel()

	rec := statetest.NewRecorder()
	menu := statetest.NewState("menu", rec)
	m := appstate.New(menu)
	res := &appstate.Resources{}

	require.NoError(t, m.Update(t.Context(), res))
	require.NoError(t, m.UpdateGUI(t.Context(), res))
	require.NoError(t, m.HandleEvent(t.Context(), res, events.NewCloseRequested()))
	require.NoError(t, m.OnKey(t.Context(), res, events.Key{Code: events.KeyEscape, State: events.Pressed}))
	require.NoError(t, m.OnMouse(t.Context(), res, events.MouseButton{Button: events.ButtonLeft, State: events.Pressed}))
	require.NoError(t, m.OnResize(t.Context(), res, events.Resize{Width: 800, Height: 600}))
	require.NoError(t, m.OnFileDropped(t.Context(), res, "scene.yaml"))
	require.NoError(t, m.OnGamepad(t.Context(), res, gamepad.ButtonDown(0, gamepad.ButtonSouth)))

	assert.Empty(t, rec.Entries())
}

func TestTransitionFullyAppliedBeforeNextDispatch(t *testing.T) {
	t.Parallel()

	rec := statetest.NewRecorder()
	game := statetest.NewState("game", rec)
	menu := statetest.NewState("menu", rec).ReturnOn(appstate.OpUpdate, appstate.Push(game))
	m := appstate.New(menu)
	res := &appstate.Resources{}

	require.NoError(t, m.Start(t.Context(), res))
	require.NoError(t, m.Update(t.Context(), res))
	rec.Clear()

	require.NoError(t, m.Update(t.Context(), res))

	rec.AssertOrder(t, "game.update")
}

func TestDrainedStackReportsNoActiveState(t *testing.T) {
	t.Parallel()

	rec := statetest.NewRecorder()
	menu := statetest.NewState("menu", rec).
		ReturnOn(appstate.OpUpdate, appstate.Pop()).
		FailOn(appstate.OpStop, errHookFailed)
	m := appstate.New(menu)
	res := &appstate.Resources{}

	require.NoError(t, m.Start(t.Context(), res))

	// The pop removes the last state, then its OnStop fails. The removal
	// is not rolled back, so the machine is left running over an empty
	// stack.
	err := m.Update(t.Context(), res)
	require.ErrorIs(t, err, errHookFailed)
	assert.True(t, m.IsRunning())
	assert.Zero(t, m.Depth())

	err = m.Update(t.Context(), res)
	require.ErrorIs(t, err, appstate.ErrNoActiveState)

	err = m.OnKey(t.Context(), res, events.Key{Code: events.KeyEnter, State: events.Pressed})
	require.ErrorIs(t, err, appstate.ErrNoActiveState)
}

func TestStopMarksNotRunningOnFailure(t *testing.T) {
	t.Parallel()

	rec := statetest.NewRecorder()
	game := statetest.NewState("game", rec).FailOn(appstate.OpStop, errHookFailed)
	menu := statetest.NewState("menu", rec).ReturnOn(appstate.OpUpdate, appstate.Push(game))
	m := appstate.New(menu)
	res := &appstate.Resources{}

	require.NoError(t, m.Start(t.Context(), res))
	require.NoError(t, m.Update(t.Context(), res))
	rec.Clear()

	err := m.Stop(t.Context(), res)
	require.ErrorIs(t, err, errHookFailed)

	// The unwind aborted before reaching menu, but the machine is
	// terminal regardless.
	rec.AssertOrder(t, "game.on_stop")
	assert.False(t, m.IsRunning())
	assert.Equal(t, 1, m.Depth())
}

func TestActiveLabelFollowsStack(t *testing.T) {
	t.Parallel()

	menu := statetest.NewState("menu", nil).ReturnOn(appstate.OpUpdate, appstate.Pop())
	m := appstate.New(menu)
	res := &appstate.Resources{}

	// Present before the machine ever runs.
	assert.Equal(t, "menu", m.ActiveLabel().GetOrElse(""))

	require.NoError(t, m.Start(t.Context(), res))
	assert.Equal(t, "menu", m.ActiveLabel().GetOrElse(""))

	require.NoError(t, m.Update(t.Context(), res))
	assert.True(t, m.ActiveLabel().Empty())
}

func TestQuitUnwindsEntireStack(t *testing.T) {
	t.Parallel()

	rec := statetest.NewRecorder()
	hud := statetest.NewState("hud", rec).ReturnOn(appstate.OpUpdate, appstate.Quit())
	game := statetest.NewState("game", rec).ReturnOn(appstate.OpUpdate, appstate.Push(hud))
	menu := statetest.NewState("menu", rec).ReturnOn(appstate.OpUpdate, appstate.Push(game))
	m := appstate.New(menu)
	res := &appstate.Resources{}

	require.NoError(t, m.Start(t.Context(), res))
	require.NoError(t, m.Update(t.Context(), res))
	require.NoError(t, m.Update(t.Context(), res))
	rec.Clear()

	require.NoError(t, m.Update(t.Context(), res))

	rec.AssertOrder(t, "hud.update", "hud.on_stop", "game.on_stop", "menu.on_stop")
	assert.False(t, m.IsRunning())
	assert.Zero(t, m.Depth())
}

func TestQuitAbortLeavesMachineRunning(t *testing.T) {
	t.Parallel()

	rec := statetest.NewRecorder()
	game := statetest.NewState("game", rec).
		ReturnOn(appstate.OpUpdate, appstate.Quit()).
		FailOn(appstate.OpStop, errHookFailed)
	menu := statetest.NewState("menu", rec).ReturnOn(appstate.OpUpdate, appstate.Push(game))
	m := appstate.New(menu)
	res := &appstate.Resources{}

	require.NoError(t, m.Start(t.Context(), res))
	require.NoError(t, m.Update(t.Context(), res))
	rec.Clear()

	// Quit via transition has no terminal guarantee: the failed unwind
	// leaves the machine running over the remaining stack. Stop is the
	// path that guarantees termination.
	err := m.Update(t.Context(), res)
	require.ErrorIs(t, err, errHookFailed)
	assert.True(t, m.IsRunning())
	assert.Equal(t, 1, m.Depth())
	assert.Equal(t, "menu", m.ActiveLabel().GetOrElse(""))
}

func TestOperationErrorSkipsTransition(t *testing.T) {
	t.Parallel()

	rec := statetest.NewRecorder()
	game := statetest.NewState("game", rec)
	menu := statetest.NewState("menu", rec).
		ReturnOn(appstate.OpUpdate, appstate.Push(game)).
		FailOn(appstate.OpUpdate, errHookFailed)
	m := appstate.New(menu)
	res := &appstate.Resources{}

	require.NoError(t, m.Start(t.Context(), res))
	rec.Clear()

	err := m.Update(t.Context(), res)
	require.ErrorIs(t, err, errHookFailed)

	var hookErr *appstate.HookError
	require.ErrorAs(t, err, &hookErr)
	assert.Equal(t, "menu", hookErr.Label)
	assert.Equal(t, appstate.OpUpdate, hookErr.Hook)

	// The queued push was never applied.
	rec.AssertOrder(t, "menu.update")
	assert.Equal(t, 1, m.Depth())
	assert.Equal(t, "menu", m.ActiveLabel().GetOrElse(""))
}

func TestPopStopFailureSkipsResume(t *testing.T) {
	t.Parallel()

	rec := statetest.NewRecorder()
	pause := statetest.NewState("pause", rec).
		ReturnOn(appstate.OpUpdate, appstate.Pop()).
		FailOn(appstate.OpStop, errHookFailed)
	game := statetest.NewState("game", rec).ReturnOn(appstate.OpUpdate, appstate.Push(pause))
	m := appstate.New(game)
	res := &appstate.Resources{}

	require.NoError(t, m.Start(t.Context(), res))
	require.NoError(t, m.Update(t.Context(), res))
	rec.Clear()

	err := m.Update(t.Context(), res)
	require.ErrorIs(t, err, errHookFailed)

	// The structural pop stuck, the resume never fired.
	rec.AssertOrder(t, "pause.update", "pause.on_stop")
	rec.AssertNotRecorded(t, "game.on_resume")
	assert.Equal(t, 1, m.Depth())
	assert.Equal(t, "game", m.ActiveLabel().GetOrElse(""))
	assert.True(t, m.IsRunning())

	// The machine keeps dispatching to the uncovered state.
	rec.Clear()
	require.NoError(t, m.Update(t.Context(), res))
	rec.AssertOrder(t, "game.update")
}

func TestSwitchStopFailureLeavesReplacementOff(t *testing.T) {
	t.Parallel()

	rec := statetest.NewRecorder()
	game := statetest.NewState("game", rec)
	menu := statetest.NewState("menu", rec).
		ReturnOn(appstate.OpUpdate, appstate.Switch(game)).
		FailOn(appstate.OpStop, errHookFailed)
	m := appstate.New(menu)
	res := &appstate.Resources{}

	require.NoError(t, m.Start(t.Context(), res))
	rec.Clear()

	err := m.Update(t.Context(), res)
	require.ErrorIs(t, err, errHookFailed)

	// The old state was removed but its replacement never went on.
	rec.AssertOrder(t, "menu.update", "menu.on_stop")
	rec.AssertNotRecorded(t, "game.on_start")
	assert.Zero(t, m.Depth())
	assert.True(t, m.IsRunning())
}

func TestPushPauseFailureLeavesStackUnchanged(t *testing.T) {
	t.Parallel()

	rec := statetest.NewRecorder()
	pause := statetest.NewState("pause", rec)
	game := statetest.NewState("game", rec).
		ReturnOn(appstate.OpUpdate, appstate.Push(pause)).
		FailOn(appstate.OpPause, errHookFailed)
	m := appstate.New(game)
	res := &appstate.Resources{}

	require.NoError(t, m.Start(t.Context(), res))
	rec.Clear()

	err := m.Update(t.Context(), res)
	require.ErrorIs(t, err, errHookFailed)

	rec.AssertOrder(t, "game.update", "game.on_pause")
	rec.AssertNotRecorded(t, "pause.on_start")
	assert.Equal(t, 1, m.Depth())
	assert.Equal(t, "game", m.ActiveLabel().GetOrElse(""))
}

func TestNilStateTransitionsFail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		transition appstate.Transition
	}{
		{name: "push", transition: appstate.Push(nil)},
		{name: "switch", transition: appstate.Switch(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			menu := statetest.NewState("menu", nil).ReturnOn(appstate.OpUpdate, tt.transition)
			m := appstate.New(menu)
			res := &appstate.Resources{}

			require.NoError(t, m.Start(t.Context(), res))

			err := m.Update(t.Context(), res)
			require.ErrorIs(t, err, appstate.ErrNilState)
		})
	}
}

func TestEntryPointsReachActiveState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		op   string
		call func(context.Context, *appstate.Machine, *appstate.Resources) error
	}{
		{
			name: "update",
			op:   appstate.OpUpdate,
			call: func(ctx context.Context, m *appstate.Machine, res *appstate.Resources) error {
				return m.Update(ctx, res)
			},
		},
		{
			name: "update gui",
			op:   appstate.OpUpdateGUI,
			call: func(ctx context.Context, m *appstate.Machine, res *appstate.Resources) error {
				return m.UpdateGUI(ctx, res)
			},
		},
		{
			name: "handle event",
			op:   appstate.OpHandleEvent,
			call: func(ctx context.Context, m *appstate.Machine, res *appstate.Resources) error {
				return m.HandleEvent(ctx, res, events.NewKey(events.KeySpace, events.Pressed))
			},
		},
		{
			name: "key",
			op:   appstate.OpKey,
			call: func(ctx context.Context, m *appstate.Machine, res *appstate.Resources) error {
				return m.OnKey(ctx, res, events.Key{Code: events.KeyW, State: events.Pressed})
			},
		},
		{
			name: "mouse",
			op:   appstate.OpMouse,
			call: func(ctx context.Context, m *appstate.Machine, res *appstate.Resources) error {
				return m.OnMouse(ctx, res, events.MouseButton{Button: events.ButtonRight, State: events.Released})
			},
		},
		{
			name: "resize",
			op:   appstate.OpResize,
			call: func(ctx context.Context, m *appstate.Machine, res *appstate.Resources) error {
				return m.OnResize(ctx, res, events.Resize{Width: 1920, Height: 1080})
			},
		},
		{
			name: "file dropped",
			op:   appstate.OpFileDropped,
			call: func(ctx context.Context, m *appstate.Machine, res *appstate.Resources) error {
				return m.OnFileDropped(ctx, res, "level.yaml")
			},
		},
		{
			name: "gamepad",
			op:   appstate.OpGamepad,
			call: func(ctx context.Context, m *appstate.Machine, res *appstate.Resources) error {
				return m.OnGamepad(ctx, res, gamepad.AxisMoved(0, gamepad.AxisLeftX, 0.5))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := statetest.NewRecorder()
			menu := statetest.NewState("menu", rec)
			m := appstate.New(menu)
			res := &appstate.Resources{}

			require.NoError(t, m.Start(t.Context(), res))
			rec.Clear()

			require.NoError(t, tt.call(t.Context(), m, res))
			rec.AssertOrder(t, "menu."+tt.op)
		})
	}
}

// recordingHooks captures hook notifications for assertions.
type recordingHooks struct {
	mu      sync.Mutex
	entries []string
}

func (h *recordingHooks) add(entry string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, entry)
}

func (h *recordingHooks) all() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, len(h.entries))
	copy(out, h.entries)

	return out
}

func (h *recordingHooks) StateStarted(_ context.Context, _, label string) {
	h.add("started:" + label)
}

func (h *recordingHooks) StateStopped(_ context.Context, _, label string) {
	h.add("stopped:" + label)
}

func (h *recordingHooks) StatePaused(_ context.Context, _, label string) {
	h.add("paused:" + label)
}

func (h *recordingHooks) StateResumed(_ context.Context, _, label string) {
	h.add("resumed:" + label)
}

func (h *recordingHooks) TransitionApplied(
	_ context.Context, _, from, to string, kind appstate.TransitionKind, depth int,
) {
	h.add(fmt.Sprintf("transition:%s:%s->%s:depth=%d", kind, from, to, depth))
}

func (h *recordingHooks) DispatchFailed(_ context.Context, _, entry, label string, _ error) {
	h.add("failed:" + entry + ":" + label)
}

func TestHooksObserveLifecycle(t *testing.T) {
	t.Parallel()

	hooks := &recordingHooks{}
	pause := statetest.NewState("pause", nil).ReturnOn(appstate.OpUpdate, appstate.Pop())
	game := statetest.NewState("game", nil).ReturnOn(appstate.OpUpdate, appstate.Push(pause))
	m := appstate.New(game,
		appstate.WithName("session"),
		appstate.WithHooks(hooks),
		appstate.WithLogger(slogt.New(t)),
	)
	res := &appstate.Resources{}

	require.NoError(t, m.Start(t.Context(), res))
	require.NoError(t, m.Update(t.Context(), res))
	require.NoError(t, m.Update(t.Context(), res))
	require.NoError(t, m.Stop(t.Context(), res))

	assert.Equal(t, []string{
		"started:game",
		"paused:game",
		"started:pause",
		"transition:push:game->pause:depth=2",
		"stopped:pause",
		"resumed:game",
		"transition:pop:pause->game:depth=1",
		"stopped:game",
	}, hooks.all())
}

func TestHooksObserveDispatchFailure(t *testing.T) {
	t.Parallel()

	hooks := &recordingHooks{}
	menu := statetest.NewState("menu", nil).FailOn(appstate.OpUpdate, errHookFailed)
	m := appstate.New(menu, appstate.WithHooks(hooks))
	res := &appstate.Resources{}

	require.NoError(t, m.Start(t.Context(), res))

	err := m.Update(t.Context(), res)
	require.ErrorIs(t, err, errHookFailed)

	assert.Contains(t, hooks.all(), "failed:update:menu")
}
