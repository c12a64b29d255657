package input_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lanternworks/lantern-common/events"
	"github.com/lanternworks/lantern-common/input"
)

func TestKeyHeldTracking(t *testing.T) {
	t.Parallel()

	snap := input.New()

	snap.Apply(events.NewKey(events.KeyW, events.Pressed))
	snap.Apply(events.NewKey(events.KeyShift, events.Pressed))

	assert.True(t, snap.IsKeyHeld(events.KeyW))
	assert.True(t, snap.IsKeyHeld(events.KeyShift))
	assert.False(t, snap.IsKeyHeld(events.KeyA))

	snap.Apply(events.NewKey(events.KeyW, events.Released))
	assert.False(t, snap.IsKeyHeld(events.KeyW))
	assert.True(t, snap.IsKeyHeld(events.KeyShift))
}

func TestKeyRepeatKeepsHeld(t *testing.T) {
	t.Parallel()

	snap := input.New()

	snap.Apply(events.NewKey(events.KeyD, events.Pressed))
	snap.Apply(events.NewKeyRepeat(events.KeyD))

	assert.True(t, snap.IsKeyHeld(events.KeyD))
	assert.Equal(t, []events.KeyCode{events.KeyD}, snap.HeldKeys())
}

func TestHeldKeysSorted(t *testing.T) {
	t.Parallel()

	snap := input.New()

	snap.Apply(events.NewKey(events.KeyW, events.Pressed))
	snap.Apply(events.NewKey(events.KeyA, events.Pressed))
	snap.Apply(events.NewKey(events.KeyS, events.Pressed))

	assert.Equal(t, []events.KeyCode{events.KeyA, events.KeyS, events.KeyW}, snap.HeldKeys())
}

func TestMouseButtons(t *testing.T) {
	t.Parallel()

	snap := input.New()

	snap.Apply(events.NewMouseButton(events.ButtonLeft, events.Pressed))
	snap.Apply(events.NewMouseButton(events.ButtonRight, events.Pressed))

	mouse := snap.Mouse()
	assert.True(t, mouse.LeftHeld)
	assert.True(t, mouse.RightHeld)
	assert.False(t, mouse.MiddleHeld)

	snap.Apply(events.NewMouseButton(events.ButtonLeft, events.Released))
	assert.False(t, snap.Mouse().LeftHeld)
}

func TestCursorDeltaAccumulates(t *testing.T) {
	t.Parallel()

	snap := input.New()

	// First move establishes the position without a delta.
	snap.Apply(events.NewCursorMoved(100, 100))

	mouse := snap.Mouse()
	assert.InDelta(t, 100.0, mouse.X, 0.0001)
	assert.InDelta(t, 0.0, mouse.DeltaX, 0.0001)

	snap.Apply(events.NewCursorMoved(110, 95))
	snap.Apply(events.NewCursorMoved(115, 90))

	mouse = snap.Mouse()
	assert.InDelta(t, 115.0, mouse.X, 0.0001)
	assert.InDelta(t, 90.0, mouse.Y, 0.0001)
	assert.InDelta(t, 15.0, mouse.DeltaX, 0.0001)
	assert.InDelta(t, -10.0, mouse.DeltaY, 0.0001)
}

func TestWheelAccumulates(t *testing.T) {
	t.Parallel()

	snap := input.New()

	snap.Apply(events.NewMouseWheel(0, 1))
	snap.Apply(events.NewMouseWheel(0, 1.5))

	assert.InDelta(t, 2.5, snap.Mouse().WheelY, 0.0001)
}

func TestEndFrameZeroesDeltas(t *testing.T) {
	t.Parallel()

	snap := input.New()

	snap.Apply(events.NewCursorMoved(0, 0))
	snap.Apply(events.NewCursorMoved(5, 5))
	snap.Apply(events.NewMouseWheel(1, 2))

	snap.EndFrame()

	mouse := snap.Mouse()
	assert.Zero(t, mouse.DeltaX)
	assert.Zero(t, mouse.DeltaY)
	assert.Zero(t, mouse.WheelX)
	assert.Zero(t, mouse.WheelY)

	// Position survives the frame boundary.
	assert.InDelta(t, 5.0, mouse.X, 0.0001)
}

func TestOffsetFromCenter(t *testing.T) {
	t.Parallel()

	snap := input.New()
	snap.Apply(events.NewCursorMoved(600, 300))

	dx, dy := snap.OffsetFromCenter(512, 384)
	assert.InDelta(t, 88.0, dx, 0.0001)
	assert.InDelta(t, -84.0, dy, 0.0001)
}

func TestReset(t *testing.T) {
	t.Parallel()

	snap := input.New()

	snap.Apply(events.NewKey(events.KeyW, events.Pressed))
	snap.Apply(events.NewMouseButton(events.ButtonLeft, events.Pressed))
	snap.Apply(events.NewCursorMoved(50, 60))

	snap.Reset()

	assert.Empty(t, snap.HeldKeys())
	assert.False(t, snap.Mouse().LeftHeld)
	assert.InDelta(t, 50.0, snap.Mouse().X, 0.0001)
}

func TestNonInputEventsIgnored(t *testing.T) {
	t.Parallel()

	snap := input.New()

	snap.Apply(events.NewResize(800, 600))
	snap.Apply(events.NewFileDropped("/tmp/level.yaml"))
	snap.Apply(events.NewCloseRequested())

	assert.Empty(t, snap.HeldKeys())
	assert.Equal(t, input.Mouse{}, snap.Mouse())
}
