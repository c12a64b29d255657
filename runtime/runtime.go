// Package runtime drives a state machine from a frame loop. Each frame
// it advances the clock, drains the event and gamepad sources into the
// machine, ticks Update and UpdateGUI, renders, and optionally sleeps to
// honor the configured frame limit. The loop runs on a single goroutine;
// sources are polled, never pushed, so the machine stays single-threaded.
package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lanternworks/lantern-common/appstate"
	"github.com/lanternworks/lantern-common/bgworker"
	"github.com/lanternworks/lantern-common/config"
	"github.com/lanternworks/lantern-common/errors"
	"github.com/lanternworks/lantern-common/events"
	"github.com/lanternworks/lantern-common/frame"
	"github.com/lanternworks/lantern-common/gamepad"
	"github.com/lanternworks/lantern-common/input"
	"github.com/lanternworks/lantern-common/journal"
	"github.com/lanternworks/lantern-common/logger"
	"github.com/lanternworks/lantern-common/render"
	"github.com/lanternworks/lantern-common/retry"
	"github.com/lanternworks/lantern-common/utils"
	"github.com/lanternworks/lantern-common/window"
)

const journalSaveAttempts = 3

// Runtime owns the frame loop around one machine and its resources.
type Runtime struct {
	machine   *appstate.Machine
	res       *appstate.Resources
	source    EventSource
	recorder  *journal.Recorder
	session   string
	autosave  time.Duration
	maxFrames uint64
}

// Option configures a Runtime at construction.
type Option func(*Runtime)

// WithEventSource sets the platform event source the loop drains each
// frame. Without one, only gamepad events and ticks reach the machine.
func WithEventSource(source EventSource) Option {
	return func(r *Runtime) {
		r.source = source
	}
}

// WithRecorder attaches a journal recorder. The runtime adopts the
// recorder's session identifier and saves the journal on shutdown when
// journaling is enabled in the configuration.
func WithRecorder(recorder *journal.Recorder) Option {
	return func(r *Runtime) {
		r.recorder = recorder
	}
}

// WithAutosave persists the journal at the given interval while the loop
// runs, in addition to the final save on shutdown. Zero disables
// autosaving.
func WithAutosave(interval time.Duration) Option {
	return func(r *Runtime) {
		r.autosave = interval
	}
}

// WithMaxFrames stops the loop after n frames. Zero means unlimited.
func WithMaxFrames(n uint64) Option {
	return func(r *Runtime) {
		r.maxFrames = n
	}
}

// New creates a runtime over the given machine and resources. It panics
// on nil machine, nil resources, or resources without a frame clock: the
// loop cannot tick without them.
func New(machine *appstate.Machine, res *appstate.Resources, opts ...Option) *Runtime {
	if machine == nil {
		panic("runtime: machine must not be nil")
	}

	if res == nil {
		panic("runtime: resources must not be nil")
	}

	if res.Frame == nil {
		panic("runtime: resources require a frame clock")
	}

	r := &Runtime{
		machine: machine,
		res:     res,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.recorder != nil {
		r.session = r.recorder.Session()
	} else {
		r.session = uuid.NewString()
	}

	return r
}

// NewResources assembles a headless resource bundle from the given
// configuration: an in-memory window, a frame clock sized to it, empty
// input, a gamepad queue, and a no-op renderer. A nil config uses the
// defaults.
func NewResources(cfg *config.Config) *appstate.Resources {
	if cfg == nil {
		cfg = config.Default()
	}

	return &appstate.Resources{
		Config:   cfg,
		Window:   window.NewHeadless(cfg.Window),
		Input:    input.New(),
		Frame:    frame.New(cfg.Window.Width, cfg.Window.Height),
		Gamepads: gamepad.NewQueue(),
		Renderer: render.NewNoop(),
	}
}

// Session returns the session identifier used in logs and journals.
func (r *Runtime) Session() string {
	return r.session
}

// Run starts the machine and drives the loop until the machine stops, a
// state requests exit, the frame budget runs out, or the context is
// canceled. On the way out it stops the machine if still running and
// saves the journal; teardown failures are joined onto the returned
// error. A dispatch failure mid-frame is logged and the loop continues.
func (r *Runtime) Run(ctx context.Context) (err error) {
	ctx = logger.WithSessionId(ctx, r.session)
	log := logger.Get(ctx)

	log.InfoContext(ctx, "runtime starting", "machine", r.machine.Name())

	err = r.machine.Start(ctx, r.res)
	if err != nil {
		return fmt.Errorf("failed to start machine: %w", err)
	}

	defer func() {
		teardown := &errors.Collection{}
		teardown.Add(err)

		cleanupCtx := context.WithoutCancel(ctx)

		if r.machine.IsRunning() {
			teardown.Add(r.machine.Stop(cleanupCtx, r.res))
		}

		teardown.Add(r.saveJournal(cleanupCtx))

		err = teardown.GetError()

		log.InfoContext(ctx, "runtime stopped",
			"machine", r.machine.Name(),
			"frames", r.res.Frame.FrameCount(),
		)
	}()

	r.startAutosave(ctx)

	for frames := uint64(0); ; {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		frameStart := time.Now()
		delta := r.res.Frame.BeginFrame()

		r.drainEvents(ctx)
		r.drainGamepads(ctx)

		if r.done() {
			return nil
		}

		r.logDispatchErr(ctx, appstate.OpUpdate, r.machine.Update(ctx, r.res))
		r.logDispatchErr(ctx, appstate.OpUpdateGUI, r.machine.UpdateGUI(ctx, r.res))

		if r.done() {
			return nil
		}

		if r.res.Renderer != nil {
			renderErr := r.res.Renderer.Render(ctx, delta)
			if renderErr != nil {
				log.ErrorContext(ctx, "render failed; continuing", "error", renderErr)
			}
		}

		if r.res.Input != nil {
			r.res.Input.EndFrame()
		}

		frames++
		if r.maxFrames > 0 && frames >= r.maxFrames {
			return nil
		}

		r.limitFrame(ctx, frameStart)
	}
}

// done reports whether the loop should exit: a state requested it or the
// machine stopped.
func (r *Runtime) done() bool {
	return r.res.Frame.ExitRequested() || !r.machine.IsRunning()
}

// drainEvents routes every pending platform event into the machine.
func (r *Runtime) drainEvents(ctx context.Context) {
	if r.source == nil {
		return
	}

	for {
		event, ok := r.source.Poll()
		if !ok {
			return
		}

		r.routeEvent(ctx, event)
	}
}

// routeEvent applies an event to the shared resources first, then
// dispatches it: the entry point specific to the event kind, then the
// generic one. States observe resource changes already applied.
func (r *Runtime) routeEvent(ctx context.Context, event events.Event) {
	r.applySystem(ctx, event)

	if r.res.Input != nil {
		r.res.Input.Apply(event)
	}

	r.dispatchSpecific(ctx, event)
	r.logDispatchErr(ctx, appstate.OpHandleEvent, r.machine.HandleEvent(ctx, r.res, event))
}

// applySystem updates the frame clock, window, and renderer for events
// the platform layer owns regardless of the active state.
func (r *Runtime) applySystem(ctx context.Context, event events.Event) {
	switch event.Kind {
	case events.KindResize:
		r.res.Frame.SetWindowSize(event.Resize.Width, event.Resize.Height)

		if r.res.Window != nil {
			r.res.Window.Resize(event.Resize.Width, event.Resize.Height)
		}

		if r.res.Renderer != nil {
			resizeErr := r.res.Renderer.Resize(event.Resize.Width, event.Resize.Height)
			if resizeErr != nil {
				logger.Get(ctx).ErrorContext(ctx, "renderer resize failed",
					"width", event.Resize.Width,
					"height", event.Resize.Height,
					"error", resizeErr,
				)
			}
		}
	case events.KindCloseRequested:
		r.res.Frame.RequestExit()
	}
}

// dispatchSpecific routes the event to its kind-specific entry point.
// Kinds without one (cursor, wheel, close) reach states through the
// generic dispatch only.
func (r *Runtime) dispatchSpecific(ctx context.Context, event events.Event) {
	switch event.Kind {
	case events.KindKey:
		r.logDispatchErr(ctx, appstate.OpKey, r.machine.OnKey(ctx, r.res, event.Key))
	case events.KindMouseButton:
		r.logDispatchErr(ctx, appstate.OpMouse, r.machine.OnMouse(ctx, r.res, event.Mouse))
	case events.KindResize:
		r.logDispatchErr(ctx, appstate.OpResize, r.machine.OnResize(ctx, r.res, event.Resize))
	case events.KindFileDropped:
		r.logDispatchErr(ctx, appstate.OpFileDropped, r.machine.OnFileDropped(ctx, r.res, event.Path))
	}
}

// drainGamepads routes every pending gamepad event into the machine.
func (r *Runtime) drainGamepads(ctx context.Context) {
	if r.res.Gamepads == nil {
		return
	}

	for {
		event, ok := r.res.Gamepads.Poll()
		if !ok {
			return
		}

		r.logDispatchErr(ctx, appstate.OpGamepad, r.machine.OnGamepad(ctx, r.res, event))
	}
}

func (r *Runtime) logDispatchErr(ctx context.Context, entry string, err error) {
	if err != nil {
		logger.Get(ctx).ErrorContext(ctx, "state dispatch failed; continuing",
			"entry", entry,
			"error", err,
		)
	}
}

// limitFrame sleeps out the remainder of the frame budget when a frame
// limit is configured.
func (r *Runtime) limitFrame(ctx context.Context, frameStart time.Time) {
	limit := r.frameLimit()
	if limit == 0 {
		return
	}

	target := time.Second / time.Duration(limit)
	if remaining := target - time.Since(frameStart); remaining > 0 {
		_ = utils.SleepCtx(ctx, remaining)
	}
}

func (r *Runtime) frameLimit() uint32 {
	if r.res.Config == nil {
		return 0
	}

	return r.res.Config.Graphics.FrameLimit
}

func (r *Runtime) journalEnabled() bool {
	return r.recorder != nil && r.res.Config != nil && r.res.Config.Journal.Enabled
}

// startAutosave periodically persists the journal on a background worker
// until the context is canceled.
func (r *Runtime) startAutosave(ctx context.Context) {
	if r.autosave <= 0 || !r.journalEnabled() {
		return
	}

	ticks := utils.TickerWithContext(ctx, r.autosave)

	err := bgworker.Go(ctx, func() {
		for range ticks {
			saveErr := r.saveJournal(ctx)
			if saveErr != nil {
				logger.Get(ctx).ErrorContext(ctx, "journal autosave failed", "error", saveErr)
			}
		}
	})
	if err != nil {
		logger.Get(ctx).ErrorContext(ctx, "failed to start journal autosave", "error", err)
	}
}

// saveJournal persists the recorder snapshot into the configured journal
// directory, retrying transient filesystem failures.
func (r *Runtime) saveJournal(ctx context.Context) error {
	if !r.journalEnabled() {
		return nil
	}

	snapshot := r.recorder.Snapshot()
	dir := r.res.Config.Journal.Dir

	return retry.Do(ctx, func(_ context.Context) error {
		_, saveErr := journal.SaveTo(snapshot, dir)

		return saveErr
	}, retry.WithAttempts(journalSaveAttempts))
}
