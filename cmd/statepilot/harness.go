package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/lanternworks/lantern-common/appstate"
	"github.com/lanternworks/lantern-common/cli"
	"github.com/lanternworks/lantern-common/config"
	"github.com/lanternworks/lantern-common/contexts"
	"github.com/lanternworks/lantern-common/debug"
	"github.com/lanternworks/lantern-common/events"
	"github.com/lanternworks/lantern-common/journal"
	"github.com/lanternworks/lantern-common/logger"
	"github.com/lanternworks/lantern-common/runtime"
)

const (
	actionDemo   = "Run the scripted demo"
	actionCustom = "Drive a custom key sequence"
	actionExport = "Export the last recording"
	actionConfig = "Show the active configuration"
	actionQuit   = "Quit"

	exportSummary = "Summary"
	exportMermaid = "Mermaid diagram"
	exportJSON    = "Raw JSON"
	exportFile    = "Journal file"

	// Generous upper bound on frames per scenario. Key-driven runs stop
	// themselves within a handful of frames, so hitting this means a
	// sequence left the machine idling.
	scenarioFrameBudget = 240
)

type harness struct {
	cfg  *config.Config
	log  *slog.Logger
	last *journal.Recorder
}

func newHarness(cfg *config.Config, log *slog.Logger) *harness {
	return &harness{
		cfg: cfg,
		log: log,
	}
}

// menu loops over the action prompt until the user quits or interrupts.
// Action failures are logged and the menu continues.
func (h *harness) menu(ctx context.Context) error {
	for contexts.IsContextAlive(ctx) {
		prompt := promptui.Select{
			Label: "What next",
			Items: []string{actionDemo, actionCustom, actionExport, actionConfig, actionQuit},
			Size:  5,
		}

		_, action, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				return nil
			}

			return fmt.Errorf("failed to read menu selection: %w", err)
		}

		switch action {
		case actionDemo:
			err = h.runScenario(ctx, demoSequence())
		case actionCustom:
			err = h.runCustom(ctx)
		case actionExport:
			err = h.export()
		case actionConfig:
			fmt.Println(debug.PrettyJSONString(h.cfg))
		case actionQuit:
			return nil
		}

		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				return nil
			}

			h.log.ErrorContext(ctx, "Action failed", "action", action, "error", err)
		}
	}

	return ctx.Err()
}

// runScenario drives a fresh demo machine with the given events and keeps
// the recording for export. The queue drains on the first frame, so each
// event reaches whichever state the previous one left active.
func (h *harness) runScenario(ctx context.Context, sequence []events.Event) error {
	recorder := journal.NewRecorder()

	machine := appstate.New(&menuState{},
		appstate.WithName("demo"),
		appstate.WithHooks(recorder),
	)

	loop := runtime.New(machine, runtime.NewResources(h.cfg),
		runtime.WithEventSource(runtime.NewQueue(sequence...)),
		runtime.WithRecorder(recorder),
		runtime.WithMaxFrames(scenarioFrameBudget),
	)

	ctx = logger.WithSessionId(ctx, loop.Session())
	h.log.InfoContext(ctx, "Scenario starting", "events", len(sequence))

	if err := loop.Run(ctx); err != nil {
		return fmt.Errorf("scenario failed: %w", err)
	}

	h.last = recorder

	fmt.Println(cli.DividerAutoWidth())
	fmt.Println(journal.Summarize(recorder.Snapshot()).String())

	return nil
}

func (h *harness) runCustom(ctx context.Context) error {
	raw, err := cli.PromptString("Key sequence, space separated (enter p escape q ...)")
	if err != nil {
		return fmt.Errorf("failed to read key sequence: %w", err)
	}

	sequence, err := parseSequence(raw)
	if err != nil {
		return err
	}

	return h.runScenario(ctx, sequence)
}

func (h *harness) export() error {
	if h.last == nil {
		fmt.Println("Nothing recorded yet. Run a scenario first.")

		return nil
	}

	snapshot := h.last.Snapshot()

	formats, err := cli.MultiSelect("Export formats",
		exportSummary, exportMermaid, exportJSON, exportFile)
	if err != nil {
		return fmt.Errorf("failed to pick export formats: %w", err)
	}

	for _, format := range formats {
		switch format {
		case exportSummary:
			fmt.Println(journal.Summarize(snapshot).String())
		case exportMermaid:
			fmt.Println(journal.Mermaid(snapshot))
		case exportJSON:
			fmt.Println(debug.PrettyJSONString(snapshot))
		case exportFile:
			if err := h.saveJournal(snapshot); err != nil {
				return err
			}
		}
	}

	return nil
}

func (h *harness) saveJournal(snapshot journal.Journal) error {
	dir, err := cli.PromptStringEmptyOk("Directory (empty for " + h.cfg.Journal.Dir + ")")
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	if dir == "" {
		dir = h.cfg.Journal.Dir
	}

	path, err := journal.SaveTo(snapshot, dir)
	if err != nil {
		return fmt.Errorf("failed to save journal: %w", err)
	}

	fmt.Println("Journal written to", path)

	return nil
}

// demoSequence walks the whole demo stack: push twice, pop with resume
// twice, switch the menu away, and pop the stack empty.
func demoSequence() []events.Event {
	return []events.Event{
		events.NewKey(events.KeyEnter, events.Pressed),
		events.NewKey(events.KeyP, events.Pressed),
		events.NewKey(events.KeyEscape, events.Pressed),
		events.NewKey(events.KeyEscape, events.Pressed),
		events.NewKey(events.KeyTab, events.Pressed),
		events.NewKey(events.KeyEscape, events.Pressed),
	}
}

var knownKeys = map[events.KeyCode]struct{}{ //nolint:gochecknoglobals
	events.KeyEscape: {},
	events.KeyEnter:  {},
	events.KeySpace:  {},
	events.KeyTab:    {},
	events.KeyUp:     {},
	events.KeyDown:   {},
	events.KeyLeft:   {},
	events.KeyRight:  {},
	events.KeyShift:  {},
	events.KeyW:      {},
	events.KeyA:      {},
	events.KeyS:      {},
	events.KeyD:      {},
	events.KeyP:      {},
	events.KeyQ:      {},
}

func parseSequence(raw string) ([]events.Event, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, errors.New("no keys given")
	}

	sequence := make([]events.Event, 0, len(fields))

	for _, field := range fields {
		code := events.KeyCode(strings.ToLower(field))
		if _, ok := knownKeys[code]; !ok {
			return nil, fmt.Errorf("unknown key %q", field)
		}

		sequence = append(sequence, events.NewKey(code, events.Pressed))
	}

	return sequence, nil
}
