package appstate

import (
	"context"
	"log/slog"
)

// Hooks receives notifications as the machine runs lifecycle operations
// and applies transitions. Implementations must return quickly and must
// not call back into the machine. Notifications fire only after the
// operation they describe succeeded; failures surface through
// DispatchFailed and the returned error.
type Hooks interface {
	StateStarted(ctx context.Context, machine, label string)
	StateStopped(ctx context.Context, machine, label string)
	StatePaused(ctx context.Context, machine, label string)
	StateResumed(ctx context.Context, machine, label string)

	// TransitionApplied fires after a structural change completed. to is
	// empty when the change left no active state. depth is the stack
	// depth after the change.
	TransitionApplied(ctx context.Context, machine, from, to string, kind TransitionKind, depth int)

	// DispatchFailed fires when a dispatch entry point returns an error,
	// whether from the state operation or from a lifecycle hook during
	// transition application.
	DispatchFailed(ctx context.Context, machine, entry, label string, err error)
}

// SlogHooks implements Hooks using slog.
type SlogHooks struct {
	logger *slog.Logger
}

var _ Hooks = (*SlogHooks)(nil)

// NewSlogHooks creates slog-backed hooks. A nil logger falls back to
// slog.Default().
func NewSlogHooks(logger *slog.Logger) *SlogHooks {
	if logger == nil {
		logger = slog.Default()
	}

	return &SlogHooks{logger: logger}
}

func (h *SlogHooks) StateStarted(ctx context.Context, machine, label string) {
	h.logger.InfoContext(ctx, "state started", "machine", machine, "state", label)
}

func (h *SlogHooks) StateStopped(ctx context.Context, machine, label string) {
	h.logger.InfoContext(ctx, "state stopped", "machine", machine, "state", label)
}

func (h *SlogHooks) StatePaused(ctx context.Context, machine, label string) {
	h.logger.DebugContext(ctx, "state paused", "machine", machine, "state", label)
}

func (h *SlogHooks) StateResumed(ctx context.Context, machine, label string) {
	h.logger.DebugContext(ctx, "state resumed", "machine", machine, "state", label)
}

func (h *SlogHooks) TransitionApplied(
	ctx context.Context, machine, from, to string, kind TransitionKind, depth int,
) {
	h.logger.InfoContext(ctx, "transition applied",
		"machine", machine,
		"from", from,
		"to", to,
		"kind", kind.String(),
		"depth", depth,
	)
}

func (h *SlogHooks) DispatchFailed(ctx context.Context, machine, entry, label string, err error) {
	h.logger.ErrorContext(ctx, "dispatch failed",
		"machine", machine,
		"entry", entry,
		"state", label,
		"error", err,
	)
}

// NopHooks implements Hooks and does nothing.
type NopHooks struct{}

var _ Hooks = NopHooks{}

func (NopHooks) StateStarted(context.Context, string, string)  {}
func (NopHooks) StateStopped(context.Context, string, string)  {}
func (NopHooks) StatePaused(context.Context, string, string)   {}
func (NopHooks) StateResumed(context.Context, string, string)  {}
func (NopHooks) TransitionApplied(context.Context, string, string, string, TransitionKind, int) {
}
func (NopHooks) DispatchFailed(context.Context, string, string, string, error) {}
