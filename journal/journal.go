// Package journal records state machine activity as an ordered sequence
// of entries and persists it as a checksummed YAML document. A journal
// covers one session: attach a Recorder to a machine via
// appstate.WithHooks, then save, summarize, or render the captured run.
package journal

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lanternworks/lantern-common/appstate"
)

// EntryKind classifies a journal entry.
type EntryKind string

// Entry kinds.
const (
	// EntryLifecycle marks a state lifecycle notification such as
	// on_start or on_pause.
	EntryLifecycle EntryKind = "lifecycle"

	// EntryTransition marks an applied structural change.
	EntryTransition EntryKind = "transition"

	// EntryFailure marks a failed dispatch.
	EntryFailure EntryKind = "failure"
)

// Entry is one observed machine notification. Fields that do not apply
// to the entry kind stay empty and are omitted from the YAML form.
type Entry struct {
	At         time.Time `yaml:"at"`
	Kind       EntryKind `yaml:"kind"`
	Machine    string    `yaml:"machine"`
	Op         string    `yaml:"op,omitempty"`
	State      string    `yaml:"state,omitempty"`
	From       string    `yaml:"from,omitempty"`
	To         string    `yaml:"to,omitempty"`
	Transition string    `yaml:"transition,omitempty"`
	Depth      int       `yaml:"depth,omitempty"`
	Error      string    `yaml:"error,omitempty"`
}

// Journal is a recorded session: a session identifier and the entries
// in the order they were observed.
type Journal struct {
	Session   string    `yaml:"session"`
	StartedAt time.Time `yaml:"started_at"`
	Entries   []Entry   `yaml:"entries"`
}

// Recorder captures machine notifications into a Journal. It implements
// appstate.Hooks. Recording is mutex-guarded so a snapshot can be taken
// while the machine is still dispatching on another goroutine.
type Recorder struct {
	mu      sync.Mutex
	journal Journal
	now     func() time.Time
}

var _ appstate.Hooks = (*Recorder)(nil)

// RecorderOption configures a Recorder at construction.
type RecorderOption func(*Recorder)

// WithClock overrides the timestamp source. Useful in tests.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// WithSession overrides the generated session identifier.
func WithSession(session string) RecorderOption {
	return func(r *Recorder) {
		if session != "" {
			r.journal.Session = session
		}
	}
}

// NewRecorder creates a recorder with a fresh session identifier.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{
		journal: Journal{
			Session: uuid.NewString(),
		},
		now: time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.journal.StartedAt = r.now()

	return r
}

// Session returns the session identifier.
func (r *Recorder) Session() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.journal.Session
}

// Len returns the number of recorded entries.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.journal.Entries)
}

// Snapshot returns a copy of the journal as recorded so far.
func (r *Recorder) Snapshot() Journal {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := r.journal
	snapshot.Entries = make([]Entry, len(r.journal.Entries))
	copy(snapshot.Entries, r.journal.Entries)

	return snapshot
}

func (r *Recorder) record(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.At = r.now()
	r.journal.Entries = append(r.journal.Entries, entry)
}

func (r *Recorder) recordLifecycle(machine, op, label string) {
	r.record(Entry{
		Kind:    EntryLifecycle,
		Machine: machine,
		Op:      op,
		State:   label,
	})
}

func (r *Recorder) StateStarted(_ context.Context, machine, label string) {
	r.recordLifecycle(machine, appstate.OpStart, label)
}

func (r *Recorder) StateStopped(_ context.Context, machine, label string) {
	r.recordLifecycle(machine, appstate.OpStop, label)
}

func (r *Recorder) StatePaused(_ context.Context, machine, label string) {
	r.recordLifecycle(machine, appstate.OpPause, label)
}

func (r *Recorder) StateResumed(_ context.Context, machine, label string) {
	r.recordLifecycle(machine, appstate.OpResume, label)
}

func (r *Recorder) TransitionApplied(
	_ context.Context, machine, from, to string, kind appstate.TransitionKind, depth int,
) {
	r.record(Entry{
		Kind:       EntryTransition,
		Machine:    machine,
		From:       from,
		To:         to,
		Transition: kind.String(),
		Depth:      depth,
	})
}

func (r *Recorder) DispatchFailed(_ context.Context, machine, entry, label string, err error) {
	errText := ""
	if err != nil {
		errText = err.Error()
	}

	r.record(Entry{
		Kind:    EntryFailure,
		Machine: machine,
		Op:      entry,
		State:   label,
		Error:   errText,
	})
}
