// Package statetest provides scripted states and call-order recording for
// exercising state machines in tests.
package statetest

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Recorder collects the order of operations invoked on the states built
// around it. Entries look like "menu.on_start" or "game.update".
type Recorder struct {
	mu      sync.Mutex
	entries []string
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends one "label.op" entry.
func (r *Recorder) Record(label, op string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, label+"."+op)
}

// Entries returns a copy of the recorded operations in call order.
func (r *Recorder) Entries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.entries))
	copy(out, r.entries)

	return out
}

// Clear discards everything recorded so far.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
}

// AssertOrder fails the test unless the recorded entries exactly match
// want, in order.
func (r *Recorder) AssertOrder(t *testing.T, want ...string) {
	t.Helper()

	assert.Equal(t, want, r.Entries())
}

// AssertRecorded fails the test unless the given entry appears somewhere
// in the recording.
func (r *Recorder) AssertRecorded(t *testing.T, entry string) {
	t.Helper()

	assert.Contains(t, r.Entries(), entry)
}

// AssertNotRecorded fails the test if the given entry appears in the
// recording.
func (r *Recorder) AssertNotRecorded(t *testing.T, entry string) {
	t.Helper()

	assert.NotContains(t, r.Entries(), entry)
}
