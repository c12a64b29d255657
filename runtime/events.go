package runtime

import (
	"sync"

	"github.com/lanternworks/lantern-common/events"
)

// EventSource feeds platform events into the loop. Poll returns the next
// pending event, or false when none is waiting. Poll must not block: the
// loop drains the source once per frame and moves on. An event is
// visible to Poll as soon as the call that enqueued it returns.
type EventSource interface {
	Poll() (events.Event, bool)
}

// Queue is an in-memory EventSource. It backs tests and the demo
// harness, and is safe for concurrent Dispatch/Poll (a windowing
// goroutine may feed it while the loop drains it).
type Queue struct {
	mu      sync.Mutex
	pending []events.Event
}

var _ EventSource = (*Queue)(nil)

func NewQueue(pending ...events.Event) *Queue {
	return &Queue{pending: append([]events.Event(nil), pending...)}
}

// Dispatch appends events to the queue.
func (q *Queue) Dispatch(pending ...events.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pending = append(q.pending, pending...)
}

// Poll pops the oldest pending event.
func (q *Queue) Poll() (events.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return events.Event{}, false
	}

	event := q.pending[0]
	q.pending = q.pending[1:]

	return event, true
}

// Len reports the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending)
}
