package gamepad

import "sync"

// Queue is an in-memory Poller. It backs tests and the demo harness, and
// is safe for concurrent Push/Poll (a poller goroutine may feed it while
// the runtime drains it).
type Queue struct {
	mu      sync.Mutex
	pending []Event
}

var _ Poller = (*Queue)(nil)

func NewQueue(events ...Event) *Queue {
	return &Queue{pending: append([]Event(nil), events...)}
}

// Push appends events to the queue.
func (q *Queue) Push(events ...Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pending = append(q.pending, events...)
}

// Poll pops the oldest pending event.
func (q *Queue) Poll() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return Event{}, false
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
