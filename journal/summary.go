package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/lanternworks/lantern-common/set"
)

// Stats is an aggregate view of a recorded session.
type Stats struct {
	Session     string
	States      []string
	Transitions map[string]int
	Failures    int
	Duration    time.Duration
}

// Summarize aggregates the journal: distinct state labels in natural
// sort order, transition counts by kind, failure count, and the span
// from session start to the last entry.
func Summarize(j Journal) Stats {
	states := set.NewStrings()
	transitions := make(map[string]int)
	failures := 0

	for _, entry := range j.Entries {
		switch entry.Kind {
		case EntryLifecycle:
			if entry.State != "" {
				states.Add(entry.State)
			}
		case EntryTransition:
			transitions[entry.Transition]++

			if entry.From != "" {
				states.Add(entry.From)
			}

			if entry.To != "" {
				states.Add(entry.To)
			}
		case EntryFailure:
			failures++
		}
	}

	duration := time.Duration(0)
	if len(j.Entries) > 0 {
		duration = j.Entries[len(j.Entries)-1].At.Sub(j.StartedAt)
	}

	return Stats{
		Session:     j.Session,
		States:      states.NaturalSortedEntries(),
		Transitions: transitions,
		Failures:    failures,
		Duration:    duration,
	}
}

// String renders the stats as a short human-readable report.
func (s Stats) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "session %s (%s)\n", s.Session, s.Duration)
	fmt.Fprintf(&sb, "states: %s\n", strings.Join(s.States, ", "))

	for _, kind := range []string{"pop", "push", "switch", "quit"} {
		if count := s.Transitions[kind]; count > 0 {
			fmt.Fprintf(&sb, "%s: %d\n", kind, count)
		}
	}

	if s.Failures > 0 {
		fmt.Fprintf(&sb, "failures: %d\n", s.Failures)
	}

	return sb.String()
}
