package journal

import (
	"fmt"
	"strings"

	"github.com/lanternworks/lantern-common/appstate"
)

// Mermaid renders the journal as a Mermaid state diagram. Each distinct
// transition edge appears exactly once, in the order first observed. A
// transition that emptied the stack points at the terminal marker, and
// states that failed a dispatch are highlighted.
func Mermaid(j Journal) string {
	var sb strings.Builder

	sb.WriteString("```mermaid\n")
	sb.WriteString("stateDiagram-v2\n")

	if initial, ok := firstStarted(j); ok {
		sb.WriteString(fmt.Sprintf("    [*] --> %s\n", initial))
	}

	seen := make(map[string]bool)

	for _, entry := range j.Entries {
		if entry.Kind != EntryTransition {
			continue
		}

		to := entry.To
		if to == "" {
			to = "[*]"
		}

		key := entry.From + "\x00" + to + "\x00" + entry.Transition
		if seen[key] {
			continue
		}

		seen[key] = true

		sb.WriteString(fmt.Sprintf("    %s --> %s: %s\n", entry.From, to, entry.Transition))
	}

	if failed := failedStates(j); len(failed) > 0 {
		for _, label := range failed {
			sb.WriteString(fmt.Sprintf("    class %s failed\n", label))
		}

		sb.WriteString("\n")
		sb.WriteString("    classDef failed fill:#ffebee,stroke:#b71c1c,stroke-width:2px\n")
	}

	sb.WriteString("```\n")

	return sb.String()
}

// firstStarted returns the label of the first state the journal saw
// start.
func firstStarted(j Journal) (string, bool) {
	for _, entry := range j.Entries {
		if entry.Kind == EntryLifecycle && entry.Op == appstate.OpStart {
			return entry.State, true
		}
	}

	return "", false
}

// failedStates returns the distinct labels of states with a recorded
// dispatch failure, in first-failure order.
func failedStates(j Journal) []string {
	var labels []string

	seen := make(map[string]bool)

	for _, entry := range j.Entries {
		if entry.Kind != EntryFailure || entry.State == "" || seen[entry.State] {
			continue
		}

		seen[entry.State] = true
		labels = append(labels, entry.State)
	}

	return labels
}
