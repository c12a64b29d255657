package appstate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric definitions with appropriate labels.
var (
	// dispatchTotal tracks dispatch calls by machine, entry point, state, and outcome (success/error).
	dispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "appstate_dispatch_total",
		Help: "Total number of dispatch calls by machine, entry point, state, and outcome (success or error)",
	}, []string{"machine", "entry", "state", "outcome"})

	// dispatchDuration tracks how long each dispatch call takes.
	dispatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "appstate_dispatch_duration_seconds",
		Help:    "Duration of dispatch calls by machine and entry point",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"machine", "entry"})

	// transitionsTotal tracks applied structural changes.
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "appstate_transitions_total",
		Help: "Total number of applied transitions by machine and kind",
	}, []string{"machine", "kind"})

	// stackDepth tracks the current state stack depth.
	stackDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "appstate_stack_depth",
		Help: "Current state stack depth by machine",
	}, []string{"machine"})
)

// Helper functions for label sanitization.
func sanitizeMachine(name string) string {
	if name == "" {
		return "unknown"
	}

	return name
}

func sanitizeLabel(label string) string {
	if label == "" {
		return "unlabeled"
	}

	return label
}
