// Package metrics defines and registers all custom Prometheus metrics for the
// horarios admin console. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import and
// exposed by the console under /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionTransitionsTotal counts committed session state transitions.
// Label:
//   - phase: the phase entered ("authenticated" or "unauthenticated")
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session state transitions, by phase entered.",
	},
	[]string{"phase"},
)

// SessionRefreshTotal counts silent refresh attempts that reached the backend.
// Label:
//   - result: "success" or "failure"
var SessionRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_refresh_total",
		Help:      "Total number of silent credential refresh attempts, by result.",
	},
	[]string{"result"},
)

// GuardDecisionsTotal counts route authorization decisions.
// Labels:
//   - section: the guarded section (e.g. "administrador")
//   - decision: "allow", "defer", "redirect_login", "redirect_unauthorized"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route authorization decisions.",
	},
	[]string{"section", "decision"},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts requests sent to the REST backend.
// Labels:
//   - method: HTTP method
//   - status: response status code, or "network_error"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests issued to the REST backend.",
	},
	[]string{"method", "status"},
)

// BackendRequestDuration measures backend round trips.
// Label:
//   - method: HTTP method
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of REST backend requests.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"method"},
)
