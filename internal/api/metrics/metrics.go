// Package metrics defines and registers all custom Prometheus metrics for
// the kitchen-system back office. It is the single source of truth for
// metric names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry via promauto
// at package load; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "kitchen"

// RegistrationsSubmittedTotal counts signup requests filed, by requested role.
var RegistrationsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_submitted_total",
		Help:      "Total number of registration requests submitted, by role.",
	},
	[]string{"role"},
)

// RegistrationsResolvedTotal counts approve/decline decisions.
// Labels:
//   - outcome: "approved", "declined", or "duplicate" (stale request whose
//     email was already registered through another path)
var RegistrationsResolvedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_resolved_total",
		Help:      "Total number of registration requests resolved, by outcome.",
	},
	[]string{"outcome"},
)

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// StorageErrors counts key-value persistence failures, including corrupt
// slots that were discarded in favor of the caller's fallback.
// Label:
//   - backend: "file" or "redis"
var StorageErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_errors_total",
		Help:      "Total number of key-value storage failures, by backend.",
	},
	[]string{"backend"},
)

// ActiveSessions tracks whether an operator session is currently signed in.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Number of currently signed-in operator sessions.",
	},
)
