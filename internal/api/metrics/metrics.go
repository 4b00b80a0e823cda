// Package metrics defines and registers the custom Prometheus metrics of the
// todos API. It is the single source of truth for metric names, labels, and
// help strings. All metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "todos"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts signup and signin attempts.
// Labels:
//   - operation: "signup" or "signin"
//   - result: "ok", "rejected" (4xx) or "error" (5xx)
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of signup and signin attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// AuthGateRejectionsTotal counts requests the auth gate turned away.
// Label:
//   - reason: "missing_token" or "invalid_token"
var AuthGateRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_gate_rejections_total",
		Help:      "Total number of requests rejected by the authentication gate.",
	},
	[]string{"reason"},
)

// ── Todo metrics ──────────────────────────────────────────────────────────────

// TodoOperationsTotal counts todo operations handled.
// Labels:
//   - operation: "list", "create", "update", "toggle" or "delete"
//   - result: "ok", "not_found", "forbidden", "invalid" or "error"
var TodoOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "todo_operations_total",
		Help:      "Total number of todo operations, by operation and outcome.",
	},
	[]string{"operation", "result"},
)

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivityQueueDepth tracks the number of audit entries waiting to be recorded.
var ActivityQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity entries pending in the dispatcher.",
	},
)

// ActivityProcessingDuration measures how long recording one audit entry takes.
var ActivityProcessingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_processing_duration_seconds",
		Help:      "Duration of recording one activity entry, from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)
