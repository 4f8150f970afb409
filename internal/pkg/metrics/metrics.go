// Package metrics defines and registers all custom Prometheus metrics for the
// registry console gateway. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Guard metrics ─────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route-guard evaluations.
// Labels:
//   - guard: "authenticated", "anonymous", or "admin"
//   - outcome: "allow" or "deny"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route-guard decisions, by guard and outcome.",
	},
	[]string{"guard", "outcome"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionRefreshTotal counts remote current-user retrievals.
// Label:
//   - result: "hit" (cached and returned) or "miss" (retrieval failed)
var SessionRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_refresh_total",
		Help:      "Total number of remote current-user retrievals, by result.",
	},
	[]string{"result"},
)

// ── Saga metrics ──────────────────────────────────────────────────────────────

// PolicySavesTotal counts replication policy save attempts.
// Labels:
//   - path: "existing_target" or "new_target"
//   - result: "success", "error", or "orphaned" (target created, later step failed)
var PolicySavesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_saves_total",
		Help:      "Total number of replication policy save attempts, by path and result.",
	},
	[]string{"path", "result"},
)

// ── Banner metrics ────────────────────────────────────────────────────────────

// MessagesPublishedTotal counts banner messages routed to the bus.
// Labels:
//   - channel: "messages" or "app_messages"
//   - severity: "success", "info", "warning", or "error"
var MessagesPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_published_total",
		Help:      "Total number of banner messages published, by channel and severity.",
	},
	[]string{"channel", "severity"},
)

// ── Search metrics ────────────────────────────────────────────────────────────

// SearchDispatchTotal counts debounced search terms dispatched to the core.
// Label:
//   - result: "applied" (response stored) or "error"
var SearchDispatchTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_dispatch_total",
		Help:      "Total number of search requests dispatched after debouncing, by result.",
	},
	[]string{"result"},
)
