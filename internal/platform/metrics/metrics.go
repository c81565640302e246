// Package metrics exposes the Prometheus collectors of the club backend.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "club"

// ─── Dues ───────────────────────────────────────────────────────────────────

// SlotUpdates counts calendar slot mutations by resulting state.
var SlotUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "dues",
	Name:      "slot_updates_total",
	Help:      "Calendar slot mutations by resulting state (paid, exempt, open).",
}, []string{"state"})

// LedgerReconciliations counts reconciliation outcomes.
var LedgerReconciliations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "reconciliations_total",
	Help:      "Ledger reconciliations by outcome.",
}, []string{"outcome"})

// LedgerSyncFailures counts slot mutations whose ledger update failed.
var LedgerSyncFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "sync_failures_total",
	Help:      "Ledger reconciliations that failed after the calendar was stored.",
}, []string{"operation"})

// ─── Events ─────────────────────────────────────────────────────────────────

// NotificationFailures counts events that could not be published.
var NotificationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "events",
	Name:      "publish_failures_total",
	Help:      "Notification events dropped because publishing failed.",
}, []string{"event"})

// ─── HTTP ───────────────────────────────────────────────────────────────────

// HTTPRequests counts handled requests by route and status class.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "HTTP requests by method, route and status class.",
}, []string{"method", "route", "status"})

// HTTPLatency tracks request latency by route.
var HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency by route.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route"})

// RateLimited counts requests rejected by the rate limiter.
var RateLimited = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "rate_limited_total",
	Help:      "Requests rejected by the rate limiter.",
})

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
