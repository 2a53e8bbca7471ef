// Package metrics defines and registers all custom Prometheus metrics for the
// diet service. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto) and exposed on /metrics by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "diet"

// Result label values shared by the auth counters.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultError   = "error"
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthLoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure" (bad credentials) or "error" (store failure)
var AuthLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRefreshTotal counts refresh token redemptions.
// Label:
//   - result: "success", "failure" (rejected token) or "error"
var AuthRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_refresh_total",
		Help:      "Total number of refresh attempts, by result.",
	},
	[]string{"result"},
)

// SessionsIssuedTotal counts sessions created by login or refresh.
var SessionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of sessions issued.",
	},
)

// ── Diet metrics ──────────────────────────────────────────────────────────────

// AdviceTotal counts computed diet advice.
// Labels:
//   - blood_type: "1".."4"
//   - persisted: "true" when stored on the user profile
var AdviceTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "advice_total",
		Help:      "Total number of diet advice computations, by blood type.",
	},
	[]string{"blood_type", "persisted"},
)
