// Package metrics defines and registers the custom Prometheus metrics for the
// reimbursement API. It is the single source of truth for metric names,
// labels, and help strings; registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reimbursement"

// RequestsCreatedTotal counts newly created reimbursement requests.
// Label:
//   - origin: "self" (employee filing) or "manager" (filed on behalf)
var RequestsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_created_total",
		Help:      "Total number of reimbursement requests created, by origin.",
	},
	[]string{"origin"},
)

// RequestsResolvedTotal counts terminal decisions applied to requests.
// Label:
//   - decision: "approved" or "denied"
var RequestsResolvedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_resolved_total",
		Help:      "Total number of reimbursement requests resolved, by decision.",
	},
	[]string{"decision"},
)

// AuthzDenialsTotal counts requests rejected by role checks.
// Label:
//   - route: the echo route path that denied access
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of requests denied by role-based access control.",
	},
	[]string{"route"},
)

// UsersDeletedTotal counts cascading user deletions.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of users deleted (each cascades to owned requests).",
	},
)
