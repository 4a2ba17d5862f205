package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReturnsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "returns_created_total",
		Help: "Total number of return requests successfully opened.",
	})

	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "returns_transitions_total",
		Help: "Total number of committed status transitions, labeled by target status.",
	},
		[]string{"to_status"},
	)

	TransitionConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "returns_transition_conflicts_total",
		Help: "Total number of transitions lost to a concurrent version race.",
	})

	SideEffectFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "returns_side_effect_failures_total",
		Help: "Total number of collaborator calls that failed and aborted a transition.",
	},
		[]string{"effect"},
	)

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "returns_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	OutboxPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "returns_outbox_published_total",
		Help: "Total number of outbox tasks published to the broker.",
	})

	OutboxFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "returns_outbox_failed_total",
		Help: "Total number of outbox publish attempts that failed.",
	})

	RequestsByStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "returns_requests_by_status",
		Help: "Current number of return requests per status, refreshed with the stats cache.",
	},
		[]string{"status"},
	)
)
