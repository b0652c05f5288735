// Package metrics holds the Prometheus collectors of the inventory core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pantry"

var (
	classifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Category classifications by deciding source (rules, ai, fallback).",
		},
		[]string{"source"},
	)

	kitchenResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kitchen_resolutions_total",
			Help:      "Kitchen resolutions by result (cache_hit, matched, created, error).",
		},
		[]string{"result"},
	)

	repositoryOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repository_operations_total",
			Help:      "Inventory repository operations by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	commands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Interpreted commands by intent and outcome.",
		},
		[]string{"intent", "outcome"},
	)

	remoteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_requests_total",
			Help:      "Requests sent to the inventory endpoint by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
)

// Classification sources.
const (
	SourceRules    = "rules"
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// Outcomes shared by the counters below.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// ObserveClassification counts one classifier decision.
func ObserveClassification(source string) {
	classifications.WithLabelValues(source).Inc()
}

// ObserveKitchenResolution counts one kitchen resolution.
func ObserveKitchenResolution(result string) {
	kitchenResolutions.WithLabelValues(result).Inc()
}

// ObserveRepositoryOp counts one repository operation.
func ObserveRepositoryOp(op string, err error) {
	repositoryOps.WithLabelValues(op, outcome(err)).Inc()
}

// ObserveCommand counts one interpreted command.
func ObserveCommand(intent, outcome string) {
	commands.WithLabelValues(intent, outcome).Inc()
}

// ObserveRemoteRequest counts one request to the endpoint.
func ObserveRemoteRequest(operation string, err error) {
	remoteRequests.WithLabelValues(operation, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
