// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IdeasCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ideaboard_ideas_created_total",
		Help: "Ideas successfully stored.",
	})

	UpvotesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ideaboard_upvotes_total",
		Help: "Upvotes successfully applied.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ideaboard_operation_errors_total",
		Help: "Failed service operations by operation and error kind.",
	}, []string{"operation", "kind"})

	GraphQLRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ideaboard_graphql_request_duration_seconds",
		Help:    "Time spent executing a GraphQL request.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	})

	IdeasTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ideaboard_ideas_total",
		Help: "Number of stored ideas, set at startup and refreshed by each list query.",
	})
)
