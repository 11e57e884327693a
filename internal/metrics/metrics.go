// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics declares the Prometheus collectors for upstream traffic and
// batch runs. Collectors register with the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Endpoint labels.
const (
	EndpointSearch = "search"
	EndpointRecord = "record"
	EndpointProbe  = "probe"
)

// Outcome labels.
const (
	OutcomeOK     = "ok"
	OutcomeStatus = "status"
	OutcomeError  = "error"
)

var (
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dblp_upstream_requests_total",
			Help: "Upstream requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	Citations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dblp_citations_total",
			Help: "Citation records returned, by origin",
		},
		[]string{"origin"},
	)

	BatchQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dblp_batch_queries_total",
			Help: "Queries processed by batch runs",
		},
	)

	BatchResults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dblp_batch_results_total",
			Help: "Result items produced by batch runs",
		},
	)

	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dblp_batch_duration_seconds",
			Help:    "Wall time of a batch run including pacing delays",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)
)

// ObserveUpstream records one upstream call. A non-nil err counts as a
// transport error; otherwise ok reports whether the status was accepted.
func ObserveUpstream(endpoint string, ok bool, err error) {
	outcome := OutcomeOK
	switch {
	case err != nil:
		outcome = OutcomeError
	case !ok:
		outcome = OutcomeStatus
	}
	UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()
}
