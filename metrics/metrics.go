/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "smartlab"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "route"},
	)

	verdictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verdicts_total",
			Help:      "Total number of classified lab values by verdict",
		},
		[]string{"panel", "verdict"},
	)

	narrativeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "narrative_requests_total",
			Help:      "Total number of narrative generation calls",
		},
		[]string{"kind", "outcome"},
	)

	narrativeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "narrative_request_duration_seconds",
			Help:      "Narrative generation duration in seconds",
			Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"kind"},
	)

	storeOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Total number of patient record store operations",
		},
		[]string{"panel", "operation", "outcome"},
	)

	storeOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Patient record store operation duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5},
		},
		[]string{"panel", "operation"},
	)

	reportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "Total number of PDF reports generated",
		},
		[]string{"panel"},
	)
)

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records a served request. route should be the matched
// route pattern rather than the raw path.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordVerdict counts one classified value.
func RecordVerdict(panel, verdict string) {
	verdictsTotal.WithLabelValues(panel, verdict).Inc()
}

// RecordNarrative records a narrative call. kind is "analysis" or "question".
func RecordNarrative(kind string, err error, duration time.Duration) {
	narrativeRequestsTotal.WithLabelValues(kind, outcome(err)).Inc()
	narrativeDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordStoreOperation records a store call.
func RecordStoreOperation(panel, operation string, err error, duration time.Duration) {
	storeOperationsTotal.WithLabelValues(panel, operation, outcome(err)).Inc()
	storeOperationDuration.WithLabelValues(panel, operation).Observe(duration.Seconds())
}

// RecordReport counts a rendered PDF report.
func RecordReport(panel string) {
	reportsGenerated.WithLabelValues(panel).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}

	return "ok"
}
