// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package metrics provides Prometheus instrumentation for Reelpick.
//
// Metrics are exposed at /metrics in Prometheus text format. Counters
// cover every mutating path (judgments, persistence) and every serving
// path (recommendations, batches, HTTP).
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// JudgmentsRecorded counts judgment upserts by verdict.
	JudgmentsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "judgments_recorded_total",
			Help: "Total judgments recorded (upserts), by verdict",
		},
		[]string{"verdict"},
	)

	// JudgmentsRemoved counts explicit judgment removals.
	JudgmentsRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "judgments_removed_total",
			Help: "Total judgments removed by user action",
		},
	)

	// PersistenceFailures counts best-effort persistence failures by
	// operation. In-memory state is retained when these fire.
	PersistenceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "judgment_persistence_failures_total",
			Help: "Total judgment persistence failures, by operation",
		},
		[]string{"operation"},
	)

	// RecommendRequests counts recommendation passes.
	RecommendRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total recommendation requests served",
		},
	)

	// RecommendDuration observes recommendation pass latency.
	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Recommendation pass latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1},
		},
	)

	// BatchesSampled counts freshly sampled presentation batches.
	BatchesSampled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "batches_sampled_total",
			Help: "Total presentation batches sampled",
		},
	)

	// BatchSize observes sampled batch sizes.
	BatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "batch_size",
			Help:    "Size of sampled presentation batches",
			Buckets: []float64{1, 5, 10, 15, 18, 20},
		},
	)

	// CatalogRecordsDropped counts malformed records dropped at load.
	CatalogRecordsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_records_dropped_total",
			Help: "Total malformed catalog records dropped during load",
		},
	)

	// HTTPRequestDuration observes HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"method", "path", "status"},
	)
)

// RecordJudgment increments the judgment counter for a verdict.
func RecordJudgment(verdict string) {
	JudgmentsRecorded.WithLabelValues(verdict).Inc()
}

// RecordJudgmentRemoval increments the removal counter.
func RecordJudgmentRemoval() {
	JudgmentsRemoved.Inc()
}

// RecordPersistenceFailure increments the persistence failure counter.
func RecordPersistenceFailure(operation string) {
	PersistenceFailures.WithLabelValues(operation).Inc()
}

// RecordRecommendation records one recommendation pass and its duration.
func RecordRecommendation(duration time.Duration) {
	RecommendRequests.Inc()
	RecommendDuration.Observe(duration.Seconds())
}

// RecordBatch records one freshly sampled batch of the given size.
func RecordBatch(size int) {
	BatchesSampled.Inc()
	BatchSize.Observe(float64(size))
}

// RecordDroppedRecords adds to the dropped catalog record counter.
func RecordDroppedRecords(count int) {
	CatalogRecordsDropped.Add(float64(count))
}

// RecordHTTPRequest records one HTTP request observation.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}
