// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package metrics provides Prometheus instrumentation for the mount
// probe and the search provider. These metrics observe behavior; they
// never influence it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// JobsInFlight tracks the number of distinct paths currently under
	// check in the job table (not the number of waiters).
	JobsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mountprobe_jobs_in_flight",
		Help: "Current number of distinct paths under active responsiveness check.",
	})

	// WorkersInUse tracks bounded worker pool occupancy.
	WorkersInUse = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mountprobe_pool_workers_in_use",
		Help: "Current number of worker pool permits held (includes quarantined workers).",
	})

	// ProbeOutcomeTotal counts probe results by outcome kind.
	ProbeOutcomeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mountprobe_outcome_total",
		Help: "Total number of probe outcomes, by kind.",
	}, []string{"outcome"})

	// ProbeWaitSeconds observes how long callers waited for an outcome.
	ProbeWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mountprobe_wait_seconds",
		Help:    "Time a caller spent waiting on a probe call, in seconds.",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
	})

	// SearchHitsEmittedTotal counts hits delivered by the search provider.
	SearchHitsEmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "searchprovider_hits_emitted_total",
		Help: "Total number of search hits delivered to the host.",
	})

	// SearchBatchesEmittedTotal counts flush events (size-triggered or final).
	SearchBatchesEmittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "searchprovider_batches_emitted_total",
		Help: "Total number of hit batches flushed, by trigger.",
	}, []string{"trigger"})

	// SearchFallbackTotal counts queries that fell back silently, by
	// reason: a missing binary, a stdout pipe failure, a process start
	// failure, or a non-zero exit (hits read before the exit are still
	// delivered).
	SearchFallbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "searchprovider_fallback_total",
		Help: "Total number of queries that silently fell back, by reason.",
	}, []string{"reason"})
)

// Probe outcome label values, kept as constants so callers and tests
// can't typo a label that will silently create a new series.
const (
	OutcomeResponsive       = "responsive"
	OutcomeUnresponsive     = "unresponsive"
	OutcomeNonLocal         = "non_local"
	OutcomeDisabled         = "disabled"
	OutcomeSubmissionFailed = "submission_failed"
)
