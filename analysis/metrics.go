/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "labconsensus"

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	Analyses            *prometheus.CounterVec
	SourceFailures      *prometheus.CounterVec
	AggregationSeconds  prometheus.Histogram
	CorrelationsFound   *prometheus.CounterVec
	UnresolvedBiomarker prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Analyses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "analyses_total",
			Help:      "Analyses run, by final status.",
		}, []string{"status"}),
		SourceFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reasoning_source_failures_total",
			Help:      "Reasoning source calls that produced no usable differential.",
		}, []string{"source"}),
		AggregationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "consensus_aggregation_seconds",
			Help:      "Time spent aggregating candidates.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		CorrelationsFound: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "correlations_detected_total",
			Help:      "Detected correlations, by pattern type.",
		}, []string{"type"}),
		UnresolvedBiomarker: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "biomarkers_unresolved_total",
			Help:      "Lab values whose name did not resolve to a catalog entry.",
		}),
	}
}
