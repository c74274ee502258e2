// Prometheus instrumentation for kinematics updates
//
// Each KinematicsMetrics owns its own registry so independent facades,
// tests and CLI runs do not collide. Output is the Prometheus text
// exposition format.
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package metrics

import (
	"io"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Update sources
const (
	SourceVector  = "vector"
	SourceContext = "context"
)

// KinematicsMetrics groups the collectors recorded by a kinematics facade.
type KinematicsMetrics struct {
	// Updates counts successful updates by state source and scalar type.
	Updates *prometheus.CounterVec
	// Failures counts rejected updates by error code.
	Failures *prometheus.CounterVec
	// Propagation observes forward kinematics wall time by scalar type.
	Propagation *prometheus.HistogramVec
	// Queries counts result queries by name.
	Queries *prometheus.CounterVec
	// Bodies is the body count of the most recently bound tree.
	Bodies prometheus.Gauge

	registry *prometheus.Registry
}

// NewKinematicsMetrics creates the collectors on a fresh registry.
func NewKinematicsMetrics() *KinematicsMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &KinematicsMetrics{
		Updates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kinematics_updates_total",
			Help: "Successful kinematics updates by state source and scalar type",
		}, []string{"source", "scalar"}),
		Failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kinematics_update_failures_total",
			Help: "Rejected kinematics updates by error code",
		}, []string{"code"}),
		Propagation: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kinematics_propagation_seconds",
			Help:    "Forward kinematics propagation time in seconds",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10), // 1µs to ~260ms
		}, []string{"scalar"}),
		Queries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kinematics_queries_total",
			Help: "Kinematics result queries by name",
		}, []string{"query"}),
		Bodies: factory.NewGauge(prometheus.GaugeOpts{
			Name: "kinematics_tree_bodies",
			Help: "Number of bodies in the bound kinematic tree",
		}),
		registry: reg,
	}
}

// RecordUpdate counts a successful update and its propagation time.
func (km *KinematicsMetrics) RecordUpdate(source, scalar string, elapsed time.Duration) {
	km.Updates.WithLabelValues(source, scalar).Inc()
	km.Propagation.WithLabelValues(scalar).Observe(elapsed.Seconds())
}

// RecordFailure counts a rejected update.
func (km *KinematicsMetrics) RecordFailure(code string) {
	km.Failures.WithLabelValues(code).Inc()
}

func (km *KinematicsMetrics) RecordQuery(query string) {
	km.Queries.WithLabelValues(query).Inc()
}

func (km *KinematicsMetrics) SetBodies(n int) {
	km.Bodies.Set(float64(n))
}

// Registry exposes the underlying registry, e.g. for promhttp.
func (km *KinematicsMetrics) Registry() *prometheus.Registry {
	return km.registry
}

// Write renders every collector in the Prometheus text format.
func (km *KinematicsMetrics) Write(w io.Writer) error {
	families, err := km.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// Gather returns the text rendering, or an empty string on failure.
func (km *KinematicsMetrics) Gather() string {
	var sb strings.Builder
	if err := km.Write(&sb); err != nil {
		return ""
	}
	return sb.String()
}

var (
	globalMetrics     *KinematicsMetrics
	globalMetricsOnce sync.Once
)

// GlobalMetrics returns the process-wide instance.
func GlobalMetrics() *KinematicsMetrics {
	globalMetricsOnce.Do(func() {
		globalMetrics = NewKinematicsMetrics()
	})
	return globalMetrics
}
