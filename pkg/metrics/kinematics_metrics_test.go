// Unit tests for kinematics metrics
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewKinematicsMetrics(t *testing.T) {
	km := NewKinematicsMetrics()

	if km.Updates == nil || km.Failures == nil || km.Propagation == nil ||
		km.Queries == nil || km.Bodies == nil {
		t.Fatal("all collectors should be initialized")
	}
	if km.Registry() == nil {
		t.Fatal("registry should be initialized")
	}
}

func TestRecordUpdate(t *testing.T) {
	km := NewKinematicsMetrics()

	km.RecordUpdate(SourceVector, "float", 2*time.Microsecond)
	km.RecordUpdate(SourceVector, "float", 3*time.Microsecond)
	km.RecordUpdate(SourceContext, "dual", time.Millisecond)

	if v := testutil.ToFloat64(km.Updates.WithLabelValues(SourceVector, "float")); v != 2 {
		t.Errorf("expected 2 vector/float updates, got %v", v)
	}
	if v := testutil.ToFloat64(km.Updates.WithLabelValues(SourceContext, "dual")); v != 1 {
		t.Errorf("expected 1 context/dual update, got %v", v)
	}
	if n := testutil.CollectAndCount(km.Propagation); n != 2 {
		t.Errorf("expected 2 histogram series, got %d", n)
	}
}

func TestRecordFailure(t *testing.T) {
	km := NewKinematicsMetrics()

	km.RecordFailure("DIMENSION_MISMATCH")
	km.RecordFailure("DIMENSION_MISMATCH")
	km.RecordFailure("TYPE_MISMATCH")

	if v := testutil.ToFloat64(km.Failures.WithLabelValues("DIMENSION_MISMATCH")); v != 2 {
		t.Errorf("expected 2 dimension failures, got %v", v)
	}
	if v := testutil.ToFloat64(km.Failures.WithLabelValues("TYPE_MISMATCH")); v != 1 {
		t.Errorf("expected 1 type failure, got %v", v)
	}
}

func TestQueriesAndBodies(t *testing.T) {
	km := NewKinematicsMetrics()

	km.RecordQuery("body_position")
	km.SetBodies(4)
	km.SetBodies(7)

	if v := testutil.ToFloat64(km.Queries.WithLabelValues("body_position")); v != 1 {
		t.Errorf("expected 1 query, got %v", v)
	}
	if v := testutil.ToFloat64(km.Bodies); v != 7 {
		t.Errorf("expected 7 bodies, got %v", v)
	}
}

func TestGather(t *testing.T) {
	km := NewKinematicsMetrics()
	km.RecordUpdate(SourceVector, "float", time.Microsecond)
	km.RecordFailure("UNINITIALIZED")
	km.SetBodies(3)

	output := km.Gather()

	for _, metric := range []string{
		"kinematics_updates_total",
		"kinematics_update_failures_total",
		"kinematics_propagation_seconds_bucket",
		"kinematics_tree_bodies 3",
	} {
		if !strings.Contains(output, metric) {
			t.Errorf("output should contain %s:\n%s", metric, output)
		}
	}
	if !strings.Contains(output, "# HELP") || !strings.Contains(output, "# TYPE") {
		t.Error("output should contain HELP and TYPE lines")
	}
	if !strings.Contains(output, `source="vector"`) {
		t.Errorf("output should carry labels:\n%s", output)
	}
}

func TestIndependentRegistries(t *testing.T) {
	a := NewKinematicsMetrics()
	b := NewKinematicsMetrics()
	a.RecordFailure("MODEL")

	if v := testutil.ToFloat64(b.Failures.WithLabelValues("MODEL")); v != 0 {
		t.Errorf("registries should be independent, got %v", v)
	}
}

func TestGlobalMetrics(t *testing.T) {
	km1 := GlobalMetrics()
	km2 := GlobalMetrics()
	if km1 == nil || km1 != km2 {
		t.Error("GlobalMetrics should return one non-nil instance")
	}
}
