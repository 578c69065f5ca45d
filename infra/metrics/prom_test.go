package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/mbotelho/planforge/core/metrics"
)

func TestPromSinkRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("sink: %v", err)
	}
	if err := sink.RecordPlan(coremetrics.PlanStats{DurationDays: 49, TotalCost: 120000, MitigationCost: 800}); err != nil {
		t.Fatalf("record plan: %v", err)
	}
	if err := sink.RecordFailure("allocate"); err != nil {
		t.Fatalf("record failure: %v", err)
	}
	ps := sink.(*PromSink)
	if got := testutil.ToFloat64(ps.plans); got != 1 {
		t.Fatalf("expected 1 run got %v", got)
	}
	if got := testutil.ToFloat64(ps.duration); got != 49 {
		t.Fatalf("expected duration 49 got %v", got)
	}
	if got := testutil.ToFloat64(ps.failures.WithLabelValues("allocate")); got != 1 {
		t.Fatalf("expected 1 failure got %v", got)
	}
}

func TestPromSinkDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("second register should reuse collectors: %v", err)
	}
}
