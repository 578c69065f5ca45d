// Package metrics defines the observability sink the engine records plan
// outcomes on. Concrete sinks live under infra/metrics.
package metrics

import "time"

// PlanStats summarises one completed planning run.
type PlanStats struct {
	RunID          string
	ComputedAt     time.Time
	DurationDays   int
	Activities     int
	CriticalLength int
	TotalCost      float64
	MitigationCost float64
	NetBenefit     float64
}

// Sink records planning outcomes for observability purposes.
type Sink interface {
	RecordPlan(stats PlanStats) error
	// RecordFailure counts a failed run, labelled by pipeline stage.
	RecordFailure(stage string) error
}

// Nop is a Sink that discards everything.
type Nop struct{}

func (Nop) RecordPlan(PlanStats) error { return nil }
func (Nop) RecordFailure(string) error { return nil }
