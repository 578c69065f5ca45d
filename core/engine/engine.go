// Package engine runs the planning pipeline: critical-path scheduling,
// resource allocation, schedule rebuild with adjusted durations, and risk
// mitigation optimization. Each stage consumes the previous stage's
// immutable result; the engine never mutates the input catalog.
package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mbotelho/planforge/core/alloc"
	"github.com/mbotelho/planforge/core/calendar"
	"github.com/mbotelho/planforge/core/logger"
	"github.com/mbotelho/planforge/core/metrics"
	"github.com/mbotelho/planforge/core/model"
	"github.com/mbotelho/planforge/core/risk"
	"github.com/mbotelho/planforge/core/schedule"
	"github.com/mbotelho/planforge/internal/eventbus"
)

// Params groups the tunable policy values of a planning run.
type Params struct {
	Alloc       alloc.Config `json:"alloc"`
	RiskBudget  float64      `json:"risk_budget"`
	ValuePerDay float64      `json:"value_per_day"`
}

// SetDefaults applies the reference policy values.
func (p *Params) SetDefaults() {
	p.Alloc.SetDefaults()
	if p.ValuePerDay == 0 {
		p.ValuePerDay = 1000
	}
}

// PlanResult bundles the outcome of one pipeline run.
type PlanResult struct {
	RunID      string
	ComputedAt time.Time
	// Baseline is the schedule before duration adjustment.
	Baseline   *schedule.Result
	Allocation *alloc.Plan
	// Schedule is the final schedule built from adjusted durations.
	Schedule *schedule.Result
	Risks    *risk.MitigationPlan
	// TotalCost is the resource cost of the allocation plan.
	TotalCost float64
}

// Event is published on the bus after every successful run.
type Event struct {
	RunID  string
	Result *PlanResult
}

// Engine wires the pipeline stages to a calendar and observability hooks.
type Engine struct {
	cal    *calendar.Calendar
	params Params
	log    logger.Logger
	sink   metrics.Sink
	bus    *eventbus.Bus[Event]
}

// New creates an Engine. The logger, sink and bus may be nil.
func New(cal *calendar.Calendar, params Params, log logger.Logger, sink metrics.Sink, bus *eventbus.Bus[Event]) *Engine {
	params.SetDefaults()
	if sink == nil {
		sink = metrics.Nop{}
	}
	return &Engine{cal: cal, params: params, log: log, sink: sink, bus: bus}
}

// Run executes the full pipeline over the catalog. Stage failures are
// returned wrapped with the stage name; nothing is retried since every
// stage is deterministic.
func (e *Engine) Run(cat model.Catalog) (*PlanResult, error) {
	if err := cat.Validate(); err != nil {
		return nil, e.fail("catalog", err)
	}

	baseline, err := schedule.Compute(cat.Activities, e.cal)
	if err != nil {
		return nil, e.fail("schedule", err)
	}
	e.debugf("baseline schedule: %d working days, %d critical activities",
		baseline.DurationDays, len(baseline.CriticalPath))

	plan, err := alloc.Allocate(baseline, cat.Activities, cat.Resources, e.params.Alloc)
	if err != nil {
		return nil, e.fail("allocate", err)
	}

	final, err := schedule.ComputeWithDurations(cat.Activities, plan.AdjustedDurations, e.cal)
	if err != nil {
		return nil, e.fail("reschedule", err)
	}

	riskPlan, err := risk.Optimize(cat.Risks, e.params.RiskBudget, e.params.ValuePerDay)
	if err != nil {
		return nil, e.fail("risk", err)
	}

	res := &PlanResult{
		RunID:      uuid.NewString(),
		ComputedAt: time.Now().UTC(),
		Baseline:   baseline,
		Allocation: plan,
		Schedule:   final,
		Risks:      riskPlan,
		TotalCost:  plan.TotalCost,
	}

	if err := e.sink.RecordPlan(metrics.PlanStats{
		RunID:          res.RunID,
		ComputedAt:     res.ComputedAt,
		DurationDays:   final.DurationDays,
		Activities:     len(cat.Activities),
		CriticalLength: len(final.CriticalPath),
		TotalCost:      plan.TotalCost,
		MitigationCost: riskPlan.TotalCost,
		NetBenefit:     riskPlan.NetBenefit,
	}); err != nil && e.log != nil {
		e.log.Warnf("metrics sink: %v", err)
	}
	if e.bus != nil {
		e.bus.Publish(Event{RunID: res.RunID, Result: res})
	}
	if e.log != nil {
		e.log.Infof("plan %s: %d working days, cost %.2f, mitigation spend %.2f",
			res.RunID, final.DurationDays, plan.TotalCost, riskPlan.TotalCost)
	}
	return res, nil
}

func (e *Engine) fail(stage string, err error) error {
	if serr := e.sink.RecordFailure(stage); serr != nil && e.log != nil {
		e.log.Warnf("metrics sink: %v", serr)
	}
	if e.log != nil {
		e.log.Errorf("%s stage failed: %v", stage, err)
	}
	return fmt.Errorf("%s: %w", stage, err)
}

func (e *Engine) debugf(format string, args ...any) {
	if e.log != nil {
		e.log.Debugf(format, args...)
	}
}
