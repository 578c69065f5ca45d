package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/mbotelho/planforge/core/metrics"
)

// PromSink records planning outcomes in Prometheus metrics.
type PromSink struct {
	plans    prometheus.Counter
	failures *prometheus.CounterVec
	duration prometheus.Gauge
	cost     prometheus.Gauge
	spend    prometheus.Gauge
}

// NewPromSink registers planning metrics on the default Prometheus
// registerer.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		plans: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "plan_runs_total",
			Help: "Total number of completed planning runs",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plan_failures_total",
			Help: "Total number of failed planning runs",
		}, []string{"stage"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "plan_project_duration_days",
			Help: "Project duration of the last computed plan in working days",
		}),
		cost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "plan_total_cost_eur",
			Help: "Total resource cost of the last computed plan",
		}),
		spend: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "plan_mitigation_spend_eur",
			Help: "Mitigation spend selected by the last computed plan",
		}),
	}
	for _, c := range []prometheus.Collector{s.plans, s.failures, s.duration, s.cost, s.spend} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return s, nil
}

// RecordPlan updates the run counter and last-plan gauges.
func (s *PromSink) RecordPlan(st coremetrics.PlanStats) error {
	s.plans.Inc()
	s.duration.Set(float64(st.DurationDays))
	s.cost.Set(st.TotalCost)
	s.spend.Set(st.MitigationCost)
	return nil
}

// RecordFailure increments the failure counter for the given stage.
func (s *PromSink) RecordFailure(stage string) error {
	s.failures.WithLabelValues(stage).Inc()
	return nil
}
