// Package app wires configuration, stores and sinks into a runnable
// planning service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mbotelho/planforge/config"
	"github.com/mbotelho/planforge/core/calendar"
	"github.com/mbotelho/planforge/core/engine"
	"github.com/mbotelho/planforge/core/engine/planlog"
	coremetrics "github.com/mbotelho/planforge/core/metrics"
	"github.com/mbotelho/planforge/infra/logger"
	"github.com/mbotelho/planforge/infra/metrics"
	"github.com/mbotelho/planforge/internal/eventbus"
	"github.com/mbotelho/planforge/pkg/export"
)

// Service runs the planning pipeline with the configured collaborators.
type Service struct {
	cfg   *config.Config
	log   logger.Logger
	eng   *engine.Engine
	bus   *eventbus.Bus[engine.Event]
	store planlog.Store
}

// New builds a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	log := logger.New("planforge")

	var sink coremetrics.Sink = coremetrics.Nop{}
	if cfg.Metrics.Enabled {
		var err error
		sink, err = metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("metrics sink: %w", err)
		}
	}

	store, err := newStore(cfg.PlanLog)
	if err != nil {
		return nil, fmt.Errorf("plan log: %w", err)
	}

	cal := calendar.New(cfg.Calendar.StartDate(), cfg.Calendar.HolidayDates()...)
	bus := eventbus.New[engine.Event]()
	eng := engine.New(cal, cfg.Engine, log, sink, bus)

	return &Service{cfg: cfg, log: log, eng: eng, bus: bus, store: store}, nil
}

func newStore(cfg config.PlanLogConfig) (planlog.Store, error) {
	switch cfg.Backend {
	case "sqlite":
		return planlog.NewSQLiteStore(cfg.Path)
	default:
		return planlog.NewJSONLStore(cfg.Path)
	}
}

// Run loads the project catalog, computes the plan, persists the run record
// and writes the result files. When metrics exposition is configured the
// service keeps serving /metrics until the context is cancelled.
func (s *Service) Run(ctx context.Context, projectPath string) error {
	cat, err := config.LoadProject(projectPath)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}
	s.log.Infof("project loaded: %d activities, %d resources, %d risks",
		len(cat.Activities), len(cat.Resources), len(cat.Risks))

	sub := s.bus.Subscribe()
	defer s.bus.Unsubscribe(sub)

	res, err := s.eng.Run(cat)
	if err != nil {
		return err
	}

	select {
	case ev := <-sub:
		if err := s.store.Append(ctx, recordFrom(ev)); err != nil {
			s.log.Warnf("plan log append: %v", err)
		}
	default:
	}

	if err := s.writeOutputs(res); err != nil {
		return fmt.Errorf("write outputs: %w", err)
	}

	if s.cfg.Metrics.Enabled && s.cfg.Metrics.Addr != "" {
		return s.serveMetrics(ctx)
	}
	return nil
}

func recordFrom(ev engine.Event) planlog.Record {
	res := ev.Result
	return planlog.Record{
		RunID:          ev.RunID,
		Timestamp:      res.ComputedAt,
		DurationDays:   res.Schedule.DurationDays,
		CompletionDate: res.Schedule.CompletionDate,
		CriticalPath:   res.Schedule.CriticalPath,
		TotalCost:      res.TotalCost,
		MitigationCost: res.Risks.TotalCost,
		NetBenefit:     res.Risks.NetBenefit,
	}
}

func (s *Service) writeOutputs(res *engine.PlanResult) error {
	dir := s.cfg.Output.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if s.cfg.Output.Format == "json" {
		return s.writeFile(filepath.Join(dir, "plan.json"), func(f *os.File) error {
			return export.WriteJSON(f, res)
		})
	}
	outputs := []struct {
		name  string
		write func(*os.File) error
	}{
		{"schedule.csv", func(f *os.File) error { return export.WriteScheduleCSV(f, res.Schedule) }},
		{"allocation.csv", func(f *os.File) error { return export.WriteAllocationCSV(f, res.Allocation) }},
		{"utilization.csv", func(f *os.File) error { return export.WriteUtilizationCSV(f, res.Allocation) }},
		{"risks.csv", func(f *os.File) error { return export.WriteRiskCSV(f, res.Risks) }},
	}
	for _, out := range outputs {
		if err := s.writeFile(filepath.Join(dir, out.name), out.write); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (s *Service) serveMetrics(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: s.cfg.Metrics.Addr, Handler: mux}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Infof("serving metrics on %s", s.cfg.Metrics.Addr)
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Close releases the service resources.
func (s *Service) Close() error {
	s.bus.Close()
	return s.store.Close()
}
