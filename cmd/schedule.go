package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbotelho/planforge/config"
	"github.com/mbotelho/planforge/core/calendar"
	"github.com/mbotelho/planforge/core/schedule"
	"github.com/mbotelho/planforge/pkg/export"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the critical-path schedule as CSV",
	RunE:  runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cat, err := config.LoadProject(projectPath)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}
	cal := calendar.New(cfg.Calendar.StartDate(), cfg.Calendar.HolidayDates()...)
	res, err := schedule.Compute(cat.Activities, cal)
	if err != nil {
		return err
	}
	return export.WriteScheduleCSV(os.Stdout, res)
}
