package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbotelho/planforge/config"
	"github.com/mbotelho/planforge/core/risk"
	"github.com/mbotelho/planforge/pkg/export"
)

var risksCmd = &cobra.Command{
	Use:   "risks",
	Short: "Print the optimal risk mitigation plan as CSV",
	RunE:  runRisks,
}

func init() {
	rootCmd.AddCommand(risksCmd)
}

func runRisks(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cat, err := config.LoadProject(projectPath)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}
	plan, err := risk.Optimize(cat.Risks, cfg.Engine.RiskBudget, cfg.Engine.ValuePerDay)
	if err != nil {
		return err
	}
	return export.WriteRiskCSV(os.Stdout, plan)
}
