package scenarios

import (
	"math"
	"reflect"
	"testing"

	"github.com/mbotelho/planforge/core/calendar"
	"github.com/mbotelho/planforge/core/engine"
)

// RunScenario executes the full pipeline over a scenario and checks the
// plan against its expected block.
func RunScenario(t *testing.T, sc *Scenario) {
	t.Helper()

	start, err := sc.StartDate()
	if err != nil {
		t.Fatalf("start date: %v", err)
	}
	holidays, err := sc.HolidayDates()
	if err != nil {
		t.Fatalf("holidays: %v", err)
	}
	cal := calendar.New(start, holidays...)

	params := engine.Params{
		RiskBudget:  sc.Params.RiskBudget,
		ValuePerDay: sc.Params.ValuePerDay,
	}
	eng := engine.New(cal, params, nil, nil, nil)

	res, err := eng.Run(sc.Catalog())
	if err != nil {
		t.Fatalf("run %s: %v", sc.Name, err)
	}

	exp := sc.Expected
	if exp.DurationDays != 0 && res.Schedule.DurationDays != exp.DurationDays {
		t.Errorf("%s: duration = %d days, want %d", sc.Name, res.Schedule.DurationDays, exp.DurationDays)
	}
	if exp.CriticalPath != nil && !reflect.DeepEqual(res.Schedule.CriticalPath, exp.CriticalPath) {
		t.Errorf("%s: critical path = %v, want %v", sc.Name, res.Schedule.CriticalPath, exp.CriticalPath)
	}
	if exp.TotalCost != 0 && math.Abs(res.TotalCost-exp.TotalCost) > 1e-6 {
		t.Errorf("%s: total cost = %.2f, want %.2f", sc.Name, res.TotalCost, exp.TotalCost)
	}
	for riskID, optionID := range exp.Mitigations {
		sel, ok := res.Risks.Selected(riskID)
		if !ok {
			t.Errorf("%s: no mitigation selected for risk %d", sc.Name, riskID)
			continue
		}
		if sel.OptionID != optionID {
			t.Errorf("%s: risk %d mitigation = %s, want %s", sc.Name, riskID, sel.OptionID, optionID)
		}
	}
}
