// Package export writes planning results to JSON or CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/mbotelho/planforge/core/alloc"
	"github.com/mbotelho/planforge/core/risk"
	"github.com/mbotelho/planforge/core/schedule"
)

// WriteJSON writes v to w in indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteScheduleCSV writes one row per activity in topological order.
func WriteScheduleCSV(w io.Writer, res *schedule.Result) error {
	cw := csv.NewWriter(w)
	header := []string{"activity_id", "earliest_start", "earliest_finish", "latest_start", "latest_finish", "float", "critical", "start_date", "end_date"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, id := range res.Order {
		e := res.Entries[id]
		rec := []string{
			strconv.Itoa(e.ActivityID),
			strconv.Itoa(e.EarliestStart),
			strconv.Itoa(e.EarliestFinish),
			strconv.Itoa(e.LatestStart),
			strconv.Itoa(e.LatestFinish),
			strconv.Itoa(e.Float),
			strconv.FormatBool(e.Critical),
			formatDate(e.StartDate),
			formatDate(e.EndDate),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAllocationCSV writes one row per activity assignment in allocation
// order, followed by nothing; utilization is exported separately via JSON.
func WriteAllocationCSV(w io.Writer, plan *alloc.Plan) error {
	cw := csv.NewWriter(w)
	header := []string{"activity_id", "resources", "base_hours", "adjusted_hours", "adjusted_days", "cost"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, id := range plan.Order {
		a := plan.Assignments[id]
		rec := []string{
			strconv.Itoa(a.ActivityID),
			joinNames(a.Resources),
			strconv.FormatFloat(a.BaseHours, 'f', -1, 64),
			strconv.FormatFloat(a.AdjustedHours, 'f', -1, 64),
			strconv.Itoa(a.AdjustedDays),
			strconv.FormatFloat(a.Cost, 'f', 2, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteUtilizationCSV writes one row per resource, sorted by name.
func WriteUtilizationCSV(w io.Writer, plan *alloc.Plan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"resource", "tasks", "hours", "cost"}); err != nil {
		return err
	}
	names := make([]string, 0, len(plan.Utilization))
	for name := range plan.Utilization {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		u := plan.Utilization[name]
		rec := []string{
			u.Resource,
			strconv.Itoa(u.Tasks),
			strconv.FormatFloat(u.Hours, 'f', 1, 64),
			strconv.FormatFloat(u.Cost, 'f', 2, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRiskCSV writes one row per risk selection.
func WriteRiskCSV(w io.Writer, plan *risk.MitigationPlan) error {
	cw := csv.NewWriter(w)
	header := []string{"risk_id", "option_id", "option", "cost", "expected_before", "expected_after"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range plan.Selections {
		rec := []string{
			strconv.Itoa(s.RiskID),
			s.OptionID,
			s.OptionName,
			strconv.FormatFloat(s.Cost, 'f', 2, 64),
			strconv.FormatFloat(s.ExpectedBefore, 'f', 2, 64),
			strconv.FormatFloat(s.ExpectedAfter, 'f', 2, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ";"
		}
		out += n
	}
	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
