package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/mbotelho/planforge/core/alloc"
	"github.com/mbotelho/planforge/core/calendar"
	"github.com/mbotelho/planforge/core/model"
	"github.com/mbotelho/planforge/core/risk"
	"github.com/mbotelho/planforge/core/schedule"
)

func samplePlan(t *testing.T) (*schedule.Result, *alloc.Plan) {
	t.Helper()
	acts := []model.Activity{
		{ID: 1, Name: "a", DurationDays: 5, NumPeople: 1, Skills: map[string]int{"x": 1}},
		{ID: 2, Name: "b", DurationDays: 3, NumPeople: 1, Predecessors: []int{1}, Skills: map[string]int{"x": 1}},
	}
	cal := calendar.New(time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC))
	sched, err := schedule.Compute(acts, cal)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	resources := []model.Resource{
		{Name: "Ana", CostPerHour: 80, Availability: 1, StartWeek: 1, Skills: map[string]int{"x": 2}},
	}
	plan, err := alloc.Allocate(sched, acts, resources, alloc.Config{})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	return sched, plan
}

func parseCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	rows, err := csv.NewReader(buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	return rows
}

func TestWriteScheduleCSV(t *testing.T) {
	sched, _ := samplePlan(t)
	var buf bytes.Buffer
	if err := WriteScheduleCSV(&buf, sched); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows := parseCSV(t, &buf)
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "activity_id" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[1][0] != "1" || rows[1][6] != "true" {
		t.Fatalf("unexpected first row %v", rows[1])
	}
	if rows[1][7] != "2026-01-05" {
		t.Fatalf("unexpected start date %v", rows[1][7])
	}
}

func TestWriteAllocationCSV(t *testing.T) {
	_, plan := samplePlan(t)
	var buf bytes.Buffer
	if err := WriteAllocationCSV(&buf, plan); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows := parseCSV(t, &buf)
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[1][1] != "Ana" {
		t.Fatalf("unexpected resource %v", rows[1])
	}
}

func TestWriteUtilizationCSV(t *testing.T) {
	_, plan := samplePlan(t)
	var buf bytes.Buffer
	if err := WriteUtilizationCSV(&buf, plan); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows := parseCSV(t, &buf)
	if len(rows) != 2 || rows[1][0] != "Ana" || rows[1][1] != "2" {
		t.Fatalf("unexpected utilization %v", rows)
	}
}

func TestWriteRiskCSV(t *testing.T) {
	risks := []model.Risk{
		{ID: 1, Probability: 0.5, CostImpact: 1000,
			Options: []model.MitigationOption{{ID: "E", Name: "accept"}}},
	}
	plan, err := risk.Optimize(risks, 0, 0)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteRiskCSV(&buf, plan); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows := parseCSV(t, &buf)
	if len(rows) != 2 || rows[1][1] != "E" {
		t.Fatalf("unexpected risk rows %v", rows)
	}
}

func TestWriteJSON(t *testing.T) {
	sched, _ := samplePlan(t)
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sched); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("empty output")
	}
}
