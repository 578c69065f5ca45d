package schedule

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/mbotelho/planforge/core/calendar"
	"github.com/mbotelho/planforge/core/model"
)

func testCalendar() *calendar.Calendar {
	return calendar.New(time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC))
}

func fork() []model.Activity {
	return []model.Activity{
		{ID: 1, Name: "A", DurationDays: 5, NumPeople: 1},
		{ID: 2, Name: "B", DurationDays: 3, NumPeople: 1, Predecessors: []int{1}},
		{ID: 3, Name: "C", DurationDays: 4, NumPeople: 1, Predecessors: []int{1}},
	}
}

func TestComputeForkTiming(t *testing.T) {
	res, err := Compute(fork(), testCalendar())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	a := res.Entries[1]
	b := res.Entries[2]
	c := res.Entries[3]
	if a.EarliestStart != 0 || a.EarliestFinish != 5 {
		t.Fatalf("A timing: %+v", a)
	}
	if b.EarliestStart != 5 || c.EarliestStart != 5 {
		t.Fatalf("B/C should start at 5: %d %d", b.EarliestStart, c.EarliestStart)
	}
	if res.DurationDays != 9 {
		t.Fatalf("expected project duration 9 got %d", res.DurationDays)
	}
	if b.Float != 1 || b.Critical {
		t.Fatalf("B should have float 1: %+v", b)
	}
	if c.Float != 0 || !c.Critical {
		t.Fatalf("C should be critical: %+v", c)
	}
	if !reflect.DeepEqual(res.CriticalPath, []int{1, 3}) {
		t.Fatalf("critical path: %v", res.CriticalPath)
	}
}

func TestComputeTimingInvariants(t *testing.T) {
	acts := []model.Activity{
		{ID: 1, DurationDays: 2, NumPeople: 1},
		{ID: 2, DurationDays: 4, NumPeople: 1, Predecessors: []int{1}},
		{ID: 3, DurationDays: 3, NumPeople: 1, Predecessors: []int{1}},
		{ID: 4, DurationDays: 5, NumPeople: 1, Predecessors: []int{2, 3}},
		{ID: 5, DurationDays: 1, NumPeople: 1, Predecessors: []int{4}},
	}
	res, err := Compute(acts, testCalendar())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	for _, a := range acts {
		e := res.Entries[a.ID]
		if e.EarliestFinish-e.EarliestStart != e.DurationDays {
			t.Fatalf("activity %d: EF-ES != duration", a.ID)
		}
		if e.LatestFinish-e.LatestStart != e.DurationDays {
			t.Fatalf("activity %d: LF-LS != duration", a.ID)
		}
		for _, p := range a.Predecessors {
			if e.EarliestStart < res.Entries[p].EarliestFinish {
				t.Fatalf("activity %d starts before predecessor %d finishes", a.ID, p)
			}
		}
	}
	// The critical path must run from a source to a sink.
	if len(res.CriticalPath) == 0 {
		t.Fatalf("no critical path")
	}
	first := res.CriticalPath[0]
	last := res.CriticalPath[len(res.CriticalPath)-1]
	if len(acts[0].Predecessors) != 0 && first != 1 {
		t.Fatalf("critical path should begin at a source, got %d", first)
	}
	if res.Entries[last].EarliestFinish != res.DurationDays {
		t.Fatalf("critical path should end at project completion")
	}
}

func TestComputeCycle(t *testing.T) {
	acts := []model.Activity{
		{ID: 1, DurationDays: 1, NumPeople: 1, Predecessors: []int{3}},
		{ID: 2, DurationDays: 1, NumPeople: 1, Predecessors: []int{1}},
		{ID: 3, DurationDays: 1, NumPeople: 1, Predecessors: []int{2}},
	}
	_, err := Compute(acts, testCalendar())
	var ce *CycleError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CycleError got %v", err)
	}
	if ce.ActivityID != 1 {
		t.Fatalf("expected smallest cycle member 1 got %d", ce.ActivityID)
	}
}

func TestComputeCycleReportsParticipant(t *testing.T) {
	// Activity 1 only depends on the 2<->3 cycle; the error must name a
	// cycle member, not the downstream activity.
	acts := []model.Activity{
		{ID: 1, DurationDays: 1, NumPeople: 1, Predecessors: []int{2}},
		{ID: 2, DurationDays: 1, NumPeople: 1, Predecessors: []int{3}},
		{ID: 3, DurationDays: 1, NumPeople: 1, Predecessors: []int{2}},
	}
	_, err := Compute(acts, testCalendar())
	var ce *CycleError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CycleError got %v", err)
	}
	if ce.ActivityID != 2 && ce.ActivityID != 3 {
		t.Fatalf("reported activity %d is not in the cycle", ce.ActivityID)
	}
	if ce.ActivityID != 2 {
		t.Fatalf("expected smallest cycle member 2 got %d", ce.ActivityID)
	}
}

func TestComputeWithDurations(t *testing.T) {
	res, err := ComputeWithDurations(fork(), map[int]int{3: 2}, testCalendar())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	// With C shortened to 2 days, B becomes the critical branch.
	if res.DurationDays != 8 {
		t.Fatalf("expected duration 8 got %d", res.DurationDays)
	}
	if !res.Entries[2].Critical || res.Entries[3].Critical {
		t.Fatalf("criticality should move to B")
	}
}

func TestComputeDeterminism(t *testing.T) {
	acts := fork()
	r1, err := Compute(acts, testCalendar())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	r2, err := Compute(acts, testCalendar())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if !reflect.DeepEqual(r1, r2) {
		t.Fatalf("results differ between runs")
	}
}

func TestCalendarAlignment(t *testing.T) {
	res, err := Compute(fork(), testCalendar())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	a := res.Entries[1]
	if a.StartDate.Weekday() == time.Saturday || a.StartDate.Weekday() == time.Sunday {
		t.Fatalf("start date on weekend: %v", a.StartDate)
	}
	// 5 working days from Mon 2026-01-05 lands on Mon 2026-01-12.
	want := time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)
	if !a.EndDate.Equal(want) {
		t.Fatalf("expected end %v got %v", want, a.EndDate)
	}
	if res.Entries[2].StartWeek != 2 {
		t.Fatalf("B should start in week 2, got %d", res.Entries[2].StartWeek)
	}
}
