package schedule

import (
	"fmt"
	"time"
)

// Entry holds the computed timing for a single activity. Day values are
// working-day offsets from the project start.
type Entry struct {
	ActivityID     int
	EarliestStart  int
	EarliestFinish int
	LatestStart    int
	LatestFinish   int
	Float          int
	Critical       bool
	DurationDays   int

	StartDate time.Time
	EndDate   time.Time
	// StartWeek is the 1-based project week the activity begins in, used
	// by the allocator for resource availability checks.
	StartWeek int
}

// Result is the immutable outcome of a schedule computation.
type Result struct {
	Entries map[int]Entry
	// Order is the topological order used for the passes.
	Order []int
	// CriticalPath lists the critical activities in topological order.
	CriticalPath []int
	// DurationDays is the project duration in working days.
	DurationDays   int
	CompletionDate time.Time
}

// Entry returns the schedule entry for the given activity.
func (r *Result) Entry(id int) (Entry, bool) {
	e, ok := r.Entries[id]
	return e, ok
}

// CycleError reports a precedence cycle in the activity graph.
type CycleError struct {
	// ActivityID identifies an activity participating in the cycle.
	ActivityID int
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("precedence cycle involving activity %d", e.ActivityID)
}
