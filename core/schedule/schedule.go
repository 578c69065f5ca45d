// Package schedule computes activity timing with the critical path method:
// a forward pass for earliest start/finish, a backward pass for latest
// start/finish, float and the critical path. Durations are working days
// aligned to an injected calendar.
package schedule

import (
	"sort"

	"github.com/mbotelho/planforge/core/calendar"
	"github.com/mbotelho/planforge/core/model"
)

// Compute runs both CPM passes over the activities using their nominal
// durations. It fails with *CycleError if the precedence graph is cyclic.
func Compute(activities []model.Activity, cal *calendar.Calendar) (*Result, error) {
	return ComputeWithDurations(activities, nil, cal)
}

// ComputeWithDurations runs the CPM passes with per-activity duration
// overrides. Activities absent from the override map keep their nominal
// duration. The allocator uses this to rebuild the schedule after skill
// surplus shortened some activities.
func ComputeWithDurations(activities []model.Activity, durations map[int]int, cal *calendar.Calendar) (*Result, error) {
	succ := make(map[int][]int, len(activities))
	pred := make(map[int][]int, len(activities))
	dur := make(map[int]int, len(activities))
	for _, a := range activities {
		pred[a.ID] = append([]int(nil), a.Predecessors...)
		dur[a.ID] = a.DurationDays
		if d, ok := durations[a.ID]; ok && d > 0 {
			dur[a.ID] = d
		}
	}
	for _, a := range activities {
		for _, p := range a.Predecessors {
			succ[p] = append(succ[p], a.ID)
		}
	}

	order, err := topoSort(activities, pred, succ)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Entries: make(map[int]Entry, len(activities)),
		Order:   order,
	}

	// Forward pass.
	es := make(map[int]int, len(order))
	ef := make(map[int]int, len(order))
	for _, id := range order {
		start := 0
		for _, p := range pred[id] {
			if ef[p] > start {
				start = ef[p]
			}
		}
		es[id] = start
		ef[id] = start + dur[id]
		if ef[id] > res.DurationDays {
			res.DurationDays = ef[id]
		}
	}

	// Backward pass in reverse topological order.
	ls := make(map[int]int, len(order))
	lf := make(map[int]int, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		finish := res.DurationDays
		for _, s := range succ[id] {
			if ls[s] < finish {
				finish = ls[s]
			}
		}
		lf[id] = finish
		ls[id] = finish - dur[id]
	}

	for _, id := range order {
		e := Entry{
			ActivityID:     id,
			EarliestStart:  es[id],
			EarliestFinish: ef[id],
			LatestStart:    ls[id],
			LatestFinish:   lf[id],
			Float:          ls[id] - es[id],
			DurationDays:   dur[id],
		}
		e.Critical = e.Float == 0
		if cal != nil {
			e.StartDate = cal.DateOf(e.EarliestStart)
			e.EndDate = cal.DateOf(e.EarliestFinish)
			e.StartWeek = cal.WeekOf(e.EarliestStart)
		}
		res.Entries[id] = e
		if e.Critical {
			res.CriticalPath = append(res.CriticalPath, id)
		}
	}
	if cal != nil {
		res.CompletionDate = cal.DateOf(res.DurationDays)
	}
	return res, nil
}

// topoSort applies Kahn's algorithm. The ready queue is kept sorted by
// activity ID so the resulting order is deterministic.
func topoSort(activities []model.Activity, pred, succ map[int][]int) ([]int, error) {
	inDegree := make(map[int]int, len(activities))
	for _, a := range activities {
		inDegree[a.ID] = len(pred[a.ID])
	}

	var queue []int
	for _, a := range activities {
		if inDegree[a.ID] == 0 {
			queue = append(queue, a.ID)
		}
	}
	sort.Ints(queue)

	order := make([]int, 0, len(activities))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		var ready []int
		for _, s := range succ[id] {
			inDegree[s]--
			if inDegree[s] == 0 {
				ready = append(ready, s)
			}
		}
		sort.Ints(ready)
		queue = append(queue, ready...)
	}

	if len(order) != len(activities) {
		return nil, &CycleError{ActivityID: findCycleMember(activities, pred, order)}
	}
	return order, nil
}

// findCycleMember locates an activity that is part of a cycle, not merely
// downstream of one. From the smallest unresolved activity it walks
// unresolved predecessor edges (always the smallest, for a stable message)
// until a node repeats; every unresolved node has such an edge, and the
// first repeated node lies on the cycle itself.
func findCycleMember(activities []model.Activity, pred map[int][]int, order []int) int {
	resolved := make(map[int]bool, len(order))
	for _, id := range order {
		resolved[id] = true
	}
	start := -1
	for _, a := range activities {
		if !resolved[a.ID] && (start == -1 || a.ID < start) {
			start = a.ID
		}
	}
	seen := make(map[int]bool)
	id := start
	for !seen[id] {
		seen[id] = true
		next := -1
		for _, p := range pred[id] {
			if !resolved[p] && (next == -1 || p < next) {
				next = p
			}
		}
		id = next
	}
	return id
}
