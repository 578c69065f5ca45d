// Package alloc assigns resources to scheduled activities under skill,
// capacity and calendar constraints. Assignment is greedy in schedule
// order and never backtracks: a feasible-but-suboptimal plan is accepted
// by design, an infeasible activity aborts the run with a typed error.
package alloc

import (
	"fmt"
	"math"
	"sort"

	"github.com/mbotelho/planforge/core/model"
	"github.com/mbotelho/planforge/core/schedule"
)

type candidate struct {
	res     model.Resource
	surplus int
	cost    float64
}

// Allocate staffs every activity in the schedule. Activities are processed
// by earliest start ascending with ties broken by ID, so the plan is
// deterministic for a fixed input.
func Allocate(sched *schedule.Result, activities []model.Activity, resources []model.Resource, cfg Config) (*Plan, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("alloc config: %w", err)
	}

	byID := make(map[int]model.Activity, len(activities))
	order := make([]int, 0, len(activities))
	for _, a := range activities {
		byID[a.ID] = a
		order = append(order, a.ID)
	}
	sort.Slice(order, func(i, j int) bool {
		ei := sched.Entries[order[i]]
		ej := sched.Entries[order[j]]
		if ei.EarliestStart != ej.EarliestStart {
			return ei.EarliestStart < ej.EarliestStart
		}
		return order[i] < order[j]
	})

	plan := &Plan{
		Assignments:       make(map[int]Assignment, len(activities)),
		Order:             order,
		Utilization:       make(map[string]Utilization),
		AdjustedDurations: make(map[int]int, len(activities)),
	}
	taskCount := make(map[string]int, len(resources))

	for _, id := range order {
		act := byID[id]
		entry := sched.Entries[id]
		asn, err := allocateActivity(act, entry, resources, taskCount, cfg)
		if err != nil {
			return nil, err
		}
		plan.Assignments[id] = asn
		plan.AdjustedDurations[id] = asn.AdjustedDays
		plan.TotalCost += asn.Cost

		perResource := asn.AdjustedHours / float64(len(asn.Resources))
		for _, name := range asn.Resources {
			taskCount[name]++
			var rate float64
			for _, r := range resources {
				if r.Name == name {
					rate = r.CostPerHour
					break
				}
			}
			u := plan.Utilization[name]
			u.Resource = name
			u.Tasks++
			u.Hours += perResource
			u.Cost += rate * perResource
			plan.Utilization[name] = u
		}
	}

	billCoreTeam(plan, sched, resources)
	return plan, nil
}

// billCoreTeam adds the fixed cost of core-team members: they are billed
// for every working day of the project at their availability fraction, on
// top of any activity work they were assigned.
func billCoreTeam(plan *Plan, sched *schedule.Result, resources []model.Resource) {
	for _, r := range resources {
		if !r.CoreTeam {
			continue
		}
		hours := float64(sched.DurationDays) * model.HoursPerDay * r.Availability
		cost := hours * r.CostPerHour
		plan.CoreTeamCost += cost
		plan.TotalCost += cost

		u := plan.Utilization[r.Name]
		u.Resource = r.Name
		u.Hours += hours
		u.Cost += cost
		plan.Utilization[r.Name] = u
	}
}

func allocateActivity(act model.Activity, entry schedule.Entry, resources []model.Resource, taskCount map[string]int, cfg Config) (Assignment, error) {
	req := act.RequiredSkills()
	week := entry.StartWeek

	var cands []candidate
	qualified, capBlocked, calBlocked := 0, 0, 0
	for _, r := range resources {
		ok, surplus := r.CoversSkills(req)
		if !ok {
			continue
		}
		qualified++
		if taskCount[r.Name] >= effectiveCap(cfg.MaxTasksPerResource, r.Availability) {
			capBlocked++
			continue
		}
		if !r.AvailableInWeek(week) {
			calBlocked++
			continue
		}
		cands = append(cands, candidate{
			res:     r,
			surplus: surplus,
			cost:    candidateCost(act, r, surplus, cfg),
		})
	}

	if len(cands) < act.NumPeople {
		return Assignment{}, infeasible(act, qualified, capBlocked, calBlocked, len(cands))
	}

	// Lower cost first, then higher surplus, then name for determinism.
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].cost != cands[j].cost {
			return cands[i].cost < cands[j].cost
		}
		if cands[i].surplus != cands[j].surplus {
			return cands[i].surplus > cands[j].surplus
		}
		return cands[i].res.Name < cands[j].res.Name
	})
	picked := cands[:act.NumPeople]

	totalSurplus := 0
	names := make([]string, len(picked))
	for i, c := range picked {
		totalSurplus += c.surplus
		names[i] = c.res.Name
	}

	base := act.BaseHours()
	adjusted := adjustHours(base, totalSurplus, cfg)
	days := int(math.Ceil(adjusted / (float64(act.NumPeople) * model.HoursPerDay)))
	if days < 1 {
		days = 1
	}

	perResource := adjusted / float64(len(picked))
	cost := 0.0
	for _, c := range picked {
		cost += c.res.CostPerHour * perResource
	}

	return Assignment{
		ActivityID:    act.ID,
		Resources:     names,
		BaseHours:     base,
		AdjustedHours: adjusted,
		AdjustedDays:  days,
		SkillSurplus:  totalSurplus,
		Cost:          cost,
	}, nil
}

// candidateCost scores one resource against the activity: the per-person
// effort share adjusted by this candidate's own surplus, times its rate.
func candidateCost(act model.Activity, r model.Resource, surplus int, cfg Config) float64 {
	share := act.BaseHours() / float64(act.NumPeople)
	adjusted := adjustHours(share, surplus, cfg)
	return adjusted * r.CostPerHour
}

func adjustHours(base float64, surplus int, cfg Config) float64 {
	adjusted := base - cfg.AdjustmentHoursPerLevel*float64(surplus)
	if floor := base * cfg.MinHoursFraction; adjusted < floor {
		adjusted = floor
	}
	return adjusted
}

// effectiveCap scales the task cap by the availability fraction: a
// part-time resource keeps its hourly rate but can carry fewer tasks.
func effectiveCap(maxTasks int, availability float64) int {
	limit := int(math.Ceil(float64(maxTasks) * availability))
	if limit < 1 {
		limit = 1
	}
	return limit
}

func infeasible(act model.Activity, qualified, capBlocked, calBlocked, feasible int) error {
	e := &InfeasibleError{ActivityID: act.ID}
	switch {
	case qualified == 0:
		e.Reason = ReasonSkillGap
		e.Detail = "no resource meets the required skill levels"
	case capBlocked >= calBlocked:
		e.Reason = ReasonCapacity
		e.Detail = fmt.Sprintf("need %d people, %d feasible", act.NumPeople, feasible)
	default:
		e.Reason = ReasonCalendar
		e.Detail = "no qualified resource available in start week"
	}
	return e
}
