package alloc

import "fmt"

// Config holds the allocation policy parameters.
type Config struct {
	// MaxTasksPerResource caps how many activities one resource may take.
	MaxTasksPerResource int `json:"max_tasks_per_resource"`
	// AdjustmentHoursPerLevel is the effort reduction, in hours, granted
	// per point of skill surplus on the assigned resources.
	AdjustmentHoursPerLevel float64 `json:"adjustment_hours_per_level"`
	// MinHoursFraction floors the adjusted effort at this fraction of the
	// nominal effort so overqualification can never zero out a task.
	MinHoursFraction float64 `json:"min_hours_fraction"`
}

// SetDefaults applies the reference policy values.
func (c *Config) SetDefaults() {
	if c.MaxTasksPerResource == 0 {
		c.MaxTasksPerResource = 6
	}
	if c.AdjustmentHoursPerLevel == 0 {
		c.AdjustmentHoursPerLevel = 2
	}
	if c.MinHoursFraction == 0 {
		c.MinHoursFraction = 0.5
	}
}

// Validate checks the parameter ranges.
func (c Config) Validate() error {
	if c.MaxTasksPerResource < 1 {
		return fmt.Errorf("max_tasks_per_resource must be >= 1")
	}
	if c.AdjustmentHoursPerLevel < 0 {
		return fmt.Errorf("adjustment_hours_per_level must be >= 0")
	}
	if c.MinHoursFraction <= 0 || c.MinHoursFraction > 1 {
		return fmt.Errorf("min_hours_fraction must be in (0,1]")
	}
	return nil
}

// Assignment records the resources selected for one activity.
type Assignment struct {
	ActivityID    int
	Resources     []string
	BaseHours     float64
	AdjustedHours float64
	// AdjustedDays is the effective duration after skill surplus, used to
	// rebuild the schedule.
	AdjustedDays int
	SkillSurplus int
	Cost         float64
}

// Utilization accumulates per-resource load across the plan.
type Utilization struct {
	Resource string
	Tasks    int
	Hours    float64
	Cost     float64
}

// Plan is the immutable outcome of an allocation run.
type Plan struct {
	Assignments map[int]Assignment
	// Order lists activity IDs in the order they were allocated.
	Order       []int
	Utilization map[string]Utilization
	// AdjustedDurations maps activity ID to effective duration in days.
	AdjustedDurations map[int]int
	// CoreTeamCost is the fixed cost of core-team members billed over the
	// whole project span, included in TotalCost.
	CoreTeamCost float64
	TotalCost    float64
}

// Reason classifies why no resource could serve an activity.
type Reason int

const (
	// ReasonSkillGap: no resource meets the required skill levels.
	ReasonSkillGap Reason = iota
	// ReasonCapacity: qualified resources exist but all are at the task cap
	// or the activity needs more people than remain feasible.
	ReasonCapacity
	// ReasonCalendar: qualified resources exist but none is available in
	// the activity's start week.
	ReasonCalendar
)

func (r Reason) String() string {
	switch r {
	case ReasonSkillGap:
		return "skill gap"
	case ReasonCapacity:
		return "capacity exhausted"
	case ReasonCalendar:
		return "calendar conflict"
	}
	return "unknown"
}

// InfeasibleError reports an activity that could not be staffed, with the
// dominant constraint so a caller can decide what to relax.
type InfeasibleError struct {
	ActivityID int
	Reason     Reason
	Detail     string
}

func (e *InfeasibleError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("no feasible resource for activity %d: %s (%s)", e.ActivityID, e.Reason, e.Detail)
	}
	return fmt.Sprintf("no feasible resource for activity %d: %s", e.ActivityID, e.Reason)
}
