package model

// Resource represents a member of the project team. The catalog entry is
// immutable; running task counts and accumulated hours are tracked by the
// allocator in its own plan, not here.
type Resource struct {
	Name        string
	CostPerHour float64
	// Availability is the fraction of a full-time calendar the resource
	// can dedicate to the project, in (0, 1].
	Availability float64
	// StartWeek is the first project week (1-based) the resource can work.
	StartWeek     int
	VacationWeeks []int
	// Skills maps a skill category to the resource's proficiency level.
	Skills map[string]int
	// CoreTeam marks permanent members billed for the whole project span.
	CoreTeam bool
}

// AvailableInWeek reports whether the resource can start work in the given
// 1-based project week.
func (r Resource) AvailableInWeek(week int) bool {
	if week < r.StartWeek {
		return false
	}
	for _, w := range r.VacationWeeks {
		if w == week {
			return false
		}
	}
	return true
}

// CoversSkills checks the resource against a set of skill requirements and
// returns the aggregate surplus above the required levels. A category the
// resource lacks entirely fails the match.
func (r Resource) CoversSkills(req map[string]int) (bool, int) {
	surplus := 0
	for cat, required := range req {
		if required <= 0 {
			continue
		}
		level, ok := r.Skills[cat]
		if !ok || level < required {
			return false, 0
		}
		surplus += level - required
	}
	return true, surplus
}
