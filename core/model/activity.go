package model

// HoursPerDay is the nominal working time of one person on one working day.
const HoursPerDay = 8.0

// Activity represents one project activity. Instances are built once from
// the project catalog and never mutated; computed timing and assignments
// live in the per-stage result objects keyed by activity ID.
type Activity struct {
	ID           int
	Name         string
	DurationDays int
	NumPeople    int
	Predecessors []int
	// Skills maps a skill category to the minimum proficiency level
	// (0 means the category is not required).
	Skills map[string]int
}

// BaseHours returns the nominal effort of the activity in person-hours.
func (a Activity) BaseHours() float64 {
	return float64(a.NumPeople*a.DurationDays) * HoursPerDay
}

// RequiredSkills returns the categories with a required level above zero.
func (a Activity) RequiredSkills() map[string]int {
	req := make(map[string]int, len(a.Skills))
	for cat, lvl := range a.Skills {
		if lvl > 0 {
			req[cat] = lvl
		}
	}
	return req
}
