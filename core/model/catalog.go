package model

import "fmt"

// Catalog is the read-only input snapshot shared by all pipeline stages.
// Stages look up entries by identifier and never hold mutable
// back-references into it.
type Catalog struct {
	Activities []Activity
	Resources  []Resource
	Risks      []Risk
}

// Activity returns the activity with the given ID.
func (c Catalog) Activity(id int) (Activity, bool) {
	for _, a := range c.Activities {
		if a.ID == id {
			return a, true
		}
	}
	return Activity{}, false
}

// Resource returns the resource with the given name.
func (c Catalog) Resource(name string) (Resource, bool) {
	for _, r := range c.Resources {
		if r.Name == name {
			return r, true
		}
	}
	return Resource{}, false
}

// Validate checks referential integrity and value ranges. Cycle detection
// is left to the schedule stage, which reports the offending activity.
func (c Catalog) Validate() error {
	seen := make(map[int]bool, len(c.Activities))
	for _, a := range c.Activities {
		if a.ID <= 0 {
			return fmt.Errorf("activity %q: id must be positive", a.Name)
		}
		if seen[a.ID] {
			return fmt.Errorf("duplicate activity id %d", a.ID)
		}
		seen[a.ID] = true
		if a.DurationDays <= 0 {
			return fmt.Errorf("activity %d: duration must be positive", a.ID)
		}
		if a.NumPeople <= 0 {
			return fmt.Errorf("activity %d: num_people must be positive", a.ID)
		}
	}
	for _, a := range c.Activities {
		for _, p := range a.Predecessors {
			if !seen[p] {
				return fmt.Errorf("activity %d: unknown predecessor %d", a.ID, p)
			}
			if p == a.ID {
				return fmt.Errorf("activity %d: references itself", a.ID)
			}
		}
	}
	names := make(map[string]bool, len(c.Resources))
	for _, r := range c.Resources {
		if r.Name == "" {
			return fmt.Errorf("resource with empty name")
		}
		if names[r.Name] {
			return fmt.Errorf("duplicate resource %q", r.Name)
		}
		names[r.Name] = true
		if r.CostPerHour < 0 {
			return fmt.Errorf("resource %q: negative hourly cost", r.Name)
		}
		if r.Availability <= 0 || r.Availability > 1 {
			return fmt.Errorf("resource %q: availability must be in (0,1]", r.Name)
		}
		if r.StartWeek < 1 {
			return fmt.Errorf("resource %q: start week must be >= 1", r.Name)
		}
	}
	riskIDs := make(map[int]bool, len(c.Risks))
	for _, r := range c.Risks {
		if riskIDs[r.ID] {
			return fmt.Errorf("duplicate risk id %d", r.ID)
		}
		riskIDs[r.ID] = true
		if r.Probability < 0 || r.Probability > 1 {
			return fmt.Errorf("risk %d: probability must be in [0,1]", r.ID)
		}
		if len(r.Options) == 0 {
			return fmt.Errorf("risk %d: no mitigation options", r.ID)
		}
		optIDs := make(map[string]bool, len(r.Options))
		for _, o := range r.Options {
			if optIDs[o.ID] {
				return fmt.Errorf("risk %d: duplicate option %q", r.ID, o.ID)
			}
			optIDs[o.ID] = true
			if o.Cost < 0 {
				return fmt.Errorf("risk %d option %q: negative cost", r.ID, o.ID)
			}
		}
	}
	return nil
}
