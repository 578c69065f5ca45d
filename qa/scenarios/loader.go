// Package scenarios runs YAML-defined planning scenarios end to end and
// checks the computed plan against expected outcomes.
package scenarios

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mbotelho/planforge/core/model"
)

type ActivityDef struct {
	ID           int            `yaml:"id"`
	Name         string         `yaml:"name"`
	DurationDays int            `yaml:"duration_days"`
	NumPeople    int            `yaml:"num_people"`
	Predecessors []int          `yaml:"predecessors"`
	Skills       map[string]int `yaml:"skills"`
}

func (a ActivityDef) ToModel() model.Activity {
	return model.Activity{
		ID:           a.ID,
		Name:         a.Name,
		DurationDays: a.DurationDays,
		NumPeople:    a.NumPeople,
		Predecessors: a.Predecessors,
		Skills:       a.Skills,
	}
}

type ResourceDef struct {
	Name          string         `yaml:"name"`
	CostPerHour   float64        `yaml:"cost_per_hour"`
	Availability  float64        `yaml:"availability"`
	StartWeek     int            `yaml:"start_week"`
	VacationWeeks []int          `yaml:"vacation_weeks"`
	Skills        map[string]int `yaml:"skills"`
	CoreTeam      bool           `yaml:"core_team"`
}

func (r ResourceDef) ToModel() model.Resource {
	availability := r.Availability
	if availability == 0 {
		availability = 1
	}
	startWeek := r.StartWeek
	if startWeek == 0 {
		startWeek = 1
	}
	return model.Resource{
		Name:          r.Name,
		CostPerHour:   r.CostPerHour,
		Availability:  availability,
		StartWeek:     startWeek,
		VacationWeeks: r.VacationWeeks,
		Skills:        r.Skills,
		CoreTeam:      r.CoreTeam,
	}
}

type OptionDef struct {
	ID                string  `yaml:"id"`
	Name              string  `yaml:"name"`
	Cost              float64 `yaml:"cost"`
	CostReduction     float64 `yaml:"cost_reduction"`
	TimeReductionDays int     `yaml:"time_reduction_days"`
}

type RiskDef struct {
	ID             int         `yaml:"id"`
	Name           string      `yaml:"name"`
	Probability    float64     `yaml:"probability"`
	CostImpact     float64     `yaml:"cost_impact"`
	TimeImpactDays int         `yaml:"time_impact_days"`
	Options        []OptionDef `yaml:"options"`
}

func (r RiskDef) ToModel() model.Risk {
	risk := model.Risk{
		ID:             r.ID,
		Name:           r.Name,
		Probability:    r.Probability,
		CostImpact:     r.CostImpact,
		TimeImpactDays: r.TimeImpactDays,
	}
	for _, o := range r.Options {
		risk.Options = append(risk.Options, model.MitigationOption{
			ID:                o.ID,
			Name:              o.Name,
			Cost:              o.Cost,
			CostReduction:     o.CostReduction,
			TimeReductionDays: o.TimeReductionDays,
		})
	}
	return risk
}

type ParamsDef struct {
	RiskBudget  float64 `yaml:"risk_budget"`
	ValuePerDay float64 `yaml:"value_per_day"`
}

type Expected struct {
	DurationDays int     `yaml:"duration_days"`
	CriticalPath []int   `yaml:"critical_path"`
	TotalCost    float64 `yaml:"total_cost"`
	// Mitigations maps risk ID to the expected option ID.
	Mitigations map[int]string `yaml:"mitigations"`
}

type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Start       string        `yaml:"start"`
	Holidays    []string      `yaml:"holidays,omitempty"`
	Activities  []ActivityDef `yaml:"activities"`
	Resources   []ResourceDef `yaml:"resources"`
	Risks       []RiskDef     `yaml:"risks,omitempty"`
	Params      ParamsDef     `yaml:"params"`
	Expected    Expected      `yaml:"expected"`
}

// Catalog converts the scenario definitions to a model catalog.
func (s *Scenario) Catalog() model.Catalog {
	var cat model.Catalog
	for _, a := range s.Activities {
		cat.Activities = append(cat.Activities, a.ToModel())
	}
	for _, r := range s.Resources {
		cat.Resources = append(cat.Resources, r.ToModel())
	}
	for _, r := range s.Risks {
		cat.Risks = append(cat.Risks, r.ToModel())
	}
	return cat
}

// StartDate parses the scenario start date.
func (s *Scenario) StartDate() (time.Time, error) {
	return time.Parse("2006-01-02", s.Start)
}

// HolidayDates parses the scenario holidays.
func (s *Scenario) HolidayDates() ([]time.Time, error) {
	out := make([]time.Time, 0, len(s.Holidays))
	for _, h := range s.Holidays {
		t, err := time.Parse("2006-01-02", h)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Load reads a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
