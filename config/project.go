package config

import (
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mbotelho/planforge/core/model"
)

// ActivityDef is the file representation of an activity.
type ActivityDef struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	DurationDays int            `json:"duration_days"`
	NumPeople    int            `json:"num_people"`
	Predecessors []int          `json:"predecessors"`
	Skills       map[string]int `json:"skills"`
}

// ResourceDef is the file representation of a resource.
type ResourceDef struct {
	Name          string         `json:"name"`
	CostPerHour   float64        `json:"cost_per_hour"`
	Availability  float64        `json:"availability"`
	StartWeek     int            `json:"start_week"`
	VacationWeeks []int          `json:"vacation_weeks"`
	Skills        map[string]int `json:"skills"`
	CoreTeam      bool           `json:"core_team"`
}

// OptionDef is the file representation of a mitigation option.
type OptionDef struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Cost              float64 `json:"cost"`
	CostReduction     float64 `json:"cost_reduction"`
	TimeReductionDays int     `json:"time_reduction_days"`
}

// RiskDef is the file representation of a risk.
type RiskDef struct {
	ID             int         `json:"id"`
	Name           string      `json:"name"`
	ActivityID     int         `json:"activity_id"`
	Probability    float64     `json:"probability"`
	CostImpact     float64     `json:"cost_impact"`
	TimeImpactDays int         `json:"time_impact_days"`
	Options        []OptionDef `json:"options"`
}

// ProjectFile is the on-disk catalog format.
type ProjectFile struct {
	Activities []ActivityDef `json:"activities"`
	Resources  []ResourceDef `json:"resources"`
	Risks      []RiskDef     `json:"risks"`
}

// ToCatalog converts the file representation into the model catalog.
func (p ProjectFile) ToCatalog() model.Catalog {
	cat := model.Catalog{
		Activities: make([]model.Activity, 0, len(p.Activities)),
		Resources:  make([]model.Resource, 0, len(p.Resources)),
		Risks:      make([]model.Risk, 0, len(p.Risks)),
	}
	for _, a := range p.Activities {
		cat.Activities = append(cat.Activities, model.Activity{
			ID:           a.ID,
			Name:         a.Name,
			DurationDays: a.DurationDays,
			NumPeople:    a.NumPeople,
			Predecessors: a.Predecessors,
			Skills:       a.Skills,
		})
	}
	for _, r := range p.Resources {
		availability := r.Availability
		if availability == 0 {
			availability = 1
		}
		startWeek := r.StartWeek
		if startWeek == 0 {
			startWeek = 1
		}
		cat.Resources = append(cat.Resources, model.Resource{
			Name:          r.Name,
			CostPerHour:   r.CostPerHour,
			Availability:  availability,
			StartWeek:     startWeek,
			VacationWeeks: r.VacationWeeks,
			Skills:        r.Skills,
			CoreTeam:      r.CoreTeam,
		})
	}
	for _, r := range p.Risks {
		risk := model.Risk{
			ID:             r.ID,
			Name:           r.Name,
			ActivityID:     r.ActivityID,
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
		cat.Risks = append(cat.Risks, risk)
	}
	return cat
}

// LoadProject reads a project catalog from a JSON or YAML file and
// validates it.
func LoadProject(path string) (model.Catalog, error) {
	k := koanf.New(".")
	parser, err := parserFor(path)
	if err != nil {
		return model.Catalog{}, err
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return model.Catalog{}, err
	}
	var pf ProjectFile
	if err := k.UnmarshalWithConf("", &pf, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return model.Catalog{}, err
	}
	cat := pf.ToCatalog()
	if err := cat.Validate(); err != nil {
		return model.Catalog{}, err
	}
	return cat, nil
}
