package model

// MitigationOption is one entry in a risk's mitigation menu. Every risk
// catalog must include a zero-cost "accept" option so the optimizer always
// has a budget-feasible fallback.
type MitigationOption struct {
	ID                string
	Name              string
	Cost              float64
	CostReduction     float64
	TimeReductionDays int
}

// Risk represents an identified project risk and its mitigation menu.
type Risk struct {
	ID          int
	Name        string
	ActivityID  int
	Probability float64
	CostImpact  float64
	// TimeImpactDays is the schedule slip if the risk materialises.
	TimeImpactDays int
	Options        []MitigationOption
}

// ExpectedValue returns the probability-weighted monetary impact of the
// unmitigated risk.
func (r Risk) ExpectedValue() float64 {
	return r.Probability * r.CostImpact
}

// ExpectedImpact returns the probability-weighted impact in euros given a
// per-day valuation of schedule slip.
func (r Risk) ExpectedImpact(valuePerDay float64) float64 {
	return r.Probability * (r.CostImpact + float64(r.TimeImpactDays)*valuePerDay)
}
