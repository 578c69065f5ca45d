package risk

import "fmt"

// Selection records the mitigation chosen for one risk.
type Selection struct {
	RiskID     int
	OptionID   string
	OptionName string
	Cost       float64
	// ExpectedBefore and ExpectedAfter are the probability-weighted euro
	// impacts without and with the selected mitigation.
	ExpectedBefore float64
	ExpectedAfter  float64
}

// MitigationPlan is the immutable outcome of the optimizer.
type MitigationPlan struct {
	// Selections is ordered by risk ID.
	Selections []Selection
	TotalCost  float64
	// NetBenefit is the expected impact reduction minus mitigation spend.
	NetBenefit     float64
	ExpectedBefore float64
	ExpectedAfter  float64
	// WorstCaseCost and WorstCaseDays assume every risk materialises
	// unmitigated.
	WorstCaseCost float64
	WorstCaseDays int
	// Combinations is the size of the evaluated decision space.
	Combinations int
}

// Selected returns the selection for the given risk ID.
func (p *MitigationPlan) Selected(riskID int) (Selection, bool) {
	for _, s := range p.Selections {
		if s.RiskID == riskID {
			return s, true
		}
	}
	return Selection{}, false
}

// BudgetInfeasibleError signals a misconfigured risk catalog: no
// combination of mitigations fits the budget, which can only happen when a
// risk lacks a zero-cost fallback option.
type BudgetInfeasibleError struct {
	RiskID int
}

func (e *BudgetInfeasibleError) Error() string {
	return fmt.Sprintf("no budget-feasible mitigation combination: risk %d has no zero-cost option", e.RiskID)
}
