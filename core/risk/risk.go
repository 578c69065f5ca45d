// Package risk selects a budget-feasible mitigation combination maximising
// net benefit. The decision space is the Cartesian product of each risk's
// option menu, enumerated exhaustively; this is deliberate and only sound
// while risk and option counts stay in the single digits.
package risk

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/mbotelho/planforge/core/model"
)

// Optimize evaluates every mitigation combination against the budget and
// returns the one with the highest net benefit. Ties fall to the lower
// total cost, then to lexical (risk ID, option ID) order. valuePerDay
// converts schedule-slip reduction into euros.
func Optimize(risks []model.Risk, budget, valuePerDay float64) (*MitigationPlan, error) {
	if budget < 0 {
		return nil, fmt.Errorf("mitigation budget must be non-negative, got %.2f", budget)
	}
	ordered := append([]model.Risk(nil), risks...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	// Options sorted by ID so enumeration order realises the lexical
	// tie-break for free.
	menus := make([][]model.MitigationOption, len(ordered))
	lens := make([]int, len(ordered))
	for i, r := range ordered {
		opts := append([]model.MitigationOption(nil), r.Options...)
		sort.Slice(opts, func(a, b int) bool { return opts[a].ID < opts[b].ID })
		menus[i] = opts
		lens[i] = len(opts)
	}

	plan := &MitigationPlan{}
	for _, r := range ordered {
		plan.ExpectedBefore += r.ExpectedImpact(valuePerDay)
		plan.WorstCaseCost += r.CostImpact
		plan.WorstCaseDays += r.TimeImpactDays
	}
	if len(ordered) == 0 {
		return plan, nil
	}

	bestIdx := []int(nil)
	bestBenefit := 0.0
	bestCost := 0.0
	found := false

	gen := combin.NewCartesianGenerator(lens)
	idx := make([]int, len(lens))
	for gen.Next() {
		gen.Product(idx)
		plan.Combinations++

		cost := 0.0
		for i, j := range idx {
			cost += menus[i][j].Cost
		}
		if cost > budget {
			continue
		}
		benefit := 0.0
		for i, j := range idx {
			opt := menus[i][j]
			benefit += ordered[i].Probability * (opt.CostReduction + float64(opt.TimeReductionDays)*valuePerDay)
		}
		net := benefit - cost

		better := !found || net > bestBenefit || (net == bestBenefit && cost < bestCost)
		if better {
			found = true
			bestBenefit = net
			bestCost = cost
			bestIdx = append(bestIdx[:0], idx...)
		}
	}

	if !found {
		// Only reachable when some risk has no zero-cost option.
		for _, r := range ordered {
			free := false
			for _, o := range r.Options {
				if o.Cost == 0 {
					free = true
					break
				}
			}
			if !free {
				return nil, &BudgetInfeasibleError{RiskID: r.ID}
			}
		}
		return nil, &BudgetInfeasibleError{RiskID: ordered[0].ID}
	}

	plan.NetBenefit = bestBenefit
	plan.TotalCost = bestCost
	for i, j := range bestIdx {
		r := ordered[i]
		opt := menus[i][j]
		residualCost := r.CostImpact - opt.CostReduction
		if residualCost < 0 {
			residualCost = 0
		}
		residualDays := r.TimeImpactDays - opt.TimeReductionDays
		if residualDays < 0 {
			residualDays = 0
		}
		after := r.Probability * (residualCost + float64(residualDays)*valuePerDay)
		plan.Selections = append(plan.Selections, Selection{
			RiskID:         r.ID,
			OptionID:       opt.ID,
			OptionName:     opt.Name,
			Cost:           opt.Cost,
			ExpectedBefore: r.ExpectedImpact(valuePerDay),
			ExpectedAfter:  after,
		})
		plan.ExpectedAfter += after
	}
	return plan, nil
}
