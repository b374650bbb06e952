package agent

import (
	"natecon/game"

	"golang.org/x/exp/slices"
)

// workedDiscount lowers the cost of selling a building that already paid off this round.
const workedDiscount = 1.0

func (a *Agent) decidePayday(v *view, moves []game.Move) game.Move {
	pp := v.gs.PaydayState.Players[v.player]
	plan := v.underSell(pp.Wage, v.planSale(pp.Wage))

	for _, i := range pp.Selected {
		if !slices.Contains(plan, i) {
			return mustFind(moves, game.TogglePaydaySellMove, i)
		}
	}
	for _, i := range plan {
		if !slices.Contains(pp.Selected, i) {
			return mustFind(moves, game.TogglePaydaySellMove, i)
		}
	}
	if len(plan) == 0 {
		return mustFind(moves, game.ConfirmPaydayMove, 0)
	}
	return mustFind(moves, game.ConfirmPaydaySellMove, 0)
}

// sellCost ranks buildings for sale; cheap ones go first.
func (v *view) sellCost(i int) float64 {
	b := v.p.Buildings[i]
	def := v.def(b.Card)
	cost := float64(def.VP) + dangerRating[def.ID]
	if b.Worked {
		cost -= workedDiscount
	}
	return cost
}

// sellLoss is what the player gives up beyond the sale price: future use and what opponents gain from the new workplace.
func (v *view) sellLoss(i int) float64 {
	def := v.def(v.p.Buildings[i].Card)
	return v.usageValue(def) + dangerRating[def.ID]*0.5
}

// planSale picks the buildings to sell for a wage: the cheapest until the wage is covered, then the
// least valuable ones dropped while the rest still covers it.
func (v *view) planSale(wage int) []int {
	var candidates []int
	for i := range v.p.Buildings {
		if v.gs.Sellable(v.p, i) {
			candidates = append(candidates, i)
		}
	}
	slices.SortStableFunc(candidates, func(a, b int) int {
		ca, cb := v.sellCost(a), v.sellCost(b)
		switch {
		case ca < cb:
			return -1
		case ca > cb:
			return 1
		}
		return 0
	})

	var plan []int
	cash := v.p.Money
	for _, i := range candidates {
		if cash >= wage {
			break
		}
		plan = append(plan, i)
		cash += v.gs.SellValue(v.p, i)
	}
	for v.gs.Oversells(v.p, plan, wage) {
		lowest := 0
		for n := range plan {
			if v.gs.SellValue(v.p, plan[n]) < v.gs.SellValue(v.p, plan[lowest]) {
				lowest = n
			}
		}
		plan = slices.Delete(plan, lowest, lowest+1)
	}
	return plan
}

// underSell trims a sale plan when debt costs less than parting with buildings. It is only considered
// late in the game or while a debt exemption softens the penalty. The full plan, the plan without
// each one of its buildings, and no sale at all are compared; ties keep the larger sale.
func (v *view) underSell(wage int, plan []int) []int {
	exempt := v.exemptionLeft()
	if len(plan) == 0 || (v.stage != late && exempt == 0) {
		return plan
	}
	best, bestCost := plan, v.planCost(wage, plan, exempt)
	if len(plan) > 1 {
		for n := range plan {
			fewer := slices.Delete(slices.Clone(plan), n, n+1)
			if cost := v.planCost(wage, fewer, exempt); cost < bestCost {
				best, bestCost = fewer, cost
			}
		}
	}
	if cost := v.planCost(wage, nil, exempt); cost < bestCost {
		best = nil
	}
	return best
}

// planCost is what settling a wage with a sale gives up: the cash paid, the penalty of the debt left
// over and the loss of the sold buildings. Sale prices equal the VP the buildings were worth.
func (v *view) planCost(wage int, plan []int, exempt int) float64 {
	cash := v.p.Money
	loss := 0.0
	for _, i := range plan {
		cash += v.gs.SellValue(v.p, i)
		loss += v.sellLoss(i)
	}
	paid := min(cash, wage)
	debt := wage - paid
	return float64(paid) + float64(max(0, debt-exempt)*game.DebtPenalty) + loss
}

func (v *view) exemptionLeft() int {
	exemption := 0
	for _, b := range v.p.Buildings {
		exemption = max(exemption, v.def(b.Card).DebtExemption)
	}
	return max(0, exemption-v.p.Debts)
}
