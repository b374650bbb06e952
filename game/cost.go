package game

import (
	"natecon/catalog"
)

// WageFor returns the wage per worker in a round.
func WageFor(round int) int {
	switch {
	case round <= 2:
		return 2
	case round <= 5:
		return 3
	case round <= 7:
		return 4
	default:
		return 5
	}
}

// WageDue is what the player owes at payday of the given round.
func WageDue(p *PlayerState, round int) int {
	return WageFor(round) * p.Wageable()
}

// EffectiveCost applies the card's variable cost rule for the owner. The result is never negative.
func EffectiveCost(def catalog.CardDef, p *PlayerState) int {
	cost := def.Cost
	if rule := def.CostRule; rule != nil {
		switch rule.Kind {
		case catalog.CostRuleTokenThreshold:
			if p.Tokens >= rule.Threshold {
				cost -= rule.Delta
			}
		}
	}
	return max(0, cost)
}

// BuildCost is the number of cards (or weighted card value) a build through an action costs.
func BuildCost(def catalog.CardDef, p *PlayerState, reduction int) int {
	return max(0, EffectiveCost(def, p)-reduction)
}

// cardWeight is how much one discarded card pays.
func cardWeight(c Card, weighted bool) int {
	if weighted && c.IsConsumable() {
		return 2
	}
	return 1
}

// paymentCapacity sums the pay value of the hand, leaving out the cards listed in exclude.
func paymentCapacity(hand []Card, weighted bool, exclude ...int) int {
	total := 0
	for _, c := range hand {
		skip := false
		for _, uid := range exclude {
			if c.UID == uid {
				skip = true
				break
			}
		}
		if !skip {
			total += cardWeight(c, weighted)
		}
	}
	return total
}

// buildable reports whether the card at hand index i can be built under the rule.
func (gs *GameState) buildable(p *PlayerState, i int, reduction int, rule catalog.BuildRule) bool {
	c := p.Hand[i]
	if c.IsConsumable() {
		return false
	}
	def := gs.def(c)
	if rule == catalog.BuildFarmOnly && !def.HasTag(catalog.TagFarm) {
		return false
	}
	cost := BuildCost(def, p, reduction)
	return paymentCapacity(p.Hand, rule == catalog.BuildDoubleConsumables, c.UID) >= cost
}

func (gs *GameState) anyBuildable(p *PlayerState, reduction int, rule catalog.BuildRule) bool {
	for i := range p.Hand {
		if gs.buildable(p, i, reduction, rule) {
			return true
		}
	}
	return false
}

// dualPairCost returns the shared cost of building hand cards i and j together, or false when they cannot pair.
func (gs *GameState) dualPairCost(p *PlayerState, i, j int) (int, bool) {
	if i == j || i < 0 || j < 0 || i >= len(p.Hand) || j >= len(p.Hand) {
		return 0, false
	}
	a, b := p.Hand[i], p.Hand[j]
	if a.IsConsumable() || b.IsConsumable() {
		return 0, false
	}
	costA, costB := EffectiveCost(gs.def(a), p), EffectiveCost(gs.def(b), p)
	if costA != costB {
		return 0, false
	}
	return costA, true
}

func (gs *GameState) anyDualPair(p *PlayerState) bool {
	for i := range p.Hand {
		for j := i + 1; j < len(p.Hand); j++ {
			cost, ok := gs.dualPairCost(p, i, j)
			if ok && paymentCapacity(p.Hand, false, p.Hand[i].UID, p.Hand[j].UID) >= cost {
				return true
			}
		}
	}
	return false
}

// refreshLimits recomputes hand and worker limits from passive buildings. The worker cap never drops below the current worker count.
func (gs *GameState) refreshLimits(p *PlayerState) {
	hand, workers := DefaultMaxHand, DefaultMaxWorkers
	for _, b := range p.Buildings {
		def := gs.def(b.Card)
		hand += def.HandBonus
		workers += def.WorkerBonus
	}
	p.MaxHand = hand
	p.MaxWorkers = max(workers, p.Workers)
}
