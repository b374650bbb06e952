package game

import (
	"natecon/catalog"
)

// effectHandler implements one effect kind. ready validates the activation precondition without
// touching the state; apply mutates and reports whether the effect resolved completely (false when
// it opened a sub-phase that will finish the placement later).
type effectHandler struct {
	ready func(gs *GameState, p *PlayerState, a catalog.Action) error
	apply func(gs *GameState, p *PlayerState, a catalog.Action) bool
}

var effectHandlers = map[catalog.Effect]effectHandler{
	catalog.EffectStartPlayer: {
		apply: func(gs *GameState, p *PlayerState, a catalog.Action) bool {
			gs.StartPlayer = p.ID
			gs.drawInto(p, a.Amount)
			gs.logf(p.ID, "becomes starting player")
			return true
		},
	},
	catalog.EffectDraw: {
		apply: func(gs *GameState, p *PlayerState, a catalog.Action) bool {
			n := gs.drawInto(p, a.Amount)
			gs.logf(p.ID, "draws %d cards", n)
			return true
		},
	},
	catalog.EffectDrawConsumables: {
		apply: func(gs *GameState, p *PlayerState, a catalog.Action) bool {
			gs.gainConsumables(p, a.Amount)
			gs.logf(p.ID, "gains %d consumables", a.Amount)
			return true
		},
	},
	catalog.EffectDrawConsumablesUpTo: {
		ready: func(gs *GameState, p *PlayerState, a catalog.Action) error {
			if len(p.Hand) >= a.Amount {
				return invalid("hand already holds %d cards", a.Amount)
			}
			return nil
		},
		apply: func(gs *GameState, p *PlayerState, a catalog.Action) bool {
			n := a.Amount - len(p.Hand)
			gs.gainConsumables(p, n)
			gs.logf(p.ID, "gains %d consumables", n)
			return true
		},
	},
	catalog.EffectHire: {
		ready: func(gs *GameState, p *PlayerState, a catalog.Action) error {
			limit := p.MaxWorkers
			if a.Param > 0 {
				limit = min(limit, a.Param)
			}
			if p.Workers >= limit {
				return invalid("player %d cannot hire beyond %d workers", p.ID, limit)
			}
			return nil
		},
		apply: func(gs *GameState, p *PlayerState, a catalog.Action) bool {
			p.Workers++
			gs.logf(p.ID, "hires a worker")
			return true
		},
	},
	catalog.EffectHireRobot: {
		ready: func(gs *GameState, p *PlayerState, a catalog.Action) error {
			if p.Workers >= p.MaxWorkers {
				return invalid("player %d is at the worker limit", p.ID)
			}
			return nil
		},
		apply: func(gs *GameState, p *PlayerState, a catalog.Action) bool {
			p.Workers++
			p.Robots++
			gs.logf(p.ID, "builds a robot worker")
			return true
		},
	},
	catalog.EffectBuild: {
		ready: func(gs *GameState, p *PlayerState, a catalog.Action) error {
			if !gs.anyBuildable(p, a.Amount, a.Rule) {
				return invalid("player %d cannot afford any building", p.ID)
			}
			return nil
		},
		apply: func(gs *GameState, p *PlayerState, a catalog.Action) bool {
			gs.BuildState = &BuildState{Player: p.ID, Reduction: a.Amount, Rule: a.Rule}
			gs.enterSubPhase(BuildPhase)
			return false
		},
	},
	catalog.EffectDualBuild: {
		ready: func(gs *GameState, p *PlayerState, a catalog.Action) error {
			if !gs.anyDualPair(p) {
				return invalid("player %d has no affordable pair of equal cost", p.ID)
			}
			return nil
		},
		apply: func(gs *GameState, p *PlayerState, a catalog.Action) bool {
			gs.DualState = &DualState{Player: p.ID}
			gs.enterSubPhase(DualConstructionPhase)
			return false
		},
	},
	catalog.EffectSell: {
		ready: func(gs *GameState, p *PlayerState, a catalog.Action) error {
			if gs.Household == 0 {
				return invalid("the household has no money")
			}
			return handAtLeast(p, a.Param)
		},
		apply: func(gs *GameState, p *PlayerState, a catalog.Action) bool {
			gs.enterDiscard(&DiscardState{Player: p.ID, Count: a.Param, Callback: CallbackSell, Amount: a.Amount,
				Reason: "sell goods to the household"})
			return false
		},
	},
	catalog.EffectExchange: {
		ready: func(gs *GameState, p *PlayerState, a catalog.Action) error {
			return handAtLeast(p, a.Param)
		},
		apply: func(gs *GameState, p *PlayerState, a catalog.Action) bool {
			gs.enterDiscard(&DiscardState{Player: p.ID, Count: a.Param, Callback: CallbackDraw, Amount: a.Amount,
				Reason: "discard to draw building cards"})
			return false
		},
	},
	catalog.EffectChemical: {
		apply: func(gs *GameState, p *PlayerState, a catalog.Action) bool {
			n := a.Amount
			if len(p.Hand) == 0 {
				n *= 2
			}
			drawn := gs.drawInto(p, n)
			gs.logf(p.ID, "draws %d cards", drawn)
			return true
		},
	},
	catalog.EffectDesignOffice: {
		ready: func(gs *GameState, p *PlayerState, a catalog.Action) error {
			if gs.drawable() == 0 {
				return invalid("no building cards left to reveal")
			}
			return nil
		},
		apply: func(gs *GameState, p *PlayerState, a catalog.Action) bool {
			gs.DesignOffice = &DesignOfficeState{Player: p.ID, Revealed: gs.drawCards(a.Amount)}
			gs.enterSubPhase(DesignOfficePhase)
			return false
		},
	},
	catalog.EffectVillage: {
		apply: func(gs *GameState, p *PlayerState, a catalog.Action) bool {
			gs.VillageState = &VillageState{Player: p.ID}
			gs.enterSubPhase(VillageChoicePhase)
			return false
		},
	},
	catalog.EffectTheater: {
		ready: func(gs *GameState, p *PlayerState, a catalog.Action) error {
			return handAtLeast(p, a.Param)
		},
		apply: func(gs *GameState, p *PlayerState, a catalog.Action) bool {
			gs.enterDiscard(&DiscardState{Player: p.ID, Count: a.Param, Callback: CallbackTokens, Amount: a.Amount,
				Reason: "discard for VP tokens"})
			return false
		},
	},
	catalog.EffectTokens: {
		apply: func(gs *GameState, p *PlayerState, a catalog.Action) bool {
			p.Tokens += a.Amount
			gs.logf(p.ID, "gains %d VP tokens", a.Amount)
			return true
		},
	},
	catalog.EffectLastAction: {
		apply: func(gs *GameState, p *PlayerState, a catalog.Action) bool {
			n := a.Amount
			// Counts every player's workers, not just the actor's.
			if gs.TotalAvailable() == 0 {
				n += a.Param
			}
			drawn := gs.drawInto(p, n)
			gs.logf(p.ID, "draws %d cards", drawn)
			return true
		},
	},
}

func handAtLeast(p *PlayerState, n int) error {
	if len(p.Hand) < n {
		return invalid("player %d needs %d cards in hand, has %d", p.ID, n, len(p.Hand))
	}
	return nil
}

func (gs *GameState) enterDiscard(ds *DiscardState) {
	gs.DiscardState = ds
	gs.enterSubPhase(DiscardPhase)
}
