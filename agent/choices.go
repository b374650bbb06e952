package agent

import (
	"math"

	"natecon/game"

	"golang.org/x/exp/slices"
)

func (a *Agent) decideDesignOffice(v *view, moves []game.Move) game.Move {
	best, bestScore := 0, math.Inf(-1)
	for i, c := range v.gs.DesignOffice.Revealed {
		if score := v.retainValue(c); score > bestScore {
			best, bestScore = i, score
		}
	}
	return mustFind(moves, game.SelectDesignOfficeCardMove, best)
}

func (a *Agent) decideDual(v *view, moves []game.Move) game.Move {
	selected := v.gs.DualState.Selected
	_, i, j := v.bestPair(v.p.Hand)
	if i < 0 {
		return mustFind(moves, game.CancelActionMove, 0)
	}
	target := []int{i, j}
	for _, s := range selected {
		if !slices.Contains(target, s) {
			return mustFind(moves, game.ToggleDualCardMove, s)
		}
	}
	for _, t := range target {
		if !slices.Contains(selected, t) {
			return mustFind(moves, game.ToggleDualCardMove, t)
		}
	}
	return mustFind(moves, game.ConfirmDualConstructionMove, 0)
}

// decideVillage trades consumables for building cards when the hand has room for the net gain.
func (a *Agent) decideVillage(v *view, moves []game.Move) game.Move {
	if v.p.Consumables() >= 2 && len(v.p.Hand)+1 <= v.p.MaxHand && v.remaining > 0 {
		if m, ok := find(moves, game.SelectVillageOptionMove, game.VillageTradeForCards); ok {
			return m
		}
	}
	return mustFind(moves, game.SelectVillageOptionMove, game.VillageTakeConsumables)
}
