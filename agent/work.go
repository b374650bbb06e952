package agent

import (
	"math"

	"natecon/catalog"
	"natecon/game"
)

// extraWorkerCost is charged for every worker a placement takes beyond the first.
const extraWorkerCost = 2.5

// decideWork places a worker on the highest scoring slot. Ties keep the first slot in move order.
func (a *Agent) decideWork(v *view, moves []game.Move) game.Move {
	best, found := game.Move{}, false
	bestScore := math.Inf(-1)
	for _, m := range moves {
		var score float64
		switch m.Type {
		case game.PlaceWorkerMove:
			score = v.workplaceScore(v.gs.Workplace(m.Arg))
		case game.PlaceWorkerOnBuildingMove:
			score = v.buildingScore(m.Arg)
		default:
			continue
		}
		if !found || score > bestScore {
			best, bestScore, found = m, score, true
		}
	}
	if !found {
		return moves[0]
	}
	return best
}

func (v *view) workplaceScore(wp *game.Workplace) float64 {
	score := v.actionValue(wp.Action)
	score -= float64(wp.Workers-1) * extraWorkerCost
	if wp.Action.Effect == catalog.EffectSell && v.betterSellExists(wp) {
		score *= 0.5
	}
	return score
}

func (v *view) buildingScore(uid int) float64 {
	for _, b := range v.p.Buildings {
		if b.Card.UID != uid {
			continue
		}
		def := v.def(b.Card)
		score := v.actionValue(def.Action)
		score -= float64(def.WorkerRequirement()-1) * extraWorkerCost
		if def.ConsumeOnUse {
			score -= float64(def.VP)
		}
		// Own buildings leave public slots open but cannot be taken by anyone else.
		return score + 0.5
	}
	return math.Inf(-1)
}

// betterSellExists reports whether another open sell workplace pays more for the same discard.
func (v *view) betterSellExists(wp *game.Workplace) bool {
	for _, other := range v.gs.Workplaces {
		if other.ID == wp.ID || other.Action.Effect != catalog.EffectSell {
			continue
		}
		if !other.Multiple && len(other.Occupants) > 0 {
			continue
		}
		if other.Workers > v.p.Available || other.Action.Param > len(v.p.Hand) {
			continue
		}
		if other.Action.Amount > wp.Action.Amount && other.Action.Param <= wp.Action.Param {
			return true
		}
	}
	for _, b := range v.p.Buildings {
		def := v.def(b.Card)
		if b.Worked || def.Action.Effect != catalog.EffectSell || def.WorkerRequirement() > v.p.Available {
			continue
		}
		if def.Action.Amount > wp.Action.Amount && def.Action.Param <= wp.Action.Param && len(v.p.Hand) >= def.Action.Param {
			return true
		}
	}
	return false
}

func (a *Agent) decideBuild(v *view, moves []game.Move) game.Move {
	bs := v.gs.BuildState
	best, bestScore := -1, math.Inf(-1)
	for _, m := range ofType(moves, game.SelectBuildCardMove) {
		def := v.def(v.p.Hand[m.Arg])
		score := v.evaluateBuild(def) - v.paymentCost(game.BuildCost(def, v.p, bs.Reduction))
		if score > bestScore {
			best, bestScore = m.Arg, score
		}
	}
	if best < 0 {
		return mustFind(moves, game.CancelActionMove, 0)
	}
	return mustFind(moves, game.SelectBuildCardMove, best)
}
