package agent

import (
	"natecon/game"

	"golang.org/x/exp/slices"
)

func (a *Agent) decideDiscard(v *view, moves []game.Move) game.Move {
	ds := v.gs.DiscardState
	eligible := func(i int) bool {
		c := v.p.Hand[i]
		if slices.Contains(ds.CardUIDs, c.UID) {
			return false
		}
		return !ds.ConsumablesOnly || c.IsConsumable()
	}
	ranked := v.rankHand(v.p.Hand, func(i int) bool { return !eligible(i) })

	var ideal []int
	if ds.Weighted {
		weight := 0
		for _, r := range ranked {
			if weight >= ds.Count {
				break
			}
			ideal = append(ideal, r.index)
			if v.p.Hand[r.index].IsConsumable() {
				weight += 2
			} else {
				weight++
			}
		}
	} else {
		for n := 0; n < ds.Count && n < len(ranked); n++ {
			ideal = append(ideal, ranked[n].index)
		}
	}
	return reconcile(moves, ds.Selected, ideal)
}

func (a *Agent) decideCleanup(v *view, moves []game.Move) game.Move {
	cp := v.gs.CleanupState.Players[v.player]
	ranked := v.rankHand(v.p.Hand, nil)
	ideal := make([]int, 0, cp.Excess)
	for n := 0; n < cp.Excess && n < len(ranked); n++ {
		ideal = append(ideal, ranked[n].index)
	}
	return reconcile(moves, cp.Selected, ideal)
}

// reconcile steps a toggle selection toward the ideal one: extra cards are dropped first, missing
// ones added next, and the selection is confirmed once it matches.
func reconcile(moves []game.Move, selected, ideal []int) game.Move {
	for _, i := range selected {
		if !slices.Contains(ideal, i) {
			if m, ok := find(moves, game.ToggleDiscardMove, i); ok {
				return m
			}
		}
	}
	for _, i := range ideal {
		if !slices.Contains(selected, i) {
			if m, ok := find(moves, game.ToggleDiscardMove, i); ok {
				return m
			}
		}
	}
	if m, ok := find(moves, game.ConfirmDiscardMove, 0); ok {
		return m
	}
	if m, ok := find(moves, game.CancelActionMove, 0); ok {
		return m
	}
	return moves[0]
}
