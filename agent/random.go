package agent

import (
	"natecon/game"

	"golang.org/x/exp/slices"
)

// randomMove plays uniformly among the moves that make progress, not among all legal moves: cancel is
// chosen only when nothing else is legal. Toggle phases only ever grow the selection until it can be
// confirmed, so a random player cannot churn forever.
func (a *Agent) randomMove(gs *game.GameState, player int, moves []game.Move) *game.Move {
	pick := func(ms []game.Move) *game.Move {
		m := ms[a.rng.Intn(len(ms))]
		return &m
	}
	var progress []game.Move
	for _, m := range moves {
		if m.Type != game.CancelActionMove {
			progress = append(progress, m)
		}
	}
	if len(progress) == 0 {
		return &moves[0]
	}

	grow := func(toggle, confirm game.MoveType, selected []int) *game.Move {
		if m, ok := find(moves, confirm, 0); ok {
			return &m
		}
		var adds, drops []game.Move
		for _, m := range ofType(moves, toggle) {
			if slices.Contains(selected, m.Arg) {
				drops = append(drops, m)
			} else {
				adds = append(adds, m)
			}
		}
		if len(adds) > 0 {
			return pick(adds)
		}
		if len(drops) > 0 {
			return pick(drops)
		}
		return pick(moves)
	}

	switch gs.Phase {
	case game.DiscardPhase:
		return grow(game.ToggleDiscardMove, game.ConfirmDiscardMove, gs.DiscardState.Selected)
	case game.CleanupPhase:
		return grow(game.ToggleDiscardMove, game.ConfirmDiscardMove, gs.CleanupState.Players[player].Selected)
	case game.DualConstructionPhase:
		return grow(game.ToggleDualCardMove, game.ConfirmDualConstructionMove, gs.DualState.Selected)
	case game.PaydayPhase:
		pp := gs.PaydayState.Players[player]
		if m, ok := find(moves, game.ConfirmPaydaySellMove, 0); ok {
			return &m
		}
		if len(pp.Selected) == 0 && a.rng.Intn(2) == 0 {
			if adds := ofType(moves, game.TogglePaydaySellMove); len(adds) > 0 {
				return pick(adds)
			}
		}
		m := mustFind(moves, game.ConfirmPaydayMove, 0)
		return &m
	}
	return pick(progress)
}
