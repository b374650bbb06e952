package game

import "fmt"

// LegalMoves lists every move the player may make right now, toggles included. The state is not modified.
func (gs *GameState) LegalMoves(player int) []Move {
	if gs.Phase == GameEndPhase || gs.Player(player) == nil {
		return nil
	}
	p := gs.Players[player]
	var moves []Move
	add := func(t MoveType, arg int, err error) {
		if err == nil {
			moves = append(moves, Move{Type: t, Player: player, Arg: arg})
		}
	}

	switch gs.Phase {
	case WorkPhase:
		for _, wp := range gs.Workplaces {
			_, err := gs.checkPlaceWorker(player, wp.ID)
			add(PlaceWorkerMove, wp.ID, err)
		}
		for _, b := range p.Buildings {
			_, err := gs.checkPlaceWorkerOnBuilding(player, b.Card.UID)
			add(PlaceWorkerOnBuildingMove, b.Card.UID, err)
		}
	case BuildPhase:
		for i := range p.Hand {
			add(SelectBuildCardMove, i, gs.checkSelectBuildCard(player, i))
		}
		add(CancelActionMove, 0, gs.checkCancelAction(player))
	case DiscardPhase, CleanupPhase:
		for i := range p.Hand {
			add(ToggleDiscardMove, i, gs.checkToggleDiscard(player, i))
		}
		add(ConfirmDiscardMove, 0, gs.checkConfirmDiscard(player))
		if gs.Phase == DiscardPhase {
			add(CancelActionMove, 0, gs.checkCancelAction(player))
		}
	case DesignOfficePhase:
		for i := range gs.DesignOffice.Revealed {
			add(SelectDesignOfficeCardMove, i, gs.checkSelectDesignOfficeCard(player, i))
		}
		add(CancelActionMove, 0, gs.checkCancelAction(player))
	case DualConstructionPhase:
		for i := range p.Hand {
			add(ToggleDualCardMove, i, gs.checkToggleDualCard(player, i))
		}
		_, err := gs.checkConfirmDualConstruction(player)
		add(ConfirmDualConstructionMove, 0, err)
		add(CancelActionMove, 0, gs.checkCancelAction(player))
	case VillageChoicePhase:
		for _, option := range []int{VillageTakeConsumables, VillageTradeForCards} {
			add(SelectVillageOptionMove, option, gs.checkSelectVillageOption(player, option))
		}
		add(CancelActionMove, 0, gs.checkCancelAction(player))
	case PaydayPhase:
		for i := range p.Buildings {
			add(TogglePaydaySellMove, i, gs.checkTogglePaydaySell(player, i))
		}
		add(ConfirmPaydaySellMove, 0, gs.checkConfirmPaydaySell(player))
		add(ConfirmPaydayMove, 0, gs.checkConfirmPayday(player))
	default:
		panic(fmt.Sprintf("game: unknown phase %d", int(gs.Phase)))
	}
	return moves
}

// Actors returns the players who may move now: the turn owner in work and its sub-phases, every
// unconfirmed player in payday and cleanup, nobody once the game is over.
func (gs *GameState) Actors() []int {
	var actors []int
	switch gs.Phase {
	case GameEndPhase:
	case PaydayPhase:
		for i, pp := range gs.PaydayState.Players {
			if !pp.Confirmed {
				actors = append(actors, i)
			}
		}
	case CleanupPhase:
		for i, cp := range gs.CleanupState.Players {
			if !cp.Confirmed {
				actors = append(actors, i)
			}
		}
	default:
		actors = append(actors, gs.CurrentPlayer)
	}
	return actors
}
