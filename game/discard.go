package game

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// selectedWeight is the payment value of the current selection.
func (gs *GameState) selectedWeight(p *PlayerState, ds *DiscardState) int {
	total := 0
	for _, i := range ds.Selected {
		total += cardWeight(p.Hand[i], ds.Weighted)
	}
	return total
}

func (gs *GameState) checkToggleDiscard(player, index int) error {
	if err := gs.checkPhase(player, DiscardPhase, CleanupPhase); err != nil {
		return err
	}
	if gs.Phase == CleanupPhase {
		return gs.checkToggleCleanup(player, index)
	}
	ds := gs.DiscardState
	p := gs.Players[player]
	if index < 0 || index >= len(p.Hand) {
		return invalid("no hand card at index %d", index)
	}
	if slices.Contains(ds.Selected, index) {
		return nil
	}
	c := p.Hand[index]
	if slices.Contains(ds.CardUIDs, c.UID) {
		return invalid("the card being built cannot pay for itself")
	}
	if ds.ConsumablesOnly && !c.IsConsumable() {
		return invalid("only consumables can be discarded")
	}
	if ds.Weighted {
		if gs.selectedWeight(p, ds) >= ds.Count {
			return invalid("the selection already pays %d", ds.Count)
		}
	} else if len(ds.Selected) >= ds.Count {
		return invalid("already %d cards selected", ds.Count)
	}
	return nil
}

// ToggleDiscard selects or deselects a hand card for the open discard, or for the caller's cleanup slot.
func (gs *GameState) ToggleDiscard(player, index int) error {
	if err := gs.checkToggleDiscard(player, index); err != nil {
		return err
	}
	if gs.Phase == CleanupPhase {
		cp := &gs.CleanupState.Players[player]
		cp.Selected = toggleIndex(cp.Selected, index)
		return nil
	}
	gs.DiscardState.Selected = toggleIndex(gs.DiscardState.Selected, index)
	return nil
}

func toggleIndex(selected []int, index int) []int {
	if pos := slices.Index(selected, index); pos >= 0 {
		return slices.Delete(selected, pos, pos+1)
	}
	return append(selected, index)
}

func (gs *GameState) checkConfirmDiscard(player int) error {
	if err := gs.checkPhase(player, DiscardPhase, CleanupPhase); err != nil {
		return err
	}
	if gs.Phase == CleanupPhase {
		return gs.checkConfirmCleanup(player)
	}
	ds := gs.DiscardState
	p := gs.Players[player]
	if ds.Weighted {
		if w := gs.selectedWeight(p, ds); w < ds.Count {
			return invalid("selection pays %d of %d", w, ds.Count)
		}
		return nil
	}
	if len(ds.Selected) != ds.Count {
		return invalid("select exactly %d cards, %d selected", ds.Count, len(ds.Selected))
	}
	return nil
}

// ConfirmDiscard commits the selection and runs the callback of the effect that asked for it.
func (gs *GameState) ConfirmDiscard(player int) error {
	if err := gs.checkConfirmDiscard(player); err != nil {
		return err
	}
	if gs.Phase == CleanupPhase {
		gs.confirmCleanup(player)
		return nil
	}
	ds := gs.DiscardState
	p := gs.Players[player]
	gs.discardCards(takeFromHand(p, uidsAt(p.Hand, ds.Selected))...)
	gs.DiscardState = nil

	switch ds.Callback {
	case CallbackSell:
		pay := min(ds.Amount, gs.Household)
		gs.Household -= pay
		p.Money += pay
		gs.logf(player, "sells goods for %d", pay)
	case CallbackDraw, CallbackVillage:
		n := gs.drawInto(p, ds.Amount)
		gs.logf(player, "discards %d and draws %d", len(ds.Selected), n)
	case CallbackBuild, CallbackDualBuild:
		for _, uid := range ds.CardUIDs {
			gs.construct(p, uid)
		}
	case CallbackTokens:
		p.Tokens += ds.Amount
		gs.logf(player, "gains %d VP tokens", ds.Amount)
	default:
		panic(fmt.Sprintf("game: unknown discard callback %s", ds.Callback))
	}
	gs.finishPlacement()
	return nil
}

func (gs *GameState) checkCancelAction(player int) error {
	if err := gs.checkPhase(player, BuildPhase, DiscardPhase, DesignOfficePhase, DualConstructionPhase, VillageChoicePhase); err != nil {
		return err
	}
	if gs.Pending == nil {
		panic(fmt.Sprintf("game: %s phase without a pending placement", gs.Phase))
	}
	return nil
}

// CancelAction abandons the open sub-phase and gives the worker back to the slot it came from.
func (gs *GameState) CancelAction(player int) error {
	if err := gs.checkCancelAction(player); err != nil {
		return err
	}
	pl := gs.Pending
	p := gs.Players[player]
	p.Available += pl.Workers
	if pl.BuildingUID != 0 {
		if i := p.buildingIndex(pl.BuildingUID); i >= 0 {
			p.Buildings[i].Worked = false
		}
	} else if wp := gs.Workplace(pl.WorkplaceID); wp != nil {
		for i := len(wp.Occupants) - 1; i >= 0; i-- {
			if wp.Occupants[i] == player {
				wp.Occupants = slices.Delete(wp.Occupants, i, i+1)
				break
			}
		}
	}
	if gs.DesignOffice != nil {
		gs.Deck = append(slices.Clone(gs.DesignOffice.Revealed), gs.Deck...)
	}
	gs.Pending = nil
	gs.DiscardState = nil
	gs.BuildState = nil
	gs.DesignOffice = nil
	gs.DualState = nil
	gs.VillageState = nil
	gs.Phase = WorkPhase
	gs.logf(player, "cancels the action")
	return nil
}
