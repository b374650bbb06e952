package game

import (
	"fmt"

	"natecon/catalog"

	"golang.org/x/exp/slices"
)

func (gs *GameState) checkSelectBuildCard(player, index int) error {
	if err := gs.checkPhase(player, BuildPhase); err != nil {
		return err
	}
	bs := gs.BuildState
	p := gs.Players[player]
	if index < 0 || index >= len(p.Hand) {
		return invalid("no hand card at index %d", index)
	}
	c := p.Hand[index]
	if c.IsConsumable() {
		return invalid("consumables cannot be built")
	}
	if bs.Rule == catalog.BuildFarmOnly && !gs.def(c).HasTag(catalog.TagFarm) {
		return invalid("only farms can be built here")
	}
	if !gs.buildable(p, index, bs.Reduction, bs.Rule) {
		return invalid("player %d cannot pay for %s", player, gs.def(c).Name)
	}
	return nil
}

// SelectBuildCard picks the hand card to construct. A free build completes at once, anything else
// opens a discard to collect the payment.
func (gs *GameState) SelectBuildCard(player, index int) error {
	if err := gs.checkSelectBuildCard(player, index); err != nil {
		return err
	}
	bs := gs.BuildState
	p := gs.Players[player]
	c := p.Hand[index]
	def := gs.def(c)
	cost := BuildCost(def, p, bs.Reduction)
	gs.BuildState = nil

	if cost == 0 {
		gs.construct(p, c.UID)
		gs.finishPlacement()
		return nil
	}
	gs.enterDiscard(&DiscardState{
		Player:   player,
		Count:    cost,
		Reason:   fmt.Sprintf("pay for %s", def.Name),
		Callback: CallbackBuild,
		CardUIDs: []int{c.UID},
		Weighted: bs.Rule == catalog.BuildDoubleConsumables,
	})
	return nil
}

// construct moves a hand card into the player's buildings.
func (gs *GameState) construct(p *PlayerState, uid int) {
	taken := takeFromHand(p, []int{uid})
	if len(taken) != 1 {
		panic(fmt.Sprintf("game: card %d to construct is not in hand of player %d", uid, p.ID))
	}
	p.Buildings = append(p.Buildings, BuildingSlot{Card: taken[0]})
	gs.refreshLimits(p)
	gs.logf(p.ID, "builds %s", gs.def(taken[0]).Name)
}

func (gs *GameState) checkToggleDualCard(player, index int) error {
	if err := gs.checkPhase(player, DualConstructionPhase); err != nil {
		return err
	}
	ds := gs.DualState
	p := gs.Players[player]
	if index < 0 || index >= len(p.Hand) {
		return invalid("no hand card at index %d", index)
	}
	if p.Hand[index].IsConsumable() {
		return invalid("consumables cannot be built")
	}
	if slices.Contains(ds.Selected, index) {
		return nil
	}
	switch len(ds.Selected) {
	case 2:
		return invalid("two cards are already selected")
	case 1:
		if _, ok := gs.dualPairCost(p, ds.Selected[0], index); !ok {
			return invalid("both buildings must cost the same")
		}
	}
	return nil
}

// ToggleDualCard adds or removes a hand card from the pair to construct.
func (gs *GameState) ToggleDualCard(player, index int) error {
	if err := gs.checkToggleDualCard(player, index); err != nil {
		return err
	}
	ds := gs.DualState
	if pos := slices.Index(ds.Selected, index); pos >= 0 {
		ds.Selected = slices.Delete(ds.Selected, pos, pos+1)
		return nil
	}
	ds.Selected = append(ds.Selected, index)
	return nil
}

func (gs *GameState) checkConfirmDualConstruction(player int) (int, error) {
	if err := gs.checkPhase(player, DualConstructionPhase); err != nil {
		return 0, err
	}
	ds := gs.DualState
	p := gs.Players[player]
	if len(ds.Selected) != 2 {
		return 0, invalid("select exactly two buildings")
	}
	cost, ok := gs.dualPairCost(p, ds.Selected[0], ds.Selected[1])
	if !ok {
		return 0, invalid("both buildings must cost the same")
	}
	a, b := p.Hand[ds.Selected[0]].UID, p.Hand[ds.Selected[1]].UID
	if paymentCapacity(p.Hand, false, a, b) < cost {
		return 0, invalid("player %d cannot pay %d cards", player, cost)
	}
	return cost, nil
}

// ConfirmDualConstruction builds the selected pair, paying their shared cost once.
func (gs *GameState) ConfirmDualConstruction(player int) error {
	cost, err := gs.checkConfirmDualConstruction(player)
	if err != nil {
		return err
	}
	p := gs.Players[player]
	uids := uidsAt(p.Hand, gs.DualState.Selected)
	gs.DualState = nil

	if cost == 0 {
		for _, uid := range uids {
			gs.construct(p, uid)
		}
		gs.finishPlacement()
		return nil
	}
	gs.enterDiscard(&DiscardState{
		Player:   player,
		Count:    cost,
		Reason:   "pay for two buildings",
		Callback: CallbackDualBuild,
		CardUIDs: uids,
	})
	return nil
}

func (gs *GameState) checkSelectDesignOfficeCard(player, index int) error {
	if err := gs.checkPhase(player, DesignOfficePhase); err != nil {
		return err
	}
	if index < 0 || index >= len(gs.DesignOffice.Revealed) {
		return invalid("no revealed card at index %d", index)
	}
	return nil
}

// SelectDesignOfficeCard keeps one revealed card and discards the others.
func (gs *GameState) SelectDesignOfficeCard(player, index int) error {
	if err := gs.checkSelectDesignOfficeCard(player, index); err != nil {
		return err
	}
	p := gs.Players[player]
	revealed := gs.DesignOffice.Revealed
	gs.DesignOffice = nil
	for i, c := range revealed {
		if i == index {
			p.Hand = append(p.Hand, c)
			continue
		}
		gs.discardCards(c)
	}
	gs.logf(player, "keeps %s", gs.def(revealed[index]).Name)
	gs.finishPlacement()
	return nil
}

func (gs *GameState) checkSelectVillageOption(player, option int) error {
	if err := gs.checkPhase(player, VillageChoicePhase); err != nil {
		return err
	}
	switch option {
	case VillageTakeConsumables:
		return nil
	case VillageTradeForCards:
		if gs.Players[player].Consumables() < 2 {
			return invalid("player %d needs 2 consumables", player)
		}
		return nil
	}
	return invalid("unknown village option %d", option)
}

// SelectVillageOption takes 2 consumables, or trades 2 consumables for 3 building cards.
func (gs *GameState) SelectVillageOption(player, option int) error {
	if err := gs.checkSelectVillageOption(player, option); err != nil {
		return err
	}
	p := gs.Players[player]
	gs.VillageState = nil
	if option == VillageTakeConsumables {
		gs.gainConsumables(p, 2)
		gs.logf(player, "gains 2 consumables")
		gs.finishPlacement()
		return nil
	}
	gs.enterDiscard(&DiscardState{
		Player:          player,
		Count:           2,
		Reason:          "trade consumables for building cards",
		Callback:        CallbackVillage,
		Amount:          3,
		ConsumablesOnly: true,
	})
	return nil
}
