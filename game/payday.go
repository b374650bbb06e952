package game

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Sellable reports whether the building at index i may be sold at payday.
func (gs *GameState) Sellable(p *PlayerState, i int) bool {
	return !gs.def(p.Buildings[i].Card).Unsellable
}

func (gs *GameState) hasSellable(p *PlayerState) bool {
	for i := range p.Buildings {
		if gs.Sellable(p, i) {
			return true
		}
	}
	return false
}

// SellValue is the cash a building fetches at payday.
func (gs *GameState) SellValue(p *PlayerState, i int) int {
	return gs.def(p.Buildings[i].Card).VP
}

// startPayday computes every wage and settles the players who need no decision.
func (gs *GameState) startPayday() {
	gs.Phase = PaydayPhase
	ps := &PaydayState{Players: make([]PaydayPlayer, len(gs.Players))}
	for i, p := range gs.Players {
		pp := PaydayPlayer{Wage: WageDue(p, gs.Round)}
		switch {
		case p.Money >= pp.Wage:
			gs.settleWage(p, pp.Wage)
			pp.Confirmed = true
		case !gs.hasSellable(p):
			gs.settleWage(p, pp.Wage)
			pp.Confirmed = true
		default:
			pp.NeedsSelling = true
		}
		ps.Players[i] = pp
	}
	gs.PaydayState = ps
	log.Debug().Str("game", gs.ID).Int("round", gs.Round).Msg("payday")
	gs.maybeFinishPayday()
}

// settleWage pays what the player can into the household. The rest becomes debt.
func (gs *GameState) settleWage(p *PlayerState, wage int) {
	paid := min(p.Money, wage)
	p.Money -= paid
	gs.Household += paid
	if short := wage - paid; short > 0 {
		p.Debts += short
		gs.logf(p.ID, "pays %d in wages and falls %d into debt", paid, short)
		return
	}
	gs.logf(p.ID, "pays %d in wages", paid)
}

func (gs *GameState) paydaySlot(player int) (*PaydayPlayer, error) {
	if err := gs.checkPhase(player, PaydayPhase); err != nil {
		return nil, err
	}
	pp := &gs.PaydayState.Players[player]
	if pp.Confirmed || !pp.NeedsSelling {
		return nil, invalid("player %d has already settled wages", player)
	}
	return pp, nil
}

func (gs *GameState) checkTogglePaydaySell(player, index int) error {
	if _, err := gs.paydaySlot(player); err != nil {
		return err
	}
	p := gs.Players[player]
	if index < 0 || index >= len(p.Buildings) {
		return invalid("no building at index %d", index)
	}
	if !gs.Sellable(p, index) {
		return invalid("%s cannot be sold", gs.def(p.Buildings[index].Card).Name)
	}
	return nil
}

// TogglePaydaySell selects or deselects one of the caller's buildings for sale.
func (gs *GameState) TogglePaydaySell(player, index int) error {
	if err := gs.checkTogglePaydaySell(player, index); err != nil {
		return err
	}
	pp := &gs.PaydayState.Players[player]
	pp.Selected = toggleIndex(pp.Selected, index)
	return nil
}

// saleValue returns the total and the smallest value of a sale selection.
func (gs *GameState) saleValue(p *PlayerState, selected []int) (total, lowest int) {
	for n, i := range selected {
		v := gs.SellValue(p, i)
		total += v
		if n == 0 || v < lowest {
			lowest = v
		}
	}
	return total, lowest
}

// Oversells reports whether a sale selection is larger than needed: the wage would still be covered
// without its least valuable building.
func (gs *GameState) Oversells(p *PlayerState, selected []int, wage int) bool {
	if len(selected) == 0 {
		return false
	}
	total, lowest := gs.saleValue(p, selected)
	return p.Money+total-lowest >= wage
}

func (gs *GameState) checkConfirmPaydaySell(player int) error {
	pp, err := gs.paydaySlot(player)
	if err != nil {
		return err
	}
	if len(pp.Selected) == 0 {
		return invalid("no building selected for sale")
	}
	if gs.Oversells(gs.Players[player], pp.Selected, pp.Wage) {
		return invalid("the wage is covered without selling every selected building")
	}
	return nil
}

// ConfirmPaydaySell sells the selected buildings and pays the wage. A remaining shortfall becomes debt.
func (gs *GameState) ConfirmPaydaySell(player int) error {
	if err := gs.checkConfirmPaydaySell(player); err != nil {
		return err
	}
	pp := &gs.PaydayState.Players[player]
	p := gs.Players[player]

	indices := slices.Clone(pp.Selected)
	slices.Sort(indices)
	for n := len(indices) - 1; n >= 0; n-- {
		gs.sellBuilding(p, indices[n])
	}
	gs.refreshLimits(p)
	gs.settleWage(p, pp.Wage)
	pp.Selected = nil
	pp.Confirmed = true
	gs.maybeFinishPayday()
	return nil
}

// sellBuilding turns a building into cash. Buildings with an action become public workplaces.
func (gs *GameState) sellBuilding(p *PlayerState, i int) {
	card := p.Buildings[i].Card
	def := gs.def(card)
	p.Buildings = slices.Delete(p.Buildings, i, i+1)
	p.Money += def.VP
	gs.logf(p.ID, "sells %s for %d", def.Name, def.VP)
	if !def.Usable() {
		gs.discardCards(card)
		return
	}
	gs.Workplaces = append(gs.Workplaces, &Workplace{
		ID:         gs.NextWorkplace,
		DefID:      def.ID,
		Name:       def.Name,
		Text:       def.Text,
		Action:     def.Action,
		Workers:    def.WorkerRequirement(),
		AddedRound: gs.Round,
		SourceCard: &card,
	})
	gs.NextWorkplace++
}

func (gs *GameState) checkConfirmPayday(player int) error {
	_, err := gs.paydaySlot(player)
	return err
}

// ConfirmPayday settles the wage without selling anything.
func (gs *GameState) ConfirmPayday(player int) error {
	if err := gs.checkConfirmPayday(player); err != nil {
		return err
	}
	pp := &gs.PaydayState.Players[player]
	gs.settleWage(gs.Players[player], pp.Wage)
	pp.Selected = nil
	pp.Confirmed = true
	gs.maybeFinishPayday()
	return nil
}

func (gs *GameState) maybeFinishPayday() {
	for _, pp := range gs.PaydayState.Players {
		if !pp.Confirmed {
			return
		}
	}
	gs.PaydayState = nil
	gs.startCleanup()
}

// PaydayWage returns the wage the player owes this payday.
func (gs *GameState) PaydayWage(player int) int {
	if gs.PaydayState == nil {
		panic(fmt.Sprintf("game: no payday in %s phase", gs.Phase))
	}
	return gs.PaydayState.Players[player].Wage
}
