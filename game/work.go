package game

import (
	"natecon/catalog"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

func (gs *GameState) checkPlaceWorker(player, workplaceID int) (*Workplace, error) {
	if err := gs.checkPhase(player, WorkPhase); err != nil {
		return nil, err
	}
	p := gs.Players[player]
	if p.Available == 0 {
		return nil, invalid("player %d has no available workers", player)
	}
	wp := gs.Workplace(workplaceID)
	if wp == nil {
		return nil, invalid("no workplace %d", workplaceID)
	}
	if !wp.Multiple && len(wp.Occupants) > 0 {
		return nil, invalid("%s is occupied", wp.Name)
	}
	if wp.Workers > p.Available {
		return nil, invalid("%s needs %d workers, player %d has %d", wp.Name, wp.Workers, player, p.Available)
	}
	if err := gs.effectReady(p, wp.Action); err != nil {
		return nil, err
	}
	return wp, nil
}

// PlaceWorker spends the workplace's worker requirement on a public workplace and resolves its effect.
func (gs *GameState) PlaceWorker(player, workplaceID int) error {
	wp, err := gs.checkPlaceWorker(player, workplaceID)
	if err != nil {
		return err
	}
	p := gs.Players[player]
	p.Available -= wp.Workers
	wp.Occupants = append(wp.Occupants, player)
	gs.Pending = &Placement{Player: player, WorkplaceID: wp.ID, Workers: wp.Workers}
	gs.logf(player, "works at %s", wp.Name)
	gs.resolve(p, wp.Action)
	return nil
}

func (gs *GameState) checkPlaceWorkerOnBuilding(player, uid int) (int, error) {
	if err := gs.checkPhase(player, WorkPhase); err != nil {
		return -1, err
	}
	p := gs.Players[player]
	if p.Available == 0 {
		return -1, invalid("player %d has no available workers", player)
	}
	i := p.buildingIndex(uid)
	if i < 0 {
		return -1, invalid("player %d owns no building %d", player, uid)
	}
	slot := p.Buildings[i]
	if slot.Worked {
		return -1, invalid("building %d was already used this round", uid)
	}
	def := gs.def(slot.Card)
	if !def.Usable() {
		return -1, invalid("%s has no action", def.Name)
	}
	if def.WorkerRequirement() > p.Available {
		return -1, invalid("%s needs %d workers, player %d has %d", def.Name, def.WorkerRequirement(), player, p.Available)
	}
	if err := gs.effectReady(p, def.Action); err != nil {
		return -1, err
	}
	return i, nil
}

// PlaceWorkerOnBuilding works the player's own building identified by its card instance id.
func (gs *GameState) PlaceWorkerOnBuilding(player, uid int) error {
	i, err := gs.checkPlaceWorkerOnBuilding(player, uid)
	if err != nil {
		return err
	}
	p := gs.Players[player]
	def := gs.def(p.Buildings[i].Card)
	p.Available -= def.WorkerRequirement()
	p.Buildings[i].Worked = true
	gs.Pending = &Placement{Player: player, WorkplaceID: -1, BuildingUID: uid, Workers: def.WorkerRequirement()}
	gs.logf(player, "works at own %s", def.Name)
	gs.resolve(p, def.Action)
	return nil
}

func (gs *GameState) effectReady(p *PlayerState, a catalog.Action) error {
	h, ok := effectHandlers[a.Effect]
	if !ok {
		panic("game: no handler for effect " + a.Effect.String())
	}
	if h.ready == nil {
		return nil
	}
	return h.ready(gs, p, a)
}

// resolve runs the effect of the pending placement. Effects that need more input leave a sub-phase open.
func (gs *GameState) resolve(p *PlayerState, a catalog.Action) {
	if effectHandlers[a.Effect].apply(gs, p, a) {
		gs.finishPlacement()
	}
}

// finishPlacement closes the pending placement once its effect fully resolved and passes the turn.
func (gs *GameState) finishPlacement() {
	pl := gs.Pending
	gs.Pending = nil
	if pl != nil {
		gs.consumeUsedCard(pl)
	}
	gs.advanceTurn()
}

// consumeUsedCard discards a consume-on-use card after its effect, whether it sits in front of its owner or in the public area.
func (gs *GameState) consumeUsedCard(pl *Placement) {
	if pl.BuildingUID != 0 {
		p := gs.Players[pl.Player]
		i := p.buildingIndex(pl.BuildingUID)
		if i < 0 || !gs.def(p.Buildings[i].Card).ConsumeOnUse {
			return
		}
		card := p.Buildings[i].Card
		p.Buildings = slices.Delete(p.Buildings, i, i+1)
		gs.discardCards(card)
		gs.refreshLimits(p)
		gs.logf(pl.Player, "%s is used up", gs.def(card).Name)
		return
	}
	i := slices.IndexFunc(gs.Workplaces, func(wp *Workplace) bool { return wp.ID == pl.WorkplaceID })
	if i < 0 {
		return
	}
	wp := gs.Workplaces[i]
	if wp.SourceCard == nil || !gs.def(*wp.SourceCard).ConsumeOnUse {
		return
	}
	gs.discardCards(*wp.SourceCard)
	gs.Workplaces = slices.Delete(gs.Workplaces, i, i+1)
	gs.logf(-1, "%s is used up", wp.Name)
}

// advanceTurn passes the turn to the next player with an available worker, or starts payday when nobody has one.
func (gs *GameState) advanceTurn() {
	gs.Phase = WorkPhase
	if gs.TotalAvailable() == 0 {
		gs.startPayday()
		return
	}
	for i := 1; i <= gs.NumPlayers; i++ {
		next := (gs.CurrentPlayer + i) % gs.NumPlayers
		if gs.Players[next].Available > 0 {
			gs.CurrentPlayer = next
			return
		}
	}
}

// enterSubPhase opens a single-actor sub-phase for the pending placement.
func (gs *GameState) enterSubPhase(phase Phase) {
	log.Debug().Str("game", gs.ID).Int("round", gs.Round).Int("player", gs.CurrentPlayer).Stringer("phase", phase).Msg("entering sub-phase")
	gs.Phase = phase
}
