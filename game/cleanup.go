package game

import (
	"natecon/catalog"

	"github.com/rs/zerolog/log"
)

func (gs *GameState) startCleanup() {
	gs.Phase = CleanupPhase
	cs := &CleanupState{Players: make([]CleanupPlayer, len(gs.Players))}
	for i, p := range gs.Players {
		excess := max(0, len(p.Hand)-p.MaxHand)
		cs.Players[i] = CleanupPlayer{Excess: excess, Confirmed: excess == 0}
	}
	gs.CleanupState = cs
	gs.maybeFinishCleanup()
}

func (gs *GameState) checkToggleCleanup(player, index int) error {
	cp := gs.CleanupState.Players[player]
	if cp.Confirmed {
		return invalid("player %d has already discarded", player)
	}
	p := gs.Players[player]
	if index < 0 || index >= len(p.Hand) {
		return invalid("no hand card at index %d", index)
	}
	for _, i := range cp.Selected {
		if i == index {
			return nil
		}
	}
	if len(cp.Selected) >= cp.Excess {
		return invalid("already %d cards selected", cp.Excess)
	}
	return nil
}

func (gs *GameState) checkConfirmCleanup(player int) error {
	cp := gs.CleanupState.Players[player]
	if cp.Confirmed {
		return invalid("player %d has already discarded", player)
	}
	if len(cp.Selected) != cp.Excess {
		return invalid("select exactly %d cards, %d selected", cp.Excess, len(cp.Selected))
	}
	return nil
}

func (gs *GameState) confirmCleanup(player int) {
	cp := &gs.CleanupState.Players[player]
	p := gs.Players[player]
	gs.discardCards(takeFromHand(p, uidsAt(p.Hand, cp.Selected))...)
	gs.logf(player, "discards %d cards down to the hand limit", len(cp.Selected))
	cp.Selected = nil
	cp.Confirmed = true
	gs.maybeFinishCleanup()
}

func (gs *GameState) maybeFinishCleanup() {
	for _, cp := range gs.CleanupState.Players {
		if !cp.Confirmed {
			return
		}
	}
	gs.CleanupState = nil
	gs.RoundScores = append(gs.RoundScores, CalculateScores(gs))
	if gs.Round >= MaxRounds {
		gs.Phase = GameEndPhase
		gs.FinalScores = CalculateScores(gs)
		gs.logf(-1, "game over, player %d wins with %d", gs.FinalScores[0].Player, gs.FinalScores[0].Total)
		log.Debug().Str("game", gs.ID).Int("winner", gs.FinalScores[0].Player).Msg("game over")
		return
	}
	gs.advanceRound()
}

// advanceRound starts the next round: slash-and-burn fields that were worked are discarded, workers
// come back, new workplaces open and the starting player takes the first turn.
func (gs *GameState) advanceRound() {
	gs.Round++

	for _, p := range gs.Players {
		kept := p.Buildings[:0:0]
		for _, b := range p.Buildings {
			if b.Worked && gs.def(b.Card).HasTag(catalog.TagSlashAndBurn) {
				gs.discardCards(b.Card)
				gs.logf(p.ID, "%s is burnt out", gs.def(b.Card).Name)
				continue
			}
			b.Worked = false
			kept = append(kept, b)
		}
		p.Buildings = kept
		gs.refreshLimits(p)
		p.Available = p.Workers
	}

	kept := gs.Workplaces[:0:0]
	for _, wp := range gs.Workplaces {
		if wp.SourceCard != nil && len(wp.Occupants) > 0 && gs.def(*wp.SourceCard).HasTag(catalog.TagSlashAndBurn) {
			gs.discardCards(*wp.SourceCard)
			gs.logf(-1, "%s is burnt out", wp.Name)
			continue
		}
		wp.Occupants = nil
		kept = append(kept, wp)
	}
	gs.Workplaces = kept

	gs.openWorkplaces(gs.Round)
	gs.Phase = WorkPhase
	gs.CurrentPlayer = gs.StartPlayer
	gs.logf(-1, "round %d begins", gs.Round)
	log.Debug().Str("game", gs.ID).Int("round", gs.Round).Int("startPlayer", gs.StartPlayer).Msg("round advanced")
}
