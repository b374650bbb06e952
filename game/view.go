package game

// View returns a copy of the state as the viewer may see it. Other players' hands and the deck are
// replaced by placeholders of the same length, and cards revealed by a design office are hidden from
// everyone but the player choosing among them.
func View(gs *GameState, viewer int) *GameState {
	v := gs.Clone()
	for _, p := range v.Players {
		if p.ID != viewer {
			p.Hand = hide(p.Hand)
		}
	}
	v.Deck = hide(v.Deck)
	if v.DesignOffice != nil && v.DesignOffice.Player != viewer {
		v.DesignOffice.Revealed = hide(v.DesignOffice.Revealed)
	}
	return v
}

func hide(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	hidden := make([]Card, len(cards))
	for i := range hidden {
		hidden[i] = Card{DefID: HiddenID}
	}
	return hidden
}
