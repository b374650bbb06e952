package game

import (
	"natecon/catalog"

	"github.com/rs/zerolog/log"
)

// buildDeck creates one card instance per copy of every definition of the version and shuffles them.
func (gs *GameState) buildDeck() {
	for _, def := range gs.cat.DeckDefsFor(gs.Version) {
		for i := 0; i < def.Copies; i++ {
			gs.Deck = append(gs.Deck, Card{UID: gs.UIDs.Next(), DefID: def.ID})
		}
	}
	gs.shuffle(gs.Deck)
}

func (gs *GameState) shuffle(cards []Card) {
	gs.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// drawCard takes the top card, reshuffling the discard pile into the deck when the deck runs out.
func (gs *GameState) drawCard() (Card, bool) {
	if len(gs.Deck) == 0 {
		if len(gs.Discard) == 0 {
			return Card{}, false
		}
		gs.Deck = append(gs.Deck, gs.Discard...)
		gs.Discard = nil
		gs.shuffle(gs.Deck)
		log.Debug().Int("round", gs.Round).Int("cards", len(gs.Deck)).Msg("reshuffled discard pile into deck")
	}
	card := gs.Deck[0]
	gs.Deck = gs.Deck[1:]
	return card, true
}

// drawCards draws up to n cards; fewer come back when deck and discard pile are both exhausted.
func (gs *GameState) drawCards(n int) []Card {
	var drawn []Card
	for i := 0; i < n; i++ {
		card, ok := gs.drawCard()
		if !ok {
			break
		}
		drawn = append(drawn, card)
	}
	return drawn
}

// drawable is the number of building cards left in deck and discard pile together.
func (gs *GameState) drawable() int {
	return len(gs.Deck) + len(gs.Discard)
}

func (gs *GameState) drawInto(p *PlayerState, n int) int {
	drawn := gs.drawCards(n)
	p.Hand = append(p.Hand, drawn...)
	return len(drawn)
}

// gainConsumables mints n fresh consumable tokens into the player's hand.
func (gs *GameState) gainConsumables(p *PlayerState, n int) {
	for i := 0; i < n; i++ {
		p.Hand = append(p.Hand, Card{UID: gs.UIDs.Next(), DefID: catalog.ConsumableID})
	}
}

// discardCards moves building cards to the discard pile. Consumables leave the economy.
func (gs *GameState) discardCards(cards ...Card) {
	for _, c := range cards {
		if c.IsConsumable() {
			continue
		}
		gs.Discard = append(gs.Discard, c)
	}
}

// takeFromHand removes the cards with the given instance ids from the hand and returns them in hand order.
func takeFromHand(p *PlayerState, uids []int) []Card {
	want := make(map[int]bool, len(uids))
	for _, uid := range uids {
		want[uid] = true
	}
	var taken []Card
	kept := p.Hand[:0:0]
	for _, c := range p.Hand {
		if want[c.UID] {
			taken = append(taken, c)
		} else {
			kept = append(kept, c)
		}
	}
	p.Hand = kept
	return taken
}

// uidsAt maps hand indices to instance ids.
func uidsAt(hand []Card, indices []int) []int {
	uids := make([]int, 0, len(indices))
	for _, i := range indices {
		uids = append(uids, hand[i].UID)
	}
	return uids
}
