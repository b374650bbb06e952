package game

import (
	"testing"

	"natecon/catalog"

	"github.com/stretchr/testify/require"
)

func seed(n uint64) *uint64 {
	return &n
}

// newTestGame sets up a seeded game and clears every hand so tests can deal exactly what they need.
func newTestGame(t *testing.T, numPlayers int, version catalog.Version) *GameState {
	t.Helper()
	gs, err := Setup(catalog.Default(), numPlayers, Options{Version: version, Seed: seed(7)}, nil)
	require.NoError(t, err)
	for _, p := range gs.Players {
		gs.discardCards(p.Hand...)
		p.Hand = nil
	}
	return gs
}

// deal puts fresh cards of the given definitions into the player's hand.
func deal(gs *GameState, player int, defIDs ...string) {
	p := gs.Players[player]
	for _, id := range defIDs {
		p.Hand = append(p.Hand, Card{UID: gs.UIDs.Next(), DefID: id})
	}
}

// give constructs fresh buildings for the player and returns the instance id of the last one.
func give(gs *GameState, player int, defIDs ...string) int {
	p := gs.Players[player]
	uid := 0
	for _, id := range defIDs {
		uid = gs.UIDs.Next()
		p.Buildings = append(p.Buildings, BuildingSlot{Card: Card{UID: uid, DefID: id}})
	}
	gs.refreshLimits(p)
	return uid
}

func workplaceByDef(t *testing.T, gs *GameState, defID string) *Workplace {
	t.Helper()
	for _, wp := range gs.Workplaces {
		if wp.DefID == defID && wp.SourceCard == nil {
			return wp
		}
	}
	t.Fatalf("no workplace %q", defID)
	return nil
}

func TestSetup(t *testing.T) {
	cat := catalog.Default()

	t.Run("dealing the starting position", func(t *testing.T) {
		gs, err := Setup(cat, 3, Options{Version: catalog.Base, Seed: seed(1)}, nil)
		require.NoError(t, err)

		require.Equal(t, 1, gs.Round)
		require.Equal(t, WorkPhase, gs.Phase)
		require.Equal(t, 0, gs.StartPlayer)
		require.Equal(t, 0, gs.CurrentPlayer)
		require.Equal(t, 0, gs.Household)
		require.NotEmpty(t, gs.ID)
		for i, p := range gs.Players {
			require.Equal(t, StartingMoney+i, p.Money, "Money should grow with the seat index")
			require.Equal(t, StartingWorkers, p.Workers)
			require.Equal(t, StartingWorkers, p.Available)
			require.Len(t, p.Hand, StartingHand)
			require.Equal(t, DefaultMaxHand, p.MaxHand)
			require.Equal(t, DefaultMaxWorkers, p.MaxWorkers)
		}
		require.NoError(t, gs.Validate())
	})

	t.Run("deck holds every copy of the version", func(t *testing.T) {
		gs, err := Setup(cat, 2, Options{Version: catalog.Glory, Seed: seed(1)}, nil)
		require.NoError(t, err)

		copies := 0
		for _, def := range cat.DeckDefsFor(catalog.Glory) {
			copies += def.Copies
		}
		require.Equal(t, copies-2*StartingHand, len(gs.Deck))
	})

	t.Run("opening workplaces depend on the player count", func(t *testing.T) {
		count := func(gs *GameState, defID string) int {
			n := 0
			for _, wp := range gs.Workplaces {
				if wp.DefID == defID {
					n++
				}
			}
			return n
		}
		two, err := Setup(cat, 2, Options{Seed: seed(1)}, nil)
		require.NoError(t, err)
		four, err := Setup(cat, 4, Options{Seed: seed(1)}, nil)
		require.NoError(t, err)

		require.Equal(t, 1, count(two, "carpenter"))
		require.Equal(t, 0, count(two, "carpenter_2"))
		require.Equal(t, 1, count(four, "carpenter_3"))
		require.Equal(t, 0, count(four, "market"), "Round 2 workplaces should not be open yet")
	})

	t.Run("same seed deals the same game", func(t *testing.T) {
		a, err := Setup(cat, 2, Options{Seed: seed(99)}, nil)
		require.NoError(t, err)
		b, err := Setup(cat, 2, Options{Seed: seed(99)}, nil)
		require.NoError(t, err)

		require.Equal(t, a.Deck, b.Deck)
		require.Equal(t, a.Players[0].Hand, b.Players[0].Hand)
	})

	t.Run("shared allocator keeps instance ids unique across games", func(t *testing.T) {
		ids := NewUIDAllocator()
		a, err := Setup(cat, 2, Options{Seed: seed(1)}, ids)
		require.NoError(t, err)
		b, err := Setup(cat, 2, Options{Seed: seed(1)}, ids)
		require.NoError(t, err)

		uids := make(map[int]bool)
		for _, gs := range []*GameState{a, b} {
			for _, c := range gs.Deck {
				require.False(t, uids[c.UID], "Card %d should only exist once", c.UID)
				uids[c.UID] = true
			}
		}
	})

	t.Run("rejecting invalid player counts", func(t *testing.T) {
		_, err := Setup(cat, 1, Options{}, nil)
		require.Error(t, err)
		_, err = Setup(cat, 5, Options{}, nil)
		require.Error(t, err)
	})

	t.Run("rejecting unknown versions", func(t *testing.T) {
		_, err := Setup(cat, 2, Options{Version: "deluxe"}, nil)
		require.Error(t, err)
	})
}

func TestDecodeOptions(t *testing.T) {
	t.Run("decoding loosely typed values", func(t *testing.T) {
		opts, err := DecodeOptions(map[string]any{
			"version":  "glory",
			"isOnline": "true",
			"seed":     "42",
		})
		require.NoError(t, err)
		require.Equal(t, catalog.Glory, opts.Version)
		require.True(t, opts.IsOnline)
		require.NotNil(t, opts.Seed)
		require.Equal(t, uint64(42), *opts.Seed)
	})

	t.Run("defaulting to the base game", func(t *testing.T) {
		opts, err := DecodeOptions(map[string]any{})
		require.NoError(t, err)
		require.Equal(t, catalog.Base, opts.Version)
		require.Nil(t, opts.Seed)
	})

	t.Run("rejecting unknown keys", func(t *testing.T) {
		_, err := DecodeOptions(map[string]any{"players": 3, "bogus": true})
		require.Error(t, err)
	})

	t.Run("rejecting unknown versions", func(t *testing.T) {
		_, err := DecodeOptions(map[string]any{"version": "deluxe"})
		require.Error(t, err)
	})
}
