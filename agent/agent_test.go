package agent

import (
	"fmt"
	"testing"

	"natecon/catalog"
	"natecon/game"

	"github.com/stretchr/testify/require"
)

func seed(n uint64) *uint64 {
	return &n
}

func newGame(t *testing.T, numPlayers int, version catalog.Version, s uint64) *game.GameState {
	t.Helper()
	gs, err := game.Setup(catalog.Default(), numPlayers, game.Options{Version: version, Seed: seed(s)}, nil)
	require.NoError(t, err)
	return gs
}

func card(gs *game.GameState, defID string) game.Card {
	return game.Card{UID: gs.UIDs.Next(), DefID: defID}
}

// play drives a game to the end with one agent per seat and returns the number of moves made.
func play(t *testing.T, gs *game.GameState, agents []*Agent) int {
	t.Helper()
	steps := 0
	for gs.Phase != game.GameEndPhase {
		require.Less(t, steps, 20000, "Game should finish")
		actor := gs.Actors()[0]
		m := agents[actor].DecideMove(gs, actor)
		require.NotNil(t, m, "Player %d should have a move in %s", actor, gs.Phase)
		require.NoError(t, gs.Apply(*m), "Agent move %s should be legal", m)
		require.NoError(t, gs.Validate(), "after %s", m)
		steps++
	}
	return steps
}

func TestParseDifficulty(t *testing.T) {
	t.Run("round-tripping difficulty names", func(t *testing.T) {
		for _, d := range []Difficulty{Random, Heuristic} {
			parsed, err := ParseDifficulty(d.String())
			require.NoError(t, err)
			require.Equal(t, d, parsed)
		}
	})

	t.Run("agents play the heuristic tier unless told otherwise", func(t *testing.T) {
		require.Equal(t, Heuristic, New(catalog.Default()).Difficulty())
		require.Equal(t, Random, New(catalog.Default(), WithDifficulty(Random)).Difficulty())
	})

	t.Run("rejecting unknown names", func(t *testing.T) {
		_, err := ParseDifficulty("grandmaster")
		require.Error(t, err)
	})
}

func TestDecideMove(t *testing.T) {
	cat := catalog.Default()

	t.Run("nothing to do once the game is over", func(t *testing.T) {
		gs := newGame(t, 2, catalog.Base, 1)
		gs.Phase = game.GameEndPhase
		require.Nil(t, New(cat, WithSeed(1)).DecideMove(gs, 0))
	})

	t.Run("nothing to do on another player's turn", func(t *testing.T) {
		gs := newGame(t, 2, catalog.Base, 1)
		require.Nil(t, New(cat, WithSeed(1)).DecideMove(gs, 1))
	})

	t.Run("deciding does not modify the state", func(t *testing.T) {
		gs := newGame(t, 3, catalog.Base, 2)
		before := gs.Clone()
		for _, d := range []Difficulty{Random, Heuristic} {
			require.NotNil(t, New(cat, WithSeed(3), WithDifficulty(d)).DecideMove(gs, 0))
		}
		require.Equal(t, before, gs)
	})
}

func TestPayday(t *testing.T) {
	cat := catalog.Default()

	t.Run("selling the only building to cover the wage", func(t *testing.T) {
		gs := newGame(t, 2, catalog.Base, 4)
		gs.Round = 6
		p := gs.Players[0]
		p.Hand = nil
		p.Money = 1
		p.Buildings = []game.BuildingSlot{{Card: card(gs, "design_office")}}
		gs.Phase = game.PaydayPhase
		gs.PaydayState = &game.PaydayState{Players: []game.PaydayPlayer{
			{Wage: 4, NeedsSelling: true},
			{Wage: 4, NeedsSelling: true},
		}}

		a := New(cat, WithSeed(1))
		for n := 0; !gs.PaydayState.Players[0].Confirmed; n++ {
			require.Less(t, n, 5)
			m := a.DecideMove(gs, 0)
			require.NotNil(t, m)
			require.NotEqual(t, game.ConfirmPaydayMove, m.Type, "Agent should sell rather than fall into debt")
			require.NoError(t, gs.Apply(*m))
		}
		require.Equal(t, 2, p.Money)
		require.Equal(t, 0, p.Debts)
		require.Empty(t, p.Buildings)
	})

	t.Run("selling as little as possible", func(t *testing.T) {
		gs := newGame(t, 2, catalog.Base, 4)
		gs.Round = 6
		p := gs.Players[0]
		p.Money = 2
		p.Buildings = []game.BuildingSlot{
			{Card: card(gs, "restaurant")},
			{Card: card(gs, "farm")},
			{Card: card(gs, "workshop")},
		}
		gs.Phase = game.PaydayPhase
		gs.PaydayState = &game.PaydayState{Players: []game.PaydayPlayer{
			{Wage: 4, NeedsSelling: true},
			{Wage: 4, NeedsSelling: true},
		}}

		a := New(cat, WithSeed(1))
		for n := 0; !gs.PaydayState.Players[0].Confirmed; n++ {
			require.Less(t, n, 10)
			m := a.DecideMove(gs, 0)
			require.NoError(t, gs.Apply(*m))
		}
		require.Equal(t, 0, p.Debts)
		require.GreaterOrEqual(t, p.Money, 0)
		require.Len(t, p.Buildings, 2, "One building should cover the wage")
		require.Equal(t, "restaurant", p.Buildings[0].Card.DefID, "The restaurant is the last one to go")
	})
}

func TestDiscard(t *testing.T) {
	cat := catalog.Default()

	t.Run("paying with consumables before buildings", func(t *testing.T) {
		gs := newGame(t, 2, catalog.Base, 5)
		p := gs.Players[0]
		keepA, keepB := card(gs, "construction_company"), card(gs, "restaurant")
		p.Hand = []game.Card{keepA, card(gs, catalog.ConsumableID), keepB, card(gs, catalog.ConsumableID)}
		p.Available--
		gs.Phase = game.DiscardPhase
		gs.Pending = &game.Placement{Player: 0, WorkplaceID: gs.Workplaces[0].ID, Workers: 1}
		gs.Workplaces[0].Occupants = []int{0}
		gs.DiscardState = &game.DiscardState{Player: 0, Count: 2, Callback: game.CallbackDraw, Amount: 2}

		a := New(cat, WithSeed(1))
		for n := 0; gs.Phase == game.DiscardPhase; n++ {
			require.Less(t, n, 5)
			m := a.DecideMove(gs, 0)
			require.NotEqual(t, game.CancelActionMove, m.Type)
			require.NoError(t, gs.Apply(*m))
		}
		require.Contains(t, p.Hand, keepA)
		require.Contains(t, p.Hand, keepB)
		require.Equal(t, 0, p.Consumables())
	})
}

func TestVillage(t *testing.T) {
	cat := catalog.Default()

	setup := func(t *testing.T, hand ...string) *game.GameState {
		gs := newGame(t, 2, catalog.Base, 6)
		p := gs.Players[0]
		p.Hand = nil
		for _, id := range hand {
			p.Hand = append(p.Hand, card(gs, id))
		}
		p.Available--
		gs.Phase = game.VillageChoicePhase
		gs.VillageState = &game.VillageState{Player: 0}
		gs.Pending = &game.Placement{Player: 0, WorkplaceID: gs.Workplaces[0].ID, Workers: 1}
		return gs
	}

	t.Run("trading consumables when the hand has room", func(t *testing.T) {
		gs := setup(t, catalog.ConsumableID, catalog.ConsumableID)
		m := New(cat, WithSeed(1)).DecideMove(gs, 0)
		require.Equal(t, game.Move{Type: game.SelectVillageOptionMove, Player: 0, Arg: game.VillageTradeForCards}, *m)
	})

	t.Run("taking consumables when there is nothing to trade", func(t *testing.T) {
		gs := setup(t, catalog.ConsumableID, "farm")
		m := New(cat, WithSeed(1)).DecideMove(gs, 0)
		require.Equal(t, game.VillageTakeConsumables, m.Arg)
	})
}

func TestFullGames(t *testing.T) {
	cat := catalog.Default()

	for _, d := range []Difficulty{Random, Heuristic} {
		for _, version := range []catalog.Version{catalog.Base, catalog.Glory} {
			for players := game.MinPlayers; players <= game.MaxPlayers; players++ {
				t.Run(fmt.Sprintf("%s agents, %d players %s", d, players, version), func(t *testing.T) {
					gs := newGame(t, players, version, uint64(players)*11)
					agents := make([]*Agent, players)
					for i := range agents {
						agents[i] = New(cat, WithDifficulty(d), WithSeed(uint64(i+1)))
					}
					play(t, gs, agents)
					require.Len(t, gs.FinalScores, players)
					require.Len(t, gs.RoundScores, game.MaxRounds)
				})
			}
		}
	}

	t.Run("seeded games replay identically", func(t *testing.T) {
		run := func() []game.ScoreResult {
			gs := newGame(t, 3, catalog.Base, 99)
			agents := []*Agent{
				New(cat, WithSeed(1)),
				New(cat, WithSeed(2), WithDifficulty(Random)),
				New(cat, WithSeed(3)),
			}
			play(t, gs, agents)
			return gs.FinalScores
		}
		require.Equal(t, run(), run())
	})
}
