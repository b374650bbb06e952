package game

import (
	"fmt"
	"testing"

	"natecon/catalog"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestEffectHandlers(t *testing.T) {
	t.Run("every effect kind has a handler", func(t *testing.T) {
		for _, e := range catalog.Effects() {
			h, ok := effectHandlers[e]
			require.True(t, ok, "Effect %s should have a handler", e)
			require.NotNil(t, h.apply, "Effect %s should have an apply function", e)
		}
	})
}

// TestRandomPlay drives whole games with uniformly random legal moves and checks the state after every move.
func TestRandomPlay(t *testing.T) {
	for _, tc := range []struct {
		players int
		version catalog.Version
	}{
		{2, catalog.Base}, {3, catalog.Base}, {4, catalog.Base},
		{2, catalog.Glory}, {3, catalog.Glory}, {4, catalog.Glory},
	} {
		t.Run(fmt.Sprintf("%d players %s", tc.players, tc.version), func(t *testing.T) {
			gs, err := Setup(catalog.Default(), tc.players, Options{Version: tc.version, Seed: seed(uint64(tc.players))}, nil)
			require.NoError(t, err)
			rng := rand.New(rand.NewSource(uint64(tc.players) * 31))

			for step := 0; gs.Phase != GameEndPhase; step++ {
				require.Less(t, step, 50000, "Game should finish")
				actors := gs.Actors()
				require.NotEmpty(t, actors)
				actor := actors[rng.Intn(len(actors))]
				moves := gs.LegalMoves(actor)
				require.NotEmpty(t, moves, "Player %d should have a move in %s", actor, gs.Phase)
				m := moves[rng.Intn(len(moves))]

				round := gs.Round
				if m.Type == ConfirmPaydaySellMove {
					pp := gs.PaydayState.Players[actor]
					require.False(t, gs.Oversells(gs.Players[actor], pp.Selected, pp.Wage))
				}
				require.NoError(t, gs.Apply(m), "Legal move %s should apply", m)
				require.NoError(t, gs.Validate(), "after %s", m)
				if gs.Round != round {
					require.Equal(t, round+1, gs.Round, "Rounds should advance one at a time")
				}
			}
			require.Equal(t, MaxRounds, gs.Round)
			require.Len(t, gs.RoundScores, MaxRounds)
			require.Len(t, gs.FinalScores, tc.players)
		})
	}
}
