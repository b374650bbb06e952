package game

import (
	"testing"

	"natecon/catalog"

	"github.com/stretchr/testify/require"
)

func TestView(t *testing.T) {
	t.Run("hiding opponents' hands and the deck", func(t *testing.T) {
		gs, err := Setup(catalog.Default(), 3, Options{Seed: seed(3)}, nil)
		require.NoError(t, err)
		before := gs.Clone()

		v := View(gs, 1)
		require.Equal(t, gs.Players[1].Hand, v.Players[1].Hand, "Viewer should see their own hand")
		for _, id := range []int{0, 2} {
			require.Len(t, v.Players[id].Hand, len(gs.Players[id].Hand))
			for _, c := range v.Players[id].Hand {
				require.Equal(t, Card{DefID: HiddenID}, c)
			}
		}
		require.Len(t, v.Deck, len(gs.Deck))
		require.Equal(t, HiddenID, v.Deck[0].DefID)
		require.Equal(t, gs.Discard, v.Discard, "Discard pile is public")
		require.Equal(t, before, gs, "Redaction should not touch the original")
	})

	t.Run("hiding design office reveals from other players", func(t *testing.T) {
		gs := newTestGame(t, 2, catalog.Base)
		uid := give(gs, 0, "design_office")
		require.NoError(t, gs.PlaceWorkerOnBuilding(0, uid))

		require.Equal(t, gs.DesignOffice.Revealed, View(gs, 0).DesignOffice.Revealed)
		hidden := View(gs, 1).DesignOffice.Revealed
		require.Len(t, hidden, 5)
		require.Equal(t, HiddenID, hidden[0].DefID)
	})
}
