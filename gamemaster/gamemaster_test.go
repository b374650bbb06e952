package gamemaster

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"natecon/agent"
	"natecon/catalog"
	"natecon/game"

	"github.com/stretchr/testify/require"
)

func newHost(t *testing.T, numPlayers int, seed uint64) *Host {
	t.Helper()
	h, err := NewHost(catalog.Default(), numPlayers, game.Options{Seed: &seed})
	require.NoError(t, err)
	return h
}

// firstLegal returns a legal move of the player in the host's current state.
func firstLegal(t *testing.T, h *Host, player int) game.Move {
	t.Helper()
	moves := h.Snapshot(player).LegalMoves(player)
	require.NotEmpty(t, moves)
	return moves[0]
}

func TestHost(t *testing.T) {
	t.Run("subscribing sends a redacted snapshot", func(t *testing.T) {
		h := newHost(t, 3, 1)
		updates, err := h.Subscribe(1)
		require.NoError(t, err)

		u := <-updates
		require.Zero(t, u.Seq)
		require.Nil(t, u.Move)
		require.NotEqual(t, game.HiddenID, u.State.Players[1].Hand[0].DefID)
		require.Equal(t, game.HiddenID, u.State.Players[0].Hand[0].DefID)
	})

	t.Run("rejecting unknown players", func(t *testing.T) {
		h := newHost(t, 2, 1)
		_, err := h.Subscribe(2)
		require.Error(t, err)
	})

	t.Run("publishing accepted moves to every subscriber", func(t *testing.T) {
		h := newHost(t, 2, 2)
		a, err := h.Subscribe(0)
		require.NoError(t, err)
		b, err := h.Subscribe(1)
		require.NoError(t, err)
		<-a
		<-b

		m := firstLegal(t, h, 0)
		require.NoError(t, h.Submit(m))
		for _, ch := range []<-chan Update{a, b} {
			u := <-ch
			require.Equal(t, 1, u.Seq)
			require.Equal(t, &m, u.Move)
		}
	})

	t.Run("illegal moves change nothing", func(t *testing.T) {
		h := newHost(t, 2, 3)
		updates, err := h.Subscribe(1)
		require.NoError(t, err)
		<-updates
		before := h.Snapshot(1)

		err = h.Submit(game.Move{Type: game.ConfirmPaydayMove, Player: 1})
		require.ErrorIs(t, err, game.ErrInvalidMove)
		require.Equal(t, before, h.Snapshot(1))
		require.Empty(t, updates)
	})

	t.Run("keeping only the newest updates for slow subscribers", func(t *testing.T) {
		h := newHost(t, 2, 4)
		updates, err := h.Subscribe(0)
		require.NoError(t, err)

		a := agent.New(catalog.Default(), agent.WithSeed(1))
		for n := 0; n < 40; n++ {
			full := h.state.Clone()
			actor := full.Actors()[0]
			m := a.DecideMove(full, actor)
			require.NotNil(t, m)
			require.NoError(t, h.Submit(*m))
		}
		require.Len(t, updates, cap(updates))
		var u Update
		for len(updates) > 0 {
			u = <-updates
		}
		require.Equal(t, 40, u.Seq)
	})

	t.Run("refusing moves after closing", func(t *testing.T) {
		h := newHost(t, 2, 5)
		updates, err := h.Subscribe(0)
		require.NoError(t, err)
		m := firstLegal(t, h, 0)

		h.Close()
		require.ErrorIs(t, h.Submit(m), ErrClosed)
		<-updates
		_, ok := <-updates
		require.False(t, ok, "Closing should end subscriptions")
		_, err = h.Subscribe(0)
		require.ErrorIs(t, err, ErrClosed)
	})
}

func TestServeAgent(t *testing.T) {
	cat := catalog.Default()

	t.Run("playing a whole game with CPU seats", func(t *testing.T) {
		h := newHost(t, 3, 6)
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		var wg sync.WaitGroup
		errs := make(chan error, 3)
		for player := 0; player < 3; player++ {
			a := agent.New(cat, agent.WithSeed(uint64(player+1)))
			wg.Add(1)
			go func(player int) {
				defer wg.Done()
				errs <- h.ServeAgent(ctx, player, a)
			}(player)
		}

		select {
		case <-h.Done():
		case <-ctx.Done():
			t.Fatal("game did not finish")
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}
		require.Len(t, h.Scores(), 3)
		require.Equal(t, game.GameEndPhase, h.Snapshot(0).Phase)
	})

	t.Run("stopping when the context is cancelled", func(t *testing.T) {
		h := newHost(t, 2, 7)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := h.ServeAgent(ctx, 1, agent.New(cat, agent.WithSeed(1)))
		require.True(t, errors.Is(err, context.Canceled))
	})
}

func TestLobby(t *testing.T) {
	t.Run("creating games from loose options", func(t *testing.T) {
		l := NewLobby(catalog.Default())
		h, err := l.Create(2, map[string]any{"version": "glory", "seed": "42"})
		require.NoError(t, err)
		require.Equal(t, catalog.Glory, h.Snapshot(0).Version)

		got, ok := l.Get(h.ID())
		require.True(t, ok)
		require.Same(t, h, got)
		require.Equal(t, 1, l.Len())

		l.Remove(h.ID())
		require.Zero(t, l.Len())
		_, err = h.Subscribe(0)
		require.ErrorIs(t, err, ErrClosed)
	})

	t.Run("rejecting bad options", func(t *testing.T) {
		l := NewLobby(catalog.Default())
		_, err := l.Create(2, map[string]any{"colour": "red"})
		require.Error(t, err)
		_, err = l.Create(7, nil)
		require.Error(t, err)
		require.Zero(t, l.Len())
	})
}
