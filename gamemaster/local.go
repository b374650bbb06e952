package gamemaster

import (
	"context"
	"errors"

	"natecon/agent"
	"natecon/game"
	"natecon/utils"

	"github.com/rs/zerolog/log"
)

// ServeAgent plays the seat of player with a CPU agent until the game ends, the host closes or ctx
// is cancelled. The agent decides on the redacted view the player is entitled to.
func (h *Host) ServeAgent(ctx context.Context, player int, a *agent.Agent) error {
	updates, err := h.Subscribe(player)
	if err != nil {
		return err
	}
	log.Debug().Str("game", h.ID()).Int("player", player).Stringer("difficulty", a.Difficulty()).Msg("CPU takes the seat")
	// Updates older than the agent's own last move do not show it yet.
	last := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			if u.Seq < last || u.State.Phase == game.GameEndPhase || utils.FindIndex(u.State.Actors(), player) < 0 {
				continue
			}
			m := a.DecideMove(u.State, player)
			if m == nil {
				continue
			}
			seq, err := h.submit(*m)
			switch {
			case err == nil:
				last = seq
			case errors.Is(err, ErrClosed):
				return nil
			case errors.Is(err, game.ErrInvalidMove):
				// Another player moved first; a newer update is already queued.
				log.Debug().Str("game", h.ID()).Int("player", player).Int("seq", u.Seq).Err(err).Msg("stale move dropped")
			default:
				return err
			}
		}
	}
}
