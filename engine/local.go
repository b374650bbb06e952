package engine

import (
	"time"

	"natecon/agent"
	"natecon/experiments/metrics"
	"natecon/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Engine plays a game locally with one CPU agent per seat.
type Engine struct {
	State  *game.GameState
	Agents []*agent.Agent

	maxMoves       int
	stuckThreshold int
	validate       bool
	recordMoves    bool
}

func LocalEngine(state *game.GameState, agents []*agent.Agent, options ...Option) *Engine {
	if len(agents) != state.NumPlayers {
		panic("number of players does not match number of agents")
	}

	e := &Engine{
		State:  state,
		Agents: agents,
	}
	defaults(e)
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the game loop until the game ends, gets stuck or runs out of moves. Players of
// simultaneous phases take turns one move at a time. A panic aborts the game and is logged with
// the state it happened in.
func (e *Engine) Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric) {
	gs := e.State
	gameMetric = metrics.GameMetric{
		GameID:         gs.ID,
		Players:        gs.NumPlayers,
		Version:        string(gs.Version),
		StartingPlayer: gs.StartPlayer,
		Winner:         -1,
		StartTime:      time.Now(),
	}
	defer func() {
		if r := recover(); r != nil {
			e.withState(log.Error()).Interface("panic", r).Msg("game aborted")
			gameMetric.Outcome = metrics.Aborted
		}
		gameMetric.EndTime = time.Now()
		gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
		gameMetric.Rounds = roundMetrics(gs)
	}()

	log.Debug().Str("game", gs.ID).Msgf("player %d is starting", gs.StartPlayer)

	idle, step := 0, 0
	for gs.Phase != game.GameEndPhase {
		if gameMetric.TotalMoves >= e.maxMoves {
			e.withState(log.Warn()).Int("moves", gameMetric.TotalMoves).Msg("move cap reached")
			gameMetric.Outcome = metrics.Capped
			return gameMetric, moveMetrics
		}
		if idle >= e.stuckThreshold {
			e.withState(log.Warn()).Int("idle", idle).Msg("game is stuck")
			gameMetric.Outcome = metrics.Stuck
			return gameMetric, moveMetrics
		}

		actors := gs.Actors()
		player := actors[step%len(actors)]
		step++
		round, phase := gs.Round, gs.Phase

		start := time.Now()
		move := e.Agents[player].DecideMove(gs, player)
		elapsed := time.Since(start)
		if move == nil {
			idle++
			continue
		}
		if err := gs.Apply(*move); err != nil {
			e.withState(log.Warn()).Err(err).Stringer("move", move).Msg("agent move rejected")
			gameMetric.Rejected++
			idle++
			continue
		}
		idle = 0
		gameMetric.TotalMoves++

		if e.recordMoves {
			moveMetrics = append(moveMetrics, metrics.MoveMetric{
				Step:     gameMetric.TotalMoves,
				Round:    round,
				Player:   player,
				Phase:    phase.String(),
				Move:     move.Type.String(),
				Duration: elapsed,
			})
		}
		if e.validate {
			if err := gs.Validate(); err != nil {
				e.withState(log.Error()).Err(err).Stringer("move", move).Msg("invariant broken")
				gameMetric.Outcome = metrics.Aborted
				return gameMetric, moveMetrics
			}
		}
	}

	gameMetric.Outcome = metrics.Finished
	gameMetric.Winner = gs.FinalScores[0].Player
	gameMetric.Scores = scoresBySeat(gs.FinalScores)
	log.Debug().Str("game", gs.ID).Int("moves", gameMetric.TotalMoves).Msgf("player %d wins with %d", gameMetric.Winner, gs.FinalScores[0].Total)
	return gameMetric, moveMetrics
}

// withState adds the fields needed to diagnose a game from its log line.
func (e *Engine) withState(ev *zerolog.Event) *zerolog.Event {
	gs := e.State
	ev = ev.Str("game", gs.ID).Int("round", gs.Round).Stringer("phase", gs.Phase).Int("player", gs.CurrentPlayer)
	if gs.LastMove != nil {
		ev = ev.Stringer("lastMove", gs.LastMove)
	}
	return ev
}
