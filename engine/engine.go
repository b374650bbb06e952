package engine

import (
	"natecon/experiments/metrics"
	"natecon/game"
	"natecon/meta"
)

type Option func(e *Engine)

// WithMaxMoves caps the accepted moves of a game, toggles included.
func WithMaxMoves(n int) Option {
	return func(e *Engine) {
		e.maxMoves = n
	}
}

// WithStuckThreshold sets how many steps in a row may pass without an accepted move.
func WithStuckThreshold(n int) Option {
	return func(e *Engine) {
		e.stuckThreshold = n
	}
}

// WithValidation checks the state invariants after every accepted move and aborts the game on the first violation.
func WithValidation() Option {
	return func(e *Engine) {
		e.validate = true
	}
}

// WithMoveMetrics records a metric for every accepted move.
func WithMoveMetrics() Option {
	return func(e *Engine) {
		e.recordMoves = true
	}
}

func defaults(e *Engine) {
	e.maxMoves = meta.MAX_MOVES
	e.stuckThreshold = meta.STUCK_THRESHOLD
}

// roundMetrics flattens the per-round score snapshots of a game.
func roundMetrics(gs *game.GameState) []metrics.RoundMetric {
	var rounds []metrics.RoundMetric
	for i, scores := range gs.RoundScores {
		for _, s := range scores {
			rounds = append(rounds, metrics.RoundMetric{
				Round:     i + 1,
				Player:    s.Player,
				Total:     s.Total,
				Buildings: s.Breakdown.Buildings,
				Bonus:     s.Breakdown.Bonus,
				Money:     s.Breakdown.Money,
				Debt:      s.Breakdown.Debt,
				Tokens:    s.Breakdown.Tokens,
			})
		}
	}
	return rounds
}

// scoresBySeat returns final totals indexed by player id.
func scoresBySeat(results []game.ScoreResult) []int {
	scores := make([]int, len(results))
	for _, r := range results {
		scores[r.Player] = r.Total
	}
	return scores
}
