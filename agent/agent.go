package agent

import (
	"fmt"
	"time"

	"natecon/catalog"
	"natecon/game"

	"golang.org/x/exp/rand"
)

// Difficulty selects how an agent picks among legal moves.
type Difficulty int

const (
	Random Difficulty = iota
	Heuristic
)

func (d Difficulty) String() string {
	switch d {
	case Random:
		return "random"
	case Heuristic:
		return "heuristic"
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "random":
		return Random, nil
	case "heuristic":
		return Heuristic, nil
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

type Option func(a *Agent)

type Agent struct {
	cat        *catalog.Catalog
	difficulty Difficulty
	rng        *rand.Rand
}

func WithDifficulty(d Difficulty) Option {
	return func(a *Agent) {
		a.difficulty = d
	}
}

func WithSeed(seed uint64) Option {
	return func(a *Agent) {
		a.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(a *Agent) {
		if rng != nil {
			a.rng = rng
		}
	}
}

func New(cat *catalog.Catalog, options ...Option) *Agent {
	a := &Agent{ // Default values
		cat:        cat,
		difficulty: Heuristic,
	}
	for _, option := range options {
		option(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return a
}

func (a *Agent) Difficulty() Difficulty {
	return a.difficulty
}

// DecideMove returns the move the agent makes for player, or nil when the player has nothing to do.
// The state is only read.
func (a *Agent) DecideMove(gs *game.GameState, player int) *game.Move {
	moves := gs.LegalMoves(player)
	if len(moves) == 0 {
		return nil
	}
	if a.difficulty == Random {
		return a.randomMove(gs, player, moves)
	}

	v := newView(a.cat, gs, player)
	var m game.Move
	switch gs.Phase {
	case game.WorkPhase:
		m = a.decideWork(v, moves)
	case game.BuildPhase:
		m = a.decideBuild(v, moves)
	case game.DiscardPhase:
		m = a.decideDiscard(v, moves)
	case game.DesignOfficePhase:
		m = a.decideDesignOffice(v, moves)
	case game.DualConstructionPhase:
		m = a.decideDual(v, moves)
	case game.VillageChoicePhase:
		m = a.decideVillage(v, moves)
	case game.PaydayPhase:
		m = a.decidePayday(v, moves)
	case game.CleanupPhase:
		m = a.decideCleanup(v, moves)
	default:
		panic("Unknown game phase")
	}
	return &m
}

// find returns the legal move of the given type and argument.
func find(moves []game.Move, t game.MoveType, arg int) (game.Move, bool) {
	for _, m := range moves {
		if m.Type == t && m.Arg == arg {
			return m, true
		}
	}
	return game.Move{}, false
}

func ofType(moves []game.Move, t game.MoveType) []game.Move {
	var out []game.Move
	for _, m := range moves {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return out
}

// mustFind is find for moves the strategy derived from the state itself; a miss is a logic error.
func mustFind(moves []game.Move, t game.MoveType, arg int) game.Move {
	m, ok := find(moves, t, arg)
	if !ok {
		panic(fmt.Sprintf("agent: %s(%d) is not legal", t, arg))
	}
	return m
}
