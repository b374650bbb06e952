package metrics

import (
	"sync/atomic"
	"time"
)

// Outcome is how an engine game ended.
type Outcome string

const (
	Finished Outcome = "finished"
	Stuck    Outcome = "stuck"
	Aborted  Outcome = "aborted" // A panic or a broken invariant
	Capped   Outcome = "capped"  // MAX_MOVES reached
)

type AgentConfig struct {
	ID         int
	Difficulty string
}

type MoveMetric struct {
	Step     int
	Round    int
	Player   int // Player ID
	Phase    string
	Move     string
	Duration time.Duration // Time the agent took to decide
}

type RoundMetric struct {
	Round     int
	Player    int
	Total     int
	Buildings int
	Bonus     int
	Money     int
	Debt      int
	Tokens    int
}

type GameMetric struct {
	GameID         string
	Players        int
	Version        string
	Outcome        Outcome
	StartingPlayer int   // Player ID
	Winner         int   // Player ID, -1 unless the game finished
	Scores         []int // Final totals by seat
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Rejected       int // Agent moves the state refused
	Rounds         []RoundMetric
}

// Summary aggregates the games of one experiment.
type Summary struct {
	Games    int
	Finished int
	Stuck    int
	Aborted  int
	Capped   int
	Moves    int
	Duration time.Duration
}

// Collector counts games from several goroutines at once.
type Collector interface {
	Start()
	AddGame(m GameMetric)
	Complete() Summary
}

type collector struct {
	startTime time.Time
	games     atomic.Int32
	finished  atomic.Int32
	stuck     atomic.Int32
	aborted   atomic.Int32
	capped    atomic.Int32
	moves     atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
}

func (m *collector) AddGame(g GameMetric) {
	m.games.Add(1)
	m.moves.Add(int64(g.TotalMoves))
	switch g.Outcome {
	case Finished:
		m.finished.Add(1)
	case Stuck:
		m.stuck.Add(1)
	case Aborted:
		m.aborted.Add(1)
	case Capped:
		m.capped.Add(1)
	}
}

func (m *collector) Complete() Summary {
	return Summary{
		Games:    int(m.games.Load()),
		Finished: int(m.finished.Load()),
		Stuck:    int(m.stuck.Load()),
		Aborted:  int(m.aborted.Load()),
		Capped:   int(m.capped.Load()),
		Moves:    int(m.moves.Load()),
		Duration: time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()               {}
func (m *dummyCollector) AddGame(g GameMetric) {}
func (m *dummyCollector) Complete() Summary    { return Summary{} }
