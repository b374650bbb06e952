package experiments

import (
	"fmt"
	"sync"

	"natecon/agent"
	"natecon/catalog"
	"natecon/engine"
	"natecon/experiments/metrics"
	"natecon/game"
	"natecon/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Config struct {
	Name       string
	OutDir     string // Records are written below OutDir/Name; empty skips writing
	Players    int
	Version    catalog.Version
	Games      int // Per match up
	Seed       uint64
	Goroutines int
	Validate   bool // Check invariants after every move
	Moves      bool // Record a metric per move
}

// Report is the outcome of an experiment.
type Report struct {
	metrics.Summary
	Wins map[int]int // AgentConfig.ID -> games won
	Dir  string      // Where the records were written
}

var (
	randomConfig    = metrics.AgentConfig{ID: 0, Difficulty: agent.Random.String()}
	heuristicConfig = metrics.AgentConfig{ID: 1, Difficulty: agent.Heuristic.String()}
	agentConfigs    = []metrics.AgentConfig{randomConfig, heuristicConfig}
)

// MatchUps pairs the difficulties for a player count: one heuristic agent in every seat against
// random agents, then all heuristic and all random tables.
func MatchUps(players int) [][]metrics.AgentConfig {
	matchUps := [][]metrics.AgentConfig{}
	for seat := 0; seat < players; seat++ {
		table := make([]metrics.AgentConfig, players)
		for i := range table {
			table[i] = randomConfig
		}
		table[seat] = heuristicConfig
		matchUps = append(matchUps, table)
	}
	same := func(config metrics.AgentConfig) []metrics.AgentConfig {
		table := make([]metrics.AgentConfig, players)
		for i := range table {
			table[i] = config
		}
		return table
	}
	return append(matchUps, same(heuristicConfig), same(randomConfig))
}

type job struct {
	id     int
	agents []metrics.AgentConfig
	seed   uint64
}

type result struct {
	game   metrics.GameRecord
	moves  []metrics.MoveRecord
	rounds []metrics.RoundRecord
}

// Run plays every match up cfg.Games times, spread over cfg.Goroutines workers, and writes the records.
func Run(cfg Config) (Report, error) {
	if cfg.Players < game.MinPlayers || cfg.Players > game.MaxPlayers {
		return Report{}, fmt.Errorf("player count must be between %d and %d, got %d", game.MinPlayers, game.MaxPlayers, cfg.Players)
	}
	if cfg.Games <= 0 {
		return Report{}, fmt.Errorf("games per match up must be positive, got %d", cfg.Games)
	}
	if cfg.Goroutines <= 0 {
		cfg.Goroutines = meta.GO_ROUTINES
	}
	if cfg.Version == "" {
		cfg.Version = catalog.Base
	}

	matchUps := MatchUps(cfg.Players)
	rng := rand.New(rand.NewSource(cfg.Seed))
	jobs := make([]job, 0, len(matchUps)*cfg.Games)
	for _, matchUp := range matchUps {
		for i := 0; i < cfg.Games; i++ {
			jobs = append(jobs, job{id: len(jobs) + 1, agents: matchUp, seed: rng.Uint64()})
		}
	}

	log.Info().Msgf("starting %s experiment: %d match ups, %d games on %d goroutines", cfg.Name, len(matchUps), len(jobs), cfg.Goroutines)
	collector := metrics.NewCollector()
	collector.Start()
	results := runJobs(cfg, jobs, collector)
	report := Report{Summary: collector.Complete(), Wins: map[int]int{}}
	for _, r := range results {
		if w := r.game.Winner; w >= 0 {
			report.Wins[r.game.Agents[w]]++
		}
	}
	log.Info().Msgf("completed %s experiment: %d finished, %d stuck, %d aborted, %d capped in %s",
		cfg.Name, report.Finished, report.Stuck, report.Aborted, report.Capped, report.Duration)

	if cfg.OutDir == "" {
		return report, nil
	}
	dir, err := write(cfg, results)
	if err != nil {
		return report, err
	}
	report.Dir = dir
	return report, nil
}

func runJobs(cfg Config, jobs []job, collector metrics.Collector) []result {
	cat := catalog.Default()
	results := make([]result, len(jobs))
	queue := make(chan int)
	var wg sync.WaitGroup
	for g := 0; g < cfg.Goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				results[i] = runGame(cat, cfg, jobs[i])
				collector.AddGame(results[i].game.GameMetric)
			}
		}()
	}
	for i := range jobs {
		queue <- i
	}
	close(queue)
	wg.Wait()
	return results
}

// runGame plays one game of a job and converts its metrics to records.
func runGame(cat *catalog.Catalog, cfg Config, j job) result {
	seed := j.seed
	gs, err := game.Setup(cat, len(j.agents), game.Options{Version: cfg.Version, Seed: &seed}, nil)
	if err != nil {
		panic(fmt.Sprintf("failed to set up game %d: %v", j.id, err))
	}

	agents := make([]*agent.Agent, len(j.agents))
	ids := make([]int, len(j.agents))
	for seat, config := range j.agents {
		d, err := agent.ParseDifficulty(config.Difficulty)
		if err != nil {
			panic(err)
		}
		agents[seat] = agent.New(cat, agent.WithDifficulty(d), agent.WithSeed(seed+uint64(seat)+1))
		ids[seat] = config.ID
	}

	options := []engine.Option{}
	if cfg.Validate {
		options = append(options, engine.WithValidation())
	}
	if cfg.Moves {
		options = append(options, engine.WithMoveMetrics())
	}
	gameMetric, moveMetrics := engine.LocalEngine(gs, agents, options...).Run()
	log.Debug().Int("id", j.id).Str("outcome", string(gameMetric.Outcome)).Msgf("completed game with winner: %d", gameMetric.Winner)

	r := result{game: metrics.GameRecord{ID: j.id, Agents: ids, GameMetric: gameMetric}}
	for _, mm := range moveMetrics {
		r.moves = append(r.moves, metrics.MoveRecord{Game: j.id, MoveMetric: mm})
	}
	for _, rm := range gameMetric.Rounds {
		r.rounds = append(r.rounds, metrics.RoundRecord{Game: j.id, RoundMetric: rm})
	}
	return r
}

func write(cfg Config, results []result) (string, error) {
	writer, err := metrics.NewWriter(cfg.OutDir, cfg.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	var games []metrics.GameRecord
	var moves []metrics.MoveRecord
	var rounds []metrics.RoundRecord
	for _, r := range results {
		games = append(games, r.game)
		moves = append(moves, r.moves...)
		rounds = append(rounds, r.rounds...)
	}

	if err := writer.WriteAgentConfigs(agentConfigs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteRoundRecords(rounds); err != nil {
		return "", fmt.Errorf("failed to write round records: %w", err)
	}
	if cfg.Moves {
		if err := writer.WriteMoveRecords(moves); err != nil {
			return "", fmt.Errorf("failed to write move records: %w", err)
		}
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
	return writer.Dir(), nil
}
