package main

import (
	"flag"
	"os"
	"time"

	"natecon/catalog"
	"natecon/experiments"
	"natecon/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	name := flag.String("name", "matchups", "Name of the experiment")
	out := flag.String("out", "results", "Directory the records are written to, empty to skip")
	players := flag.Int("players", 3, "Players per game")
	games := flag.Int("games", meta.GAMES_PER_MATCHUP, "Games per match up")
	version := flag.String("version", string(catalog.Base), "Card set: base or glory")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed of the experiment")
	goroutines := flag.Int("goroutines", meta.GO_ROUTINES, "Number of games played in parallel")
	validate := flag.Bool("validate", false, "Check invariants after every move")
	moves := flag.Bool("moves", false, "Record a metric per move")
	level := flag.String("log", "info", "Log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(lvl)

	v := catalog.Version(*version)
	if v != catalog.Base && v != catalog.Glory {
		log.Fatal().Str("version", *version).Msg("unknown card set")
	}

	report, err := experiments.Run(experiments.Config{
		Name:       *name,
		OutDir:     *out,
		Players:    *players,
		Version:    v,
		Games:      *games,
		Seed:       *seed,
		Goroutines: *goroutines,
		Validate:   *validate,
		Moves:      *moves,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	log.Info().
		Uint64("seed", *seed).
		Int("games", report.Games).
		Int("moves", report.Moves).
		Interface("wins", report.Wins).
		Msg("done")
}
