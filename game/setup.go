package game

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"natecon/catalog"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/exp/rand"
)

const (
	MinPlayers = 2
	MaxPlayers = 4
)

// Options configures a new game. A nil Seed shuffles from the clock.
type Options struct {
	Version  catalog.Version `mapstructure:"version" json:"version"`
	IsOnline bool            `mapstructure:"isOnline" json:"isOnline"`
	Seed     *uint64         `mapstructure:"seed" json:"seed,omitempty"`
}

// DecodeOptions turns a loosely typed option map (decoded JSON, query parameters) into Options.
func DecodeOptions(raw map[string]any) (Options, error) {
	opts := Options{Version: catalog.Base}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringToUintHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &opts,
		TagName:          "mapstructure",
	})
	if err != nil {
		return Options{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Options{}, fmt.Errorf("invalid game options: %w", err)
	}
	if err := opts.validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// stringToUintHookFunc accepts seeds written as decimal strings, e.g. from query parameters.
func stringToUintHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
		if from == reflect.String && to == reflect.Uint64 {
			return strconv.ParseUint(data.(string), 10, 64)
		}
		return data, nil
	}
}

func (o Options) validate() error {
	switch o.Version {
	case catalog.Base, catalog.Glory:
		return nil
	}
	return fmt.Errorf("unknown version %q", o.Version)
}

// Setup creates the initial state of a game. ids may be nil, in which case the game gets its own allocator.
func Setup(cat *catalog.Catalog, numPlayers int, opts Options, ids *UIDAllocator) (*GameState, error) {
	if numPlayers < MinPlayers || numPlayers > MaxPlayers {
		return nil, fmt.Errorf("player count must be between %d and %d, got %d", MinPlayers, MaxPlayers, numPlayers)
	}
	if opts.Version == "" {
		opts.Version = catalog.Base
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = NewUIDAllocator()
	}
	seed := uint64(time.Now().UnixNano())
	if opts.Seed != nil {
		seed = *opts.Seed
	}

	gs := &GameState{
		ID:         uuid.NewString(),
		Version:    opts.Version,
		IsOnline:   opts.IsOnline,
		NumPlayers: numPlayers,
		Round:      1,
		Phase:      WorkPhase,
		UIDs:       ids,
		cat:        cat,
		rng:        rand.New(rand.NewSource(seed)),
	}
	gs.buildDeck()

	for i := 0; i < numPlayers; i++ {
		p := &PlayerState{
			ID:         i,
			Money:      StartingMoney + i,
			Workers:    StartingWorkers,
			Available:  StartingWorkers,
			MaxHand:    DefaultMaxHand,
			MaxWorkers: DefaultMaxWorkers,
		}
		gs.drawInto(p, StartingHand)
		gs.Players = append(gs.Players, p)
	}

	gs.openWorkplaces(1)
	gs.logf(-1, "game set up for %d players (%s)", numPlayers, opts.Version)
	return gs, nil
}

// openWorkplaces appends the public workplaces that open in the given round.
func (gs *GameState) openWorkplaces(round int) {
	for _, def := range gs.cat.WorkplacesFor(gs.Version, gs.NumPlayers) {
		if def.Round != round {
			continue
		}
		gs.Workplaces = append(gs.Workplaces, &Workplace{
			ID:         gs.NextWorkplace,
			DefID:      def.ID,
			Name:       def.Name,
			Text:       def.Text,
			Action:     def.Action,
			Multiple:   def.Multiple,
			Workers:    def.WorkerRequirement(),
			AddedRound: round,
		})
		gs.NextWorkplace++
		if round > 1 {
			gs.logf(-1, "%s opens", def.Name)
		}
	}
}
