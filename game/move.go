package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMove is returned, possibly wrapped, by every move whose preconditions fail. The state is left unchanged.
	ErrInvalidMove = errors.New("invalid move")
	ErrGameOver    = fmt.Errorf("%w: game is over", ErrInvalidMove)
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidMove, fmt.Sprintf(format, args...))
}

// MoveType names one of the moves of the game.
type MoveType int

const (
	PlaceWorkerMove MoveType = iota
	PlaceWorkerOnBuildingMove
	SelectBuildCardMove
	ToggleDiscardMove
	ConfirmDiscardMove
	CancelActionMove
	SelectDesignOfficeCardMove
	ToggleDualCardMove
	ConfirmDualConstructionMove
	TogglePaydaySellMove
	ConfirmPaydaySellMove
	ConfirmPaydayMove
	SelectVillageOptionMove
)

var moveNames = map[MoveType]string{
	PlaceWorkerMove:             "placeWorker",
	PlaceWorkerOnBuildingMove:   "placeWorkerOnBuilding",
	SelectBuildCardMove:         "selectBuildCard",
	ToggleDiscardMove:           "toggleDiscard",
	ConfirmDiscardMove:          "confirmDiscard",
	CancelActionMove:            "cancelAction",
	SelectDesignOfficeCardMove:  "selectDesignOfficeCard",
	ToggleDualCardMove:          "toggleDualCard",
	ConfirmDualConstructionMove: "confirmDualConstruction",
	TogglePaydaySellMove:        "togglePaydaySell",
	ConfirmPaydaySellMove:       "confirmPaydaySell",
	ConfirmPaydayMove:           "confirmPayday",
	SelectVillageOptionMove:     "selectVillageOption",
}

func (t MoveType) String() string {
	if s, ok := moveNames[t]; ok {
		return s
	}
	return fmt.Sprintf("MoveType(%d)", int(t))
}

// Village options.
const (
	VillageTakeConsumables = 0
	VillageTradeForCards   = 1
)

// Move is one move invocation. Arg is the workplace id, building instance id, hand index,
// building index or option the move type takes; moves without an argument ignore it.
type Move struct {
	Type   MoveType `json:"type"`
	Player int      `json:"player"`
	Arg    int      `json:"arg"`
}

func (m Move) String() string {
	switch m.Type {
	case ConfirmDiscardMove, CancelActionMove, ConfirmDualConstructionMove, ConfirmPaydaySellMove, ConfirmPaydayMove:
		return fmt.Sprintf("%s(p%d)", m.Type, m.Player)
	}
	return fmt.Sprintf("%s(p%d, %d)", m.Type, m.Player, m.Arg)
}

// Apply dispatches a move to the matching method.
func (gs *GameState) Apply(m Move) error {
	var err error
	switch m.Type {
	case PlaceWorkerMove:
		err = gs.PlaceWorker(m.Player, m.Arg)
	case PlaceWorkerOnBuildingMove:
		err = gs.PlaceWorkerOnBuilding(m.Player, m.Arg)
	case SelectBuildCardMove:
		err = gs.SelectBuildCard(m.Player, m.Arg)
	case ToggleDiscardMove:
		err = gs.ToggleDiscard(m.Player, m.Arg)
	case ConfirmDiscardMove:
		err = gs.ConfirmDiscard(m.Player)
	case CancelActionMove:
		err = gs.CancelAction(m.Player)
	case SelectDesignOfficeCardMove:
		err = gs.SelectDesignOfficeCard(m.Player, m.Arg)
	case ToggleDualCardMove:
		err = gs.ToggleDualCard(m.Player, m.Arg)
	case ConfirmDualConstructionMove:
		err = gs.ConfirmDualConstruction(m.Player)
	case TogglePaydaySellMove:
		err = gs.TogglePaydaySell(m.Player, m.Arg)
	case ConfirmPaydaySellMove:
		err = gs.ConfirmPaydaySell(m.Player)
	case ConfirmPaydayMove:
		err = gs.ConfirmPayday(m.Player)
	case SelectVillageOptionMove:
		err = gs.SelectVillageOption(m.Player, m.Arg)
	default:
		return invalid("unknown move type %d", int(m.Type))
	}
	if err == nil {
		move := m
		gs.LastMove = &move
	}
	return err
}

// checkPhase validates the phase and, for turn-based phases, that the player owns the turn.
func (gs *GameState) checkPhase(player int, phases ...Phase) error {
	if gs.Phase == GameEndPhase {
		return ErrGameOver
	}
	if gs.Player(player) == nil {
		return invalid("unknown player %d", player)
	}
	ok := false
	for _, ph := range phases {
		if gs.Phase == ph {
			ok = true
			break
		}
	}
	if !ok {
		return invalid("not allowed in %s phase", gs.Phase)
	}
	if (gs.Phase == WorkPhase || gs.Phase.singleActor()) && player != gs.CurrentPlayer {
		return invalid("player %d is not the active player", player)
	}
	return nil
}
