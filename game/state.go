package game

import (
	"fmt"

	"natecon/catalog"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

const (
	MaxRounds         = 9
	StartingWorkers   = 2
	DefaultMaxWorkers = 5
	DefaultMaxHand    = 5
	StartingHand      = 3
	StartingMoney     = 5
	DebtPenalty       = 3
)

// HiddenID replaces the definition id of cards a viewer may not see.
const HiddenID = "hidden"

// Card is one card instance. DefID points into the catalog.
type Card struct {
	UID   int    `json:"uid"`
	DefID string `json:"defId"`
}

func (c Card) IsConsumable() bool {
	return c.DefID == catalog.ConsumableID
}

// BuildingSlot is a constructed card. Worked is reset at the start of every round.
type BuildingSlot struct {
	Card   Card `json:"card"`
	Worked bool `json:"worked"`
}

type PlayerState struct {
	ID         int            `json:"id"`
	Hand       []Card         `json:"hand"`       // Order matters, moves select by index
	Money      int            `json:"money"`      // Cash on hand
	Workers    int            `json:"workers"`    // Hired workers including robots
	Available  int            `json:"available"`  // Untapped workers this round
	Robots     int            `json:"robots"`     // Workers that never draw a wage
	Buildings  []BuildingSlot `json:"buildings"`  // Constructed cards in build order
	Debts      int            `json:"debts"`      // Unpaid wage units
	MaxHand    int            `json:"maxHand"`    // Hand limit enforced at cleanup
	MaxWorkers int            `json:"maxWorkers"` // Worker cap
	Tokens     int            `json:"tokens"`     // VP tokens
}

// Wageable returns the number of workers that draw a wage.
func (p *PlayerState) Wageable() int {
	return p.Workers - p.Robots
}

func (p *PlayerState) buildingIndex(uid int) int {
	return slices.IndexFunc(p.Buildings, func(b BuildingSlot) bool { return b.Card.UID == uid })
}

func (p *PlayerState) handIndex(uid int) int {
	return slices.IndexFunc(p.Hand, func(c Card) bool { return c.UID == uid })
}

// Consumables counts the consumable tokens in hand.
func (p *PlayerState) Consumables() int {
	n := 0
	for _, c := range p.Hand {
		if c.IsConsumable() {
			n++
		}
	}
	return n
}

func (p *PlayerState) copy() *PlayerState {
	cp := *p
	cp.Hand = slices.Clone(p.Hand)
	cp.Buildings = slices.Clone(p.Buildings)
	return &cp
}

// Workplace is a public slot accepting workers. Sold buildings become workplaces with SourceCard set.
type Workplace struct {
	ID         int            `json:"id"`
	DefID      string         `json:"defId,omitempty"`
	Name       string         `json:"name"`
	Text       string         `json:"text"`
	Action     catalog.Action `json:"action"`
	Multiple   bool           `json:"multiple"`
	Workers    int            `json:"workers"` // Workers consumed per placement
	Occupants  []int          `json:"occupants"`
	AddedRound int            `json:"addedRound"`
	SourceCard *Card          `json:"sourceCard,omitempty"`
}

func (w *Workplace) copy() *Workplace {
	cp := *w
	cp.Occupants = slices.Clone(w.Occupants)
	if w.SourceCard != nil {
		card := *w.SourceCard
		cp.SourceCard = &card
	}
	return &cp
}

// Placement records which slot consumed the workers of the effect that is still resolving.
type Placement struct {
	Player      int `json:"player"`
	WorkplaceID int `json:"workplaceId"` // -1 when the worker went to a building
	BuildingUID int `json:"buildingUid"` // 0 when the worker went to a public workplace
	Workers     int `json:"workers"`
}

// Callback is what a committed discard pays for.
type Callback int

const (
	CallbackSell Callback = iota
	CallbackDraw
	CallbackBuild
	CallbackDualBuild
	CallbackVillage
	CallbackTokens
)

var callbackNames = map[Callback]string{
	CallbackSell:      "sell",
	CallbackDraw:      "draw",
	CallbackBuild:     "build",
	CallbackDualBuild: "dualBuild",
	CallbackVillage:   "village",
	CallbackTokens:    "tokens",
}

func (c Callback) String() string {
	if s, ok := callbackNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Callback(%d)", int(c))
}

type DiscardState struct {
	Player          int      `json:"player"`
	Count           int      `json:"count"`
	Reason          string   `json:"reason"`
	Callback        Callback `json:"callback"`
	Amount          int      `json:"amount"`
	CardUIDs        []int    `json:"cardUids,omitempty"` // Cards being built, never selectable
	Selected        []int    `json:"selected"`           // Hand indices
	Weighted        bool     `json:"weighted"`           // Consumables pay 2
	ConsumablesOnly bool     `json:"consumablesOnly"`
}

type BuildState struct {
	Player    int               `json:"player"`
	Reduction int               `json:"reduction"`
	Rule      catalog.BuildRule `json:"rule"`
}

type DesignOfficeState struct {
	Player   int    `json:"player"`
	Revealed []Card `json:"revealed"`
}

type DualState struct {
	Player   int   `json:"player"`
	Selected []int `json:"selected"` // Hand indices
}

type VillageState struct {
	Player int `json:"player"`
}

type PaydayPlayer struct {
	Wage         int   `json:"wage"`
	NeedsSelling bool  `json:"needsSelling"`
	Selected     []int `json:"selected"` // Building indices
	Confirmed    bool  `json:"confirmed"`
}

type PaydayState struct {
	Players []PaydayPlayer `json:"players"`
}

type CleanupPlayer struct {
	Excess    int   `json:"excess"`
	Selected  []int `json:"selected"` // Hand indices
	Confirmed bool  `json:"confirmed"`
}

type CleanupState struct {
	Players []CleanupPlayer `json:"players"`
}

type LogEntry struct {
	Round  int    `json:"round"`
	Player int    `json:"player"` // -1 for system entries
	Text   string `json:"text"`
}

// GameState is the single mutable aggregate of one game. It is changed only through moves.
type GameState struct {
	ID            string             `json:"id"`
	Version       catalog.Version    `json:"version"`
	IsOnline      bool               `json:"isOnline"`
	NumPlayers    int                `json:"numPlayers"`
	Players       []*PlayerState     `json:"players"`
	Workplaces    []*Workplace       `json:"workplaces"`
	Household     int                `json:"household"`     // Shared treasury receiving wages
	Round         int                `json:"round"`         // 1..MaxRounds
	Phase         Phase              `json:"phase"`         // Exactly one phase is active
	StartPlayer   int                `json:"startPlayer"`   // Player opening the next round
	CurrentPlayer int                `json:"currentPlayer"` // Turn owner in work and its sub-phases
	Deck          []Card             `json:"deck"`          // Top of the deck is index 0
	Discard       []Card             `json:"discard"`       // Never holds consumables
	Pending       *Placement         `json:"pending"`       // Placement whose effect is resolving
	DiscardState  *DiscardState      `json:"discardState"`
	BuildState    *BuildState        `json:"buildState"`
	DesignOffice  *DesignOfficeState `json:"designOffice"`
	DualState     *DualState         `json:"dualState"`
	VillageState  *VillageState      `json:"villageState"`
	PaydayState   *PaydayState       `json:"paydayState"`
	CleanupState  *CleanupState      `json:"cleanupState"`
	Log           []LogEntry         `json:"log"`
	RoundScores   [][]ScoreResult    `json:"roundScores"`
	FinalScores   []ScoreResult      `json:"finalScores"`
	LastMove      *Move              `json:"lastMove"`
	UIDs          *UIDAllocator      `json:"uids"`
	NextWorkplace int                `json:"nextWorkplace"`

	cat *catalog.Catalog
	rng *rand.Rand
}

// Catalog returns the card catalog the game was set up with.
func (gs *GameState) Catalog() *catalog.Catalog {
	return gs.cat
}

// Player returns the state of player id, or nil when id is out of range.
func (gs *GameState) Player(id int) *PlayerState {
	if id < 0 || id >= len(gs.Players) {
		return nil
	}
	return gs.Players[id]
}

func (gs *GameState) Workplace(id int) *Workplace {
	for _, wp := range gs.Workplaces {
		if wp.ID == id {
			return wp
		}
	}
	return nil
}

// TotalAvailable is the number of untapped workers over all players.
func (gs *GameState) TotalAvailable() int {
	total := 0
	for _, p := range gs.Players {
		total += p.Available
	}
	return total
}

func (gs *GameState) def(c Card) catalog.CardDef {
	return gs.cat.MustLookup(c.DefID)
}

// Clone returns a deep copy. The copy shares the catalog and the random source.
func (gs *GameState) Clone() *GameState {
	cp := *gs

	cp.Players = make([]*PlayerState, len(gs.Players))
	for i, p := range gs.Players {
		cp.Players[i] = p.copy()
	}
	cp.Workplaces = make([]*Workplace, len(gs.Workplaces))
	for i, wp := range gs.Workplaces {
		cp.Workplaces[i] = wp.copy()
	}
	cp.Deck = slices.Clone(gs.Deck)
	cp.Discard = slices.Clone(gs.Discard)
	cp.Log = slices.Clone(gs.Log)

	if gs.Pending != nil {
		pending := *gs.Pending
		cp.Pending = &pending
	}
	if gs.DiscardState != nil {
		ds := *gs.DiscardState
		ds.CardUIDs = slices.Clone(ds.CardUIDs)
		ds.Selected = slices.Clone(ds.Selected)
		cp.DiscardState = &ds
	}
	if gs.BuildState != nil {
		bs := *gs.BuildState
		cp.BuildState = &bs
	}
	if gs.DesignOffice != nil {
		do := *gs.DesignOffice
		do.Revealed = slices.Clone(do.Revealed)
		cp.DesignOffice = &do
	}
	if gs.DualState != nil {
		dual := *gs.DualState
		dual.Selected = slices.Clone(dual.Selected)
		cp.DualState = &dual
	}
	if gs.VillageState != nil {
		vs := *gs.VillageState
		cp.VillageState = &vs
	}
	if gs.PaydayState != nil {
		ps := PaydayState{Players: make([]PaydayPlayer, len(gs.PaydayState.Players))}
		for i, pp := range gs.PaydayState.Players {
			pp.Selected = slices.Clone(pp.Selected)
			ps.Players[i] = pp
		}
		cp.PaydayState = &ps
	}
	if gs.CleanupState != nil {
		cs := CleanupState{Players: make([]CleanupPlayer, len(gs.CleanupState.Players))}
		for i, cpl := range gs.CleanupState.Players {
			cpl.Selected = slices.Clone(cpl.Selected)
			cs.Players[i] = cpl
		}
		cp.CleanupState = &cs
	}
	if gs.RoundScores != nil {
		cp.RoundScores = make([][]ScoreResult, len(gs.RoundScores))
		for i, scores := range gs.RoundScores {
			cp.RoundScores[i] = slices.Clone(scores)
		}
	}
	cp.FinalScores = slices.Clone(gs.FinalScores)
	if gs.LastMove != nil {
		m := *gs.LastMove
		cp.LastMove = &m
	}
	if gs.UIDs != nil {
		ids := *gs.UIDs
		cp.UIDs = &ids
	}
	return &cp
}

func (gs *GameState) logf(player int, format string, args ...any) {
	gs.Log = append(gs.Log, LogEntry{
		Round:  gs.Round,
		Player: player,
		Text:   fmt.Sprintf(format, args...),
	})
}
