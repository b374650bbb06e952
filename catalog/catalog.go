package catalog

import (
	"fmt"

	"golang.org/x/exp/slices"
)

type Version string

const (
	Base  Version = "base"
	Glory Version = "glory"
)

// ConsumableID is the definition id shared by every consumable token. It is not part of any deck.
const ConsumableID = "consumable"

// Well-known tags.
const (
	TagFarm         = "farm"
	TagFactory      = "factory"
	TagSlashAndBurn = "slash-and-burn"
)

// Action is what happens when a worker is placed on a workplace or building.
type Action struct {
	Effect Effect    `yaml:"effect" json:"effect"`
	Amount int       `yaml:"amount" json:"amount"`
	Param  int       `yaml:"param" json:"param"`
	Rule   BuildRule `yaml:"rule" json:"rule"`
}

// CostRule lowers the construction cost when the owner meets a threshold.
type CostRule struct {
	Kind      CostRuleKind `yaml:"kind" json:"kind"`
	Threshold int          `yaml:"threshold" json:"threshold"`
	Delta     int          `yaml:"delta" json:"delta"`
}

// EndBonus is the conditional victory point payout of a bonus card.
type EndBonus struct {
	Kind   BonusKind `yaml:"kind" json:"kind"`
	Tag    string    `yaml:"tag" json:"tag,omitempty"`
	Tags   []string  `yaml:"tags" json:"tags,omitempty"`
	Param  int       `yaml:"param" json:"param,omitempty"`
	Payout int       `yaml:"payout" json:"payout"`
}

// CardDef is an immutable building definition.
type CardDef struct {
	ID            string    `yaml:"id" json:"id"`
	Name          string    `yaml:"name" json:"name"`
	Cost          int       `yaml:"cost" json:"cost"`
	VP            int       `yaml:"vp" json:"vp"`
	Copies        int       `yaml:"copies" json:"copies"`
	Tags          []string  `yaml:"tags" json:"tags,omitempty"`
	Unsellable    bool      `yaml:"unsellable" json:"unsellable,omitempty"`
	ConsumeOnUse  bool      `yaml:"consume_on_use" json:"consumeOnUse,omitempty"`
	Text          string    `yaml:"text" json:"text"`
	Workers       int       `yaml:"workers" json:"workers,omitempty"` // 0 means 1
	Action        Action    `yaml:"action" json:"action"`
	HandBonus     int       `yaml:"hand_bonus" json:"handBonus,omitempty"`
	WorkerBonus   int       `yaml:"worker_bonus" json:"workerBonus,omitempty"`
	DebtExemption int       `yaml:"debt_exemption" json:"debtExemption,omitempty"`
	CostRule      *CostRule `yaml:"cost_rule" json:"costRule,omitempty"`
	EndBonus      *EndBonus `yaml:"end_bonus" json:"endBonus,omitempty"`
	Versions      []Version `yaml:"versions" json:"versions"`
}

func (d CardDef) HasTag(tag string) bool {
	return slices.Contains(d.Tags, tag)
}

// WorkerRequirement is the number of workers a placement on this building consumes.
func (d CardDef) WorkerRequirement() int {
	return max(1, d.Workers)
}

// Usable reports whether a worker can be placed on the built card.
func (d CardDef) Usable() bool {
	return d.Action.Effect != EffectNone
}

func (d CardDef) IsConsumable() bool {
	return d.ID == ConsumableID
}

func (d CardDef) InVersion(v Version) bool {
	return slices.Contains(d.Versions, v)
}

// WorkplaceDef is a public workplace definition.
type WorkplaceDef struct {
	ID         string    `yaml:"id" json:"id"`
	Name       string    `yaml:"name" json:"name"`
	Text       string    `yaml:"text" json:"text"`
	Action     Action    `yaml:"action" json:"action"`
	Multiple   bool      `yaml:"multiple" json:"multiple"`
	Workers    int       `yaml:"workers" json:"workers,omitempty"`
	Round      int       `yaml:"round" json:"round"` // 1 means available from the start
	MinPlayers int       `yaml:"min_players" json:"minPlayers,omitempty"`
	Versions   []Version `yaml:"versions" json:"versions"`
}

func (w WorkplaceDef) WorkerRequirement() int {
	return max(1, w.Workers)
}

func (w WorkplaceDef) InVersion(v Version) bool {
	return slices.Contains(w.Versions, v)
}

var consumableDef = CardDef{
	ID:         ConsumableID,
	Name:       "Consumable",
	Text:       "A good. Counts as a card for payments and discards, worth nothing at the end.",
	Unsellable: true,
}

// Catalog is the immutable registry of card and workplace definitions.
type Catalog struct {
	cards      map[string]CardDef
	order      []string
	workplaces []WorkplaceDef
}

// New validates the definitions and returns a catalog holding private copies of them.
func New(cards []CardDef, workplaces []WorkplaceDef) (*Catalog, error) {
	c := &Catalog{
		cards: make(map[string]CardDef, len(cards)),
	}
	for _, def := range cards {
		if def.ID == "" {
			return nil, fmt.Errorf("card %q: missing id", def.Name)
		}
		if def.ID == ConsumableID {
			return nil, fmt.Errorf("card id %q is reserved", ConsumableID)
		}
		if _, dup := c.cards[def.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", def.ID)
		}
		if def.Copies <= 0 {
			return nil, fmt.Errorf("card %q: copies must be positive", def.ID)
		}
		if def.Cost < 0 || def.Workers < 0 {
			return nil, fmt.Errorf("card %q: negative cost or worker requirement", def.ID)
		}
		if len(def.Versions) == 0 {
			return nil, fmt.Errorf("card %q: no versions", def.ID)
		}
		if def.Action.Effect == EffectStartPlayer {
			return nil, fmt.Errorf("card %q: %s is a public-only effect", def.ID, def.Action.Effect)
		}
		def.Tags = slices.Clone(def.Tags)
		def.Versions = slices.Clone(def.Versions)
		if def.CostRule != nil {
			rule := *def.CostRule
			def.CostRule = &rule
		}
		if def.EndBonus != nil {
			bonus := *def.EndBonus
			bonus.Tags = slices.Clone(bonus.Tags)
			def.EndBonus = &bonus
		}
		c.cards[def.ID] = def
		c.order = append(c.order, def.ID)
	}

	seen := make(map[string]bool, len(workplaces))
	for _, wp := range workplaces {
		if wp.ID == "" {
			return nil, fmt.Errorf("workplace %q: missing id", wp.Name)
		}
		if seen[wp.ID] {
			return nil, fmt.Errorf("duplicate workplace id %q", wp.ID)
		}
		if wp.Action.Effect == EffectNone {
			return nil, fmt.Errorf("workplace %q: no effect", wp.ID)
		}
		if wp.Round < 1 {
			return nil, fmt.Errorf("workplace %q: round must be at least 1", wp.ID)
		}
		seen[wp.ID] = true
		wp.Versions = slices.Clone(wp.Versions)
		c.workplaces = append(c.workplaces, wp)
	}
	return c, nil
}

// Lookup returns the definition for id. The consumable sentinel is always known.
func (c *Catalog) Lookup(id string) (CardDef, bool) {
	if id == ConsumableID {
		return consumableDef, true
	}
	def, ok := c.cards[id]
	return def, ok
}

// MustLookup is Lookup for ids that come from the catalog itself; an unknown id is a programming error.
func (c *Catalog) MustLookup(id string) CardDef {
	def, ok := c.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("catalog: unknown card id %q", id))
	}
	return def
}

// Cards returns every building definition in catalog order.
func (c *Catalog) Cards() []CardDef {
	defs := make([]CardDef, 0, len(c.order))
	for _, id := range c.order {
		defs = append(defs, c.cards[id])
	}
	return defs
}

// DeckDefsFor returns the building definitions that make up the deck of a version.
func (c *Catalog) DeckDefsFor(v Version) []CardDef {
	var defs []CardDef
	for _, id := range c.order {
		if def := c.cards[id]; def.InVersion(v) {
			defs = append(defs, def)
		}
	}
	return defs
}

// WorkplacesFor returns the public workplaces of a version for a player count, ordered by the round they open.
func (c *Catalog) WorkplacesFor(v Version, numPlayers int) []WorkplaceDef {
	var defs []WorkplaceDef
	for _, wp := range c.workplaces {
		if wp.InVersion(v) && wp.MinPlayers <= numPlayers {
			defs = append(defs, wp)
		}
	}
	slices.SortStableFunc(defs, func(a, b WorkplaceDef) int {
		return a.Round - b.Round
	})
	return defs
}
