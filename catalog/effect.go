package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Effect is the kind of action a workplace or building performs when a worker is placed on it.
type Effect int

const (
	EffectNone Effect = iota
	EffectStartPlayer
	EffectDraw
	EffectDrawConsumables
	EffectDrawConsumablesUpTo
	EffectHire
	EffectHireRobot
	EffectBuild
	EffectDualBuild
	EffectSell
	EffectExchange
	EffectChemical
	EffectDesignOffice
	EffectVillage
	EffectTheater
	EffectTokens
	EffectLastAction
	numEffects
)

var effectNames = map[Effect]string{
	EffectNone:                "none",
	EffectStartPlayer:         "start_player",
	EffectDraw:                "draw",
	EffectDrawConsumables:     "draw_consumables",
	EffectDrawConsumablesUpTo: "draw_consumables_up_to",
	EffectHire:                "hire",
	EffectHireRobot:           "hire_robot",
	EffectBuild:               "build",
	EffectDualBuild:           "dual_build",
	EffectSell:                "sell",
	EffectExchange:            "exchange",
	EffectChemical:            "chemical",
	EffectDesignOffice:        "design_office",
	EffectVillage:             "village",
	EffectTheater:             "theater",
	EffectTokens:              "tokens",
	EffectLastAction:          "last_action",
}

func (e Effect) String() string {
	if s, ok := effectNames[e]; ok {
		return s
	}
	return fmt.Sprintf("Effect(%d)", int(e))
}

// Effects lists every effect kind except EffectNone.
func Effects() []Effect {
	all := make([]Effect, 0, numEffects-1)
	for e := EffectNone + 1; e < numEffects; e++ {
		all = append(all, e)
	}
	return all
}

func (e *Effect) UnmarshalYAML(value *yaml.Node) error {
	return unmarshalName(value, effectNames, e, "effect")
}

// BuildRule restricts which cards a build action may construct and how payment is counted.
type BuildRule int

const (
	BuildAny BuildRule = iota
	BuildFarmOnly
	BuildDoubleConsumables
)

var buildRuleNames = map[BuildRule]string{
	BuildAny:               "any",
	BuildFarmOnly:          "farm_only",
	BuildDoubleConsumables: "double_consumables",
}

func (r BuildRule) String() string {
	if s, ok := buildRuleNames[r]; ok {
		return s
	}
	return fmt.Sprintf("BuildRule(%d)", int(r))
}

func (r *BuildRule) UnmarshalYAML(value *yaml.Node) error {
	return unmarshalName(value, buildRuleNames, r, "build rule")
}

// BonusKind selects the end-game condition of a bonus card.
type BonusKind int

const (
	BonusNone BonusKind = iota
	BonusPerBuilding
	BonusPerWorker
	BonusPerTag
	BonusPerRobot
	BonusTagsAll
	BonusCashAtLeast
	BonusWorkersAtLeast
	BonusRobotsAtLeast
	BonusBuildingsAtLeast
)

var bonusKindNames = map[BonusKind]string{
	BonusNone:             "none",
	BonusPerBuilding:      "per_building",
	BonusPerWorker:        "per_worker",
	BonusPerTag:           "per_tag",
	BonusPerRobot:         "per_robot",
	BonusTagsAll:          "tags_all",
	BonusCashAtLeast:      "cash_at_least",
	BonusWorkersAtLeast:   "workers_at_least",
	BonusRobotsAtLeast:    "robots_at_least",
	BonusBuildingsAtLeast: "buildings_at_least",
}

func (k BonusKind) String() string {
	if s, ok := bonusKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("BonusKind(%d)", int(k))
}

// IsThreshold reports whether the bonus pays a fixed amount once a predicate holds.
func (k BonusKind) IsThreshold() bool {
	switch k {
	case BonusTagsAll, BonusCashAtLeast, BonusWorkersAtLeast, BonusRobotsAtLeast, BonusBuildingsAtLeast:
		return true
	}
	return false
}

func (k *BonusKind) UnmarshalYAML(value *yaml.Node) error {
	return unmarshalName(value, bonusKindNames, k, "bonus kind")
}

// CostRuleKind selects a variable construction cost rule.
type CostRuleKind int

const (
	CostRuleNone CostRuleKind = iota
	CostRuleTokenThreshold
)

var costRuleNames = map[CostRuleKind]string{
	CostRuleNone:           "none",
	CostRuleTokenThreshold: "token_threshold",
}

func (k CostRuleKind) String() string {
	if s, ok := costRuleNames[k]; ok {
		return s
	}
	return fmt.Sprintf("CostRuleKind(%d)", int(k))
}

func (k *CostRuleKind) UnmarshalYAML(value *yaml.Node) error {
	return unmarshalName(value, costRuleNames, k, "cost rule")
}

func unmarshalName[T comparable](value *yaml.Node, names map[T]string, out *T, what string) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	for k, name := range names {
		if name == s {
			*out = k
			return nil
		}
	}
	return fmt.Errorf("line %d: unknown %s %q", value.Line, what, s)
}
