package game

import (
	"natecon/catalog"

	"golang.org/x/exp/slices"
)

type Breakdown struct {
	Buildings int `json:"buildings"` // Printed VP of constructed cards
	Bonus     int `json:"bonus"`     // End bonuses of owned bonus cards
	Money     int `json:"money"`
	Debt      int `json:"debt"` // Zero or negative
	Tokens    int `json:"tokens"`
}

type ScoreResult struct {
	Player    int       `json:"player"`
	Total     int       `json:"total"`
	Breakdown Breakdown `json:"breakdown"`
}

// CalculateScores scores every player, best first. Ties keep seat order. The state is not modified.
func CalculateScores(gs *GameState) []ScoreResult {
	results := make([]ScoreResult, 0, len(gs.Players))
	for _, p := range gs.Players {
		results = append(results, ScorePlayer(gs.cat, p))
	}
	slices.SortStableFunc(results, func(a, b ScoreResult) int {
		return b.Total - a.Total
	})
	return results
}

func ScorePlayer(cat *catalog.Catalog, p *PlayerState) ScoreResult {
	var b Breakdown
	for _, slot := range p.Buildings {
		def := cat.MustLookup(slot.Card.DefID)
		b.Buildings += def.VP
		if def.EndBonus != nil {
			b.Bonus += BonusFor(cat, *def.EndBonus, p)
		}
	}
	b.Money = p.Money
	b.Debt = DebtScore(cat, p)
	b.Tokens = TokenPayout(p.Tokens)
	return ScoreResult{
		Player:    p.ID,
		Total:     b.Buildings + b.Bonus + b.Money + b.Debt + b.Tokens,
		Breakdown: b,
	}
}

// BonusFor evaluates one end bonus against the player's current holdings.
func BonusFor(cat *catalog.Catalog, bonus catalog.EndBonus, p *PlayerState) int {
	switch bonus.Kind {
	case catalog.BonusPerBuilding:
		return bonus.Payout * len(p.Buildings)
	case catalog.BonusPerWorker:
		return bonus.Payout * p.Workers
	case catalog.BonusPerTag:
		return bonus.Payout * countTag(cat, p, bonus.Tag)
	case catalog.BonusPerRobot:
		return bonus.Payout * p.Robots
	case catalog.BonusTagsAll:
		for _, tag := range bonus.Tags {
			if countTag(cat, p, tag) == 0 {
				return 0
			}
		}
		return bonus.Payout
	case catalog.BonusCashAtLeast:
		return thresholdPayout(p.Money >= bonus.Param, bonus.Payout)
	case catalog.BonusWorkersAtLeast:
		return thresholdPayout(p.Workers >= bonus.Param, bonus.Payout)
	case catalog.BonusRobotsAtLeast:
		return thresholdPayout(p.Robots >= bonus.Param, bonus.Payout)
	case catalog.BonusBuildingsAtLeast:
		return thresholdPayout(len(p.Buildings) >= bonus.Param, bonus.Payout)
	}
	return 0
}

func thresholdPayout(met bool, payout int) int {
	if met {
		return payout
	}
	return 0
}

func countTag(cat *catalog.Catalog, p *PlayerState, tag string) int {
	n := 0
	for _, slot := range p.Buildings {
		if cat.MustLookup(slot.Card.DefID).HasTag(tag) {
			n++
		}
	}
	return n
}

// TokenPayout converts VP tokens: every full set of three is worth 10, leftovers 1 each.
func TokenPayout(tokens int) int {
	return tokens/3*10 + tokens%3
}

// DebtScore is the (non-positive) score for unpaid debts after the best owned exemption.
func DebtScore(cat *catalog.Catalog, p *PlayerState) int {
	exemption := 0
	for _, slot := range p.Buildings {
		exemption = max(exemption, cat.MustLookup(slot.Card.DefID).DebtExemption)
	}
	return -DebtPenalty * max(0, p.Debts-exemption)
}
