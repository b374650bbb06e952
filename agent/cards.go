package agent

import (
	"natecon/catalog"
	"natecon/game"
	"natecon/utils"

	"golang.org/x/exp/slices"
)

// stage buckets the game by round.
type stage int

const (
	early stage = iota // rounds 1-3
	mid                // rounds 4-6
	late               // rounds 7-9
)

func stageOf(round int) stage {
	switch {
	case round <= 3:
		return early
	case round <= 6:
		return mid
	default:
		return late
	}
}

// view bundles what every evaluator needs about the acting player.
type view struct {
	cat       *catalog.Catalog
	gs        *game.GameState
	p         *game.PlayerState
	player    int
	stage     stage
	remaining int // Rounds after the current one
}

func newView(cat *catalog.Catalog, gs *game.GameState, player int) *view {
	return &view{
		cat:       cat,
		gs:        gs,
		p:         gs.Players[player],
		player:    player,
		stage:     stageOf(gs.Round),
		remaining: game.MaxRounds - gs.Round,
	}
}

func (v *view) def(c game.Card) catalog.CardDef {
	return v.cat.MustLookup(c.DefID)
}

// category is a coarse taxonomy of what a card does for its owner.
type category int

const (
	categoryDraw category = iota
	categoryProduction
	categoryIncome
	categoryConstruction
	categoryBonus
	categoryUtility
	categoryPureVP
)

func categoryOf(def catalog.CardDef) category {
	switch def.Action.Effect {
	case catalog.EffectDraw, catalog.EffectExchange, catalog.EffectChemical, catalog.EffectDesignOffice, catalog.EffectLastAction:
		return categoryDraw
	case catalog.EffectDrawConsumables, catalog.EffectDrawConsumablesUpTo, catalog.EffectVillage:
		return categoryProduction
	case catalog.EffectSell:
		return categoryIncome
	case catalog.EffectBuild, catalog.EffectDualBuild:
		return categoryConstruction
	case catalog.EffectNone:
		switch {
		case def.EndBonus != nil:
			return categoryBonus
		case def.HandBonus > 0, def.WorkerBonus > 0, def.DebtExemption > 0:
			return categoryUtility
		}
		return categoryPureVP
	}
	return categoryUtility
}

// categoryWeight scales usage value by how much each kind of engine matters at a stage.
var categoryWeight = map[stage]map[category]float64{
	early: {categoryDraw: 1.2, categoryProduction: 1.1, categoryIncome: 1.0, categoryConstruction: 1.3, categoryUtility: 1.0},
	mid:   {categoryDraw: 1.0, categoryProduction: 1.0, categoryIncome: 1.1, categoryConstruction: 1.1, categoryUtility: 0.9},
	late:  {categoryDraw: 0.7, categoryProduction: 0.8, categoryIncome: 1.2, categoryConstruction: 0.9, categoryUtility: 0.7},
}

// cardBonus nudges individual cards the generic evaluation misjudges.
var cardBonus = map[string]float64{
	"construction_company": 5,
	"twin_construction":    3,
	"restaurant":           4,
	"automaton_lab":        4,
	"orchard":              2,
	"steelworks":           2,
	"factory":              2,
	"steam_factory":        2,
	"company_housing":      2,
	"chemical_plant":       1,
	"design_office":        -1,
	"warehouse":            -2,
	"slash_and_burn":       -2,
	"festival_grounds":     -1,
	"law_office":           -3,
}

// dangerRating is how much a building helps opponents once it is sold and becomes a public workplace.
var dangerRating = map[string]float64{
	"restaurant":           8,
	"construction_company": 6,
	"automaton_lab":        6,
	"twin_construction":    5,
	"steelworks":           5,
	"power_plant":          4,
	"factory":              4,
	"steam_factory":        4,
	"brickworks":           4,
	"plantation":           3,
	"theater":              3,
	"chemical_plant":       3,
	"workshop":             2,
	"design_office":        2,
	"pioneer_office":       2,
	"orchard":              2,
	"gallery":              2,
}

const (
	cardValue        = 2.0 // A building card in hand
	consumableValue  = 1.2
	tokenValue       = 3.3
	usageFactor      = 0.45 // Share of remaining rounds a building is expected to be worked
	costTierWeight   = 0.6
	duplicatePenalty = 3.0
)

// actionValue estimates one use of an action for the player, in victory points.
func (v *view) actionValue(a catalog.Action) float64 {
	hand := len(v.p.Hand)
	switch a.Effect {
	case catalog.EffectStartPlayer:
		return 1.5 + float64(a.Amount)*v.drawValue()
	case catalog.EffectDraw:
		return float64(a.Amount) * v.drawValue()
	case catalog.EffectDrawConsumables:
		return float64(a.Amount) * v.consumableValue()
	case catalog.EffectDrawConsumablesUpTo:
		return float64(max(0, a.Amount-hand)) * v.consumableValue()
	case catalog.EffectHire:
		return v.hireValue(false)
	case catalog.EffectHireRobot:
		return v.hireValue(true)
	case catalog.EffectBuild:
		best, _ := v.bestBuild(a.Amount, a.Rule, v.p.Hand)
		return 2 + best*0.6 + float64(a.Amount)
	case catalog.EffectDualBuild:
		best, _, _ := v.bestPair(v.p.Hand)
		return 2 + best*0.5
	case catalog.EffectSell:
		income := float64(min(a.Amount, v.gs.Household))
		return income*v.moneyWeight() - v.discardCost(a.Param)
	case catalog.EffectExchange:
		return float64(a.Amount)*v.drawValue() - v.discardCost(a.Param)
	case catalog.EffectChemical:
		n := a.Amount
		if hand == 0 {
			n *= 2
		}
		return float64(n) * v.drawValue()
	case catalog.EffectDesignOffice:
		return 1 + v.drawValue()*1.5
	case catalog.EffectVillage:
		if v.p.Consumables() >= 2 {
			return 3*v.drawValue() - 2*consumableValue
		}
		return 2 * v.consumableValue()
	case catalog.EffectTheater:
		return float64(a.Amount)*tokenValue - v.discardCost(a.Param)
	case catalog.EffectTokens:
		value := float64(a.Amount) * tokenValue
		if (v.p.Tokens+a.Amount)/3 > v.p.Tokens/3 {
			value += 2
		}
		return value
	case catalog.EffectLastAction:
		value := float64(a.Amount) * v.drawValue()
		if v.gs.TotalAvailable() <= 1 {
			value += float64(a.Param) * v.drawValue()
		}
		return value
	}
	return 0
}

// drawValue is what one more building card is worth given the room left in hand.
func (v *view) drawValue() float64 {
	if len(v.p.Hand) >= v.p.MaxHand+1 {
		return cardValue * 0.3
	}
	if v.stage == late && v.remaining == 0 {
		return cardValue * 0.2
	}
	return cardValue
}

func (v *view) consumableValue() float64 {
	if len(v.p.Hand) >= v.p.MaxHand+1 {
		return consumableValue * 0.3
	}
	return consumableValue
}

// wageShortfall is how much cash the player still lacks for the coming payday.
func (v *view) wageShortfall() int {
	return max(0, game.WageDue(v.p, v.gs.Round)-v.p.Money)
}

// moneyWeight values cash above face value while the next wage is not covered.
func (v *view) moneyWeight() float64 {
	if v.wageShortfall() > 0 {
		return 1.6
	}
	if v.stage == late {
		return 1.0
	}
	return 0.8
}

// discardCost is the retain value of the n cheapest cards in hand.
func (v *view) discardCost(n int) float64 {
	ranked := v.rankHand(v.p.Hand, nil)
	cost := 0.0
	for i := 0; i < n && i < len(ranked); i++ {
		cost += ranked[i].value
	}
	return cost
}

// usageValue estimates what working a building brings over the rest of the game.
func (v *view) usageValue(def catalog.CardDef) float64 {
	if !def.Usable() {
		return 0
	}
	if def.Action.Effect == catalog.EffectHireRobot {
		return v.hireValue(true)
	}
	perUse := v.actionValueFor(def)
	if def.ConsumeOnUse {
		return perUse
	}
	uses := float64(v.remaining) * usageFactor
	if v.remaining == 0 {
		uses = 0.3
	}
	weight := categoryWeight[v.stage][categoryOf(def)]
	if weight == 0 {
		weight = 1
	}
	perUse /= float64(def.WorkerRequirement())
	return perUse * uses * weight
}

// actionValueFor rates a building's action independent of the current hand, which changes before it is used.
func (v *view) actionValueFor(def catalog.CardDef) float64 {
	a := def.Action
	switch a.Effect {
	case catalog.EffectBuild:
		return 6 + float64(a.Amount)*2
	case catalog.EffectDualBuild:
		return 8
	case catalog.EffectSell:
		return float64(a.Amount)*0.6 - float64(a.Param)*cardValue*0.5
	case catalog.EffectExchange:
		return float64(a.Amount-a.Param) * cardValue
	case catalog.EffectDrawConsumablesUpTo:
		return float64(max(1, a.Amount-2)) * consumableValue
	case catalog.EffectVillage:
		return 3 * consumableValue
	case catalog.EffectTheater:
		return float64(a.Amount)*tokenValue - float64(a.Param)*consumableValue
	case catalog.EffectLastAction:
		return float64(a.Amount)*cardValue + float64(a.Param)*cardValue*0.25
	}
	return v.actionValue(a)
}

// hireValue rates gaining a worker, guarding against wages the player cannot carry.
func (v *view) hireValue(robot bool) float64 {
	if v.remaining == 0 {
		return -5
	}
	value := float64(v.remaining) * 1.6
	if robot {
		return value + 2
	}
	futureWage := 0
	for r := v.gs.Round; r <= game.MaxRounds; r++ {
		futureWage += game.WageFor(r) * (v.p.Wageable() + 1)
	}
	safety := map[stage]float64{early: 1.0, mid: 1.2, late: 1.5}[v.stage]
	assets := v.p.Money + v.sellableValue() + v.remaining*6
	if float64(futureWage)*safety > float64(assets) {
		value -= float64(futureWage)*safety - float64(assets)
	}
	value -= float64(max(0, v.p.Workers-3)) * 1.5
	return value - float64(game.WageFor(v.gs.Round))*0.5
}

func (v *view) sellableValue() int {
	total := 0
	for i := range v.p.Buildings {
		if v.gs.Sellable(v.p, i) {
			total += v.gs.SellValue(v.p, i)
		}
	}
	return total
}

// evaluateBuild scores constructing a card for the player.
func (v *view) evaluateBuild(def catalog.CardDef) float64 {
	score := float64(def.VP)
	score += v.usageValue(def)
	score += float64(game.EffectiveCost(def, v.p)) * costTierWeight

	cat := categoryOf(def)
	switch v.stage {
	case early:
		if cat == categoryPureVP || cat == categoryBonus {
			score -= 6
		}
	case late:
		if cat == categoryPureVP || cat == categoryBonus {
			score += 4
		}
	}
	score += cardBonus[def.ID]

	if def.HandBonus > 0 {
		score += float64(def.HandBonus) * 0.4 * float64(v.remaining) / game.MaxRounds * 3
	}
	if def.WorkerBonus > 0 {
		if v.p.Workers >= v.p.MaxWorkers {
			score += 4
		} else {
			score += 1
		}
	}
	if def.DebtExemption > 0 {
		score += float64(min(v.p.Debts, def.DebtExemption)) * game.DebtPenalty
	}
	score += v.bonusSynergy(def)

	owned := utils.Count(v.p.Buildings, func(b game.BuildingSlot) bool { return b.Card.DefID == def.ID })
	score -= float64(owned) * duplicatePenalty
	return score
}

// bonusSynergy is the change in end bonuses if the card were built now.
func (v *view) bonusSynergy(def catalog.CardDef) float64 {
	before := v.bonusTotal(v.p.Buildings)
	with := append(append([]game.BuildingSlot(nil), v.p.Buildings...), game.BuildingSlot{Card: game.Card{DefID: def.ID}})
	after := v.bonusTotal(with)
	return float64(after - before)
}

func (v *view) bonusTotal(buildings []game.BuildingSlot) int {
	p := *v.p
	p.Buildings = buildings
	total := 0
	for _, b := range buildings {
		def := v.cat.MustLookup(b.Card.DefID)
		if def.EndBonus != nil {
			total += game.BonusFor(v.cat, *def.EndBonus, &p)
		}
	}
	return total
}

type rankedCard struct {
	index int
	value float64
}

// rankHand orders hand cards from cheapest to most valuable to keep. Indices in skip are left out.
func (v *view) rankHand(hand []game.Card, skip func(i int) bool) []rankedCard {
	ranked := make([]rankedCard, 0, len(hand))
	for i, c := range hand {
		if skip != nil && skip(i) {
			continue
		}
		ranked = append(ranked, rankedCard{index: i, value: v.retainValue(c)})
	}
	slices.SortStableFunc(ranked, func(a, b rankedCard) int {
		switch {
		case a.value < b.value:
			return -1
		case a.value > b.value:
			return 1
		}
		return 0
	})
	return ranked
}

// retainValue is how much the player wants to keep a card in hand.
func (v *view) retainValue(c game.Card) float64 {
	if c.IsConsumable() {
		return consumableValue * 0.5
	}
	def := v.def(c)
	value := 1 + v.evaluateBuild(def)/6
	if game.EffectiveCost(def, v.p) > len(v.p.Hand)-1 {
		value -= 0.5
	}
	return value
}

// bestBuild returns the best evaluation among cards buildable from hand under a reduction and rule.
func (v *view) bestBuild(reduction int, rule catalog.BuildRule, hand []game.Card) (float64, int) {
	best, bestIndex := 0.0, -1
	for i, c := range hand {
		if c.IsConsumable() {
			continue
		}
		def := v.def(c)
		if rule == catalog.BuildFarmOnly && !def.HasTag(catalog.TagFarm) {
			continue
		}
		if capacity(hand, i, -1, rule == catalog.BuildDoubleConsumables) < game.BuildCost(def, v.p, reduction) {
			continue
		}
		if score := v.evaluateBuild(def) - v.paymentCost(game.BuildCost(def, v.p, reduction)); bestIndex < 0 || score > best {
			best, bestIndex = score, i
		}
	}
	return best, bestIndex
}

// paymentCost approximates the hand value spent paying cost cards.
func (v *view) paymentCost(cost int) float64 {
	return float64(cost) * 0.8
}

// bestPair returns the best pair of equal-cost cards that can be built together.
func (v *view) bestPair(hand []game.Card) (float64, int, int) {
	best, bi, bj := 0.0, -1, -1
	for i := range hand {
		for j := i + 1; j < len(hand); j++ {
			if hand[i].IsConsumable() || hand[j].IsConsumable() {
				continue
			}
			di, dj := v.def(hand[i]), v.def(hand[j])
			cost := game.EffectiveCost(di, v.p)
			if cost != game.EffectiveCost(dj, v.p) || capacity(hand, i, j, false) < cost {
				continue
			}
			score := v.evaluateBuild(di) + v.evaluateBuild(dj) - v.paymentCost(cost)
			if di.ID == dj.ID {
				score -= duplicatePenalty
			}
			if bi < 0 || score > best {
				best, bi, bj = score, i, j
			}
		}
	}
	return best, bi, bj
}

// capacity is the payment value of the hand without the cards at skipA and skipB.
func capacity(hand []game.Card, skipA, skipB int, weighted bool) int {
	total := 0
	for i, c := range hand {
		if i == skipA || i == skipB {
			continue
		}
		if weighted && c.IsConsumable() {
			total += 2
		} else {
			total++
		}
	}
	return total
}
