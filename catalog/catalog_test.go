package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cat := Default()

	t.Run("looking up a bundled card", func(t *testing.T) {
		farm, ok := cat.Lookup("farm")
		require.True(t, ok)
		require.Equal(t, 0, farm.Cost)
		require.True(t, farm.HasTag(TagFarm))
		require.Equal(t, EffectDrawConsumables, farm.Action.Effect)
		require.Equal(t, 1, farm.WorkerRequirement())
	})

	t.Run("the consumable sentinel is always known", func(t *testing.T) {
		def, ok := cat.Lookup(ConsumableID)
		require.True(t, ok)
		require.True(t, def.IsConsumable())
		require.False(t, def.Usable())
	})

	t.Run("unknown ids panic in MustLookup", func(t *testing.T) {
		_, ok := cat.Lookup("spaceport")
		require.False(t, ok)
		require.Panics(t, func() { cat.MustLookup("spaceport") })
	})

	t.Run("listing every card in file order", func(t *testing.T) {
		cards := cat.Cards()
		require.Equal(t, "farm", cards[0].ID)
		seen := map[string]bool{}
		for _, def := range cards {
			require.False(t, seen[def.ID], "duplicate id %s", def.ID)
			seen[def.ID] = true
			require.False(t, def.IsConsumable())
		}
		require.GreaterOrEqual(t, len(cards), len(cat.DeckDefsFor(Base)))
		require.GreaterOrEqual(t, len(cards), len(cat.DeckDefsFor(Glory)))
	})

	t.Run("decks only hold cards of their version", func(t *testing.T) {
		base := cat.DeckDefsFor(Base)
		glory := cat.DeckDefsFor(Glory)
		require.NotEmpty(t, base)
		require.NotEmpty(t, glory)
		for _, def := range base {
			require.True(t, def.InVersion(Base), def.ID)
			require.NotEqual(t, "steam_factory", def.ID)
		}
		for _, def := range glory {
			require.NotEqual(t, "factory", def.ID)
		}
	})

	t.Run("workplaces come ordered by opening round", func(t *testing.T) {
		wps := cat.WorkplacesFor(Base, 2)
		for i := 1; i < len(wps); i++ {
			require.LessOrEqual(t, wps[i-1].Round, wps[i].Round)
		}
		for _, wp := range wps {
			require.LessOrEqual(t, wp.MinPlayers, 2, wp.ID)
		}
		require.Len(t, cat.WorkplacesFor(Base, 4), len(wps)+2, "Four players open two more carpenters")
	})

	t.Run("declarative rules are parsed", func(t *testing.T) {
		monument := cat.MustLookup("monument")
		require.Equal(t, &CostRule{Kind: CostRuleTokenThreshold, Threshold: 3, Delta: 3}, monument.CostRule)

		hq := cat.MustLookup("headquarters")
		require.Equal(t, BonusTagsAll, hq.EndBonus.Kind)
		require.True(t, hq.EndBonus.Kind.IsThreshold())
		require.Equal(t, []string{TagFarm, TagFactory}, hq.EndBonus.Tags)

		brickworks := cat.MustLookup("brickworks")
		require.Equal(t, BuildDoubleConsumables, brickworks.Action.Rule)
	})
}

func TestParse(t *testing.T) {
	t.Run("rejecting unknown effect names", func(t *testing.T) {
		_, err := Parse([]byte(`
cards:
  - id: moon_base
    copies: 1
    action: {effect: teleport}
    versions: [base]
`))
		require.ErrorContains(t, err, "unknown effect")
	})

	t.Run("rejecting duplicate ids", func(t *testing.T) {
		_, err := Parse([]byte(`
cards:
  - {id: farm, copies: 1, versions: [base]}
  - {id: farm, copies: 2, versions: [base]}
`))
		require.ErrorContains(t, err, "duplicate")
	})

	t.Run("rejecting workplaces without an effect", func(t *testing.T) {
		_, err := Parse([]byte(`
workplaces:
  - {id: park, round: 1, versions: [base]}
`))
		require.Error(t, err)
	})

	t.Run("rejecting the reserved consumable id", func(t *testing.T) {
		_, err := New([]CardDef{{ID: ConsumableID, Copies: 1, Versions: []Version{Base}}}, nil)
		require.Error(t, err)
	})
}

func TestEffects(t *testing.T) {
	t.Run("listing every effect kind once", func(t *testing.T) {
		all := Effects()
		require.Len(t, all, len(effectNames)-1)
		require.NotContains(t, all, EffectNone)
		for _, e := range all {
			require.NotContains(t, e.String(), "Effect(")
		}
	})
}
