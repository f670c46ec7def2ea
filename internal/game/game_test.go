package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifiers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Resource
		ok   bool
	}{
		{"plain", "wood", Wood, true},
		{"upper", "GOLD", Gold, true},
		{"padded", "  mana ", Mana, true},
		{"unknown", "coal", 0, false},
		{"empty", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseResource(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}

	b, ok := ParseBuilding("Lumber Mill")
	require.True(t, ok)
	assert.Equal(t, LumberMill, b)

	b, ok = ParseBuilding("lumber-mill")
	require.True(t, ok)
	assert.Equal(t, LumberMill, b)

	_, ok = ParseTech("necromancy")
	assert.False(t, ok)

	u, ok := ParseUpgrade("alchemy_boost")
	require.True(t, ok)
	assert.Equal(t, AlchemyBoost, u)

	a, ok := ParseAchievement("first_farm")
	require.True(t, ok)
	assert.Equal(t, FirstFarm, a)
}

func TestIdentifiersRoundTrip(t *testing.T) {
	for _, r := range Resources() {
		got, ok := ParseResource(r.String())
		require.True(t, ok, r.String())
		assert.Equal(t, r, got)
	}
	for _, b := range Buildings() {
		got, ok := ParseBuilding(b.String())
		require.True(t, ok, b.String())
		assert.Equal(t, b, got)
	}
	for _, tech := range Techs() {
		got, ok := ParseTech(tech.String())
		require.True(t, ok, tech.String())
		assert.Equal(t, tech, got)
	}
	for _, a := range Achievements() {
		got, ok := ParseAchievement(a.String())
		require.True(t, ok, a.String())
		assert.Equal(t, a, got)
	}
}

func TestLegacyName(t *testing.T) {
	assert.Equal(t, "lumber_mill", LegacyName("LumberMill"))
	assert.Equal(t, "first_farm", LegacyName("First Farm"))
	assert.Equal(t, "mining", LegacyName("Mining"))
	assert.Equal(t, "alchemy_boost", LegacyName("AlchemyBoost"))
	assert.Equal(t, "wood", LegacyName("wood"))
}

func TestBundle(t *testing.T) {
	a := BundleOf(map[Resource]float64{Wood: 10, Stone: 5})
	b := BundleOf(map[Resource]float64{Wood: 1, Food: -2})

	sum := a.Add(b)
	assert.Equal(t, 11.0, sum.Get(Wood))
	assert.Equal(t, -2.0, sum.Get(Food))
	assert.Equal(t, 10.0, a.Get(Wood), "Add must not mutate the receiver")

	assert.Equal(t, 20.0, a.Scale(2).Get(Wood))
	assert.True(t, a.Covers(BundleOf(map[Resource]float64{Wood: 10})))
	assert.False(t, a.Covers(BundleOf(map[Resource]float64{Wood: 10.5})))
	assert.Equal(t, 0.0, sum.Positive().Get(Food))
	assert.True(t, Bundle{}.IsZero())
	assert.Equal(t, 15.0, a.Total())

	m := a.Map()
	assert.Equal(t, map[string]float64{"wood": 10, "stone": 5}, m)

	back, unknown := BundleFromMap(map[string]float64{"wood": 10, "stone": 5, "coal": 3})
	assert.Equal(t, a, back)
	assert.Equal(t, []string{"coal"}, unknown)
}

func TestBuildingCostStrictlyIncreasing(t *testing.T) {
	for _, b := range Buildings() {
		def := b.Def()
		require.Greater(t, def.Growth, 1.0, b.String())
		prev := b.CostAt(0)
		assert.Equal(t, def.BaseCost, prev)
		for n := 1; n < 50; n++ {
			next := b.CostAt(n)
			for _, r := range Resources() {
				if def.BaseCost.Get(r) > 0 {
					assert.Greater(t, next.Get(r), prev.Get(r), "%s/%s at %d", b, r, n)
				}
			}
			prev = next
		}
	}
}

func TestFarmCost(t *testing.T) {
	assert.Equal(t, 10.0, Farm.CostAt(0).Get(Wood))
	assert.InDelta(t, 11.5, Farm.CostAt(1).Get(Wood), 1e-9)
	assert.InDelta(t, 13.225, Farm.CostAt(2).Get(Wood), 1e-9)
}

func TestTechGraph(t *testing.T) {
	require.NoError(t, ValidateTechs(techDefs[:]))

	assert.Empty(t, Education.Def().Prereqs)
	assert.ElementsMatch(t, []Tech{Electricity, Baking}, Alchemy.Def().Prereqs)
	assert.Equal(t, Mining, Mine.Def().Requires)
	assert.Equal(t, NoTech, Farm.Def().Requires)
	assert.Equal(t, "none", NoTech.String())
}

func TestValidateTechsRejectsCycle(t *testing.T) {
	defs := []TechDef{
		{ID: "a", Prereqs: []Tech{2}},
		{ID: "b", Prereqs: []Tech{0}},
		{ID: "c", Prereqs: []Tech{1}},
	}
	err := ValidateTechs(defs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestValidateTechsRejectsUnknownPrereq(t *testing.T) {
	err := ValidateTechs([]TechDef{{ID: "a", Prereqs: []Tech{7}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown prerequisite")
}

func TestUpgrades(t *testing.T) {
	assert.True(t, Efficiency.Applies(Gold))
	assert.True(t, AlchemyBoost.Applies(Mana))
	assert.False(t, AlchemyBoost.Applies(Gold))
	assert.Equal(t, 400.0, AlchemyBoost.CostAt(1).Get(Gold))
	assert.Equal(t, 75.0, Efficiency.CostAt(1).Get(Wood))
}

type fakeView struct {
	amounts Bundle
	counts  [BuildingCount]int
	techs   [TechCount]bool
	resets  int
}

func (v fakeView) Amount(r Resource) float64 { return v.amounts[r] }
func (v fakeView) Count(b Building) int      { return v.counts[b] }
func (v fakeView) Researched(t Tech) bool    { return v.techs[t] }
func (v fakeView) PrestigeResets() int       { return v.resets }

func TestAchievementPredicates(t *testing.T) {
	var v fakeView
	for _, a := range Achievements() {
		assert.False(t, a.Def().Check(v), a.String())
	}

	v.counts[Farm] = 1
	v.counts[LumberMill] = 10
	v.amounts[Wood] = 1000
	v.amounts[Gold] = 1
	v.amounts[Science] = 100
	v.techs[Mining] = true
	v.resets = 1
	for _, a := range Achievements() {
		assert.True(t, a.Def().Check(v), a.String())
	}
}
