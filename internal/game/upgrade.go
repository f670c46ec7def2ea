package game

import (
	"fmt"
	"math"
)

// Upgrade is a repeatable run-scoped purchase.
type Upgrade uint8

const (
	Efficiency Upgrade = iota
	AlchemyBoost
)

// UpgradeCount is the number of upgrade kinds.
const UpgradeCount = int(AlchemyBoost) + 1

// UpgradeDef is the static definition of an upgrade. Each level multiplies
// production by Factor; when AllResources is false only Resource is affected.
type UpgradeDef struct {
	ID           string
	Title        string
	BaseCost     Bundle
	Growth       float64
	Factor       float64
	AllResources bool
	Resource     Resource
}

var upgradeDefs = [UpgradeCount]UpgradeDef{
	Efficiency: {
		ID: "efficiency", Title: "Efficiency",
		BaseCost:     BundleOf(map[Resource]float64{Wood: 50, Stone: 50}),
		Growth:       1.5,
		Factor:       1.1,
		AllResources: true,
	},
	AlchemyBoost: {
		ID: "alchemy_boost", Title: "Alchemy Boost",
		BaseCost: BundleOf(map[Resource]float64{Gold: 200}),
		Growth:   2,
		Factor:   1.5,
		Resource: Mana,
	},
}

var upgradeIDs = func() []string {
	ids := make([]string, UpgradeCount)
	for i, def := range upgradeDefs {
		ids[i] = def.ID
	}
	return ids
}()

// Upgrades returns every upgrade in declaration order.
func Upgrades() []Upgrade {
	return []Upgrade{Efficiency, AlchemyBoost}
}

// ParseUpgrade maps a boundary identifier to an Upgrade.
func ParseUpgrade(id string) (Upgrade, bool) {
	i, ok := lookup(upgradeIDs, id)
	return Upgrade(i), ok
}

func (u Upgrade) Valid() bool {
	return int(u) < UpgradeCount
}

// Def returns the static definition of u.
func (u Upgrade) Def() UpgradeDef {
	return upgradeDefs[u]
}

func (u Upgrade) String() string {
	if !u.Valid() {
		return fmt.Sprintf("upgrade(%d)", uint8(u))
	}
	return upgradeDefs[u].ID
}

// CostAt returns the cost of buying the next level when level are owned.
func (u Upgrade) CostAt(level int) Bundle {
	def := upgradeDefs[u]
	return def.BaseCost.Scale(math.Pow(def.Growth, float64(level)))
}

// Applies reports whether u affects production of r.
func (u Upgrade) Applies(r Resource) bool {
	def := upgradeDefs[u]
	return def.AllResources || def.Resource == r
}
