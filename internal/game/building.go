package game

import (
	"fmt"
	"math"
)

// Building is one of the fixed set of constructible kinds.
type Building uint8

const (
	Farm Building = iota
	LumberMill
	Quarry
	Mine
	Bakery
	Generator
	Lab
	Shrine
)

// BuildingCount is the number of building kinds.
const BuildingCount = int(Shrine) + 1

// BuildingDef is the static definition of a building kind.
type BuildingDef struct {
	ID       string
	Title    string
	BaseCost Bundle
	Growth   float64
	// Profile is the signed per-unit, per-second flow of every resource.
	Profile  Bundle
	Requires Tech
}

var buildingDefs = [BuildingCount]BuildingDef{
	Farm: {
		ID: "farm", Title: "Farm",
		BaseCost: BundleOf(map[Resource]float64{Wood: 10}),
		Growth:   1.15,
		Profile:  BundleOf(map[Resource]float64{Food: 1}),
		Requires: NoTech,
	},
	LumberMill: {
		ID: "lumber_mill", Title: "Lumber Mill",
		BaseCost: BundleOf(map[Resource]float64{Wood: 15, Stone: 5}),
		Growth:   1.15,
		Profile:  BundleOf(map[Resource]float64{Wood: 1}),
		Requires: NoTech,
	},
	Quarry: {
		ID: "quarry", Title: "Quarry",
		BaseCost: BundleOf(map[Resource]float64{Wood: 5, Stone: 15}),
		Growth:   1.15,
		Profile:  BundleOf(map[Resource]float64{Stone: 1}),
		Requires: NoTech,
	},
	Mine: {
		ID: "mine", Title: "Mine",
		BaseCost: BundleOf(map[Resource]float64{Wood: 20, Stone: 20}),
		Growth:   1.2,
		Profile:  BundleOf(map[Resource]float64{Iron: 1}),
		Requires: Mining,
	},
	Bakery: {
		ID: "bakery", Title: "Bakery",
		BaseCost: BundleOf(map[Resource]float64{Wood: 50, Stone: 25, Food: 100, Iron: 10}),
		Growth:   1.2,
		Profile:  BundleOf(map[Resource]float64{Food: -1, Gold: 0.2}),
		Requires: Baking,
	},
	Generator: {
		ID: "generator", Title: "Generator",
		BaseCost: BundleOf(map[Resource]float64{Stone: 50, Iron: 40}),
		Growth:   1.2,
		Profile:  BundleOf(map[Resource]float64{Energy: 1, Wood: -0.5}),
		Requires: Electricity,
	},
	Lab: {
		ID: "lab", Title: "Lab",
		BaseCost: BundleOf(map[Resource]float64{Wood: 30, Stone: 30, Food: 20}),
		Growth:   1.25,
		Profile:  BundleOf(map[Resource]float64{Science: 0.5, Food: -0.25}),
		Requires: NoTech,
	},
	Shrine: {
		ID: "shrine", Title: "Shrine",
		BaseCost: BundleOf(map[Resource]float64{Stone: 100, Gold: 50, Energy: 20}),
		Growth:   1.3,
		Profile:  BundleOf(map[Resource]float64{Mana: 0.1, Energy: -0.5}),
		Requires: Alchemy,
	},
}

var buildingIDs = func() []string {
	ids := make([]string, BuildingCount)
	for i, def := range buildingDefs {
		ids[i] = def.ID
	}
	return ids
}()

// Buildings returns every building in declaration order.
func Buildings() []Building {
	out := make([]Building, BuildingCount)
	for i := range out {
		out[i] = Building(i)
	}
	return out
}

// ParseBuilding maps a boundary identifier to a Building.
func ParseBuilding(id string) (Building, bool) {
	i, ok := lookup(buildingIDs, id)
	return Building(i), ok
}

// Valid reports whether b is a declared building.
func (b Building) Valid() bool {
	return int(b) < BuildingCount
}

// Def returns the static definition of b.
func (b Building) Def() BuildingDef {
	return buildingDefs[b]
}

func (b Building) String() string {
	if !b.Valid() {
		return fmt.Sprintf("building(%d)", uint8(b))
	}
	return buildingDefs[b].ID
}

// CostAt returns the cost of the (owned+1)-th unit: BaseCost * Growth^owned,
// compounded per resource.
func (b Building) CostAt(owned int) Bundle {
	def := buildingDefs[b]
	return def.BaseCost.Scale(math.Pow(def.Growth, float64(owned)))
}
