package game

import (
	"fmt"
	"strings"
)

// Tech is a node of the research tree.
type Tech uint8

const (
	Education Tech = iota
	Mining
	Baking
	Electricity
	Alchemy
)

// TechCount is the number of research nodes.
const TechCount = int(Alchemy) + 1

// NoTech marks a building that needs no research.
const NoTech Tech = 0xFF

// Effect is a multiplicative production modifier. Exactly one of
// Resource or Building is the target.
type Effect struct {
	OnBuilding bool
	Resource   Resource
	Building   Building
	Factor     float64
}

// TechDef is the static definition of a research node.
type TechDef struct {
	ID      string
	Title   string
	Cost    float64
	Prereqs []Tech
	Effect  Effect
}

var techDefs = [TechCount]TechDef{
	Education: {
		ID: "education", Title: "Education", Cost: 50,
		Effect: Effect{OnBuilding: true, Building: Lab, Factor: 1.5},
	},
	Mining: {
		ID: "mining", Title: "Mining", Cost: 100,
		Prereqs: []Tech{Education},
		Effect:  Effect{OnBuilding: true, Building: Quarry, Factor: 1.25},
	},
	Baking: {
		ID: "baking", Title: "Baking", Cost: 100,
		Prereqs: []Tech{Education},
		Effect:  Effect{Resource: Food, Factor: 1.25},
	},
	Electricity: {
		ID: "electricity", Title: "Electricity", Cost: 200,
		Prereqs: []Tech{Mining},
		Effect:  Effect{OnBuilding: true, Building: Mine, Factor: 1.5},
	},
	Alchemy: {
		ID: "alchemy", Title: "Alchemy", Cost: 300,
		Prereqs: []Tech{Electricity, Baking},
		Effect:  Effect{Resource: Gold, Factor: 1.5},
	},
}

var techIDs = func() []string {
	ids := make([]string, TechCount)
	for i, def := range techDefs {
		ids[i] = def.ID
	}
	return ids
}()

func init() {
	if err := ValidateTechs(techDefs[:]); err != nil {
		panic(err)
	}
}

// Techs returns every research node in declaration order.
func Techs() []Tech {
	out := make([]Tech, TechCount)
	for i := range out {
		out[i] = Tech(i)
	}
	return out
}

// ParseTech maps a boundary identifier to a Tech.
func ParseTech(id string) (Tech, bool) {
	i, ok := lookup(techIDs, id)
	return Tech(i), ok
}

// Valid reports whether t is a declared research node.
func (t Tech) Valid() bool {
	return int(t) < TechCount
}

// Def returns the static definition of t.
func (t Tech) Def() TechDef {
	return techDefs[t]
}

func (t Tech) String() string {
	if t == NoTech {
		return "none"
	}
	if !t.Valid() {
		return fmt.Sprintf("tech(%d)", uint8(t))
	}
	return techDefs[t].ID
}

// ValidateTechs checks that every prerequisite refers to a declared node
// and that the prerequisite graph has no cycles.
func ValidateTechs(defs []TechDef) error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(defs))
	var stack []string

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("tech prerequisite cycle: %s -> %s", strings.Join(stack, " -> "), defs[i].ID)
		}
		state[i] = visiting
		stack = append(stack, defs[i].ID)
		for _, p := range defs[i].Prereqs {
			if int(p) >= len(defs) {
				return fmt.Errorf("tech %s: unknown prerequisite %d", defs[i].ID, p)
			}
			if err := visit(int(p)); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[i] = done
		return nil
	}

	for i := range defs {
		if err := visit(i); err != nil {
			return err
		}
	}
	return nil
}
