package engine

import "github.com/roach88/idlecore/internal/game"

// techTree tracks researched nodes in unlock order. Multipliers are
// derived from set membership on every read, so a node contributes its
// effect exactly once no matter how often it is queried or restored.
type techTree struct {
	unlocked [game.TechCount]bool
	order    []game.Tech
}

func (t *techTree) Has(id game.Tech) bool {
	return id.Valid() && t.unlocked[id]
}

// check returns the reason id cannot be researched with science available,
// or nil.
func (t *techTree) check(id game.Tech, science float64) error {
	def := id.Def()
	if t.unlocked[id] {
		return reject(ErrCodeAlreadyResearched, def.ID, "already researched")
	}
	for _, p := range def.Prereqs {
		if !t.unlocked[p] {
			return reject(ErrCodePrerequisites, def.ID, "requires %s", p.Def().Title)
		}
	}
	if science < def.Cost {
		return reject(ErrCodeInsufficient, def.ID, "needs %g science, have %g", def.Cost, science)
	}
	return nil
}

func (t *techTree) unlock(id game.Tech) {
	if t.unlocked[id] {
		return
	}
	t.unlocked[id] = true
	t.order = append(t.order, id)
}

// Unlocked returns researched nodes in unlock order.
func (t *techTree) Unlocked() []game.Tech {
	return append([]game.Tech(nil), t.order...)
}

// ResourceMultiplier is the product of every researched effect on r.
func (t *techTree) ResourceMultiplier(r game.Resource) float64 {
	m := 1.0
	for _, id := range t.order {
		e := id.Def().Effect
		if !e.OnBuilding && e.Resource == r {
			m *= e.Factor
		}
	}
	return m
}

// BuildingMultiplier is the product of every researched effect on b.
func (t *techTree) BuildingMultiplier(b game.Building) float64 {
	m := 1.0
	for _, id := range t.order {
		e := id.Def().Effect
		if e.OnBuilding && e.Building == b {
			m *= e.Factor
		}
	}
	return m
}

// Permits reports whether b's research gate is open.
func (t *techTree) Permits(b game.Building) bool {
	req := b.Def().Requires
	return req == game.NoTech || t.Has(req)
}
