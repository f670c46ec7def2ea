package engine

import "github.com/roach88/idlecore/internal/game"

// achievementSet is append-only; nothing removes an unlock.
type achievementSet struct {
	unlocked [game.AchievementCount]bool
	order    []game.Achievement
}

func (a *achievementSet) Has(id game.Achievement) bool {
	return id.Valid() && a.unlocked[id]
}

// Evaluate checks every locked achievement against v in declaration order
// and returns the ones that unlocked.
func (a *achievementSet) Evaluate(v game.View) []game.Achievement {
	var fresh []game.Achievement
	for _, id := range game.Achievements() {
		if a.unlocked[id] {
			continue
		}
		if id.Def().Check(v) {
			a.unlock(id)
			fresh = append(fresh, id)
		}
	}
	return fresh
}

func (a *achievementSet) unlock(id game.Achievement) {
	if a.unlocked[id] {
		return
	}
	a.unlocked[id] = true
	a.order = append(a.order, id)
}

// Unlocked returns achievements in unlock order.
func (a *achievementSet) Unlocked() []game.Achievement {
	return append([]game.Achievement(nil), a.order...)
}

// view adapts an Engine to the predicate interface.
type view struct{ e *Engine }

func (v view) Amount(r game.Resource) float64 { return v.e.ledger.Get(r) }
func (v view) Count(b game.Building) int      { return v.e.registry.Count(b) }
func (v view) Researched(t game.Tech) bool    { return v.e.techs.Has(t) }
func (v view) PrestigeResets() int            { return v.e.prestige.resets }
