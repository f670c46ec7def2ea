package game

import "fmt"

// View is the read-only slice of engine state achievement predicates see.
type View interface {
	Amount(r Resource) float64
	Count(b Building) int
	Researched(t Tech) bool
	PrestigeResets() int
}

// Achievement is one of the fixed set of milestones.
type Achievement uint8

const (
	FirstFarm Achievement = iota
	DiscoveredMining
	LumberBaron
	Stockpile
	FirstGold
	Scholar
	Reborn
)

// AchievementCount is the number of achievements.
const AchievementCount = int(Reborn) + 1

// AchievementDef is the static definition of an achievement.
type AchievementDef struct {
	ID    string
	Title string
	Check func(View) bool
}

func countAtLeast(b Building, n int) func(View) bool {
	return func(v View) bool { return v.Count(b) >= n }
}

func amountAtLeast(r Resource, x float64) func(View) bool {
	return func(v View) bool { return v.Amount(r) >= x }
}

func researched(t Tech) func(View) bool {
	return func(v View) bool { return v.Researched(t) }
}

var achievementDefs = [AchievementCount]AchievementDef{
	FirstFarm:        {ID: "first_farm", Title: "First Farm", Check: countAtLeast(Farm, 1)},
	DiscoveredMining: {ID: "discovered_mining", Title: "Discovered Mining", Check: researched(Mining)},
	LumberBaron:      {ID: "lumber_baron", Title: "Lumber Baron", Check: countAtLeast(LumberMill, 10)},
	Stockpile:        {ID: "stockpile", Title: "Stockpile", Check: amountAtLeast(Wood, 1000)},
	FirstGold:        {ID: "first_gold", Title: "First Gold", Check: amountAtLeast(Gold, 1)},
	Scholar:          {ID: "scholar", Title: "Scholar", Check: amountAtLeast(Science, 100)},
	Reborn: {ID: "reborn", Title: "Reborn", Check: func(v View) bool {
		return v.PrestigeResets() >= 1
	}},
}

var achievementIDs = func() []string {
	ids := make([]string, AchievementCount)
	for i, def := range achievementDefs {
		ids[i] = def.ID
	}
	return ids
}()

// Achievements returns every achievement in declaration order.
func Achievements() []Achievement {
	out := make([]Achievement, AchievementCount)
	for i := range out {
		out[i] = Achievement(i)
	}
	return out
}

// ParseAchievement maps a boundary identifier to an Achievement.
func ParseAchievement(id string) (Achievement, bool) {
	i, ok := lookup(achievementIDs, id)
	return Achievement(i), ok
}

func (a Achievement) Valid() bool {
	return int(a) < AchievementCount
}

// Def returns the static definition of a.
func (a Achievement) Def() AchievementDef {
	return achievementDefs[a]
}

func (a Achievement) String() string {
	if !a.Valid() {
		return fmt.Sprintf("achievement(%d)", uint8(a))
	}
	return achievementDefs[a].ID
}
