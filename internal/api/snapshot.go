package api

import (
	"github.com/roach88/idlecore/internal/engine"
	"github.com/roach88/idlecore/internal/game"
)

// SnapshotMap lays out a Status for canonical JSON. Zero amounts and
// unowned buildings are omitted.
func SnapshotMap(s engine.Status) map[string]any {
	buildings := make(map[string]int)
	for _, b := range game.Buildings() {
		if n := s.Buildings[b]; n > 0 {
			buildings[b.String()] = n
		}
	}
	upgrades := make(map[string]int)
	for _, u := range game.Upgrades() {
		if n := s.Upgrades[u]; n > 0 {
			upgrades[u.String()] = n
		}
	}
	techs := make([]string, 0, len(s.Techs))
	for _, t := range s.Techs {
		techs = append(techs, t.String())
	}
	achievements := make([]string, 0, len(s.Achievements))
	for _, a := range s.Achievements {
		achievements = append(achievements, a.String())
	}

	return map[string]any{
		"resources":    s.Resources.Map(),
		"rates":        s.Rates.Map(),
		"buildings":    buildings,
		"techs":        techs,
		"achievements": achievements,
		"upgrades":     upgrades,
		"prestige": map[string]any{
			"points":     s.PrestigePoints,
			"multiplier": s.PrestigeMultiplier,
			"resets":     s.PrestigeResets,
			"preview":    s.PrestigePreview,
		},
		"tick_rate": s.TickRate,
	}
}
