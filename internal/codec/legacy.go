package codec

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/idlecore/internal/game"
)

// legacyState is the version 1 payload: CamelCase building and upgrade
// names nested under "levels", Title Case achievement names, and a bare
// last_update timestamp in seconds.
type legacyState struct {
	Resources map[string]float64 `json:"resources"`
	Buildings struct {
		Levels map[string]float64 `json:"levels"`
	} `json:"buildings"`
	Upgrades struct {
		Levels map[string]float64 `json:"levels"`
	} `json:"upgrades"`
	Research struct {
		Unlocked []string `json:"unlocked"`
	} `json:"research"`
	Achievements struct {
		Unlocked []string `json:"unlocked"`
	} `json:"achievements"`
	Prestige struct {
		Points float64 `json:"points"`
	} `json:"prestige"`
	TickRate   float64  `json:"tick_rate"`
	LastUpdate *float64 `json:"last_update"`
}

func decodeLegacy(payload []byte) (State, error) {
	var old legacyState
	if err := json.Unmarshal(payload, &old); err != nil {
		return State{}, fmt.Errorf("%w: legacy json: %v", ErrMalformed, err)
	}

	s := State{
		Version:      1,
		Resources:    old.Resources,
		Buildings:    renameKeys(old.Buildings.Levels),
		Upgrades:     renameKeys(old.Upgrades.Levels),
		Techs:        renameAll(old.Research.Unlocked),
		Achievements: renameAll(old.Achievements.Unlocked),
		Prestige:     PrestigeState{Points: old.Prestige.Points},
		TickRate:     old.TickRate,
	}
	if old.LastUpdate != nil {
		s.Clock = ClockState{Started: true, Last: *old.LastUpdate}
	}
	return s, nil
}

func renameKeys(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[game.LegacyName(k)] = v
	}
	return out
}

func renameAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, game.LegacyName(n))
	}
	return out
}
