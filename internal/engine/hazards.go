package engine

import (
	"math"
	"math/rand/v2"

	"github.com/roach88/idlecore/internal/game"
)

const (
	// stormLoss is the fraction of farms a storm destroys, rounded up.
	stormLoss = 0.1

	treasureChance = 0.5
	treasureMin    = 5
	treasureSpan   = 15
)

// hazards rolls random events. The PCG state is part of the save so a
// loaded game draws the same sequence as the one it was saved from.
type hazards struct {
	chance float64
	src    *rand.PCG
	rng    *rand.Rand
}

func newHazards(chance float64, seed uint64) *hazards {
	src := rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)
	return &hazards{chance: chance, src: src, rng: rand.New(src)}
}

// roll draws once for the step. It does not touch the generator at all when
// hazards are disabled.
func (h *hazards) roll(e *Engine) {
	if h.chance <= 0 || h.rng.Float64() >= h.chance {
		return
	}

	if h.rng.IntN(2) == 0 {
		farms := e.registry.Count(game.Farm)
		if farms == 0 {
			return
		}
		lost := int(math.Ceil(float64(farms) * stormLoss))
		e.registry.add(game.Farm, -lost)
		e.emit(EventHazard, "A storm destroyed %d farms!", lost)
		return
	}

	if h.rng.Float64() < treasureChance {
		gold := float64(treasureMin + h.rng.IntN(treasureSpan))
		e.credit(game.Gold, gold)
		e.emit(EventHazard, "Found a hidden treasure worth %g gold!", gold)
	}
}

func (h *hazards) state() []byte {
	b, err := h.src.MarshalBinary()
	if err != nil {
		return nil
	}
	return b
}

// restore loads a marshalled generator, keeping the current one if data
// is empty or unreadable.
func (h *hazards) restore(data []byte) {
	if len(data) == 0 {
		return
	}
	src := new(rand.PCG)
	if err := src.UnmarshalBinary(data); err != nil {
		return
	}
	h.src = src
	h.rng = rand.New(src)
}
