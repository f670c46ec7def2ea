package engine

import "github.com/roach88/idlecore/internal/game"

// registry holds the owned count of every building.
type registry struct {
	counts [game.BuildingCount]int
}

func (r *registry) Count(b game.Building) int {
	return r.counts[b]
}

// NextCost is the cost of the next unit of b. It depends only on the
// current count.
func (r *registry) NextCost(b game.Building) game.Bundle {
	return b.CostAt(r.counts[b])
}

func (r *registry) add(b game.Building, n int) {
	r.counts[b] = max(r.counts[b]+n, 0)
}

func (r *registry) Reset() {
	r.counts = [game.BuildingCount]int{}
}

// Total returns the number of buildings of every kind.
func (r *registry) Total() int {
	var n int
	for _, c := range r.counts {
		n += c
	}
	return n
}
