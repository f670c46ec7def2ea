package testutil

import (
	"fmt"
	"sync"
)

// FixedSlotIDGenerator returns "<prefix>-1", "<prefix>-2", ... so stores
// built in tests have predictable slot ids.
//
// Implements store.SlotIDGenerator.
type FixedSlotIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewFixedSlotIDGenerator creates a generator. An empty prefix becomes
// "test-slot".
func NewFixedSlotIDGenerator(prefix string) *FixedSlotIDGenerator {
	if prefix == "" {
		prefix = "test-slot"
	}
	return &FixedSlotIDGenerator{prefix: prefix}
}

// Generate returns the next id.
func (g *FixedSlotIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
