package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedSlotIDGenerator(t *testing.T) {
	g := NewFixedSlotIDGenerator("slot")
	assert.Equal(t, "slot-1", g.Generate())
	assert.Equal(t, "slot-2", g.Generate())

	d := NewFixedSlotIDGenerator("")
	assert.Equal(t, "test-slot-1", d.Generate())
}
