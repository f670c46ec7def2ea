package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClock_NewClock(t *testing.T) {
	c := NewClock()
	assert.Equal(t, int64(0), c.Current(), "new clock should start at 0")
}

func TestClock_NewClockAt(t *testing.T) {
	c := NewClockAt(100)
	assert.Equal(t, int64(100), c.Current())
	assert.Equal(t, int64(101), c.Next())
}

func TestClock_Next_Incrementing(t *testing.T) {
	c := NewClock()

	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(3), c.Next())
	assert.Equal(t, int64(3), c.Current())
}

func TestSimClock_Advance(t *testing.T) {
	tests := []struct {
		name  string
		rate  float64
		times []float64
		steps []int
		carry float64
	}{
		{"baseline only", 1, []float64{10}, []int{0}, 0},
		{"whole steps", 1, []float64{0, 5}, []int{0, 5}, 0},
		{"fractional rate", 0.1, []float64{0, 0.3}, []int{0, 3}, 0},
		{"remainder carried", 2, []float64{0, 3, 4}, []int{0, 1, 1}, 0},
		{"sub-step polls accumulate", 1, []float64{0, 0.4, 0.8, 1.2}, []int{0, 0, 0, 1}, 0.2},
		{"clock going backwards", 1, []float64{5, 3, 6}, []int{0, 0, 1}, 0},
		{"catch-up bounded", 1, []float64{0, 1000}, []int{0, 60}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewSimClock(60)
			for i, now := range tt.times {
				assert.Equal(t, tt.steps[i], c.Advance(now, tt.rate), "call %d at %v", i, now)
			}
			assert.InDelta(t, tt.carry, c.Carry(), 1e-9)
		})
	}
}

func TestSimClock_Restore(t *testing.T) {
	c := NewSimClock(60)
	c.restore(true, 100, 0.5)
	assert.True(t, c.Started())
	assert.Equal(t, 2, c.Advance(101.5, 1))

	c.restore(true, 0, 120)
	assert.Zero(t, c.Carry(), "carry beyond the catch-up bound is dropped")
}
