package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManualClock(t *testing.T) {
	c := NewManualClock(100)
	assert.Equal(t, 100.0, c.Now())
	assert.Equal(t, 102.5, c.Advance(2.5))
	assert.Equal(t, 102.5, c.Now(), "Now does not move the clock")

	c.Set(50)
	assert.Equal(t, 50.0, c.Now())
}

func TestManualClock_ThreadSafe(t *testing.T) {
	c := NewManualClock(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Advance(1)
		}()
	}
	wg.Wait()
	assert.Equal(t, 50.0, c.Now())
}
