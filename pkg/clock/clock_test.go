package clock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonotonic_StrictlyIncreasingWhenSourceStalls(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	c := NewMonotonicFrom(func() time.Time { return fixed })

	first := c.Now()
	second := c.Now()
	third := c.Now()

	assert.Equal(t, time.UTC, first.Location())
	assert.True(t, first.Equal(fixed))
	assert.Equal(t, time.Microsecond, second.Sub(first))
	assert.Equal(t, time.Microsecond, third.Sub(second))
}

func TestMonotonic_TruncatesToMicroseconds(t *testing.T) {
	c := NewMonotonicFrom(func() time.Time {
		return time.Date(2024, 5, 1, 12, 0, 0, 123456789, time.UTC)
	})

	assert.Equal(t, 123456000, c.Now().Nanosecond())
}

func TestMonotonic_SourceGoingBackwards(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	c := NewMonotonicFrom(func() time.Time {
		calls++
		if calls == 1 {
			return base
		}
		return base.Add(-time.Hour)
	})

	first := c.Now()
	second := c.Now()
	assert.True(t, second.After(first))
}

func TestMonotonic_Concurrent(t *testing.T) {
	c := NewMonotonic()
	const workers, perWorker = 8, 200

	var mu sync.Mutex
	seen := make(map[time.Time]struct{}, workers*perWorker)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				ts := c.Now()
				mu.Lock()
				seen[ts] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, workers*perWorker)
}
