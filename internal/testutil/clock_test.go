package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedClock_StaysPut(t *testing.T) {
	at := time.Date(2023, 11, 23, 9, 30, 0, 0, time.UTC)
	clock := NewFixedClock(at)

	assert.Equal(t, at, clock.Now())
	assert.Equal(t, at, clock.Now())
}

func TestFixedClock_SetAndAdvance(t *testing.T) {
	clock := NewFixedClock(time.Date(2023, 11, 23, 0, 0, 0, 0, time.UTC))

	clock.Advance(36 * time.Hour)
	assert.Equal(t, time.Date(2023, 11, 24, 12, 0, 0, 0, time.UTC), clock.Now())

	later := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	clock.Set(later)
	assert.Equal(t, later, clock.Now())
}

func TestFixedClock_ConcurrentAdvance(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewFixedClock(start)

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			clock.Advance(time.Second)
		}()
	}
	wg.Wait()

	assert.Equal(t, start.Add(goroutines*time.Second), clock.Now())
}

func TestMustLocation(t *testing.T) {
	loc := MustLocation("UTC")
	require.NotNil(t, loc)
	assert.Equal(t, "UTC", loc.String())

	assert.Panics(t, func() { MustLocation("Not/AZone") })
}
