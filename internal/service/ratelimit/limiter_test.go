package ratelimit

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowDisabled(t *testing.T) {
	l := New(0, 0)
	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow("1.2.3.4"))
	}
	assert.False(t, l.Enabled())
	assert.Equal(t, 0, l.Len())
}

func TestAllowBurstThenRefill(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := New(1, 2)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))

	// other keys have their own bucket
	assert.True(t, l.Allow("b"))

	now = now.Add(time.Second)
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
}

func TestSweepDropsIdleKeys(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := New(5, 5)
	l.now = func() time.Time { return now }

	for i := 0; i < sweepAt; i++ {
		l.Allow(strconv.Itoa(i))
	}
	assert.Equal(t, sweepAt, l.Len())

	now = now.Add(idleTTL + time.Second)
	l.Allow("fresh")
	assert.Equal(t, 1, l.Len())
}
