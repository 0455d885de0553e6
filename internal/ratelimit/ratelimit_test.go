package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func TestLimiter_AllowsUpToMax(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)}
	limiter := NewLimiterWithClock(time.Minute, 3, clock)

	assert.True(t, limiter.Allow("user-a"))
	assert.True(t, limiter.Allow("user-a"))
	assert.True(t, limiter.Allow("user-a"))
	assert.False(t, limiter.Allow("user-a"))

	// Other keys are unaffected.
	assert.True(t, limiter.Allow("user-b"))
}

func TestLimiter_WindowRollover(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)}
	limiter := NewLimiterWithClock(time.Minute, 1, clock)

	assert.True(t, limiter.Allow("user-a"))
	assert.False(t, limiter.Allow("user-a"))

	clock.advance(59 * time.Second)
	assert.False(t, limiter.Allow("user-a"))

	clock.advance(time.Second)
	assert.True(t, limiter.Allow("user-a"))
}

func TestLimiter_EvictExpired(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)}
	limiter := NewLimiterWithClock(time.Minute, 1, clock)

	limiter.Allow("user-a")
	limiter.Allow("user-b")
	assert.Len(t, limiter.entries, 2)

	clock.advance(time.Minute)
	limiter.EvictExpired()
	assert.Empty(t, limiter.entries)

	// An evicted key starts a fresh window.
	assert.True(t, limiter.Allow("user-a"))
}
