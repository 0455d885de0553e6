// Package ratelimit implements a fixed-window per-key request limiter
// for the heavier analytics endpoints.
package ratelimit

import (
	"sync"
	"time"
)

// Clock abstracts time for tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type entry struct {
	count     int
	windowEnd time.Time
}

type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	window  time.Duration
	max     int
	clock   Clock
}

// NewLimiter allows max requests per key inside each fixed window.
func NewLimiter(window time.Duration, max int) *Limiter {
	return NewLimiterWithClock(window, max, realClock{})
}

func NewLimiterWithClock(window time.Duration, max int, clock Clock) *Limiter {
	return &Limiter{
		entries: make(map[string]*entry),
		window:  window,
		max:     max,
		clock:   clock,
	}
}

// Allow records a request for the key and reports whether it fits in
// the current window.
func (l *Limiter) Allow(key string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || !now.Before(e.windowEnd) {
		l.entries[key] = &entry{count: 1, windowEnd: now.Add(l.window)}
		return true
	}
	if e.count >= l.max {
		return false
	}
	e.count++
	return true
}

// EvictExpired drops entries whose window has passed. Called
// periodically so the map does not grow with one entry per user forever.
func (l *Limiter) EvictExpired() {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, e := range l.entries {
		if !now.Before(e.windowEnd) {
			delete(l.entries, key)
		}
	}
}
