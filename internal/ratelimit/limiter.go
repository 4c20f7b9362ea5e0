package ratelimit

import (
	"sync"
	"time"
)

// Limiter counts calls per (user, action) in fixed windows. The window opens on the
// first call and lasts for the period passed with that call.
type Limiter struct {
	mu      sync.Mutex
	windows map[key]*window
	now     func() time.Time
}

type key struct {
	userID int64
	action string
}

type window struct {
	start  time.Time
	period time.Duration
	count  int
}

// New creates a limiter using the wall clock
func New() *Limiter {
	return NewWithClock(time.Now)
}

// NewWithClock creates a limiter with an injected clock
func NewWithClock(now func() time.Time) *Limiter {
	return &Limiter{
		windows: make(map[key]*window),
		now:     now,
	}
}

// Allow records a call and reports whether it fits into the current window.
// Rejected calls are not counted.
func (l *Limiter) Allow(userID int64, action string, rate int, period time.Duration) bool {
	if rate <= 0 {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	k := key{userID: userID, action: action}
	w, ok := l.windows[k]
	if !ok || !now.Before(w.start.Add(w.period)) {
		l.windows[k] = &window{start: now, period: period, count: 1}
		return true
	}
	if w.count >= rate {
		return false
	}
	w.count++
	return true
}

// Cleanup drops windows that have already expired and returns how many were removed
func (l *Limiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for k, w := range l.windows {
		if !now.Before(w.start.Add(w.period)) {
			delete(l.windows, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked windows
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
