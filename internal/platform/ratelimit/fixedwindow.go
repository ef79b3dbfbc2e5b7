// Package ratelimit implements a process-local fixed-window request
// limiter. Counters live in memory, so limits apply per instance rather
// than across a fleet.
package ratelimit

import (
	"sync"
	"time"
)

// window tracks request counts for one client within the current window.
type window struct {
	count   int
	resetAt time.Time
}

// FixedWindow limits each client key to a maximum number of requests per
// fixed time window. The first request from a key opens its window; the
// counter resets when the window elapses, it does not slide.
type FixedWindow struct {
	mu      sync.Mutex
	windows map[string]*window

	duration time.Duration
	limit    int

	// now is swappable for tests.
	now func() time.Time
}

// NewFixedWindow creates a limiter allowing limit requests per duration
// for each distinct key.
func NewFixedWindow(duration time.Duration, limit int) *FixedWindow {
	return &FixedWindow{
		windows:  make(map[string]*window),
		duration: duration,
		limit:    limit,
		now:      time.Now,
	}
}

// Allow records a request for key and reports whether it fits within the
// current window. Expired windows are replaced on first touch, so a
// denied client regains its full budget once the window passes.
func (f *FixedWindow) Allow(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()

	w, ok := f.windows[key]
	if !ok || !now.Before(w.resetAt) {
		f.windows[key] = &window{count: 1, resetAt: now.Add(f.duration)}
		return true
	}

	if w.count >= f.limit {
		return false
	}

	w.count++

	return true
}

// Window returns the configured window duration. Handlers use it for the
// Retry-After header on denied requests.
func (f *FixedWindow) Window() time.Duration {
	return f.duration
}

// Limit returns the configured per-window request budget.
func (f *FixedWindow) Limit() int {
	return f.limit
}

// Sweep removes windows that expired before the current time. Callers may
// run it periodically to bound memory on long-lived processes; correctness
// does not depend on it.
func (f *FixedWindow) Sweep() {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	for key, w := range f.windows {
		if !now.Before(w.resetAt) {
			delete(f.windows, key)
		}
	}
}
