package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedWindow_AllowsUpToLimit(t *testing.T) {
	limiter := NewFixedWindow(60*time.Second, 10)

	for i := 0; i < 10; i++ {
		assert.True(t, limiter.Allow("client-a"), "request %d should be allowed", i+1)
	}

	assert.False(t, limiter.Allow("client-a"), "11th request should be denied")
	assert.False(t, limiter.Allow("client-a"), "denied client stays denied within the window")
}

func TestFixedWindow_KeysAreIndependent(t *testing.T) {
	limiter := NewFixedWindow(60*time.Second, 2)

	assert.True(t, limiter.Allow("client-a"))
	assert.True(t, limiter.Allow("client-a"))
	assert.False(t, limiter.Allow("client-a"))

	// A different key has its own budget
	assert.True(t, limiter.Allow("client-b"))
}

func TestFixedWindow_ResetsAfterWindow(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewFixedWindow(60*time.Second, 2)
	limiter.now = func() time.Time { return current }

	assert.True(t, limiter.Allow("client-a"))
	assert.True(t, limiter.Allow("client-a"))
	assert.False(t, limiter.Allow("client-a"))

	// Just before the boundary the window still holds
	current = current.Add(59 * time.Second)
	assert.False(t, limiter.Allow("client-a"))

	// At the boundary the budget is restored in full
	current = current.Add(1 * time.Second)
	assert.True(t, limiter.Allow("client-a"))
	assert.True(t, limiter.Allow("client-a"))
	assert.False(t, limiter.Allow("client-a"))
}

func TestFixedWindow_WindowDoesNotSlide(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewFixedWindow(60*time.Second, 2)
	limiter.now = func() time.Time { return current }

	// Window opens at first request, not at the last
	assert.True(t, limiter.Allow("client-a"))

	current = current.Add(50 * time.Second)
	assert.True(t, limiter.Allow("client-a"))
	assert.False(t, limiter.Allow("client-a"))

	// 60s after the FIRST request the window resets even though the
	// last request was only 10s ago
	current = current.Add(10 * time.Second)
	assert.True(t, limiter.Allow("client-a"))
}

func TestFixedWindow_Sweep(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewFixedWindow(60*time.Second, 2)
	limiter.now = func() time.Time { return current }

	limiter.Allow("client-a")
	limiter.Allow("client-b")
	assert.Len(t, limiter.windows, 2)

	current = current.Add(61 * time.Second)
	limiter.Sweep()
	assert.Empty(t, limiter.windows)
}

func TestFixedWindow_ConcurrentAccess(t *testing.T) {
	limiter := NewFixedWindow(60*time.Second, 100)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow("shared") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 100, allowed)
}

func TestFixedWindow_Accessors(t *testing.T) {
	limiter := NewFixedWindow(60*time.Second, 10)

	assert.Equal(t, 60*time.Second, limiter.Window())
	assert.Equal(t, 10, limiter.Limit())
}
