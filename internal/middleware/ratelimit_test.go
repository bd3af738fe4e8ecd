package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))

	// Other clients are counted separately
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond)

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))

	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.Allow("1.2.3.4"))
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	rl := NewRateLimiter(5, 20*time.Millisecond)

	rl.Allow("1.2.3.4")
	rl.Allow("5.6.7.8")

	time.Sleep(30 * time.Millisecond)

	// The next request triggers the inline sweep; both stale entries expire
	// and only the fresh one remains tracked
	assert.True(t, rl.Allow("9.9.9.9"))
	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Len(t, rl.requests, 1)
}
