// file: internal/server/middleware/ratelimit_test.go
// version: 1.0.0
// guid: 4e5f6a7b-8c9d-4e0f-1a2b-3c4d5e6f7a8b

package middleware

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPRateLimiterBurst(t *testing.T) {
	rl := NewIPRateLimiter(60, 3)

	limiter := rl.limiterForIP("10.0.0.1")
	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow(), "request %d within burst should pass", i+1)
	}
	assert.False(t, limiter.Allow(), "request beyond burst should be rejected")

	// A different IP gets its own budget
	assert.True(t, rl.limiterForIP("10.0.0.2").Allow())
}

func TestIPRateLimiterSameLimiterPerIP(t *testing.T) {
	rl := NewIPRateLimiter(60, 5)

	first := rl.limiterForIP("10.0.0.1")
	second := rl.limiterForIP("10.0.0.1")
	assert.Same(t, first, second)
}

func TestIPRateLimiterEvictsIdleEntries(t *testing.T) {
	rl := NewIPRateLimiter(60, 5)

	rl.limiterForIP("10.0.0.1")
	rl.limiterForIP("10.0.0.2")
	require.Len(t, rl.limiters, 2)

	// Age one entry past the idle TTL and force the next lookup to sweep
	rl.mu.Lock()
	rl.limiters["10.0.0.1"].lastSeen = time.Now().Add(-limiterIdleTTL - time.Minute)
	rl.lastSweep = time.Now().Add(-limiterSweepInterval - time.Minute)
	rl.mu.Unlock()

	rl.limiterForIP("10.0.0.3")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.limiters, "10.0.0.1")
	assert.Contains(t, rl.limiters, "10.0.0.2")
	assert.Contains(t, rl.limiters, "10.0.0.3")
}

func TestNewIPRateLimiterSpawnsNoGoroutines(t *testing.T) {
	before := runtime.NumGoroutine()
	for i := 0; i < 10; i++ {
		NewIPRateLimiter(60, 5)
	}
	assert.LessOrEqual(t, runtime.NumGoroutine(), before)
}

func TestNewIPRateLimiterDefaults(t *testing.T) {
	rl := NewIPRateLimiter(0, 0)
	assert.Equal(t, 60, rl.burst)
	assert.True(t, rl.limiterForIP("10.0.0.1").Allow())
}
