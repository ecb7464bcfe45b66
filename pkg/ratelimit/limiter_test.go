package ratelimit_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drupal-news/pkg/ratelimit"
)

type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (m *mockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *mockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

func testConfig(rps float64, burst int) ratelimit.Config {
	cfg := ratelimit.DefaultConfig()
	cfg.Enabled = true
	cfg.RPS = rps
	cfg.Burst = burst
	return cfg
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	clock := newMockClock()
	l := ratelimit.New(testConfig(1, 3), clock)

	for i := 0; i < 3; i++ {
		d := l.Allow("203.0.113.7")
		require.True(t, d.Allowed, "request %d", i)
		assert.Equal(t, 3, d.Limit)
	}

	d := l.Allow("203.0.113.7")
	assert.False(t, d.Allowed)
	assert.Equal(t, time.Second, d.RetryAfter)
	assert.Equal(t, int64(1), d.RetryAfterSeconds())
}

func TestLimiter_Refill(t *testing.T) {
	clock := newMockClock()
	l := ratelimit.New(testConfig(2, 1), clock)

	require.True(t, l.Allow("k").Allowed)
	require.False(t, l.Allow("k").Allowed)

	clock.Advance(500 * time.Millisecond)
	assert.True(t, l.Allow("k").Allowed)
}

func TestLimiter_DeniedRequestDoesNotConsume(t *testing.T) {
	clock := newMockClock()
	l := ratelimit.New(testConfig(1, 1), clock)

	require.True(t, l.Allow("k").Allowed)
	for i := 0; i < 5; i++ {
		require.False(t, l.Allow("k").Allowed)
	}

	clock.Advance(time.Second)
	assert.True(t, l.Allow("k").Allowed)
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := ratelimit.New(testConfig(1, 1), newMockClock())

	assert.True(t, l.Allow("a").Allowed)
	assert.False(t, l.Allow("a").Allowed)
	assert.True(t, l.Allow("b").Allowed)
	assert.Equal(t, 2, l.Len())
}

func TestLimiter_Disabled(t *testing.T) {
	cfg := testConfig(1, 1)
	cfg.Enabled = false
	l := ratelimit.New(cfg, newMockClock())

	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow("k").Allowed)
	}
	assert.False(t, l.Enabled())
	assert.Equal(t, 0, l.Len())
}

func TestLimiter_Cleanup(t *testing.T) {
	clock := newMockClock()
	cfg := testConfig(1, 1)
	cfg.IdleTTL = time.Minute
	l := ratelimit.New(cfg, clock)

	l.Allow("stale")
	clock.Advance(2 * time.Minute)
	l.Allow("fresh")

	assert.Equal(t, 1, l.Cleanup())
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_MaxKeysEvictsOldest(t *testing.T) {
	clock := newMockClock()
	cfg := testConfig(1, 1)
	cfg.MaxKeys = 2
	l := ratelimit.New(cfg, clock)

	l.Allow("first")
	clock.Advance(time.Millisecond)
	l.Allow("second")
	clock.Advance(time.Millisecond)
	l.Allow("third")

	assert.Equal(t, 2, l.Len())
	// "first" was evicted, so it starts with a full bucket again
	assert.True(t, l.Allow("first").Allowed)
}

func TestLimiter_Concurrent(t *testing.T) {
	l := ratelimit.New(testConfig(0.001, 50), newMockClock())

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}

func TestDecision_RetryAfterSeconds(t *testing.T) {
	tests := []struct {
		name string
		d    ratelimit.Decision
		want int64
	}{
		{name: "allowed", d: ratelimit.Decision{Allowed: true}, want: 0},
		{name: "sub-second rounds up", d: ratelimit.Decision{RetryAfter: 200 * time.Millisecond}, want: 1},
		{name: "fractional rounds up", d: ratelimit.Decision{RetryAfter: 2100 * time.Millisecond}, want: 3},
		{name: "zero still waits", d: ratelimit.Decision{}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.RetryAfterSeconds())
		})
	}
}
