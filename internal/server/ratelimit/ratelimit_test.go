package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(limit int) *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  limit,
		DefaultWindow: time.Minute,
	}
}

func TestLimiter_AllowsWithinLimit(t *testing.T) {
	limiter := NewLimiter(testConfig(5))
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("client-a", "/applications", "GET")
		assert.True(t, allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 5, info.Limit)
		assert.Equal(t, 5-i-1, info.Remaining)
	}
}

func TestLimiter_BlocksOverLimit(t *testing.T) {
	limiter := NewLimiter(testConfig(3))
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("client-a", "/applications", "GET")
		require.True(t, allowed)
	}

	allowed, info := limiter.Allow("client-a", "/applications", "GET")
	assert.False(t, allowed)
	assert.False(t, info.Allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	limiter := NewLimiter(testConfig(1))
	defer limiter.Stop()

	allowed, _ := limiter.Allow("client-a", "/applications", "GET")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("client-a", "/applications", "GET")
	require.False(t, allowed)

	allowed, _ = limiter.Allow("client-b", "/applications", "GET")
	assert.True(t, allowed, "a different client has its own bucket")
}

func TestLimiter_EndpointsAreIndependent(t *testing.T) {
	limiter := NewLimiter(testConfig(1))
	defer limiter.Stop()

	allowed, _ := limiter.Allow("client-a", "/applications", "GET")
	require.True(t, allowed)

	allowed, _ = limiter.Allow("client-a", "/applications", "POST")
	assert.True(t, allowed, "same path, different method is a separate bucket")
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("client-a", "/applications", "GET")
		assert.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_UnlimitedEndpoint(t *testing.T) {
	limiter := NewLimiter(DefaultConfig())
	defer limiter.Stop()

	for i := 0; i < 500; i++ {
		allowed, _ := limiter.Allow("client-a", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_AIEndpointsAreTighter(t *testing.T) {
	limiter := NewLimiter(DefaultConfig())
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("client-a", "/extract-job-info", "POST")
		require.True(t, allowed, "request %d within budget", i+1)
	}
	allowed, info := limiter.Allow("client-a", "/extract-job-info", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 10, info.Limit)
}

func TestConfig_LimitFor(t *testing.T) {
	config := DefaultConfig()

	tests := []struct {
		path   string
		method string
		limit  int
	}{
		{"/extract-job-info", "POST", 10},
		{"/applications/import", "POST", 10},
		{"/fetch-job", "POST", 30},
		{"/health", "GET", 0},
		{"/applications", "GET", 300},
		{"/auth/login", "POST", 300},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			limit, window := config.limitFor(tt.path, tt.method)
			assert.Equal(t, tt.limit, limit)
			assert.Positive(t, window)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_DEFAULT", "")
	config := LoadConfig()
	assert.True(t, config.Enabled)
	assert.Equal(t, 300, config.DefaultLimit)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_DEFAULT", "42")
	config = LoadConfig()
	assert.False(t, config.Enabled)
	assert.Equal(t, 42, config.DefaultLimit)
}

func TestBucket_RefillsOverTime(t *testing.T) {
	bucket := newTokenBucket(2, 100*time.Millisecond)

	allowed, _, _ := bucket.take()
	require.True(t, allowed)
	allowed, _, _ = bucket.take()
	require.True(t, allowed)
	allowed, _, retryAfter := bucket.take()
	require.False(t, allowed)

	time.Sleep(retryAfter + 20*time.Millisecond)
	allowed, _, _ = bucket.take()
	assert.True(t, allowed, "tokens should refill after the window elapses")
}
