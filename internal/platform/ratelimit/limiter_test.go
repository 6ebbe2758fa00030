package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryAllowsUpToLimit(t *testing.T) {
	limiter := NewInMemory(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := limiter.Allow(ctx, "ip:10.0.0.1")
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d", i+1)
		assert.Equal(t, 2-i, result.Remaining)
	}

	result, err := limiter.Allow(ctx, "ip:10.0.0.1")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Greater(t, result.RetryAfter, time.Duration(0))
}

func TestInMemoryKeysAreIndependent(t *testing.T) {
	limiter := NewInMemory(1, time.Minute)
	ctx := context.Background()

	first, err := limiter.Allow(ctx, "ip:10.0.0.1")
	require.NoError(t, err)
	assert.True(t, first.Allowed)

	other, err := limiter.Allow(ctx, "ip:10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}

func TestInMemoryWindowResets(t *testing.T) {
	limiter := NewInMemory(1, time.Minute)
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	limiter.clock = func() time.Time { return now }
	ctx := context.Background()

	result, err := limiter.Allow(ctx, "ip:10.0.0.1")
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	result, err = limiter.Allow(ctx, "ip:10.0.0.1")
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	now = now.Add(2 * time.Minute)
	result, err = limiter.Allow(ctx, "ip:10.0.0.1")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}
