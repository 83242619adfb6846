package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterWithoutRedisAllows(t *testing.T) {
	l := New(nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "a@x.com", "checkout", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ttl, err := l.TTL(ctx, "a@x.com", "checkout")
	require.NoError(t, err)
	assert.Zero(t, ttl)
	assert.NoError(t, l.Clear(ctx, "a@x.com", "checkout"))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "rate_limit:a@x.com:checkout", key("a@x.com", "checkout"))
}
