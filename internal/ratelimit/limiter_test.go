package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/CommunityApp/internal/logger"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestMemoryLimiterBlocksAfterLimit(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := newMemoryLimiter(3, clock.now)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.Truef(t, l.Allow(ctx, "user:1").Allowed, "request %d", i)
	}
	d := l.Allow(ctx, "user:1")
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.True(t, d.ResetAt.After(clock.t))

	// другой ключ считается отдельно
	assert.True(t, l.Allow(ctx, "user:2").Allowed)

	// через 20 секунд восстанавливается один токен
	clock.t = clock.t.Add(20 * time.Second)
	assert.True(t, l.Allow(ctx, "user:1").Allowed)
	assert.False(t, l.Allow(ctx, "user:1").Allowed)
}

func TestMemoryLimiterDisabled(t *testing.T) {
	l := newMemoryLimiter(0, time.Now)
	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow(context.Background(), "k").Allowed)
	}
}

func TestMemoryLimiterCleanup(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := newMemoryLimiter(5, clock.now)
	l.Allow(context.Background(), "ip:1.2.3.4")

	l.cleanup(clock.t.Add(30 * time.Second))
	assert.Len(t, l.buckets, 1)

	l.cleanup(clock.t.Add(2 * time.Minute))
	assert.Empty(t, l.buckets)
	l.Close()
	l.Close()
}

func TestRedisLimiterFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 50 * time.Millisecond})
	l := newRedisLimiter(client, 1, logger.Discard())
	defer l.Close()

	assert.True(t, l.Allow(context.Background(), "user:1").Allowed)
	assert.True(t, l.Allow(context.Background(), "user:1").Allowed)
}

func TestNeedsExpiry(t *testing.T) {
	assert.True(t, needsExpiry(time.Duration(-1)), "key without ttl")
	assert.True(t, needsExpiry(time.Duration(-2)), "missing key")
	assert.False(t, needsExpiry(0))
	assert.False(t, needsExpiry(30*time.Second))
}

func TestRedisLimiterRestoresLostExpiry(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR is not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	l := newRedisLimiter(client, 3, logger.Discard())
	l.prefix = "communityapp:test:" + t.Name() + ":"
	defer l.Close()

	// счётчик без срока жизни, как после потерянного EXPIRE
	key := l.prefix + "user:1"
	require.NoError(t, client.Set(ctx, key, 5, 0).Err())
	defer client.Del(ctx, key)

	d := l.Allow(ctx, "user:1")
	assert.False(t, d.Allowed)

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
