package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter считает запросы в фиксированном минутном окне через INCR/EXPIRE.
// Подходит, когда запущено несколько экземпляров сервера.
type RedisLimiter struct {
	client  *redis.Client
	limit   int
	window  time.Duration
	prefix  string
	timeout time.Duration
	logger  *slog.Logger
}

// NewRedisLimiter подключается к Redis и проверяет соединение
func NewRedisLimiter(ctx context.Context, addr, password string, db, perMinute int, logger *slog.Logger) (*RedisLimiter, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return newRedisLimiter(client, perMinute, logger), nil
}

func newRedisLimiter(client *redis.Client, perMinute int, logger *slog.Logger) *RedisLimiter {
	return &RedisLimiter{
		client:  client,
		limit:   perMinute,
		window:  time.Minute,
		prefix:  "communityapp:ratelimit:",
		timeout: 250 * time.Millisecond,
		logger:  logger,
	}
}

// Allow пропускает запрос, если Redis недоступен
func (l *RedisLimiter) Allow(ctx context.Context, key string) Decision {
	if l.limit <= 0 {
		return Decision{Allowed: true}
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	redisKey := l.prefix + key
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	ttlCmd := pipe.TTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Error("redis rate limiter error", "op", "incr", "error", err)
		return Decision{Allowed: true}
	}
	count := incr.Val()

	// у счётчика всегда есть срок жизни, даже если прошлый EXPIRE не дошёл
	ttl := ttlCmd.Val()
	if needsExpiry(ttl) {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			l.logger.Error("redis rate limiter error", "op", "expire", "error", err)
		}
		ttl = l.window
	}

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   int(count) <= l.limit,
		Remaining: remaining,
		ResetAt:   time.Now().Add(ttl),
	}
}

// needsExpiry сообщает, что у ключа нет срока жизни.
// go-redis возвращает -1 и -2 для TTL без единиц измерения.
func needsExpiry(ttl time.Duration) bool {
	return ttl < 0
}

func (l *RedisLimiter) Close() {
	if l.client != nil {
		_ = l.client.Close()
	}
}
