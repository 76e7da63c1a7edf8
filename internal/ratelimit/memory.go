package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const sweepInterval = 5 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter хранит token bucket на каждый ключ в памяти процесса
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int
	every   time.Duration
	now     func() time.Time
	stopCh  chan struct{}
	once    sync.Once
}

// NewMemoryLimiter создаёт лимитер на perMinute запросов в минуту.
// perMinute <= 0 отключает ограничение.
func NewMemoryLimiter(perMinute int) *MemoryLimiter {
	l := newMemoryLimiter(perMinute, time.Now)
	go l.sweepLoop()
	return l
}

func newMemoryLimiter(perMinute int, now func() time.Time) *MemoryLimiter {
	l := &MemoryLimiter{
		buckets: make(map[string]*bucket),
		limit:   perMinute,
		now:     now,
		stopCh:  make(chan struct{}),
	}
	if perMinute > 0 {
		l.every = time.Minute / time.Duration(perMinute)
	}
	return l
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) Decision {
	if l.limit <= 0 {
		return Decision{Allowed: true}
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rate.Every(l.every), l.limit)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	allowed := b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)
	remaining := int(tokens)
	if remaining < 0 {
		remaining = 0
	}

	// время до появления следующего токена
	reset := now
	if tokens < 1 {
		reset = now.Add(time.Duration((1 - tokens) * float64(l.every)))
	}
	return Decision{Allowed: allowed, Remaining: remaining, ResetAt: reset}
}

func (l *MemoryLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup(l.now())
		case <-l.stopCh:
			return
		}
	}
}

// cleanup удаляет ключи, которые не встречались дольше минуты
func (l *MemoryLimiter) cleanup(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > time.Minute {
			delete(l.buckets, key)
		}
	}
}

func (l *MemoryLimiter) Close() {
	l.once.Do(func() { close(l.stopCh) })
}
