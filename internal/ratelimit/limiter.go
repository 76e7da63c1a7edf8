package ratelimit

import (
	"context"
	"time"
)

// Decision результат проверки лимита для одного запроса
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter ограничивает число запросов на ключ (пользователь или IP) в минуту
type Limiter interface {
	Allow(ctx context.Context, key string) Decision
	Close()
}
