package store

import (
	"context"
	"time"

	"github.com/akolanti/portfolio/internal/config"
	"github.com/akolanti/portfolio/internal/data/redisStore"
	"github.com/akolanti/portfolio/internal/domain/chatModel"
	"github.com/akolanti/portfolio/pkg/logger_i"
)

// RedisWindowLimiter keeps the fixed-window counters in redis so every instance shares one budget.
// When redis errors the request is allowed: limiting is best effort.
type RedisWindowLimiter struct {
	store  *redisStore.Store
	window time.Duration
	max    int
	logger *logger_i.Logger
}

func GetRedisWindowLimiter(ctx context.Context, opts redisStore.Options) *RedisWindowLimiter {
	s := redisStore.GetRedisStore(ctx, opts, config.RedisRateLimiterDB)
	if s == nil {
		return nil
	}
	return NewRedisWindowLimiter(s, config.ChatRateLimitWindow, config.ChatRateLimitMax)
}

func NewRedisWindowLimiter(s *redisStore.Store, window time.Duration, max int) *RedisWindowLimiter {
	return &RedisWindowLimiter{
		store:  s,
		window: window,
		max:    max,
		logger: logger_i.NewLogger("RateLimiter"),
	}
}

func (l *RedisWindowLimiter) Check(ctx context.Context, clientID string) chatModel.RateDecision {
	now := time.Now()
	count, ttl, err := l.store.IncrWindow(ctx, config.ChatRateLimitPrefix+clientID, l.window)
	if err != nil {
		l.logger.FromContext(ctx).Warn("rate limiter unavailable, allowing request", "error", err)
		return chatModel.RateDecision{Allowed: true, Limit: l.max, Remaining: l.max, ResetAt: now.Add(l.window)}
	}
	return decision(int(count), l.max, now.Add(ttl))
}
