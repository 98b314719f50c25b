package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/akolanti/portfolio/internal/config"
	"github.com/akolanti/portfolio/internal/data/redisStore"
	"github.com/akolanti/portfolio/internal/domain/chatModel"
	"github.com/akolanti/portfolio/internal/domain/commonModels"
	"github.com/akolanti/portfolio/pkg/logger_i"
)

// RedisResponseCache shares cached answers between instances. Redis enforces the TTL;
// any redis failure reads as a miss and a dropped write.
type RedisResponseCache struct {
	store  *redisStore.Store
	ttl    time.Duration
	logger *logger_i.Logger
}

func GetRedisResponseCache(ctx context.Context, opts redisStore.Options) *RedisResponseCache {
	s := redisStore.GetRedisStore(ctx, opts, config.RedisChatCacheDB)
	if s == nil {
		return nil
	}
	return NewRedisResponseCache(s, config.ChatCacheTTL)
}

func NewRedisResponseCache(s *redisStore.Store, ttl time.Duration) *RedisResponseCache {
	return &RedisResponseCache{
		store:  s,
		ttl:    ttl,
		logger: logger_i.NewLogger("ResponseCache"),
	}
}

func (c *RedisResponseCache) Get(ctx context.Context, key string) (commonModels.Answer, bool) {
	log := c.logger.FromContext(ctx)
	val, err := c.store.Get(ctx, config.ChatCacheKeyPrefix+key)
	if c.store.IsNil(err) {
		return commonModels.Answer{}, false
	} else if err != nil {
		log.Warn("cache read failed", "error", err)
		return commonModels.Answer{}, false
	}

	var entry chatModel.CacheEntry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		log.Warn("cache entry unreadable", "error", err)
		return commonModels.Answer{}, false
	}
	return entry.Payload, true
}

func (c *RedisResponseCache) Put(ctx context.Context, key string, payload commonModels.Answer) {
	log := c.logger.FromContext(ctx)
	data, err := json.Marshal(chatModel.CacheEntry{Timestamp: time.Now(), Payload: payload})
	if err != nil {
		log.Error("cache entry marshal failed", "error", err)
		return
	}
	if err := c.store.Set(ctx, config.ChatCacheKeyPrefix+key, data, c.ttl); err != nil {
		log.Warn("cache write failed", "error", err)
		return
	}
	log.Debug("Saved answer to cache")
}
