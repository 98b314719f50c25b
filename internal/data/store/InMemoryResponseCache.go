package store

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/portfolio/internal/domain/chatModel"
	"github.com/akolanti/portfolio/internal/domain/commonModels"
	"github.com/akolanti/portfolio/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem Store")

// InMemoryResponseCache expires entries lazily: a stale entry stays in the map until
// it is overwritten or Sweep is called.
type InMemoryResponseCache struct {
	cacheMutex *sync.RWMutex
	cacheMap   map[string]chatModel.CacheEntry
	ttl        time.Duration
	now        func() time.Time
}

func InitInMemoryResponseCache(ttl time.Duration) *InMemoryResponseCache {
	return NewInMemoryResponseCacheWithClock(ttl, time.Now)
}

func NewInMemoryResponseCacheWithClock(ttl time.Duration, now func() time.Time) *InMemoryResponseCache {
	return &InMemoryResponseCache{
		cacheMutex: new(sync.RWMutex),
		cacheMap:   make(map[string]chatModel.CacheEntry),
		ttl:        ttl,
		now:        now,
	}
}

func (store *InMemoryResponseCache) Get(ctx context.Context, key string) (commonModels.Answer, bool) {
	store.cacheMutex.RLock()
	entry, found := store.cacheMap[key]
	store.cacheMutex.RUnlock()

	if !found || store.now().Sub(entry.Timestamp) >= store.ttl {
		return commonModels.Answer{}, false
	}
	return entry.Payload, true
}

func (store *InMemoryResponseCache) Put(ctx context.Context, key string, payload commonModels.Answer) {
	store.cacheMutex.Lock()
	defer store.cacheMutex.Unlock()
	store.cacheMap[key] = chatModel.CacheEntry{Timestamp: store.now(), Payload: payload}
}

// Sweep drops expired entries and returns how many were removed.
func (store *InMemoryResponseCache) Sweep() int {
	store.cacheMutex.Lock()
	defer store.cacheMutex.Unlock()
	removed := 0
	now := store.now()
	for key, entry := range store.cacheMap {
		if now.Sub(entry.Timestamp) >= store.ttl {
			delete(store.cacheMap, key)
			removed++
		}
	}
	if removed > 0 {
		inMemLogger.Debug("swept expired cache entries", "removed", removed)
	}
	return removed
}

func (store *InMemoryResponseCache) Len() int {
	store.cacheMutex.RLock()
	defer store.cacheMutex.RUnlock()
	return len(store.cacheMap)
}
