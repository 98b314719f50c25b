package store

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/portfolio/internal/domain/chatModel"
)

// InMemoryWindowLimiter is a fixed-window counter per client identifier.
// Two bursts can land back to back at a window seam; that is accepted.
type InMemoryWindowLimiter struct {
	mu      sync.Mutex
	entries map[string]*chatModel.RateLimitEntry
	window  time.Duration
	max     int
	now     func() time.Time
}

func InitInMemoryWindowLimiter(window time.Duration, max int) *InMemoryWindowLimiter {
	return NewInMemoryWindowLimiterWithClock(window, max, time.Now)
}

func NewInMemoryWindowLimiterWithClock(window time.Duration, max int, now func() time.Time) *InMemoryWindowLimiter {
	return &InMemoryWindowLimiter{
		entries: make(map[string]*chatModel.RateLimitEntry),
		window:  window,
		max:     max,
		now:     now,
	}
}

func (l *InMemoryWindowLimiter) Check(ctx context.Context, clientID string) chatModel.RateDecision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, exists := l.entries[clientID]
	if !exists {
		entry = &chatModel.RateLimitEntry{}
		l.entries[clientID] = entry
	}
	if !exists || now.After(entry.ResetAt) {
		entry.Count = 0
		entry.ResetAt = now.Add(l.window)
	}
	entry.Count++

	return decision(entry.Count, l.max, entry.ResetAt)
}

func decision(count int, max int, resetAt time.Time) chatModel.RateDecision {
	remaining := max - count
	if remaining < 0 {
		remaining = 0
	}
	return chatModel.RateDecision{
		Allowed:   count <= max,
		Limit:     max,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}
