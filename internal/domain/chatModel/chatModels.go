package chatModel

import (
	"context"
	"time"

	"github.com/akolanti/portfolio/internal/domain/commonModels"
)

type CacheEntry struct {
	Timestamp time.Time           `json:"timestamp"`
	Payload   commonModels.Answer `json:"payload"`
}

// RateLimitEntry is the fixed-window counter kept per client identifier.
type RateLimitEntry struct {
	Count   int
	ResetAt time.Time
}

type RateDecision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// ChatInput is one question as it reaches the pipeline.
type ChatInput struct {
	ClientID string
	Message  string
}

type ChatResult struct {
	Answer    commonModels.Answer
	Cached    bool
	RateLimit RateDecision
}

// ResponseCache never distinguishes an unknown key from an expired one.
type ResponseCache interface {
	Get(ctx context.Context, key string) (commonModels.Answer, bool)
	Put(ctx context.Context, key string, payload commonModels.Answer)
}

type RateLimiter interface {
	Check(ctx context.Context, clientID string) RateDecision
}
