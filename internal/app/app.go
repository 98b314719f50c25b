// Package app wires the chat pipeline from configuration for the server and the CLI.
package app

import (
	"context"
	"fmt"

	"github.com/akolanti/portfolio/internal/config"
	"github.com/akolanti/portfolio/internal/data/profileStore"
	"github.com/akolanti/portfolio/internal/data/redisStore"
	"github.com/akolanti/portfolio/internal/data/store"
	"github.com/akolanti/portfolio/internal/domain/chatModel"
	"github.com/akolanti/portfolio/internal/domain/commonModels"
	"github.com/akolanti/portfolio/internal/github"
	"github.com/akolanti/portfolio/internal/rag"
	"github.com/akolanti/portfolio/internal/rag/ingest"
	"github.com/akolanti/portfolio/internal/rag/llm"
	"github.com/akolanti/portfolio/internal/rag/llm/gemini"
	"github.com/akolanti/portfolio/internal/rag/llm/openai"
	"github.com/akolanti/portfolio/pkg/logger_i"
)

type Components struct {
	Profile *profileStore.Store
	GitHub  *github.Client // nil without GITHUB_USERNAME
	LLM     llm.Provider   // nil without a model key
	Extras  []commonModels.Document
	Chat    rag.Service
}

// Build loads the profile and wires the chat pipeline. Only an unreadable profile is fatal;
// redis falls back to memory and a missing model key or résumé is logged.
func Build(ctx context.Context, cfg *config.Config) (*Components, error) {
	logger := logger_i.NewLogger("app")

	profile, err := profileStore.New(cfg.ProfilePath)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	c := &Components{Profile: profile}

	cache, limiter := chatStores(ctx, cfg, logger)
	c.LLM = NewProvider(ctx, cfg)
	if c.LLM == nil {
		logger.Error("No model API key configured, chat will answer 500", "provider", cfg.LLMProvider)
	}

	deps := rag.Dependencies{Profile: profile, LLM: c.LLM, Cache: cache, Limiter: limiter}
	if cfg.GitHubUsername != "" {
		c.GitHub = github.NewClient(ctx, cfg.GitHubUsername, cfg.GitHubToken)
		deps.Repos = c.GitHub
	}

	if cfg.ResumePath != "" {
		extras, err := ingest.ExtractResume(cfg.ResumePath)
		if err != nil {
			logger.Warn("Résumé skipped", "path", cfg.ResumePath, "error", err)
		} else {
			c.Extras = extras
			deps.Extras = extras
			logger.Info("Résumé loaded", "sections", len(extras))
		}
	}

	c.Chat = rag.NewService(deps)
	return c, nil
}

// NewProvider returns the configured model provider, or nil when its key is missing.
func NewProvider(ctx context.Context, cfg *config.Config) llm.Provider {
	if !cfg.HasLLMKey() {
		return nil
	}
	if cfg.LLMProvider == config.LLMProviderOpenAI {
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.LLMModel)
	}
	return gemini.GetGeminiClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
}

func chatStores(ctx context.Context, cfg *config.Config, logger *logger_i.Logger) (chatModel.ResponseCache, chatModel.RateLimiter) {
	if cfg.RedisAddr != "" {
		opts := redisStore.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		cache := store.GetRedisResponseCache(ctx, opts)
		limiter := store.GetRedisWindowLimiter(ctx, opts)
		if cache != nil && limiter != nil {
			logger.Info("Using redis for the response cache and rate limiter", "addr", cfg.RedisAddr)
			return cache, limiter
		}
		logger.Error("Redis stores are offline, falling back to memory")
	}
	return store.InitInMemoryResponseCache(config.ChatCacheTTL),
		store.InitInMemoryWindowLimiter(config.ChatRateLimitWindow, config.ChatRateLimitMax)
}
