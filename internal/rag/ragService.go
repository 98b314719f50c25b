package rag

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/akolanti/portfolio/internal/config"
	"github.com/akolanti/portfolio/internal/domain/chatModel"
	"github.com/akolanti/portfolio/internal/domain/commonModels"
	"github.com/akolanti/portfolio/internal/domain/portfolio"
	"github.com/akolanti/portfolio/internal/metrics"
	"github.com/akolanti/portfolio/internal/rag/llm"
	"github.com/akolanti/portfolio/internal/rag/retrieval"
	"github.com/akolanti/portfolio/pkg/logger_i"
)

// Service is the public contract of the chat pipeline. Handlers, the MCP server and the CLI only see this.
type Service interface {
	AnswerQuestion(ctx context.Context, input chatModel.ChatInput) (chatModel.ChatResult, error)
	Search(ctx context.Context, question string, limit int) []commonModels.ScoredDocument
}

type ProfileSource interface {
	Current() *portfolio.Profile
}

type RepoFetcher interface {
	FetchRepos(ctx context.Context) portfolio.RepoResult
}

// Dependencies wires the pipeline. A nil LLM means the model key is missing; a nil Repos skips the repo fetch.
type Dependencies struct {
	Profile ProfileSource
	Repos   RepoFetcher
	LLM     llm.Provider
	Cache   chatModel.ResponseCache
	Limiter chatModel.RateLimiter
	Extras  []commonModels.Document
}

type service struct {
	profile     ProfileSource
	repos       RepoFetcher
	llmProvider llm.Provider
	cache       chatModel.ResponseCache
	limiter     chatModel.RateLimiter
	extras      []commonModels.Document
	logger      *logger_i.Logger
}

func NewService(d Dependencies) Service {
	return &service{
		profile:     d.Profile,
		repos:       d.Repos,
		llmProvider: d.LLM,
		cache:       d.Cache,
		limiter:     d.Limiter,
		extras:      d.Extras,
		logger:      logger_i.NewLogger("rag_service"),
	}
}

func (s *service) AnswerQuestion(ctx context.Context, input chatModel.ChatInput) (chatModel.ChatResult, error) {
	start := time.Now()
	log := s.logger.FromContext(ctx).With("clientId", input.ClientID)
	var result chatModel.ChatResult

	if s.llmProvider == nil {
		log.Error("Chat request refused", "error", ErrMissingAPIKey)
		return result, ErrMissingAPIKey
	}

	result.RateLimit = s.limiter.Check(ctx, input.ClientID)
	if !result.RateLimit.Allowed {
		metrics.RateLimited()
		log.Warn("Rate limit exceeded", "resetAt", result.RateLimit.ResetAt)
		return result, ErrRateLimited
	}

	question := strings.TrimSpace(input.Message)
	if question == "" {
		return result, ErrEmptyQuestion
	}
	if utf8.RuneCountInString(question) > config.MaxQuestionLength {
		return result, ErrQuestionTooLong
	}

	key := retrieval.Normalize(question)
	if cached, found := s.executeCacheCheckStep(ctx, key); found {
		log.Debug("Cache hit", "key", key)
		result.Answer = cached
		result.Cached = true
		metrics.CaptureRequestMetrics("cached", time.Since(start))
		return result, nil
	}

	repos := s.executeRepoFetchStep(ctx, log)
	selected := s.executeRetrievalStep(question, repos)
	log.Debug("Context selected", "documents", len(selected))

	raw, err := s.executeLLMStep(ctx, buildPrompt(question, retrieval.BuildContext(selected)))
	if err != nil {
		synthErr := ClassifyError(err)
		metrics.AnswerOutcome("error")
		metrics.CaptureRequestMetrics("error", time.Since(start))
		log.Error("Answer synthesis failed", "kind", synthErr.Kind, "error", synthErr.Err)
		return result, synthErr
	}

	answer, ok := parseAnswer(raw)
	if ok {
		metrics.AnswerOutcome("json")
	} else {
		log.Warn("Model output was not valid JSON, using raw text")
		metrics.AnswerOutcome("fallback")
		answer = fallbackAnswer(raw, selected)
	}

	s.cache.Put(ctx, key, answer)
	result.Answer = answer
	metrics.CaptureRequestMetrics("ok", time.Since(start))
	return result, nil
}

// Search runs retrieval only, with the current repo listing, for diagnostics.
func (s *service) Search(ctx context.Context, question string, limit int) []commonModels.ScoredDocument {
	repos := s.executeRepoFetchStep(ctx, s.logger.FromContext(ctx))
	docs := s.buildCorpus(repos)
	return retrieval.Select(docs, retrieval.Expand(question), limit)
}
