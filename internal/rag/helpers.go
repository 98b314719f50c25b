package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"
	"github.com/akolanti/portfolio/internal/config"
	"github.com/akolanti/portfolio/internal/domain/commonModels"
	"github.com/akolanti/portfolio/internal/domain/portfolio"
	"github.com/akolanti/portfolio/internal/metrics"
	"github.com/akolanti/portfolio/internal/rag/corpus"
	"github.com/akolanti/portfolio/internal/rag/llm"
	"github.com/akolanti/portfolio/internal/rag/retrieval"
	"github.com/akolanti/portfolio/pkg/logger_i"
)

const systemInstruction = `You are the assistant on a personal portfolio website.
Answer ONLY from the provided context. If the context does not support an answer, say politely that you do not have that information.
Never invent employers, dates, metrics or links.
Respond with strict JSON: {"answer": string, "citations": [{"source": string, "url": string}]}.
Cite only sources that appear in the context.`

func (s *service) executeCacheCheckStep(ctx context.Context, key string) (commonModels.Answer, bool) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("cache_lookup", time.Since(start)) }()

	answer, found := s.cache.Get(ctx, key)
	if found {
		metrics.CacheHit()
	} else {
		metrics.CacheMiss()
	}
	return answer, found
}

func (s *service) executeRepoFetchStep(ctx context.Context, log *logger_i.Logger) []portfolio.Repo {
	if s.repos == nil {
		return nil
	}
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("github", time.Since(start)) }()

	res := s.repos.FetchRepos(ctx)
	if res.Err != nil {
		log.Warn("Repository fetch failed, continuing with static corpus", "error", res.Err)
	}
	return res.Repos
}

func (s *service) executeRetrievalStep(question string, repos []portfolio.Repo) []commonModels.ScoredDocument {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("corpus", time.Since(start)) }()

	docs := s.buildCorpus(repos)
	return retrieval.Select(docs, retrieval.Expand(question), config.MaxContextDocuments)
}

func (s *service) buildCorpus(repos []portfolio.Repo) []commonModels.Document {
	var profile *portfolio.Profile
	if s.profile != nil {
		profile = s.profile.Current()
	}
	return corpus.Build(profile, repos, s.extras...)
}

func (s *service) executeLLMStep(ctx context.Context, prompt llm.Prompt) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm", time.Since(start)) }()

	llmCtx, cancel := context.WithTimeout(ctx, config.LLMTimeout)
	defer cancel()
	return s.llmProvider.Generate(llmCtx, prompt)
}

func buildPrompt(question, contextBlock string) llm.Prompt {
	user := fmt.Sprintf("Context:\n%s\n\nQuestion: %s", contextBlock, question)
	if lang := replyLanguage(question); lang != "" {
		user += "\n\nReply in " + lang + "."
	}
	return llm.Prompt{
		System: systemInstruction + "\n" + config.AssistantGuardrail,
		User:   user,
	}
}

// replyLanguage names the question's language when it is reliably detected and not English.
func replyLanguage(question string) string {
	info := whatlanggo.Detect(question)
	if !info.IsReliable() || info.Lang == whatlanggo.Eng {
		return ""
	}
	return info.Lang.String()
}

type modelOutput struct {
	Answer    *string                 `json:"answer"`
	Citations []commonModels.Citation `json:"citations"`
}

// parseAnswer accepts only a JSON object with a string answer and, optionally, an array of citations.
func parseAnswer(raw string) (commonModels.Answer, bool) {
	var out modelOutput
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil || out.Answer == nil {
		return commonModels.Answer{}, false
	}
	citations := make([]commonModels.Citation, 0, len(out.Citations))
	for _, c := range out.Citations {
		if c.Source != "" {
			citations = append(citations, c)
		}
	}
	return commonModels.Answer{Answer: *out.Answer, Citations: citations}, true
}

func fallbackAnswer(raw string, selected []commonModels.ScoredDocument) commonModels.Answer {
	return commonModels.Answer{
		Answer:    strings.TrimSpace(raw),
		Citations: retrieval.Citations(selected, config.MaxFallbackCitations),
	}
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
