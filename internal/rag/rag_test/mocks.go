package rag_test

import (
	"context"

	"github.com/akolanti/portfolio/internal/domain/portfolio"
	"github.com/akolanti/portfolio/internal/rag/llm"
)

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, prompt llm.Prompt) (string, error)
	Calls      int
	LastPrompt llm.Prompt
}

func (m *MockLLM) Generate(ctx context.Context, prompt llm.Prompt) (string, error) {
	m.Calls++
	m.LastPrompt = prompt
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, prompt)
	}
	return `{"answer":"mocked llm response","citations":[]}`, nil
}

// MockRepos implements rag.RepoFetcher
type MockRepos struct {
	OnFetchRepos func(ctx context.Context) portfolio.RepoResult
}

func (m *MockRepos) FetchRepos(ctx context.Context) portfolio.RepoResult {
	if m.OnFetchRepos != nil {
		return m.OnFetchRepos(ctx)
	}
	return portfolio.RepoResult{Repos: []portfolio.Repo{}}
}

// MockProfile implements rag.ProfileSource
type MockProfile struct {
	Profile *portfolio.Profile
}

func (m *MockProfile) Current() *portfolio.Profile {
	return m.Profile
}
