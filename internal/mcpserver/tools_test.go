package mcpserver

import (
	"context"
	"errors"
	"testing"

	"github.com/akolanti/portfolio/internal/domain/chatModel"
	"github.com/akolanti/portfolio/internal/domain/commonModels"
	"github.com/akolanti/portfolio/internal/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockChat struct {
	result    chatModel.ChatResult
	err       error
	lastInput chatModel.ChatInput
	lastLimit int
	docs      []commonModels.ScoredDocument
}

func (m *mockChat) AnswerQuestion(_ context.Context, input chatModel.ChatInput) (chatModel.ChatResult, error) {
	m.lastInput = input
	return m.result, m.err
}

func (m *mockChat) Search(_ context.Context, _ string, limit int) []commonModels.ScoredDocument {
	m.lastLimit = limit
	if len(m.docs) > limit {
		return m.docs[:limit]
	}
	return m.docs
}

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the answer", func(t *testing.T) {
		chat := &mockChat{result: chatModel.ChatResult{
			Answer: commonModels.Answer{
				Answer:    "Yes, on AWS Lambda.",
				Citations: []commonModels.Citation{{Source: "Project: Event Pipeline", URL: "#projects"}},
			},
			Cached: true,
		}}
		server := NewServer(chat)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Question: "AWS?"})

		require.NoError(t, err)
		assert.Equal(t, ClientID, chat.lastInput.ClientID)
		assert.Equal(t, "AWS?", chat.lastInput.Message)
		assert.Equal(t, "Yes, on AWS Lambda.", output.Answer)
		assert.True(t, output.Cached)
		assert.Equal(t, []CitationOutput{{Source: "Project: Event Pipeline", URL: "#projects"}}, output.Citations)
	})

	t.Run("synthesizer errors are sanitized", func(t *testing.T) {
		chat := &mockChat{err: &rag.SynthesizerError{Kind: rag.KindAuth, Err: errors.New("401 key=sk-secret")}}
		server := NewServer(chat)

		_, _, err := server.handleAsk(ctx, nil, AskInput{Question: "hi"})

		require.Error(t, err)
		assert.NotContains(t, err.Error(), "sk-secret")
	})

	t.Run("rate limit passes through", func(t *testing.T) {
		server := NewServer(&mockChat{err: rag.ErrRateLimited})
		_, _, err := server.handleAsk(ctx, nil, AskInput{Question: "hi"})
		assert.ErrorIs(t, err, rag.ErrRateLimited)
	})
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()
	docs := []commonModels.ScoredDocument{
		{Doc: commonModels.Document{Id: "project-pipeline", Source: "Project: Event Pipeline", URL: "#projects", Text: "AWS"}, Score: 7},
		{Doc: commonModels.Document{Id: "profile", Source: "Profile", URL: "#about", Text: "Jane"}, Score: 2},
	}

	t.Run("returns scored documents", func(t *testing.T) {
		chat := &mockChat{docs: docs}
		_, output, err := NewServer(chat).handleSearch(ctx, nil, SearchInput{Query: "aws", Limit: 1})

		require.NoError(t, err)
		assert.Equal(t, 1, chat.lastLimit)
		require.Equal(t, 1, output.Count)
		assert.Equal(t, "project-pipeline", output.Results[0].Id)
		assert.Equal(t, 7, output.Results[0].Score)
	})

	t.Run("default limit", func(t *testing.T) {
		chat := &mockChat{docs: docs}
		_, output, err := NewServer(chat).handleSearch(ctx, nil, SearchInput{Query: "aws"})

		require.NoError(t, err)
		assert.Equal(t, defaultSearchLimit, chat.lastLimit)
		assert.Equal(t, 2, output.Count)
	})

	t.Run("empty query", func(t *testing.T) {
		_, _, err := NewServer(&mockChat{}).handleSearch(ctx, nil, SearchInput{})
		assert.ErrorIs(t, err, rag.ErrEmptyQuestion)
	})
}
