package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/akolanti/portfolio/internal/api"
	"github.com/akolanti/portfolio/internal/config"
	"github.com/akolanti/portfolio/internal/domain/chatModel"
	"github.com/akolanti/portfolio/internal/domain/commonModels"
	"github.com/akolanti/portfolio/internal/domain/mailModel"
	"github.com/akolanti/portfolio/internal/domain/portfolio"
	"github.com/akolanti/portfolio/internal/handlers"
	"github.com/akolanti/portfolio/internal/job"
	"github.com/akolanti/portfolio/internal/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockChat struct {
	onAnswer func(ctx context.Context, input chatModel.ChatInput) (chatModel.ChatResult, error)
	lastIn   chatModel.ChatInput
}

func (m *mockChat) AnswerQuestion(ctx context.Context, input chatModel.ChatInput) (chatModel.ChatResult, error) {
	m.lastIn = input
	return m.onAnswer(ctx, input)
}

func (m *mockChat) Search(context.Context, string, int) []commonModels.ScoredDocument {
	return nil
}

type mockProfile struct{}

func (mockProfile) Current() *portfolio.Profile {
	return &portfolio.Profile{Name: "Jane Smith", Title: "Backend Engineer"}
}

type mockRepos struct {
	repos []portfolio.Repo
	err   error
}

func (m mockRepos) Cached(context.Context) ([]portfolio.Repo, error) {
	return m.repos, m.err
}

type mockQueue struct {
	err  error
	sent []mailModel.ContactMessage
}

func (m *mockQueue) Enqueue(msg mailModel.ContactMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func okDecision() chatModel.RateDecision {
	return chatModel.RateDecision{Allowed: true, Limit: 12, Remaining: 11, ResetAt: time.Now().Add(time.Minute)}
}

func setup(chat *mockChat, queue *mockQueue, repos handlers.RepoLister) {
	handlers.SetForTest(handlers.Dependencies{
		Chat:      chat,
		Profile:   mockProfile{},
		Repos:     repos,
		Mail:      queue,
		HasLLMKey: true,
	})
}

func postChat(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), config.CLIENT_ID_KEY, "203.0.113.9"))
	rec := httptest.NewRecorder()
	handlers.ChatHandler(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) api.OutgoingError {
	t.Helper()
	var body api.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func TestChatHandler_Success(t *testing.T) {
	chat := &mockChat{onAnswer: func(context.Context, chatModel.ChatInput) (chatModel.ChatResult, error) {
		return chatModel.ChatResult{
			Answer: commonModels.Answer{
				Answer:    "Yes, on AWS Lambda.",
				Citations: []commonModels.Citation{{Source: "Project: Event Pipeline", URL: "#projects"}},
			},
			RateLimit: okDecision(),
		}, nil
	}}
	setup(chat, &mockQueue{}, nil)

	rec := postChat(`{"message":"Do you have AWS experience?"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "203.0.113.9", chat.lastIn.ClientID)
	assert.Equal(t, "Do you have AWS experience?", chat.lastIn.Message)
	assert.Equal(t, "12", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "11", rec.Header().Get("X-RateLimit-Remaining"))

	var body api.ChatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Yes, on AWS Lambda.", body.Answer)
	assert.False(t, body.Cached)
	assert.Equal(t, []api.Citation{{Source: "Project: Event Pipeline", URL: "#projects"}}, body.Citations)
}

func TestChatHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantRetry bool
	}{
		{"missing key", rag.ErrMissingAPIKey, http.StatusInternalServerError, false},
		{"rate limited", rag.ErrRateLimited, http.StatusTooManyRequests, true},
		{"empty", rag.ErrEmptyQuestion, http.StatusBadRequest, false},
		{"too long", rag.ErrQuestionTooLong, http.StatusBadRequest, false},
		{"auth", &rag.SynthesizerError{Kind: rag.KindAuth, Err: errors.New("401")}, http.StatusInternalServerError, false},
		{"upstream", &rag.SynthesizerError{Kind: rag.KindUpstream, Err: errors.New("boom")}, http.StatusInternalServerError, true},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(&mockChat{onAnswer: func(context.Context, chatModel.ChatInput) (chatModel.ChatResult, error) {
				return chatModel.ChatResult{}, tt.err
			}}, &mockQueue{}, nil)

			rec := postChat(`{"message":"hi"}`)

			assert.Equal(t, tt.wantCode, rec.Code)
			outgoing := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, outgoing.Code)
			assert.Equal(t, tt.wantRetry, outgoing.Retry)
			assert.NotEmpty(t, outgoing.Message)
		})
	}
}

func TestChatHandler_RateLimitedHeaders(t *testing.T) {
	setup(&mockChat{onAnswer: func(context.Context, chatModel.ChatInput) (chatModel.ChatResult, error) {
		return chatModel.ChatResult{RateLimit: chatModel.RateDecision{
			Allowed: false, Limit: 12, Remaining: 0, ResetAt: time.Now().Add(30 * time.Second),
		}}, rag.ErrRateLimited
	}}, &mockQueue{}, nil)

	rec := postChat(`{"message":"hi"}`)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestChatHandler_MalformedBodyReachesService(t *testing.T) {
	chat := &mockChat{onAnswer: func(_ context.Context, in chatModel.ChatInput) (chatModel.ChatResult, error) {
		return chatModel.ChatResult{RateLimit: okDecision()}, rag.ErrEmptyQuestion
	}}
	setup(chat, &mockQueue{}, nil)

	rec := postChat(`{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "", chat.lastIn.Message)
}

func TestChatHandler_OversizedBody(t *testing.T) {
	chat := &mockChat{onAnswer: func(context.Context, chatModel.ChatInput) (chatModel.ChatResult, error) {
		return chatModel.ChatResult{RateLimit: okDecision()}, nil
	}}
	setup(chat, &mockQueue{}, nil)

	rec := postChat(`{"message":"` + strings.Repeat("a", config.MaxChatRequestBodyLen+1024) + `"}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	outgoing := decodeError(t, rec)
	assert.Equal(t, rag.ErrQuestionTooLong.Error(), outgoing.Message)
	assert.False(t, outgoing.Retry)
	assert.Empty(t, chat.lastIn.Message, "oversized bodies never reach the pipeline")
}

func TestChatHandler_MethodNotAllowed(t *testing.T) {
	setup(&mockChat{}, &mockQueue{}, nil)
	rec := httptest.NewRecorder()
	handlers.ChatHandler(rec, httptest.NewRequest(http.MethodGet, "/api/chat", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestHealthHandler(t *testing.T) {
	setup(&mockChat{}, &mockQueue{}, nil)
	rec := httptest.NewRecorder()
	handlers.HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, true, body["hasRequiredKey"])
	assert.NotEmpty(t, body["ts"])
}

func TestReposHandler(t *testing.T) {
	t.Run("no lister gives empty list", func(t *testing.T) {
		setup(&mockChat{}, &mockQueue{}, nil)
		rec := httptest.NewRecorder()
		handlers.ReposHandler(rec, httptest.NewRequest(http.MethodGet, "/api/repos", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"repos":[]}`, rec.Body.String())
	})

	t.Run("upstream failure", func(t *testing.T) {
		setup(&mockChat{}, &mockQueue{}, mockRepos{err: errors.New("github down")})
		rec := httptest.NewRecorder()
		handlers.ReposHandler(rec, httptest.NewRequest(http.MethodGet, "/api/repos", nil))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("listed", func(t *testing.T) {
		setup(&mockChat{}, &mockQueue{}, mockRepos{repos: []portfolio.Repo{{Name: "tool", FullName: "jane/tool"}}})
		rec := httptest.NewRecorder()
		handlers.ReposHandler(rec, httptest.NewRequest(http.MethodGet, "/api/repos", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var body api.ReposResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Len(t, body.Repos, 1)
		assert.Equal(t, "jane/tool", body.Repos[0].FullName)
	})
}

func TestProfileHandler(t *testing.T) {
	setup(&mockChat{}, &mockQueue{}, nil)
	rec := httptest.NewRecorder()
	handlers.ProfileHandler(rec, httptest.NewRequest(http.MethodGet, "/api/profile", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Jane Smith")
}

func postContact(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), config.TRACE_ID_KEY, "trace-1"))
	rec := httptest.NewRecorder()
	handlers.ContactHandler(rec, req)
	return rec
}

func TestContactHandler(t *testing.T) {
	valid := `{"name":"Sam Lee","email":"sam@example.com","message":"Hi, I'd love to talk about a role."}`

	t.Run("queued", func(t *testing.T) {
		queue := &mockQueue{}
		setup(&mockChat{}, queue, nil)

		rec := postContact(valid)

		require.Equal(t, http.StatusAccepted, rec.Code)
		require.Len(t, queue.sent, 1)
		assert.Equal(t, "trace-1", queue.sent[0].TraceId)
		assert.Equal(t, "sam@example.com", queue.sent[0].Email)
		var body api.ContactAcceptedResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "queued", body.Status)
		assert.Equal(t, queue.sent[0].Id, body.Id)
	})

	t.Run("honeypot is accepted but dropped", func(t *testing.T) {
		queue := &mockQueue{}
		setup(&mockChat{}, queue, nil)

		rec := postContact(`{"name":"Bot","email":"bot@example.com","message":"buy cheap things now","website":"spam.example"}`)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Empty(t, queue.sent)
	})

	t.Run("invalid", func(t *testing.T) {
		queue := &mockQueue{}
		setup(&mockChat{}, queue, nil)

		rec := postContact(`{"name":"Sam","email":"not-an-email","message":"Hi, I'd love to talk."}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "email")
		assert.Empty(t, queue.sent)
	})

	t.Run("bad json", func(t *testing.T) {
		setup(&mockChat{}, &mockQueue{}, nil)
		assert.Equal(t, http.StatusBadRequest, postContact(`{`).Code)
	})

	t.Run("queue full", func(t *testing.T) {
		setup(&mockChat{}, &mockQueue{err: job.ErrQueueFull}, nil)
		rec := postContact(valid)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.True(t, decodeError(t, rec).Retry)
	})
}
