package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/akolanti/portfolio/internal/adapter"
	"github.com/akolanti/portfolio/internal/adapter/utils"
	"github.com/akolanti/portfolio/internal/api"
	"github.com/akolanti/portfolio/internal/config"
	"github.com/akolanti/portfolio/internal/contact"
	"github.com/akolanti/portfolio/internal/domain/chatModel"
	"github.com/akolanti/portfolio/internal/job"
	"github.com/akolanti/portfolio/internal/rag"
)

// ChatHandler godoc
// @Summary      Ask the portfolio assistant
// @Description  Answers a question about the portfolio from the profile, projects, experience and public repositories. Rate limited to 12 requests per minute per client.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      api.ChatRequest    true  "The question"
// @Success      200      {object}  api.ChatResponse   "Grounded answer with citations"
// @Failure      400      {object}  api.ErrorResponse  "Missing message or message over 1000 characters"
// @Failure      405      {object}  api.ErrorResponse  "Method not allowed"
// @Failure      413      {object}  api.ErrorResponse  "Request body over 8 KiB"
// @Failure      429      {object}  api.ErrorResponse  "Rate limit exceeded"
// @Failure      500      {object}  api.ErrorResponse  "Missing configuration or upstream failure"
// @Router       /api/chat [post]
func ChatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	if !validateContext(r.Context()) {
		return
	}

	// A malformed body reads as an empty message, which is rejected after the rate limit check.
	var requestData api.ChatRequest
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxChatRequestBodyLen)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logRH.FromContext(r.Context()).Warn("Chat request body too large", "limit", tooLarge.Limit)
			WriteErrorResponse(w, http.StatusRequestEntityTooLarge, rag.ErrQuestionTooLong.Error(), false)
			return
		}
		logRH.FromContext(r.Context()).Warn("Bad chat request body", "error", err)
		requestData.Message = ""
	}

	ctx, cancel := context.WithTimeout(r.Context(), config.ChatRequestTimeout)
	defer cancel()

	result, err := handlerInstance.deps.Chat.AnswerQuestion(ctx, chatModel.ChatInput{
		ClientID: clientID(r.Context()),
		Message:  requestData.Message,
	})
	setRateLimitHeaders(w, result.RateLimit)
	if err != nil {
		writeChatError(w, r, err, result.RateLimit)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToChatResponse(result))
}

func writeChatError(w http.ResponseWriter, r *http.Request, err error, decision chatModel.RateDecision) {
	var synthErr *rag.SynthesizerError
	switch {
	case errors.Is(err, rag.ErrMissingAPIKey):
		WriteErrorResponse(w, http.StatusInternalServerError, "The assistant is not configured.", false)
	case errors.Is(err, rag.ErrRateLimited):
		retryAfter := int(time.Until(decision.ResetAt).Seconds()) + 1
		if retryAfter < 1 {
			retryAfter = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		WriteErrorResponse(w, http.StatusTooManyRequests, "Too many requests. Please wait a minute and try again.", true)
	case errors.Is(err, rag.ErrEmptyQuestion), errors.Is(err, rag.ErrQuestionTooLong):
		WriteErrorResponse(w, http.StatusBadRequest, err.Error(), false)
	case errors.As(err, &synthErr):
		WriteErrorResponse(w, http.StatusInternalServerError, synthErr.Hint(), synthErr.CanRetry())
	default:
		logRH.FromContext(r.Context()).Error("Chat request failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Something went wrong. Please try again.", true)
	}
}

// HealthHandler godoc
// @Summary      Health check
// @Description  Connectivity indicator for the UI.
// @Tags         Status
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Router       /api/health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{
		OK:             true,
		HasRequiredKey: handlerInstance.deps.HasLLMKey,
		TS:             time.Now().UTC(),
	})
}

// ReposHandler godoc
// @Summary      List public repositories
// @Description  Public repositories, cached for ten minutes.
// @Tags         Portfolio
// @Produce      json
// @Success      200  {object}  api.ReposResponse
// @Failure      502  {object}  api.ErrorResponse  "GitHub unavailable"
// @Router       /api/repos [get]
func ReposHandler(w http.ResponseWriter, r *http.Request) {
	if handlerInstance.deps.Repos == nil {
		writeJsonResponse(w, http.StatusOK, adapter.ToReposResponse(nil))
		return
	}
	repos, err := handlerInstance.deps.Repos.Cached(r.Context())
	if err != nil {
		logRH.FromContext(r.Context()).Warn("Repository listing failed", "error", err)
		WriteErrorResponse(w, http.StatusBadGateway, "Repositories are unavailable right now.", true)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToReposResponse(repos))
}

// ProfileHandler godoc
// @Summary      Get the profile
// @Description  The structured profile the site renders.
// @Tags         Portfolio
// @Produce      json
// @Success      200  {object}  portfolio.Profile
// @Router       /api/profile [get]
func ProfileHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, handlerInstance.deps.Profile.Current())
}

// ContactHandler godoc
// @Summary      Send a contact message
// @Description  Validates a contact form submission and queues it for delivery.
// @Tags         Contact
// @Accept       json
// @Produce      json
// @Param        request  body      api.ContactRequest           true  "Contact form"
// @Success      202      {object}  api.ContactAcceptedResponse  "Queued"
// @Failure      400      {object}  api.ErrorResponse            "Invalid form"
// @Failure      429      {object}  api.ErrorResponse            "Too many messages"
// @Failure      503      {object}  api.ErrorResponse            "Queue full"
// @Router       /api/contact [post]
func ContactHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	log := logRH.FromContext(r.Context())

	var requestData api.ContactRequest
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxContactRequestLen)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid JSON body", false)
		return
	}

	submission := adapter.ToSubmission(requestData)
	id := utils.GetNewUUID()
	if submission.IsSpam() {
		log.Warn("Honeypot filled, dropping contact message", "clientId", clientID(r.Context()))
		writeJsonResponse(w, http.StatusAccepted, api.ContactAcceptedResponse{Id: id, Status: "queued"})
		return
	}

	var validationErr *contact.ValidationError
	if err := submission.Validate(); errors.As(err, &validationErr) {
		WriteErrorResponse(w, http.StatusBadRequest, validationErr.Error(), false)
		return
	}

	traceId, _ := r.Context().Value(config.TRACE_ID_KEY).(string)
	err := handlerInstance.deps.Mail.Enqueue(submission.ToMessage(id, traceId, time.Now()))
	if errors.Is(err, job.ErrQueueFull) {
		log.Warn("Mail queue full")
		WriteErrorResponse(w, http.StatusServiceUnavailable, "Too many messages right now. Please try again later.", true)
		return
	}
	writeJsonResponse(w, http.StatusAccepted, api.ContactAcceptedResponse{Id: id, Status: "queued"})
}

func clientID(ctx context.Context) string {
	if id, ok := ctx.Value(config.CLIENT_ID_KEY).(string); ok && id != "" {
		return id
	}
	return config.UnknownClientID
}
