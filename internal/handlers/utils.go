package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/akolanti/portfolio/internal/adapter"
	"github.com/akolanti/portfolio/internal/domain/chatModel"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string, canRetry bool) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(message, httpCode, canRetry))
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", false)
}

func validateContext(ctx context.Context) bool {
	if ctx.Err() != nil {
		logRH.FromContext(ctx).Warn("context error", "error", ctx.Err())
		return false
	}
	return true
}

func setRateLimitHeaders(w http.ResponseWriter, d chatModel.RateDecision) {
	if d.Limit == 0 {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
}
