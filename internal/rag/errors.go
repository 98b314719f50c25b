package rag

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrMissingAPIKey   = errors.New("model API key is not configured")
	ErrRateLimited     = errors.New("rate limit exceeded")
	ErrEmptyQuestion   = errors.New("message is required")
	ErrQuestionTooLong = errors.New("message is too long")
)

type SynthesizerErrorKind string

const (
	KindAuth      SynthesizerErrorKind = "auth"
	KindRateLimit SynthesizerErrorKind = "rate_limit"
	KindTimeout   SynthesizerErrorKind = "timeout"
	KindUpstream  SynthesizerErrorKind = "upstream"
)

// SynthesizerError wraps a model provider failure. Err is for logs only and never reaches a client.
type SynthesizerError struct {
	Kind SynthesizerErrorKind
	Err  error
}

func (e *SynthesizerError) Error() string {
	return "synthesizer " + string(e.Kind) + ": " + e.Err.Error()
}

func (e *SynthesizerError) Unwrap() error {
	return e.Err
}

// Hint is the sanitized message safe to return to callers.
func (e *SynthesizerError) Hint() string {
	switch e.Kind {
	case KindAuth:
		return "The assistant could not authenticate with the model provider."
	case KindRateLimit:
		return "The model provider is busy. Please try again shortly."
	case KindTimeout:
		return "The model took too long to respond."
	default:
		return "The assistant could not generate an answer right now."
	}
}

func (e *SynthesizerError) CanRetry() bool {
	return e.Kind != KindAuth
}

var authMarkers = []string{"api key", "api_key", "apikey", "unauthorized", "unauthenticated", "permission denied", "permission_denied", "401", "403"}
var rateMarkers = []string{"rate limit", "rate_limit", "ratelimit", "quota", "resource_exhausted", "too many requests", "429"}

// ClassifyError sorts a provider error by inspecting its text, since providers disagree on error types.
func ClassifyError(err error) *SynthesizerError {
	if err == nil {
		return nil
	}
	var se *SynthesizerError
	if errors.As(err, &se) {
		return se
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &SynthesizerError{Kind: KindTimeout, Err: err}
	}

	text := strings.ToLower(err.Error())
	switch {
	case containsAny(text, authMarkers):
		return &SynthesizerError{Kind: KindAuth, Err: err}
	case containsAny(text, rateMarkers):
		return &SynthesizerError{Kind: KindRateLimit, Err: err}
	case strings.Contains(text, "deadline exceeded") || strings.Contains(text, "timeout"):
		return &SynthesizerError{Kind: KindTimeout, Err: err}
	default:
		return &SynthesizerError{Kind: KindUpstream, Err: err}
	}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
