package api

import (
	"time"

	"github.com/akolanti/portfolio/internal/domain/portfolio"
)

// requests---------------------

type ChatRequest struct {
	Message string `json:"message" example:"Do you have AWS experience?" validate:"required"`
}

type ContactRequest struct {
	Name    string `json:"name" example:"Sam Lee" validate:"required"`
	Email   string `json:"email" example:"sam@example.com" validate:"required"`
	Message string `json:"message" example:"Hi, I'd love to talk about a backend role." validate:"required"`
	Website string `json:"website,omitempty"`
}

// responses---------------------

type Citation struct {
	Source string `json:"source" example:"Project: Event Pipeline"`
	URL    string `json:"url" example:"#projects"`
}

type ChatResponse struct {
	Answer    string     `json:"answer" example:"Yes. The Event Pipeline project runs on AWS Lambda and EventBridge."`
	Citations []Citation `json:"citations"`
	Cached    bool       `json:"cached" example:"false"`
}

type HealthResponse struct {
	OK             bool      `json:"ok" example:"true"`
	HasRequiredKey bool      `json:"hasRequiredKey" example:"true"`
	TS             time.Time `json:"ts"`
}

type ReposResponse struct {
	Repos []portfolio.Repo `json:"repos"`
}

type ContactAcceptedResponse struct {
	Id     string `json:"id" example:"4f7c2a4e-5b7e-4a43-9d1c-0b3f8e6c2a10"`
	Status string `json:"status" example:"queued"`
}

type ErrorResponse struct {
	Error OutgoingError `json:"error"`
}

type OutgoingError struct {
	Code    int    `json:"code" example:"429"`
	Message string `json:"message" example:"Too many requests. Please wait a minute and try again."`
	Retry   bool   `json:"can_retry" example:"true"`
}
