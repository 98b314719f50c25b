package adapter

import (
	"github.com/akolanti/portfolio/internal/api"
	"github.com/akolanti/portfolio/internal/contact"
	"github.com/akolanti/portfolio/internal/domain/chatModel"
	"github.com/akolanti/portfolio/internal/domain/portfolio"
)

func ToChatResponse(result chatModel.ChatResult) api.ChatResponse {
	citations := make([]api.Citation, 0, len(result.Answer.Citations))
	for _, c := range result.Answer.Citations {
		citations = append(citations, api.Citation{Source: c.Source, URL: c.URL})
	}
	return api.ChatResponse{
		Answer:    result.Answer.Answer,
		Citations: citations,
		Cached:    result.Cached,
	}
}

func ToSubmission(req api.ContactRequest) contact.Submission {
	return contact.Submission{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Website: req.Website,
	}
}

func ToReposResponse(repos []portfolio.Repo) api.ReposResponse {
	if repos == nil {
		repos = []portfolio.Repo{}
	}
	return api.ReposResponse{Repos: repos}
}

func BadRequest(message string, code int, canRetry bool) api.ErrorResponse {
	return api.ErrorResponse{
		Error: api.OutgoingError{
			Code:    code,
			Message: message,
			Retry:   canRetry,
		},
	}
}
