package handlers

import (
	"context"
	"sync"

	"github.com/akolanti/portfolio/internal/domain/mailModel"
	"github.com/akolanti/portfolio/internal/domain/portfolio"
	"github.com/akolanti/portfolio/internal/rag"
	"github.com/akolanti/portfolio/pkg/logger_i"
)

var (
	handlerInstance *Handler //private singleton
	once            sync.Once
	logRH           *logger_i.Logger
)

type RepoLister interface {
	Cached(ctx context.Context) ([]portfolio.Repo, error)
}

type MailQueue interface {
	Enqueue(msg mailModel.ContactMessage) error
}

// Dependencies for the HTTP handlers. Repos may be nil when no GitHub user is configured.
type Dependencies struct {
	Chat      rag.Service
	Profile   rag.ProfileSource
	Repos     RepoLister
	Mail      MailQueue
	HasLLMKey bool
}

type Handler struct {
	deps Dependencies
}

func InitHandlers(deps Dependencies) {
	once.Do(func() {
		handlerInstance = &Handler{deps: deps}
		logRH = logger_i.NewLogger("RequestHandler")
		logRH.Info("Handlers initialized", "hasLLMKey", deps.HasLLMKey, "repos", deps.Repos != nil)
	})
}

// SetForTest replaces the singleton. Only tests call this.
func SetForTest(deps Dependencies) {
	handlerInstance = &Handler{deps: deps}
	logRH = logger_i.NewLogger("RequestHandler")
}
