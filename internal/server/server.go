package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/akolanti/portfolio/internal/adapter/utils"
	"github.com/akolanti/portfolio/internal/config"
	"github.com/akolanti/portfolio/internal/middleware"
	"github.com/akolanti/portfolio/pkg/logger_i"
)

var (
	server  *http.Server
	_logger *logger_i.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	WorkerStop       chan bool
	Group            *sync.WaitGroup
	CloseServices    context.CancelFunc
}

// Options configures the HTTP server. MCP may be nil.
type Options struct {
	ListenAddr     string
	AllowedOrigins []string
	MCP            http.Handler
}

// NewRouter mounts every route behind CORS.
func NewRouter(opts Options) http.Handler {
	r := utils.GetRouter()

	r.Router.HandleFunc("/api/chat", middleware.ChatHandler)
	r.Router.Get("/api/health", middleware.HealthHandler)
	r.Router.Get("/api/repos", middleware.ReposHandler)
	r.Router.Get("/api/profile", middleware.ProfileHandler)
	r.Router.Post("/api/contact", middleware.ContactHandler)
	if opts.MCP != nil {
		r.Router.Handle("/mcp", middleware.Wrap(opts.MCP.ServeHTTP))
	}
	return middleware.CORS(opts.AllowedOrigins)(r.Router)
}

func CreateServer(opts Options) {
	_logger = logger_i.NewLogger("Server")

	server = &http.Server{
		Addr:         opts.ListenAddr,
		Handler:      NewRouter(opts),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", opts.ListenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err.Error(), "addr", opts.ListenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	log := logger_i.NewLogger("Server")
	state := <-shutdownParams.GracefulShutdown
	log.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			log.Error("Could not shutdown gracefully", "error", err)
		}

		//drain queued contact mail, then stop workers
		close(shutdownParams.WorkerStop)
		shutdownParams.Group.Wait()
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		log.Info("Gracefully shut down")
	case <-ctx.Done():
		log.Info("Force shut down")
		os.Exit(1)
	}
}
