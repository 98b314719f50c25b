// @title           Portfolio Chat API
// @version         1.0
// @description     Grounded question answering over a developer portfolio, plus the contact form.
// @termsOfService  http://swagger.io/terms/

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/portfolio/internal/app"
	"github.com/akolanti/portfolio/internal/config"
	"github.com/akolanti/portfolio/internal/contact"
	"github.com/akolanti/portfolio/internal/domain/mailModel"
	"github.com/akolanti/portfolio/internal/handlers"
	"github.com/akolanti/portfolio/internal/job"
	"github.com/akolanti/portfolio/internal/mcpserver"
	"github.com/akolanti/portfolio/internal/server"
	"github.com/akolanti/portfolio/internal/worker"
	"github.com/akolanti/portfolio/pkg/logger_i"
)

var (
	listenAddr        string
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {
	cfg := config.Load()
	logger_i.Init(cfg)
	var logger = logger_i.NewLogger("main")

	flag.StringVar(&listenAddr, "listen-addr", cfg.ListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	components, err := app.Build(serviceContext, cfg)
	if err != nil {
		logger.Error("Startup failed", "error", err)
		os.Exit(1)
	}
	if err := components.Profile.Watch(serviceContext); err != nil {
		logger.Warn("Profile hot reload disabled", "error", err)
	}

	//init buffered mail channel
	mailChannel := make(chan mailModel.ContactMessage, config.MailQueueBuffer)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	mailService := job.InitJobService(job.ServiceConfig{
		MailChannel:       mailChannel,
		DispatcherChannel: dispatcherChannel,
		Mailer:            contact.NewMailer(cfg),
	})

	deps := handlers.Dependencies{
		Chat:      components.Chat,
		Profile:   components.Profile,
		Mail:      mailService,
		HasLLMKey: components.LLM != nil,
	}
	if components.GitHub != nil {
		deps.Repos = components.GitHub
	}
	handlers.InitHandlers(deps)

	//init worker pool
	worker.InitServices(mailService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(server.Options{
		ListenAddr:     listenAddr,
		AllowedOrigins: cfg.AllowedOrigins,
		MCP:            mcpserver.NewServer(components.Chat).Handler(),
	})

	<-stopExecution
	logger.Info("Server stopped")
}
