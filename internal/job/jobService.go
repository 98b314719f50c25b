package job

import (
	"errors"
	"sync/atomic"

	"github.com/akolanti/portfolio/internal/config"
	"github.com/akolanti/portfolio/internal/domain/mailModel"
	"github.com/akolanti/portfolio/internal/metrics"
)

var ErrQueueFull = errors.New("mail queue is full")

// Service is the queue between the contact handler and the mail workers.
type Service struct {
	MailChannel       chan mailModel.ContactMessage
	RequestCount      int64
	DispatcherChannel chan bool
	Mailer            mailModel.Mailer
}

type ServiceConfig struct {
	MailChannel       chan mailModel.ContactMessage
	DispatcherChannel chan bool
	Mailer            mailModel.Mailer
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		MailChannel:       cfg.MailChannel,
		DispatcherChannel: cfg.DispatcherChannel,
		Mailer:            cfg.Mailer,
	}
}

// Enqueue never blocks: a full buffer is reported as ErrQueueFull so the handler can answer 503.
// Every RequestsPerNewWorkerCount messages the dispatcher is asked for another worker.
func (s *Service) Enqueue(msg mailModel.ContactMessage) error {
	select {
	case s.MailChannel <- msg:
	default:
		return ErrQueueFull
	}
	metrics.IncrementMailsInQueue()

	count := atomic.AddInt64(&s.RequestCount, 1)
	if count%config.RequestsPerNewWorkerCount == 0 {
		select {
		case s.DispatcherChannel <- true:
			metrics.StartDispatcherSignalCount()
		default:
		}
	}
	return nil
}
