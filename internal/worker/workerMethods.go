package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/akolanti/portfolio/internal/config"
	"github.com/akolanti/portfolio/internal/domain/mailModel"
	"github.com/akolanti/portfolio/internal/metrics"
)

func deliver(msg mailModel.ContactMessage) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("mail", time.Since(start)) }()

	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, msg.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.MailSendTimeout)
	defer cancel()

	log := logger.FromContext(ctx).With("messageId", msg.Id)
	if err := _jobService.Mailer.Send(ctx, msg); err != nil {
		metrics.MailDelivered(false)
		log.Error("Contact message delivery failed", "error", err)
		return
	}
	metrics.MailDelivered(true)
	log.Info("Contact message delivered")
}

// drainQueue delivers whatever is still buffered so a shutdown does not drop accepted messages.
func drainQueue() {
	for {
		select {
		case msg := <-_jobService.MailChannel:
			metrics.DecrementMailsInQueue()
			deliver(msg)
		default:
			return
		}
	}
}

// removeWorker releases a retiring worker. Idle retirement has already decremented the count in tryRetire.
func removeWorker(reason string, decrement bool) {
	if decrement {
		atomic.AddInt64(&currentWorkerCount, -1)
	}
	workerWaitGroup.Done()
	metrics.DecrementActiveWorkerCount()
	logger.Info("Removed worker", "reason", reason, "workerCount", atomic.LoadInt64(&currentWorkerCount))
}
