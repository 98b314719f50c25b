package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akolanti/portfolio/internal/domain/mailModel"
	"github.com/akolanti/portfolio/internal/job"
)

// MockMailer counts deliveries
type MockMailer struct {
	SentCount int32
	OnSend    func(ctx context.Context, msg mailModel.ContactMessage) error
}

func (m *MockMailer) Send(ctx context.Context, msg mailModel.ContactMessage) error {
	atomic.AddInt32(&m.SentCount, 1)
	if m.OnSend != nil {
		return m.OnSend(ctx, msg)
	}
	return nil
}

func newJobService(mailer mailModel.Mailer, buffer int) *job.Service {
	return job.InitJobService(job.ServiceConfig{
		MailChannel:       make(chan mailModel.ContactMessage, buffer),
		DispatcherChannel: make(chan bool, 10),
		Mailer:            mailer,
	})
}

func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func stopPool(t *testing.T, stopChan chan bool, wg *sync.WaitGroup) {
	t.Helper()
	close(stopChan)
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error("Workers did not stop within timeout")
	}
}

func TestWorkerPool_Flow(t *testing.T) {
	atomic.StoreInt64(&currentWorkerCount, 0)
	mailer := &MockMailer{}
	jobSvc := newJobService(mailer, 10)
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	InitServices(jobSvc)
	InitWorkerPool(stopChan, wg)

	t.Run("Pool starts with the minimum worker count", func(t *testing.T) {
		if count := atomic.LoadInt64(&currentWorkerCount); count != minWorkerCount {
			t.Errorf("Expected %d workers, got %d", minWorkerCount, count)
		}
	})

	t.Run("Worker delivers a message", func(t *testing.T) {
		if err := jobSvc.Enqueue(mailModel.ContactMessage{Id: "m-1"}); err != nil {
			t.Fatal(err)
		}
		if !waitFor(t, func() bool { return atomic.LoadInt32(&mailer.SentCount) == 1 }) {
			t.Errorf("Expected 1 message delivered, got %d", atomic.LoadInt32(&mailer.SentCount))
		}
	})

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		jobSvc.DispatcherChannel <- true
		if !waitFor(t, func() bool { return atomic.LoadInt64(&currentWorkerCount) == 2 }) {
			t.Errorf("Expected 2 workers, got %d", atomic.LoadInt64(&currentWorkerCount))
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		stopPool(t, stopChan, wg)
		if count := atomic.LoadInt64(&currentWorkerCount); count != 0 {
			t.Errorf("Expected 0 workers after stop, got %d", count)
		}
	})
}

func TestWorkerPool_DeliveryFailureDoesNotStopWorker(t *testing.T) {
	atomic.StoreInt64(&currentWorkerCount, 0)
	mailer := &MockMailer{OnSend: func(ctx context.Context, msg mailModel.ContactMessage) error {
		if msg.Id == "bad" {
			return errors.New("smtp down")
		}
		return nil
	}}
	jobSvc := newJobService(mailer, 10)
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}
	InitServices(jobSvc)
	InitWorkerPool(stopChan, wg)

	_ = jobSvc.Enqueue(mailModel.ContactMessage{Id: "bad"})
	_ = jobSvc.Enqueue(mailModel.ContactMessage{Id: "good"})

	if !waitFor(t, func() bool { return atomic.LoadInt32(&mailer.SentCount) == 2 }) {
		t.Errorf("Expected both messages attempted, got %d", atomic.LoadInt32(&mailer.SentCount))
	}
	stopPool(t, stopChan, wg)
}

func TestWorker_IdleTimeout(t *testing.T) {
	atomic.StoreInt64(&currentWorkerCount, 0)
	previous := idleWorkerTimeout
	idleWorkerTimeout = 50 * time.Millisecond
	defer func() { idleWorkerTimeout = previous }()

	jobSvc := newJobService(&MockMailer{}, 1)
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}
	InitServices(jobSvc)
	InitWorkerPool(stopChan, wg)

	createWorker()
	createWorker()

	if !waitFor(t, func() bool { return atomic.LoadInt64(&currentWorkerCount) == minWorkerCount }) {
		t.Errorf("Idle workers should retire down to %d, count is %d", minWorkerCount, atomic.LoadInt64(&currentWorkerCount))
	}
	time.Sleep(150 * time.Millisecond)
	if count := atomic.LoadInt64(&currentWorkerCount); count != minWorkerCount {
		t.Errorf("Pool must not shrink below %d, got %d", minWorkerCount, count)
	}
	stopPool(t, stopChan, wg)
}

func TestEnqueue_QueueFull(t *testing.T) {
	jobSvc := newJobService(&MockMailer{}, 1)

	if err := jobSvc.Enqueue(mailModel.ContactMessage{Id: "1"}); err != nil {
		t.Fatal(err)
	}
	if err := jobSvc.Enqueue(mailModel.ContactMessage{Id: "2"}); !errors.Is(err, job.ErrQueueFull) {
		t.Errorf("Expected ErrQueueFull, got %v", err)
	}
}

func TestDrainOnStop(t *testing.T) {
	atomic.StoreInt64(&currentWorkerCount, 0)
	release := make(chan struct{})
	mailer := &MockMailer{OnSend: func(ctx context.Context, msg mailModel.ContactMessage) error {
		if msg.Id == "block" {
			<-release
		}
		return nil
	}}
	jobSvc := newJobService(mailer, 5)
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}
	InitServices(jobSvc)
	InitWorkerPool(stopChan, wg)

	_ = jobSvc.Enqueue(mailModel.ContactMessage{Id: "block"})
	waitFor(t, func() bool { return atomic.LoadInt32(&mailer.SentCount) == 1 })
	_ = jobSvc.Enqueue(mailModel.ContactMessage{Id: "queued-1"})
	_ = jobSvc.Enqueue(mailModel.ContactMessage{Id: "queued-2"})

	close(release)
	stopPool(t, stopChan, wg)
	if got := atomic.LoadInt32(&mailer.SentCount); got != 3 {
		t.Errorf("Expected queued messages drained on stop, delivered %d", got)
	}
}

func TestDispatcher_NoNewWorkersAfterStop(t *testing.T) {
	atomic.StoreInt64(&currentWorkerCount, 0)
	jobSvc := newJobService(&MockMailer{}, 5)
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}
	InitServices(jobSvc)
	InitWorkerPool(stopChan, wg)

	//a backlog signal and the stop signal are ready together
	close(stopChan)
	for i := 0; i < cap(jobSvc.DispatcherChannel); i++ {
		jobSvc.DispatcherChannel <- true
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pool did not stop within timeout")
	}
	if got := atomic.LoadInt64(&currentWorkerCount); got != 0 {
		t.Errorf("Expected no workers after stop, got %d", got)
	}
}
