package worker

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/portfolio/internal/config"
	"github.com/akolanti/portfolio/internal/job"
	"github.com/akolanti/portfolio/internal/metrics"
	"github.com/akolanti/portfolio/pkg/logger_i"
)

var (
	_jobService        *job.Service
	stopWorkerChannel  chan bool
	workerWaitGroup    *sync.WaitGroup
	dispatcherChannel  chan bool
	currentWorkerCount int64
	logger             *logger_i.Logger
	minWorkerCount     int64 = config.MinMailWorkerCount
	maxWorkerCount     int64 = config.MaxMailWorkerCount
	idleWorkerTimeout        = config.IdleWorkerTimeout
)

func InitServices(jobService *job.Service) {
	_jobService = jobService
	dispatcherChannel = jobService.DispatcherChannel
}

// InitWorkerPool starts the dispatcher with MinMailWorkerCount workers. Closing stopWorkerChan drains the
// queue and retires every worker; wait on waitGroup for that to finish.
func InitWorkerPool(stopWorkerChan chan bool, waitGroup *sync.WaitGroup) {
	stopWorkerChannel = stopWorkerChan
	workerWaitGroup = waitGroup
	logger = logger_i.NewLogger("WorkerPool")
	logger.Info("Initializing mail worker pool")
	for i := int64(0); i < atomic.LoadInt64(&minWorkerCount); i++ {
		createWorker()
	}
	//the dispatcher holds the wait group open so createWorker never races Wait
	workerWaitGroup.Add(1)
	go dispatcher()
}

func dispatcher() {
	defer workerWaitGroup.Done()
	logger.Info("Dispatcher started")
	for {
		select {
		case <-dispatcherChannel:
			if stopping() {
				return
			}
			if atomic.LoadInt64(&currentWorkerCount) < atomic.LoadInt64(&maxWorkerCount) {
				logger.Info("Creating new worker", "workerCount", atomic.LoadInt64(&currentWorkerCount))
				createWorker()
			}
		case <-stopWorkerChannel:
			return
		}
	}
}

func stopping() bool {
	select {
	case <-stopWorkerChannel:
		return true
	default:
		return false
	}
}

func createWorker() {
	workerWaitGroup.Add(1)
	atomic.AddInt64(&currentWorkerCount, 1)
	metrics.IncrementActiveWorkerCount()
	go worker()
}

func worker() {
	idle := time.NewTimer(idleWorkerTimeout)
	defer idle.Stop()

	for {
		select {
		case msg := <-_jobService.MailChannel:
			metrics.DecrementMailsInQueue()
			deliver(msg)
			resetTimer(idle, idleWorkerTimeout)

		case <-stopWorkerChannel:
			drainQueue()
			removeWorker("Stop worker signal received", true)
			return

		case <-idle.C:
			if tryRetire() {
				removeWorker("Idle worker timeout", false)
				return
			}
			idle.Reset(idleWorkerTimeout)
		}
	}
}

// tryRetire lets an idle worker go only while the pool stays at or above minWorkerCount.
func tryRetire() bool {
	for {
		current := atomic.LoadInt64(&currentWorkerCount)
		if current <= atomic.LoadInt64(&minWorkerCount) {
			return false
		}
		if atomic.CompareAndSwapInt64(&currentWorkerCount, current, current-1) {
			return true
		}
	}
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}
