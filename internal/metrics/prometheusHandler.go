package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var countMailsInQueue = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "count_mails_in_queue",
	Help: "Number of contact messages waiting for delivery",
})

var dispatcherSignalCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "dispatcher_signal_count",
	Help: "How often the dispatcher has signaled to start worker",
})

var activeWorkerCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "active_worker_count",
	Help: "Number of active mail workers",
})

var cacheEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "chat_cache_events_total",
	Help: "Chat response cache lookups labelled by result",
}, []string{"result"})

var rateLimited = promauto.NewCounter(prometheus.CounterOpts{
	Name: "chat_rate_limited_total",
	Help: "Chat requests rejected by the rate limiter",
})

var chatAnswers = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "chat_answers_total",
	Help: "Chat answers labelled by how they were produced",
}, []string{"outcome"})

var mailDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "contact_mail_deliveries_total",
	Help: "Contact message deliveries labelled by status",
}, []string{"status"})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps streamed responses (MCP over SSE) working behind the recorder.
func (r *HttpStatusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *HttpStatusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func IncrementMailsInQueue() {
	countMailsInQueue.Inc()
}

func DecrementMailsInQueue() {
	countMailsInQueue.Dec()
}

func StartDispatcherSignalCount() {
	dispatcherSignalCount.Inc()
}

func IncrementActiveWorkerCount() {
	activeWorkerCount.Inc()
}
func DecrementActiveWorkerCount() {
	activeWorkerCount.Dec()
}

func CacheHit() {
	cacheEvents.WithLabelValues("hit").Inc()
}

func CacheMiss() {
	cacheEvents.WithLabelValues("miss").Inc()
}

func RateLimited() {
	rateLimited.Inc()
}

// AnswerOutcome is one of json, fallback or error.
func AnswerOutcome(outcome string) {
	chatAnswers.WithLabelValues(outcome).Inc()
}

func MailDelivered(ok bool) {
	if ok {
		mailDeliveries.WithLabelValues("sent").Inc()
		return
	}
	mailDeliveries.WithLabelValues("failed").Inc()
}

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "chat_request_duration_seconds",
	Help:    "Total time spent in AnswerQuestion.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30},
}, []string{"status"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of pipeline steps and external service calls.",
	Buckets: []float64{.005, .05, .1, .25, .5, 1, 2, 5, 10},
}, []string{"service"})

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CaptureRequestMetrics(label string, timeElapsed time.Duration) {
	requestDuration.WithLabelValues(label).Observe(timeElapsed.Seconds())
}
