package middleware

import (
	"net/http"
	"strconv"

	"github.com/akolanti/portfolio/internal/handlers"
	"github.com/akolanti/portfolio/internal/metrics"
	"github.com/akolanti/portfolio/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
	canRetry     bool
}

type step func(requestResponseStruct) requestResponseStruct

var ChatHandler = Wrap(handlers.ChatHandler)
var HealthHandler = Wrap(handlers.HealthHandler)
var ReposHandler = Wrap(handlers.ReposHandler)
var ProfileHandler = Wrap(handlers.ProfileHandler)
var ContactHandler = Wrap(handlers.ContactHandler, contactRateLimiter)

// Wrap runs trace and client id injection, then the extra steps in order, before next.
// The first failing step answers the request.
func Wrap(next http.HandlerFunc, steps ...step) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK} //metrics
		defer func() {
			metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc() //metrics
		}()

		re := processRequest(requestResponseStruct{req: r, writer: rec}, steps)
		if !handleBadRequest(re) {
			return
		}
		defer recoverPanic(re)
		next(rec, re.req)
	}
}

func processRequest(re requestResponseStruct, steps []step) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re.logger.Debug("New request received", "method", re.req.Method, "path", re.req.URL.Path)
	re = injectTrace(re)
	if re.badRequest.isBadRequest {
		return re
	}
	re = injectClientID(re)
	for _, s := range steps {
		re = s(re)
		if re.badRequest.isBadRequest {
			return re //stop at the first failure
		}
	}
	return re
}
