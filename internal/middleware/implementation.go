package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/akolanti/portfolio/internal/adapter/utils"
	"github.com/akolanti/portfolio/internal/config"
	"github.com/akolanti/portfolio/internal/handlers"
)

func injectTrace(re requestResponseStruct) requestResponseStruct {
	re.logger.Debug("Injecting trace middleware")
	req := re.req
	if req == nil {
		//this is a bad request
		re.badRequest.httpCode = http.StatusBadRequest
		re.badRequest.errorMessage = "request is empty"
		re.badRequest.isBadRequest = true
		return re
	}
	trace := req.Header.Get("X-Trace-Id")
	if trace == "" {
		trace = utils.GetNewUUID()
	}
	re.logger = re.logger.With("traceId", trace)
	ctx := context.WithValue(req.Context(), config.TRACE_ID_KEY, trace)
	req.Header.Set("X-Trace-Id", trace)
	re.writer.Header().Set("X-Trace-Id", trace)
	re.req = req.WithContext(ctx)

	re.logger.Debug("trace middleware injected")
	return re
}

func injectClientID(re requestResponseStruct) requestResponseStruct {
	id := ClientID(re.req)
	re.logger = re.logger.With("clientId", id)
	re.req = re.req.WithContext(context.WithValue(re.req.Context(), config.CLIENT_ID_KEY, id))
	return re
}

// ClientID is the first X-Forwarded-For entry, else the remote host without its port.
func ClientID(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if r.RemoteAddr == "" {
		return config.UnknownClientID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	if host == "" {
		return config.UnknownClientID
	}
	return host
}

func contactRateLimiter(re requestResponseStruct) requestResponseStruct {
	re.logger.Debug("Rate limiter middleware")
	ip := ClientID(re.req)

	if !limiterInstance.GetLimiter(ip).Allow() {
		re.logger.Warn("Too many contact requests", "ip", ip)
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusTooManyRequests,
			errorMessage: "Too many messages. Please try again later.",
			canRetry:     true,
		}
		return re
	}
	re.logger.Debug("Rate limiter middleware authorized")
	return re
}

func handleBadRequest(re requestResponseStruct) bool {
	if re.badRequest.isBadRequest {
		re.logger.Warn("Bad request", "httpCode", re.badRequest.httpCode, "errorMessage", re.badRequest.errorMessage)
		handlers.WriteErrorResponse(re.writer, re.badRequest.httpCode, re.badRequest.errorMessage, re.badRequest.canRetry)
		return false
	}
	return true
}

func recoverPanic(re requestResponseStruct) {
	if rec := recover(); rec != nil {
		re.logger.Error("Handler panicked", "panic", rec)
		handlers.WriteErrorResponse(re.writer, http.StatusInternalServerError, "Something went wrong. Please try again.", true)
	}
}
