package customHttpClient

import (
	"net/http"
	"time"

	"github.com/akolanti/portfolio/internal/config"
)

var customTransport = &http.Transport{
	Proxy:               http.ProxyFromEnvironment,
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// Client returns an http.Client sharing the pooled transport. The timeout bounds the whole exchange.
func Client(timeout time.Duration) *http.Client {
	return &http.Client{Transport: customTransport, Timeout: timeout}
}
