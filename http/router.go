package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"emi-calculator/logger"
)

const (
	RouteCalculate = "/loan/calculate"
	RouteHealth    = "/healthz"
	RouteMetrics   = "/metrics"
)

// NewRouter wires the API routes. A nil limiter disables rate limiting.
func NewRouter(loanHandler *LoanHandler, limiter *RateLimiter, log logger.Logger) http.Handler {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	access := log.WithFields(map[string]interface{}{"component": "http"})

	var calculate http.Handler = http.HandlerFunc(loanHandler.CalculateLoan)
	if limiter != nil {
		calculate = RateLimitMiddleware(limiter, calculate)
	}

	mux := http.NewServeMux()
	mux.Handle(RouteCalculate, LoggingMiddleware(access, RouteCalculate, calculate))
	mux.Handle(RouteHealth, http.HandlerFunc(health))
	mux.Handle(RouteMetrics, promhttp.Handler())

	return RequestIDMiddleware(mux)
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
