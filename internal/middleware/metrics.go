package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"
)

// Metrics stores application metrics
type Metrics struct {
	RequestsTotal      uint64
	RequestsInProgress uint64
	RequestsSuccess    uint64
	RequestsFailed     uint64
	PassesTotal        uint64
	PassesRunning      uint64
	PassesFailed       uint64
	ValidatorCalls     uint64
	ValidatorFailures  uint64
	StartTime          time.Time
}

var globalMetrics = &Metrics{
	StartTime: time.Now(),
}

// IncrementRequests increments total request counter
func IncrementRequests() {
	atomic.AddUint64(&globalMetrics.RequestsTotal, 1)
}

// IncrementInProgress increments in-progress request counter
func IncrementInProgress() {
	atomic.AddUint64(&globalMetrics.RequestsInProgress, 1)
}

// DecrementInProgress decrements in-progress request counter
func DecrementInProgress() {
	atomic.AddUint64(&globalMetrics.RequestsInProgress, ^uint64(0))
}

// IncrementSuccess increments successful request counter
func IncrementSuccess() {
	atomic.AddUint64(&globalMetrics.RequestsSuccess, 1)
}

// IncrementFailed increments failed request counter
func IncrementFailed() {
	atomic.AddUint64(&globalMetrics.RequestsFailed, 1)
}

// IncrementPasses increments total scoring pass counter
func IncrementPasses() {
	atomic.AddUint64(&globalMetrics.PassesTotal, 1)
}

// IncrementPassesRunning increments running pass counter
func IncrementPassesRunning() {
	atomic.AddUint64(&globalMetrics.PassesRunning, 1)
}

// DecrementPassesRunning decrements running pass counter
func DecrementPassesRunning() {
	atomic.AddUint64(&globalMetrics.PassesRunning, ^uint64(0))
}

// IncrementPassesFailed increments failed pass counter
func IncrementPassesFailed() {
	atomic.AddUint64(&globalMetrics.PassesFailed, 1)
}

// IncrementValidatorCalls increments semantic validator call counter
func IncrementValidatorCalls() {
	atomic.AddUint64(&globalMetrics.ValidatorCalls, 1)
}

// IncrementValidatorFailures increments semantic validator failure counter
func IncrementValidatorFailures() {
	atomic.AddUint64(&globalMetrics.ValidatorFailures, 1)
}

// GetMetrics returns current metrics
func GetMetrics() map[string]interface{} {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return map[string]interface{}{
		"requests_total":       atomic.LoadUint64(&globalMetrics.RequestsTotal),
		"requests_in_progress": atomic.LoadUint64(&globalMetrics.RequestsInProgress),
		"requests_success":     atomic.LoadUint64(&globalMetrics.RequestsSuccess),
		"requests_failed":      atomic.LoadUint64(&globalMetrics.RequestsFailed),
		"passes_total":         atomic.LoadUint64(&globalMetrics.PassesTotal),
		"passes_running":       atomic.LoadUint64(&globalMetrics.PassesRunning),
		"passes_failed":        atomic.LoadUint64(&globalMetrics.PassesFailed),
		"validator_calls":      atomic.LoadUint64(&globalMetrics.ValidatorCalls),
		"validator_failures":   atomic.LoadUint64(&globalMetrics.ValidatorFailures),
		"uptime_seconds":       time.Since(globalMetrics.StartTime).Seconds(),
		"memory": map[string]interface{}{
			"alloc_bytes":       m.Alloc,
			"total_alloc_bytes": m.TotalAlloc,
			"sys_bytes":         m.Sys,
			"num_gc":            m.NumGC,
		},
		"goroutines": runtime.NumGoroutine(),
	}
}

// MetricsMiddleware tracks request metrics
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		IncrementRequests()
		IncrementInProgress()
		defer DecrementInProgress()

		// Wrap response writer to capture status
		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		// Track success/failure based on status code
		if wrapped.statusCode >= 200 && wrapped.statusCode < 400 {
			IncrementSuccess()
		} else {
			IncrementFailed()
		}
	})
}

// MetricsHandler returns metrics as JSON
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GetMetrics())
}
