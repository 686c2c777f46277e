// Package metrics exposes Prometheus collectors for the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const unmatchedRoute = "unmatched"

var (
	// requestsTotal counts served requests.
	// Labels: method, route (chi route pattern), status (HTTP status code)
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "todo_api",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	// requestDuration measures handler latency.
	// Labels: method, route
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "todo_api",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	}, []string{"method", "route"})

	// datasetTodos reports the number of todos loaded at startup.
	datasetTodos = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "todo_api",
		Subsystem: "dataset",
		Name:      "todos",
		Help:      "Number of todos loaded into memory",
	})
)

// SetDatasetSize records how many todos the service is serving.
func SetDatasetSize(n int) {
	datasetTodos.Set(float64(n))
}

// Middleware records request counts and latency per chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
