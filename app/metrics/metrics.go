// Package metrics exposes Prometheus collectors for pod-comb.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Parse sources.
const (
	SourceFeed = "feed"
	SourceURL  = "url"
)

var (
	parsesTotal                *prometheus.CounterVec
	parseDurationSeconds       *prometheus.HistogramVec
	tasksTotal                 *prometheus.CounterVec
	activeWorkers              prometheus.Gauge
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec

	once sync.Once
)

// Init registers the collectors with the default registry.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		parsesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "podcomb_parses_total",
				Help: "Total number of feed parses, labeled by source and outcome.",
			},
			[]string{"source", "outcome"},
		)

		parseDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "podcomb_parse_duration_seconds",
				Help:    "Histogram of feed parse latencies including fetch time.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"source"},
		)

		tasksTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "podcomb_tasks_total",
				Help: "Total number of background tasks executed, labeled by type and status.",
			},
			[]string{"type", "status"},
		)

		activeWorkers = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "podcomb_active_workers",
				Help: "Number of workers currently executing a task.",
			},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	Init()
	return promhttp.Handler()
}

// ObserveParse records one parse with its outcome ("ok" or an error kind).
func ObserveParse(source, outcome string, duration time.Duration) {
	Init()
	parsesTotal.WithLabelValues(source, outcome).Inc()
	parseDurationSeconds.WithLabelValues(source).Observe(duration.Seconds())
}

// ObserveTask increments the task counter for the given type and status.
func ObserveTask(taskType, status string) {
	Init()
	tasksTotal.WithLabelValues(taskType, status).Inc()
}

func IncActiveWorkers() {
	Init()
	activeWorkers.Inc()
}

func DecActiveWorkers() {
	Init()
	activeWorkers.Dec()
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	Init()
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}
