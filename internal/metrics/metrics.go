package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder - то, что резолверы и HTTP-слой пишут в метрики
type Recorder interface {
	RecordRequest(statusCode int, duration time.Duration)
	RecordUserError(operation string)
}

type Collector struct {
	requests   *prometheus.CounterVec
	latency    prometheus.Histogram
	userErrors *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blogql_http_requests_total",
			Help: "HTTP requests by status code",
		}, []string{"status_code"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "blogql_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}),
		userErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blogql_user_errors_total",
			Help: "Mutations answered with a user error, by operation",
		}, []string{"operation"}),
	}

	reg.MustRegister(c.requests, c.latency, c.userErrors)
	return c
}

func (c *Collector) RecordRequest(statusCode int, duration time.Duration) {
	c.requests.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	c.latency.Observe(duration.Seconds())
}

func (c *Collector) RecordUserError(operation string) {
	c.userErrors.WithLabelValues(operation).Inc()
}

// Handler отдает метрики для скрейпа Prometheus
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop ничего не записывает; используется, когда метрики не нужны (тесты)
type Nop struct{}

func (Nop) RecordRequest(int, time.Duration) {}
func (Nop) RecordUserError(string)          {}
