package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec
	LoginAttempts       prometheus.Counter
	LoginFailures       prometheus.Counter
	EntityOperations    *prometheus.CounterVec
)

// InitMetrics registers the collectors under the configured prefix.
func InitMetrics(prefix string) {
	if prefix == "" {
		prefix = "gastropanel"
	}
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	LoginAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: prefix + "_login_attempts_total",
		Help: "Total number of login attempts",
	})
	LoginFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: prefix + "_login_failures_total",
		Help: "Total number of failed logins",
	})
	EntityOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_entity_operations_total",
			Help: "Total number of entity mutations",
		},
		[]string{"entity", "operation"},
	)
}

// RecordEntityOperation counts one create/update/delete on an entity type.
func RecordEntityOperation(entity, operation string) {
	if EntityOperations != nil {
		EntityOperations.WithLabelValues(entity, operation).Inc()
	}
}

// Middleware tracks request counts and latencies per route.
func Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if HttpRequestsTotal == nil {
			return err
		}
		method := c.Request().Method
		path := c.Path()
		status := strconv.Itoa(c.Response().Status)
		HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
		HttpRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
		return err
	}
}
