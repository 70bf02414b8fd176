// Package metrics holds the Prometheus collectors of the rental client and
// the reference server.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rental"

var (
	// Registry holds the application specific collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	containerOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "container",
			Name:      "operations_total",
			Help:      "Total number of resource container operations.",
		},
		[]string{"entity", "operation", "outcome"},
	)

	containerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "container",
			Name:      "operation_duration_seconds",
			Help:      "Duration of resource container operations.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		},
		[]string{"entity", "operation"},
	)

	notificationDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "deliveries_total",
			Help:      "Total number of notification delivery attempts that finished.",
		},
		[]string{"outcome"},
	)

	invoicesOverdue = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "invoices",
			Name:      "marked_overdue_total",
			Help:      "Total number of invoices moved to the overdue status.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		containerOperations,
		containerDuration,
		notificationDeliveries,
		invoicesOverdue,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request metrics for a gin engine. Requests are labelled
// by their route template so ids do not explode the label space.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := strings.ToUpper(c.Request.Method)
		httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordOperation records one finished resource container operation.
func RecordOperation(entity, operation string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	containerOperations.WithLabelValues(entity, operation, outcome).Inc()
	containerDuration.WithLabelValues(entity, operation).Observe(duration.Seconds())
}

// RecordDelivery records the final outcome of one notification delivery.
func RecordDelivery(err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	notificationDeliveries.WithLabelValues(outcome).Inc()
}

// RecordOverdue adds n invoices to the overdue counter.
func RecordOverdue(n int) {
	if n > 0 {
		invoicesOverdue.Add(float64(n))
	}
}
