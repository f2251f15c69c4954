package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HttpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
	HttpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
	BookingEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hotel_booking_events_total",
		Help: "Booking lifecycle events by outcome",
	}, []string{"event"})
	CleanupDeleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hotel_cleanup_deleted_total",
		Help: "Rows removed by the cleanup job",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(HttpRequestsTotal, HttpRequestDuration, BookingEvents, CleanupDeleted)
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		labels := prometheus.Labels{"method": c.Request.Method, "path": path, "status": status}
		HttpRequestsTotal.With(labels).Inc()
		HttpRequestDuration.With(labels).Observe(time.Since(start).Seconds())
	}
}
