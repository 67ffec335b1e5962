// Package metrics registers the Prometheus collectors exposed on
// /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts handled API requests by operation and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inmo_requests_total",
		Help: "API requests handled, by operation and HTTP status.",
	}, []string{"operation", "status"})

	// RequestDuration observes request latency by operation.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inmo_request_duration_seconds",
		Help:    "API request latency in seconds, by operation.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// StoreSaves counts document snapshots written to the backend.
	StoreSaves = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inmo_store_saves_total",
		Help: "Document snapshots persisted to the store backend.",
	})

	// SyncCompletions counts simulator-driven sync job completions.
	SyncCompletions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inmo_sync_completions_total",
		Help: "Sync jobs completed by the simulator, by final status.",
	}, []string{"status"})
)

// Middleware records request count and latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		operation := c.FullPath()
		if operation == "" {
			operation = "unmatched"
		}
		RequestsTotal.WithLabelValues(operation, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus exposition endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
