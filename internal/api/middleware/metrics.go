package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "recipe_finder",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "recipe_finder",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	outcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "recipe_finder",
		Name:      "pipeline_outcomes_total",
		Help:      "Search and recommendation outcomes: ok, an empty-state reason, or an error code.",
	}, []string{"endpoint", "outcome"})
)

// Metrics 記錄請求數與延遲
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// RecordOutcome 記錄檢索或推薦流程的結果
func RecordOutcome(endpoint, outcome string) {
	outcomes.WithLabelValues(endpoint, outcome).Inc()
}
