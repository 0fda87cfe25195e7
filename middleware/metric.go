package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	SalesProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sales_processed_total",
			Help: "Sales processed, labeled by payment method",
		},
		[]string{"method"},
	)

	MissionClaimsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mission_claims_total",
			Help: "Mission rewards claimed",
		},
	)

	BackupRestoresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backup_restores_total",
			Help: "Backup restore attempts, labeled by outcome",
		},
		[]string{"outcome"},
	)
)

func InitMetrics() {
	prometheus.MustRegister(
		HttpRequestsTotal,
		HttpRequestDuration,
		SalesProcessedTotal,
		MissionClaimsTotal,
		BackupRestoresTotal,
	)
}

func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = "undefined"
		}

		HttpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HttpRequestDuration.WithLabelValues(path).Observe(duration.Seconds())
	}
}
