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
    Name: "gondola_http_requests_total",
    Help: "HTTP requests by method, route template and status.",
  }, []string{"method", "route", "status"})

  httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
    Name:    "gondola_http_request_duration_seconds",
    Help:    "HTTP request latency by method and route template.",
    Buckets: prometheus.DefBuckets,
  }, []string{"method", "route"})
)

func Metrics() gin.HandlerFunc {
  return func(c *gin.Context) {
    start := time.Now()
    c.Next()
    route := routeOf(c)
    httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
    httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
  }
}
