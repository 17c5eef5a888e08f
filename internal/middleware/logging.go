package middleware

import (
  "time"

  "github.com/gin-gonic/gin"

  "github.com/gondola-org/gondola-backend/internal/errordata"
  "github.com/gondola-org/gondola-backend/internal/logger"
)

// RequestLogger writes one line per request. Server errors carry the detail
// the handlers left in errordata.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
  requestLog := log.With("Middleware", "RequestLogger")
  return func(c *gin.Context) {
    start := time.Now()
    c.Next()

    status := c.Writer.Status()
    kv := []any{
      "method", c.Request.Method,
      "route", routeOf(c),
      "status", status,
      "latency", time.Since(start).String(),
      "clientIP", c.ClientIP(),
    }
    switch {
    case status >= 500:
      if ed := errordata.GetErrorData(c.Request.Context()); ed != nil && ed.HasMessage() {
        kv = append(kv, "error", ed.Message)
      }
      requestLog.Error("Request failed", kv...)
    case status >= 400:
      requestLog.Warn("Request rejected", kv...)
    default:
      requestLog.Info("Request served", kv...)
    }
  }
}

func routeOf(c *gin.Context) string {
  if route := c.FullPath(); route != "" {
    return route
  }
  return "unmatched"
}
