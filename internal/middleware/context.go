package middleware

import (
  "github.com/gin-gonic/gin"

  "github.com/gondola-org/gondola-backend/internal/errordata"
)

func AttachRequestContext() gin.HandlerFunc {
  return func(c *gin.Context) {
    ctx := errordata.WithErrorData(c.Request.Context())
    c.Request = c.Request.WithContext(ctx)
    c.Next()
  }
}
