package handlers

import (
  "github.com/gin-gonic/gin"

  "github.com/gondola-org/gondola-backend/internal/response"
)

func Healthz(c *gin.Context) {
  response.Success(c, "ok", gin.H{"status": "up"})
}
