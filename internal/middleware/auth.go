package middleware

import (
  "net/http"
  "strings"

  "github.com/gin-gonic/gin"

  "github.com/gondola-org/gondola-backend/internal/apperror"
  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/requestdata"
  "github.com/gondola-org/gondola-backend/internal/response"
  "github.com/gondola-org/gondola-backend/internal/services"
)

const (
  msgUnauthenticated = "Não autenticado."
  msgForbidden       = "Acesso negado."
)

type AuthMiddleware struct {
  log         *logger.Logger
  authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
  middlewareLogger := log.With("Middleware", "AuthMiddleware")
  return &AuthMiddleware{log: middlewareLogger, authService: authService}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
  return func(c *gin.Context) {
    tokenString := extractBearerToken(c)
    if tokenString == "" {
      response.Abort(c, msgUnauthenticated, http.StatusUnauthorized)
      return
    }
    ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString)
    if err != nil {
      if apperror.IsKind(err, apperror.KindUnauthorized) {
        am.log.Debug("Rejected request token", "path", c.FullPath(), "error", err)
      } else {
        am.log.Error("Failed to resolve request token", "path", c.FullPath(), "error", err)
      }
      response.FromError(c, err)
      c.Abort()
      return
    }
    c.Request = c.Request.WithContext(ctx)
    rd := requestdata.GetRequestData(ctx)
    if rd == nil || rd.UserID == 0 {
      response.Abort(c, msgUnauthenticated, http.StatusUnauthorized)
      return
    }
    c.Next()
  }
}

// RequirePermission runs behind RequireAuth and checks the caller's effective
// permissions, direct or through a role.
func (am *AuthMiddleware) RequirePermission(permission string) gin.HandlerFunc {
  return func(c *gin.Context) {
    ok, err := am.authService.HasPermission(c.Request.Context(), permission)
    if err != nil {
      response.FromError(c, err)
      c.Abort()
      return
    }
    if !ok {
      am.log.Info("Permission denied", "permission", permission, "path", c.FullPath())
      response.FromError(c, apperror.NewForbidden(msgForbidden))
      c.Abort()
      return
    }
    c.Next()
  }
}

func extractBearerToken(c *gin.Context) string {
  authHeader := c.GetHeader("Authorization")
  if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
    return strings.TrimSpace(authHeader[7:])
  }
  return ""
}
