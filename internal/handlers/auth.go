package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/gondola-org/gondola-backend/internal/response"
  "github.com/gondola-org/gondola-backend/internal/services"
)

type AuthHandler struct {
  authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
  data, ok := readPayload(c)
  if !ok {
    return
  }
  result, err := ah.authService.Register(c.Request.Context(), data)
  if err != nil {
    response.FromError(c, err)
    return
  }
  response.Success(c, "Usuário registrado com sucesso.", result, http.StatusCreated)
}

func (ah *AuthHandler) Login(c *gin.Context) {
  data, ok := readPayload(c)
  if !ok {
    return
  }
  result, err := ah.authService.Login(c.Request.Context(), data)
  if err != nil {
    response.FromError(c, err)
    return
  }
  response.Success(c, "Login realizado com sucesso.", result)
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
  result, err := ah.authService.Refresh(c.Request.Context())
  if err != nil {
    response.FromError(c, err)
    return
  }
  response.Success(c, "Token renovado com sucesso.", result)
}

func (ah *AuthHandler) Logout(c *gin.Context) {
  if err := ah.authService.Logout(c.Request.Context()); err != nil {
    response.FromError(c, err)
    return
  }
  response.Success(c, "Logout realizado com sucesso.", nil)
}

func (ah *AuthHandler) Me(c *gin.Context) {
  me, err := ah.authService.Me(c.Request.Context())
  if err != nil {
    response.FromError(c, err)
    return
  }
  response.Success(c, "Usuário autenticado.", me)
}
