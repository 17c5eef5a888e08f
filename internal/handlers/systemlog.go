package handlers

import (
  "github.com/gin-gonic/gin"

  "github.com/gondola-org/gondola-backend/internal/response"
  "github.com/gondola-org/gondola-backend/internal/services"
)

type SystemLogHandler struct {
  systemLogService services.SystemLogService
}

func NewSystemLogHandler(systemLogService services.SystemLogService) *SystemLogHandler {
  return &SystemLogHandler{systemLogService: systemLogService}
}

func (sh *SystemLogHandler) Index(c *gin.Context) {
  req := listRequest(c, true, []string{"fk_user", "fk_action", "table_name"})
  page, err := sh.systemLogService.List(c.Request.Context(), req)
  if err != nil {
    response.FromError(c, err)
    return
  }
  respondPage(c, "Logs listados com sucesso.", page)
}

func (sh *SystemLogHandler) Show(c *gin.Context) {
  id, ok := pathID(c, "id")
  if !ok {
    return
  }
  entry, err := sh.systemLogService.Get(c.Request.Context(), id)
  if err != nil {
    response.FromError(c, err)
    return
  }
  response.Success(c, "Log encontrado com sucesso.", entry)
}
