package handlers

import (
  "github.com/gin-gonic/gin"

  "github.com/gondola-org/gondola-backend/internal/response"
  "github.com/gondola-org/gondola-backend/internal/services"
  "github.com/gondola-org/gondola-backend/internal/types"
)

type UserHandler struct {
  *ResourceHandler[types.User]
  userService services.UserService
}

// NewUserHandler lists users ten per page whatever per_page says.
func NewUserHandler(userService services.UserService) *UserHandler {
  return &UserHandler{
    ResourceHandler: NewResourceHandler[types.User](userService, HandlerOptions{HonorPerPage: false}),
    userService:     userService,
  }
}

func (uh *UserHandler) Assign(c *gin.Context) {
  id, ok := pathID(c, "id")
  if !ok {
    return
  }
  data, ok := readPayload(c)
  if !ok {
    return
  }
  user, err := uh.userService.Assign(c.Request.Context(), id, data)
  if err != nil {
    response.FromError(c, err)
    return
  }
  response.Success(c, "Acessos atribuídos com sucesso.", user)
}
