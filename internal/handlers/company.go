package handlers

import (
  "github.com/gin-gonic/gin"

  "github.com/gondola-org/gondola-backend/internal/response"
  "github.com/gondola-org/gondola-backend/internal/services"
  "github.com/gondola-org/gondola-backend/internal/types"
)

type CompanyHandler struct {
  *ContactOwnerHandler[types.Company]
  companyService services.CompanyService
}

func NewCompanyHandler(companyService services.CompanyService) *CompanyHandler {
  return &CompanyHandler{
    ContactOwnerHandler: NewContactOwnerHandler[types.Company](companyService, DefaultHandlerOptions),
    companyService:      companyService,
  }
}

// ForceDelete removes the company and everything cascading from it for good.
func (ch *CompanyHandler) ForceDelete(c *gin.Context) {
  id, ok := pathID(c, "id")
  if !ok {
    return
  }
  if err := ch.companyService.ForceDelete(c.Request.Context(), id); err != nil {
    response.FromError(c, err)
    return
  }
  response.Success(c, "Rede removida definitivamente.", nil)
}

func (ch *CompanyHandler) Register(group *gin.RouterGroup) {
  ch.ContactOwnerHandler.Register(group)
  group.DELETE("/:id/force", ch.ForceDelete)
}
