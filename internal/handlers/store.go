package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/gondola-org/gondola-backend/internal/response"
  "github.com/gondola-org/gondola-backend/internal/services"
  "github.com/gondola-org/gondola-backend/internal/types"
)

type StoreHandler struct {
  *ContactOwnerHandler[types.Store]
  storeService services.StoreService
}

func NewStoreHandler(storeService services.StoreService) *StoreHandler {
  return &StoreHandler{
    ContactOwnerHandler: NewContactOwnerHandler[types.Store](storeService, HandlerOptions{HonorPerPage: true, Filters: []string{"fk_companie"}}),
    storeService:        storeService,
  }
}

func (sh *StoreHandler) AttachAddresses(c *gin.Context) {
  id, ok := pathID(c, "id")
  if !ok {
    return
  }
  data, ok := readPayload(c)
  if !ok {
    return
  }
  store, err := sh.storeService.AttachAddresses(c.Request.Context(), id, data)
  if err != nil {
    response.FromError(c, err)
    return
  }
  response.Success(c, "Endereços adicionados com sucesso.", store, http.StatusCreated)
}

func (sh *StoreHandler) Register(group *gin.RouterGroup) {
  sh.ContactOwnerHandler.Register(group)
  group.POST("/:id/addresses", sh.AttachAddresses)
}
