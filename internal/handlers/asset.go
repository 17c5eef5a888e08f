package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/gondola-org/gondola-backend/internal/response"
  "github.com/gondola-org/gondola-backend/internal/services"
)

// AssetHandler serves /stores/:id/assets. :id is the store, :asset the asset.
type AssetHandler struct {
  assetService services.AssetService
}

func NewAssetHandler(assetService services.AssetService) *AssetHandler {
  return &AssetHandler{assetService: assetService}
}

func (ah *AssetHandler) Index(c *gin.Context) {
  storeID, ok := pathID(c, "id")
  if !ok {
    return
  }
  page, err := ah.assetService.List(c.Request.Context(), storeID, listRequest(c, true, nil))
  if err != nil {
    response.FromError(c, err)
    return
  }
  respondPage(c, "Ativos listados com sucesso.", page)
}

func (ah *AssetHandler) Show(c *gin.Context) {
  storeID, ok := pathID(c, "id")
  if !ok {
    return
  }
  assetID, ok := pathID(c, "asset")
  if !ok {
    return
  }
  asset, err := ah.assetService.Get(c.Request.Context(), storeID, assetID)
  if err != nil {
    response.FromError(c, err)
    return
  }
  response.Success(c, "Ativo encontrado com sucesso.", asset)
}

func (ah *AssetHandler) Store(c *gin.Context) {
  storeID, ok := pathID(c, "id")
  if !ok {
    return
  }
  data, ok := readPayload(c)
  if !ok {
    return
  }
  asset, err := ah.assetService.Create(c.Request.Context(), storeID, data)
  if err != nil {
    response.FromError(c, err)
    return
  }
  response.Success(c, "Ativo criado com sucesso.", asset, http.StatusCreated)
}

func (ah *AssetHandler) Update(c *gin.Context) {
  storeID, ok := pathID(c, "id")
  if !ok {
    return
  }
  assetID, ok := pathID(c, "asset")
  if !ok {
    return
  }
  data, ok := readPayload(c)
  if !ok {
    return
  }
  asset, err := ah.assetService.Update(c.Request.Context(), storeID, assetID, data)
  if err != nil {
    response.FromError(c, err)
    return
  }
  response.Success(c, "Ativo atualizado com sucesso.", asset)
}

func (ah *AssetHandler) Destroy(c *gin.Context) {
  storeID, ok := pathID(c, "id")
  if !ok {
    return
  }
  assetID, ok := pathID(c, "asset")
  if !ok {
    return
  }
  if err := ah.assetService.Delete(c.Request.Context(), storeID, assetID); err != nil {
    response.FromError(c, err)
    return
  }
  response.Success(c, "Ativo removido com sucesso.", nil)
}

// Register mounts the asset routes on the stores group.
func (ah *AssetHandler) Register(stores *gin.RouterGroup) {
  stores.GET("/:id/assets", ah.Index)
  stores.POST("/:id/assets", ah.Store)
  stores.GET("/:id/assets/:asset", ah.Show)
  stores.PUT("/:id/assets/:asset", ah.Update)
  stores.DELETE("/:id/assets/:asset", ah.Destroy)
}
