package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/gondola-org/gondola-backend/internal/response"
  "github.com/gondola-org/gondola-backend/internal/services"
  "github.com/gondola-org/gondola-backend/internal/types"
)

type HandlerOptions struct {
  // HonorPerPage is false for resources whose listings are pinned to the
  // default page size.
  HonorPerPage bool
  Filters      []string
}

var DefaultHandlerOptions = HandlerOptions{HonorPerPage: true}

// ResourceHandler exposes index, show, store, update and destroy for one
// resource.
type ResourceHandler[T types.Entity] struct {
  service services.ResourceService[T]
  opts    HandlerOptions
}

func NewResourceHandler[T types.Entity](service services.ResourceService[T], opts HandlerOptions) *ResourceHandler[T] {
  return &ResourceHandler[T]{service: service, opts: opts}
}

func (rh *ResourceHandler[T]) Index(c *gin.Context) {
  page, err := rh.service.List(c.Request.Context(), listRequest(c, rh.opts.HonorPerPage, rh.opts.Filters))
  if err != nil {
    response.FromError(c, err)
    return
  }
  respondPage(c, "Registros listados com sucesso.", page)
}

func (rh *ResourceHandler[T]) Show(c *gin.Context) {
  id, ok := pathID(c, "id")
  if !ok {
    return
  }
  item, err := rh.service.Get(c.Request.Context(), id)
  if err != nil {
    response.FromError(c, err)
    return
  }
  response.Success(c, "Registro encontrado com sucesso.", item)
}

func (rh *ResourceHandler[T]) Store(c *gin.Context) {
  data, ok := readPayload(c)
  if !ok {
    return
  }
  item, err := rh.service.Create(c.Request.Context(), data)
  if err != nil {
    response.FromError(c, err)
    return
  }
  response.Success(c, "Registro criado com sucesso.", item, http.StatusCreated)
}

func (rh *ResourceHandler[T]) Update(c *gin.Context) {
  id, ok := pathID(c, "id")
  if !ok {
    return
  }
  data, ok := readPayload(c)
  if !ok {
    return
  }
  item, err := rh.service.Update(c.Request.Context(), id, data)
  if err != nil {
    response.FromError(c, err)
    return
  }
  response.Success(c, "Registro atualizado com sucesso.", item)
}

func (rh *ResourceHandler[T]) Destroy(c *gin.Context) {
  id, ok := pathID(c, "id")
  if !ok {
    return
  }
  if err := rh.service.Delete(c.Request.Context(), id); err != nil {
    response.FromError(c, err)
    return
  }
  response.Success(c, "Registro removido com sucesso.", nil)
}

// Register mounts the five routes on group.
func (rh *ResourceHandler[T]) Register(group *gin.RouterGroup) {
  group.GET("", rh.Index)
  group.POST("", rh.Store)
  group.GET("/:id", rh.Show)
  group.PUT("/:id", rh.Update)
  group.DELETE("/:id", rh.Destroy)
}

// ContactOwnerHandler adds the contact attach and detach routes.
type ContactOwnerHandler[T types.Entity] struct {
  *ResourceHandler[T]
  owners services.ContactOwnerService[T]
}

func NewContactOwnerHandler[T types.Entity](service services.ContactOwnerService[T], opts HandlerOptions) *ContactOwnerHandler[T] {
  return &ContactOwnerHandler[T]{
    ResourceHandler: NewResourceHandler[T](service, opts),
    owners:          service,
  }
}

func (ch *ContactOwnerHandler[T]) AttachContacts(c *gin.Context) {
  id, ok := pathID(c, "id")
  if !ok {
    return
  }
  data, ok := readPayload(c)
  if !ok {
    return
  }
  item, err := ch.owners.AttachContacts(c.Request.Context(), id, data)
  if err != nil {
    response.FromError(c, err)
    return
  }
  response.Success(c, "Contatos adicionados com sucesso.", item, http.StatusCreated)
}

func (ch *ContactOwnerHandler[T]) DetachContact(c *gin.Context) {
  id, ok := pathID(c, "id")
  if !ok {
    return
  }
  contactID, ok := pathID(c, "contact")
  if !ok {
    return
  }
  item, err := ch.owners.DetachContact(c.Request.Context(), id, contactID)
  if err != nil {
    response.FromError(c, err)
    return
  }
  response.Success(c, "Contato desvinculado com sucesso.", item)
}

func (ch *ContactOwnerHandler[T]) Register(group *gin.RouterGroup) {
  ch.ResourceHandler.Register(group)
  group.POST("/:id/contacts", ch.AttachContacts)
  group.DELETE("/:id/contacts/:contact", ch.DetachContact)
}
