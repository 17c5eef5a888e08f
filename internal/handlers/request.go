package handlers

import (
  "bytes"
  "encoding/json"
  "io"
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"

  "github.com/gondola-org/gondola-backend/internal/apperror"
  "github.com/gondola-org/gondola-backend/internal/pagination"
  "github.com/gondola-org/gondola-backend/internal/response"
  "github.com/gondola-org/gondola-backend/internal/services"
)

const (
  msgInvalidJSON = "Corpo da requisição inválido."
  msgNotFound    = "Registro não encontrado."
)

// numericFilters are query filters compared against integer columns.
var numericFilters = map[string]bool{
  "fk_companie": true,
  "fk_user":     true,
  "fk_action":   true,
}

// readPayload decodes the body into a generic object. An empty body is an
// empty payload; anything that is not a JSON object ends the request with 400.
func readPayload(c *gin.Context) (map[string]any, bool) {
  raw, err := io.ReadAll(c.Request.Body)
  if err != nil {
    response.FromError(c, apperror.NewBadRequest(msgInvalidJSON))
    return nil, false
  }
  if len(bytes.TrimSpace(raw)) == 0 {
    return map[string]any{}, true
  }
  var data map[string]any
  if err := json.Unmarshal(raw, &data); err != nil || data == nil {
    response.FromError(c, apperror.NewBadRequest(msgInvalidJSON))
    return nil, false
  }
  return data, true
}

// pathID parses a numeric path parameter. Anything else cannot name a record,
// so it is answered with 404.
func pathID(c *gin.Context, name string) (uint, bool) {
  id, err := strconv.ParseUint(c.Param(name), 10, 64)
  if err != nil || id == 0 {
    response.Error(c, msgNotFound, http.StatusNotFound)
    return 0, false
  }
  return uint(id), true
}

func listRequest(c *gin.Context, honorPerPage bool, filters []string) services.ListRequest {
  req := services.ListRequest{
    Params:   pagination.FromRequest(c, honorPerPage),
    Active:   c.Query("active"),
    OrderBy:  c.Query("order_by"),
    OrderDir: c.Query("order_dir"),
    Filters:  map[string]any{},
  }
  for _, key := range filters {
    raw, ok := c.GetQuery(key)
    if !ok || raw == "" {
      continue
    }
    if numericFilters[key] {
      n, err := strconv.ParseUint(raw, 10, 64)
      if err != nil {
        // No row has a non-numeric id.
        n = 0
      }
      req.Filters[key] = n
      continue
    }
    req.Filters[key] = raw
  }
  return req
}

func respondPage[T any](c *gin.Context, message string, page pagination.Page[T]) {
  response.Success(c, message, page.WithLinks(pagination.RequestURL(c)))
}
