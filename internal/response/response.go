package response

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/gondola-org/gondola-backend/internal/apperror"
  "github.com/gondola-org/gondola-backend/internal/errordata"
)

// Envelope is the body of every API response.
type Envelope struct {
  Success bool   `json:"success"`
  Message string `json:"message"`
  Data    any    `json:"data"`
}

func Success(c *gin.Context, message string, data any, status ...int) {
  code := http.StatusOK
  if len(status) > 0 {
    code = status[0]
  }
  c.JSON(code, Envelope{Success: true, Message: message, Data: data})
}

func Error(c *gin.Context, message string, status ...int) {
  code := http.StatusBadRequest
  if len(status) > 0 {
    code = status[0]
  }
  c.JSON(code, Envelope{Success: false, Message: message, Data: nil})
}

// Abort writes an error envelope and stops the middleware chain.
func Abort(c *gin.Context, message string, status int) {
  c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message, Data: nil})
}

// FromError renders err through the error taxonomy. Validation failures carry
// the field map in data; internal failures hide their cause from the client
// and leave it in errordata for the request logger.
func FromError(c *gin.Context, err error) {
  appErr := apperror.From(err)
  if appErr.Kind == apperror.KindInternal {
    if ed := errordata.GetErrorData(c.Request.Context()); ed != nil {
      ed.SetError(err)
    }
    _ = c.Error(err)
  }
  var data any
  if appErr.Kind == apperror.KindValidation {
    data = appErr.Fields
  }
  c.JSON(appErr.Status(), Envelope{Success: false, Message: appErr.Message, Data: data})
}
