package apperror

import (
  "errors"
  "fmt"
  "net/http"
)

type Kind int

const (
  KindInternal Kind = iota
  KindBadRequest
  KindUnauthorized
  KindForbidden
  KindNotFound
  KindValidation
)

// Error is the single error type the transport layer knows how to render.
type Error struct {
  Kind    Kind
  Message string
  Fields  map[string][]string
  Err     error
}

func (e *Error) Error() string {
  if e.Err != nil {
    return fmt.Sprintf("%s: %v", e.Message, e.Err)
  }
  return e.Message
}

func (e *Error) Unwrap() error {
  return e.Err
}

func (e *Error) Status() int {
  switch e.Kind {
  case KindBadRequest:
    return http.StatusBadRequest
  case KindUnauthorized:
    return http.StatusUnauthorized
  case KindForbidden:
    return http.StatusForbidden
  case KindNotFound:
    return http.StatusNotFound
  case KindValidation:
    return http.StatusUnprocessableEntity
  default:
    return http.StatusInternalServerError
  }
}

func NewBadRequest(message string) *Error {
  return &Error{Kind: KindBadRequest, Message: message}
}

func NewUnauthorized(message string) *Error {
  return &Error{Kind: KindUnauthorized, Message: message}
}

func NewForbidden(message string) *Error {
  return &Error{Kind: KindForbidden, Message: message}
}

func NewNotFound(message string) *Error {
  return &Error{Kind: KindNotFound, Message: message}
}

func NewValidation(fields map[string][]string) *Error {
  return &Error{Kind: KindValidation, Message: "Os dados fornecidos são inválidos.", Fields: fields}
}

// Wrap marks err as an internal failure. The message shown to clients is generic.
func Wrap(err error, message string) *Error {
  return &Error{Kind: KindInternal, Message: message, Err: err}
}

// From extracts an *Error from err's chain, treating anything else as internal.
func From(err error) *Error {
  if err == nil {
    return nil
  }
  var appErr *Error
  if errors.As(err, &appErr) {
    return appErr
  }
  return Wrap(err, "Erro interno do servidor.")
}

func IsKind(err error, kind Kind) bool {
  var appErr *Error
  return errors.As(err, &appErr) && appErr.Kind == kind
}
