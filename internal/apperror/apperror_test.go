package apperror

import (
  "errors"
  "fmt"
  "net/http"
  "testing"
)

func TestStatusMapping(t *testing.T) {
  cases := []struct {
    err  *Error
    want int
  }{
    {NewBadRequest("x"), http.StatusBadRequest},
    {NewUnauthorized("x"), http.StatusUnauthorized},
    {NewForbidden("x"), http.StatusForbidden},
    {NewNotFound("x"), http.StatusNotFound},
    {NewValidation(map[string][]string{"name": {"x"}}), http.StatusUnprocessableEntity},
    {Wrap(errors.New("boom"), "x"), http.StatusInternalServerError},
  }
  for _, c := range cases {
    if got := c.err.Status(); got != c.want {
      t.Errorf("%v: status %d, want %d", c.err, got, c.want)
    }
  }
}

func TestFromUnwrapsChain(t *testing.T) {
  nf := NewNotFound("Empresa não encontrada.")
  wrapped := fmt.Errorf("service: %w", nf)
  if got := From(wrapped); got != nf {
    t.Fatalf("From returned %v", got)
  }
  if !IsKind(wrapped, KindNotFound) {
    t.Fatal("expected not found kind")
  }
  plain := From(errors.New("db down"))
  if plain.Kind != KindInternal || plain.Message == "db down" {
    t.Fatalf("internal detail leaked: %+v", plain)
  }
}
