package services

import (
  "strings"

  "github.com/gondola-org/gondola-backend/internal/normalization"
  "github.com/gondola-org/gondola-backend/internal/validation"
)

// Payload helpers copy validated request fields onto models. Absent keys
// leave the destination untouched, which is what partial updates rely on.

func setString(data map[string]any, key string, dst *string) {
  if v, ok := data[key].(string); ok {
    *dst = normalization.ParseInputString(v)
  }
}

func setOptionalString(data map[string]any, key string, dst **string) {
  v, ok := data[key]
  if !ok {
    return
  }
  s, isStr := v.(string)
  if !isStr || strings.TrimSpace(s) == "" {
    *dst = nil
    return
  }
  *dst = normalization.ParseInputStringPtr(&s)
}

func setUint(data map[string]any, key string, dst *uint) {
  if n, ok := data[key].(float64); ok && n >= 0 {
    *dst = uint(n)
  }
}

func setInt(data map[string]any, key string, dst *int) {
  if n, ok := data[key].(float64); ok {
    *dst = int(n)
  }
}

// idList reads an array of numeric ids. The boolean is false when key is
// absent or null.
func idList(data map[string]any, key string) ([]uint, bool) {
  if !validation.Provided(data, key) {
    return nil, false
  }
  arr, _ := data[key].([]any)
  ids := make([]uint, 0, len(arr))
  for _, el := range arr {
    if n, isNum := el.(float64); isNum && n > 0 {
      ids = append(ids, uint(n))
    }
  }
  return ids, true
}

// normalizeDigits strips formatting from document-style fields before
// validation so "12.345.678/0001-90" counts as fourteen digits.
func normalizeDigits(data map[string]any, keys ...string) {
  for _, k := range keys {
    if s, ok := data[k].(string); ok {
      data[k] = normalization.DigitsOnly(s)
    }
  }
}

// normalizeNestedDigits applies normalizeDigits to every object in data[list].
func normalizeNestedDigits(data map[string]any, list string, keys ...string) {
  arr, ok := data[list].([]any)
  if !ok {
    return
  }
  for _, el := range arr {
    if m, isMap := el.(map[string]any); isMap {
      normalizeDigits(m, keys...)
    }
  }
}

type contactPayload struct {
  ID          *uint   `json:"id"`
  Name        string  `json:"name"`
  Email       string  `json:"email"`
  Phone       string  `json:"phone"`
  Observation *string `json:"observation"`
}

type addressPayload struct {
  ID           *uint   `json:"id"`
  Street       string  `json:"street"`
  Number       string  `json:"number"`
  Complement   *string `json:"complement"`
  Neighborhood string  `json:"neighborhood"`
  City         string  `json:"city"`
  State        string  `json:"state"`
  ZipCode      string  `json:"zip_code"`
}

func contactPayloads(data map[string]any) ([]contactPayload, error) {
  var wrapper struct {
    Contacts []contactPayload `json:"contacts"`
  }
  if err := validation.Bind(map[string]any{"contacts": data["contacts"]}, &wrapper); err != nil {
    return nil, err
  }
  return wrapper.Contacts, nil
}

func addressPayloads(data map[string]any) ([]addressPayload, error) {
  var wrapper struct {
    Addresses []addressPayload `json:"addresses"`
  }
  if err := validation.Bind(map[string]any{"addresses": data["addresses"]}, &wrapper); err != nil {
    return nil, err
  }
  return wrapper.Addresses, nil
}
