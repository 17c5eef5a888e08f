package validation

import (
  "encoding/json"
  "fmt"
)

// Bind copies a validated payload into a typed request struct.
func Bind(data map[string]any, out any) error {
  raw, err := json.Marshal(data)
  if err != nil {
    return fmt.Errorf("marshal payload: %w", err)
  }
  if err := json.Unmarshal(raw, out); err != nil {
    return fmt.Errorf("bind payload: %w", err)
  }
  return nil
}

// Provided reports whether key was sent with a non-null value. A null
// collection is treated like an absent one and leaves the stored set alone.
func Provided(data map[string]any, key string) bool {
  v, ok := data[key]
  return ok && v != nil
}
