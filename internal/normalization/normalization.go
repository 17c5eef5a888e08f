package normalization

import (
  "strings"
  "unicode"
)

// ParseInputString trims surrounding whitespace and collapses inner runs of
// whitespace to a single space.
func ParseInputString(s string) string {
  return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

func ParseInputStringPtr(s *string) *string {
  if s == nil {
    return nil
  }
  out := ParseInputString(*s)
  return &out
}

// DigitsOnly strips every non-digit rune, used for cnpj, zip codes and phones.
func DigitsOnly(s string) string {
  var b strings.Builder
  for _, r := range s {
    if r >= '0' && r <= '9' {
      b.WriteRune(r)
    }
  }
  return b.String()
}
