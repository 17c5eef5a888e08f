package validation

import (
  "strconv"
  "strings"
)

type target struct {
  path    string
  value   any
  present bool
}

// resolve expands pattern against data into concrete paths. Wildcard
// segments fan out over array elements, so "contacts.*.email" yields
// "contacts.0.email", "contacts.1.email" and so on.
func resolve(data map[string]any, pattern string) []target {
  var out []target
  walk(data, strings.Split(pattern, "."), "", &out)
  return out
}

func walk(node any, segs []string, prefix string, out *[]target) {
  if len(segs) == 0 {
    *out = append(*out, target{path: prefix, value: node, present: true})
    return
  }
  seg := segs[0]
  if seg == "*" {
    arr, ok := node.([]any)
    if !ok {
      return
    }
    for i, el := range arr {
      walk(el, segs[1:], join(prefix, strconv.Itoa(i)), out)
    }
    return
  }
  m, ok := node.(map[string]any)
  var child any
  if ok {
    child, ok = m[seg]
  }
  if !ok {
    if !containsWildcard(segs[1:]) {
      *out = append(*out, target{path: join(prefix, strings.Join(segs, "."))})
    }
    return
  }
  walk(child, segs[1:], join(prefix, seg), out)
}

func containsWildcard(segs []string) bool {
  for _, s := range segs {
    if s == "*" {
      return true
    }
  }
  return false
}

func join(prefix, seg string) string {
  if prefix == "" {
    return seg
  }
  return prefix + "." + seg
}
