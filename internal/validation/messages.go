package validation

import (
  "fmt"
  "strings"
)

var defaultMessages = map[string]string{
  "required": "O campo %s é obrigatório.",
  "string":   "O campo %s deve ser um texto.",
  "integer":  "O campo %s deve ser um número inteiro.",
  "boolean":  "O campo %s deve ser verdadeiro ou falso.",
  "array":    "O campo %s deve ser uma lista.",
  "object":   "O campo %s deve ser um objeto.",
  "email":    "O campo %s deve ser um endereço de e-mail válido.",
  "min":      "O campo %s deve ser no mínimo %s.",
  "max":      "O campo %s não pode ser maior que %s.",
  "len":      "O campo %s deve ter %s caracteres.",
  "digits":   "O campo %s deve ter %s dígitos.",
  "oneof":    "O campo %s deve ser um dos valores: %s.",
  "exists":   "O campo %s selecionado é inválido.",
  "unique":   "O valor informado para %s já está em uso.",
}

// message prefers a rule-set message for the pattern, then one for the
// concrete path, then the default for the tag.
func message(rs RuleSet, pattern, path, tag, param string) string {
  if msg, ok := rs.Messages[pattern+"."+tag]; ok {
    return msg
  }
  if msg, ok := rs.Messages[path+"."+tag]; ok {
    return msg
  }
  label := path
  if i := strings.LastIndex(path, "."); i >= 0 {
    label = path[i+1:]
  }
  format, ok := defaultMessages[tag]
  if !ok {
    return fmt.Sprintf("O campo %s é inválido.", label)
  }
  if strings.Count(format, "%s") == 2 {
    return fmt.Sprintf(format, label, param)
  }
  return fmt.Sprintf(format, label)
}
