package validation

import (
  "fmt"
)

func uniqueRule(table, column string, currentID *uint) string {
  if currentID != nil {
    return fmt.Sprintf("unique=%s:%s:%d", table, column, *currentID)
  }
  return fmt.Sprintf("unique=%s:%s", table, column)
}

func merge(maps ...map[string]string) map[string]string {
  out := map[string]string{}
  for _, m := range maps {
    for k, v := range m {
      out[k] = v
    }
  }
  return out
}

// contactElementRules describes one inline contact under prefix. Update
// payloads may carry the id of an existing contact to edit it in place.
func contactElementRules(prefix string, withID bool) map[string]string {
  rules := map[string]string{
    prefix + ".*":             "object",
    prefix + ".*.name":        "required,string,max=255",
    prefix + ".*.email":       "required,string,email,max=255",
    prefix + ".*.phone":       "required,string,max=20",
    prefix + ".*.observation": "nullable,string,max=1000",
  }
  if withID {
    rules[prefix+".*.id"] = "nullable,integer,exists=contacts:id"
  }
  return rules
}

func contactElementMessages(prefix string) map[string]string {
  return map[string]string{
    prefix + ".array":             "Os contatos devem ser enviados como lista.",
    prefix + ".*.name.required":   "O nome do contato é obrigatório.",
    prefix + ".*.email.required":  "O e-mail do contato é obrigatório.",
    prefix + ".*.email.email":     "O e-mail do contato deve ser válido.",
    prefix + ".*.phone.required":  "O telefone do contato é obrigatório.",
    prefix + ".*.phone.max":       "O telefone do contato não pode ter mais de 20 caracteres.",
    prefix + ".*.id.exists":       "O contato informado não existe.",
  }
}

func addressElementRules(prefix string) map[string]string {
  return map[string]string{
    prefix + ".*":              "object",
    prefix + ".*.id":           "nullable,integer,exists=addresses:id",
    prefix + ".*.street":       "required,string,max=255",
    prefix + ".*.number":       "required,string,max=20",
    prefix + ".*.complement":   "nullable,string,max=255",
    prefix + ".*.neighborhood": "required,string,max=255",
    prefix + ".*.city":         "required,string,max=255",
    prefix + ".*.state":        "required,string,len=2",
    prefix + ".*.zip_code":     "required,string,digits=8",
  }
}

func addressFieldRules() map[string]string {
  return map[string]string{
    "street":       "required,string,max=255",
    "number":       "required,string,max=20",
    "complement":   "nullable,string,max=255",
    "neighborhood": "required,string,max=255",
    "city":         "required,string,max=255",
    "state":        "required,string,len=2",
    "zip_code":     "required,string,digits=8",
  }
}

var addressMessages = map[string]string{
  "street.required":   "A rua é obrigatória.",
  "city.required":     "A cidade é obrigatória.",
  "state.len":         "O estado deve ser a sigla com 2 letras.",
  "zip_code.digits":   "O CEP deve ter 8 dígitos.",
  "zip_code.required": "O CEP é obrigatório.",
}

func CompanyRules(currentID *uint) RuleSet {
  return RuleSet{
    Rules: merge(map[string]string{
      "name":     "required,string,max=255",
      "contacts": "nullable,array",
    }, contactElementRules("contacts", currentID != nil)),
    Messages: merge(map[string]string{
      "name.required": "O nome da rede é obrigatório.",
      "name.max":      "O nome da rede não pode ter mais de 255 caracteres.",
    }, contactElementMessages("contacts")),
    Partial: currentID != nil,
  }
}

func StoreRules(currentID *uint) RuleSet {
  return RuleSet{
    Rules: merge(map[string]string{
      "name":        "required,string,max=255",
      "fk_companie": "required,integer,exists=companies:id",
      "cnpj":        "required,string,digits=14",
      "contacts":    "nullable,array",
      "addresses":   "nullable,array",
    }, contactElementRules("contacts", currentID != nil), addressElementRules("addresses")),
    Messages: merge(map[string]string{
      "name.required":        "O nome da loja é obrigatório.",
      "fk_companie.required": "A rede da loja é obrigatória.",
      "fk_companie.integer":  "A rede informada é inválida.",
      "fk_companie.exists":   "A rede informada não existe.",
      "cnpj.required":        "O CNPJ é obrigatório.",
      "cnpj.digits":          "O CNPJ deve ter 14 dígitos.",
    }, contactElementMessages("contacts")),
    Partial: currentID != nil,
  }
}

func ContactRules(currentID *uint) RuleSet {
  return RuleSet{
    Rules: map[string]string{
      "name":        "required,string,max=255",
      "email":       "required,string,email,max=255",
      "phone":       "required,string,max=20",
      "observation": "nullable,string,max=1000",
    },
    Messages: map[string]string{
      "name.required":  "O nome do contato é obrigatório.",
      "email.required": "O e-mail do contato é obrigatório.",
      "email.email":    "O e-mail do contato deve ser válido.",
      "phone.required": "O telefone do contato é obrigatório.",
    },
    Partial: currentID != nil,
  }
}

func AddressRules(currentID *uint) RuleSet {
  return RuleSet{
    Rules:    addressFieldRules(),
    Messages: addressMessages,
    Partial:  currentID != nil,
  }
}

func AssetRules(currentID *uint) RuleSet {
  return RuleSet{
    Rules: map[string]string{
      "name":          "required,string,max=255",
      "fk_sector":     "required,integer,exists=sectors:id",
      "fk_asset_type": "required,integer,exists=asset_types:id",
      "fk_status":     "required,integer,exists=status:id",
      "observation":   "nullable,string,max=1000",
      "quantity":      "required,integer,min=1,max=1000",
    },
    Messages: map[string]string{
      "name.required":          "O nome do ativo é obrigatório.",
      "fk_sector.exists":       "O setor informado não existe.",
      "fk_asset_type.exists":   "O tipo de ativo informado não existe.",
      "fk_status.exists":       "O status informado não existe.",
      "quantity.min":           "A quantidade mínima é 1.",
      "quantity.max":           "A quantidade máxima é 1000.",
      "quantity.integer":       "A quantidade deve ser um número inteiro.",
    },
    Partial: currentID != nil,
  }
}

// namedRules covers the lookup tables that only carry a name and a description.
func namedRules(label string, currentID *uint) RuleSet {
  return RuleSet{
    Rules: map[string]string{
      "name":        "required,string,max=255",
      "description": "nullable,string,max=1000",
    },
    Messages: map[string]string{
      "name.required": fmt.Sprintf("O nome do %s é obrigatório.", label),
      "name.max":      fmt.Sprintf("O nome do %s não pode ter mais de 255 caracteres.", label),
    },
    Partial: currentID != nil,
  }
}

func SectorRules(currentID *uint) RuleSet {
  return namedRules("setor", currentID)
}

func StatusRules(currentID *uint) RuleSet {
  return namedRules("status", currentID)
}

func AssetTypeRules(currentID *uint) RuleSet {
  return namedRules("tipo de ativo", currentID)
}

func ActionRules(currentID *uint) RuleSet {
  rs := namedRules("tipo de ação", currentID)
  rs.Rules["name"] = "required,string,max=255," + uniqueRule("actions", "name", currentID)
  rs.Messages["name.unique"] = "Já existe uma ação com este nome."
  return rs
}

func PermissionRules(currentID *uint) RuleSet {
  rs := namedRules("permissão", currentID)
  rs.Rules["name"] = "required,string,max=255," + uniqueRule("permissions", "name", currentID)
  rs.Messages["name.unique"] = "Já existe uma permissão com este nome."
  return rs
}

func RoleRules(currentID *uint) RuleSet {
  rs := namedRules("perfil", currentID)
  rs.Rules["name"] = "required,string,max=255," + uniqueRule("roles", "name", currentID)
  rs.Rules["permissions"] = "nullable,array"
  rs.Rules["permissions.*"] = "integer,exists=permissions:id"
  rs.Messages["name.unique"] = "Já existe um perfil com este nome."
  rs.Messages["permissions.*.exists"] = "A permissão informada não existe."
  return rs
}

func contactOwnerRules(label string, currentID *uint) RuleSet {
  rs := namedRules(label, currentID)
  rs.Rules["contacts"] = "nullable,array"
  rs.Rules = merge(rs.Rules, contactElementRules("contacts", currentID != nil))
  rs.Messages = merge(rs.Messages, contactElementMessages("contacts"))
  return rs
}

func AgencyRules(currentID *uint) RuleSet {
  return contactOwnerRules("agência", currentID)
}

func ExhibitorRules(currentID *uint) RuleSet {
  return contactOwnerRules("expositor", currentID)
}

func BrandRules(currentID *uint) RuleSet {
  return contactOwnerRules("marca", currentID)
}

func UserRules(currentID *uint) RuleSet {
  return RuleSet{
    Rules: map[string]string{
      "name":     "required,string,max=255",
      "email":    "required,string,email,max=255," + uniqueRule("users", "email", currentID),
      "password": "required,string,min=8,max=64",
    },
    Messages: map[string]string{
      "name.required":     "O nome é obrigatório.",
      "email.required":    "O e-mail é obrigatório.",
      "email.email":       "O e-mail deve ser válido.",
      "email.unique":      "Este e-mail já está em uso.",
      "password.required": "A senha é obrigatória.",
      "password.min":      "A senha deve ter pelo menos 8 caracteres.",
    },
    Partial: currentID != nil,
  }
}

// RegisterRules covers self sign-up. Roles are only granted through assign.
func RegisterRules() RuleSet {
  return UserRules(nil)
}

func LoginRules() RuleSet {
  return RuleSet{
    Rules: map[string]string{
      "email":    "required,string,email",
      "password": "required,string",
    },
    Messages: map[string]string{
      "email.required":    "O e-mail é obrigatório.",
      "email.email":       "O e-mail deve ser válido.",
      "password.required": "A senha é obrigatória.",
    },
  }
}

func AssignRules() RuleSet {
  return RuleSet{
    Rules: map[string]string{
      "roles":         "nullable,array",
      "roles.*":       "integer,exists=roles:id",
      "permissions":   "nullable,array",
      "permissions.*": "integer,exists=permissions:id",
    },
    Messages: map[string]string{
      "roles.*.exists":       "O perfil informado não existe.",
      "permissions.*.exists": "A permissão informada não existe.",
    },
  }
}

func ContactAttachRules() RuleSet {
  return RuleSet{
    Rules: merge(map[string]string{
      "contacts": "required,array,min=1",
    }, contactElementRules("contacts", false)),
    Messages: merge(map[string]string{
      "contacts.required": "Informe ao menos um contato.",
    }, contactElementMessages("contacts")),
  }
}

func AddressAttachRules() RuleSet {
  return RuleSet{
    Rules: merge(map[string]string{
      "addresses": "required,array,min=1",
    }, addressElementRules("addresses")),
    Messages: map[string]string{
      "addresses.required":           "Informe ao menos um endereço.",
      "addresses.*.zip_code.digits":  "O CEP deve ter 8 dígitos.",
      "addresses.*.state.len":        "O estado deve ser a sigla com 2 letras.",
    },
  }
}
