package audit

// Action is the closed set of audit verbs. The verb text matches the rows
// seeded into the actions table.
type Action int

const (
  ActionCreate Action = iota + 1
  ActionUpdate
  ActionDelete
  ActionLogin
  ActionLogout
)

var verbs = map[Action]string{
  ActionCreate: "Criou",
  ActionUpdate: "Editou",
  ActionDelete: "Removeu",
  ActionLogin:  "Conectou",
  ActionLogout: "Desconectou",
}

var descriptions = map[Action]string{
  ActionCreate: "Registro criado",
  ActionUpdate: "Registro editado",
  ActionDelete: "Registro removido",
  ActionLogin:  "Usuário conectou",
  ActionLogout: "Usuário desconectou",
}

func (a Action) Verb() string {
  return verbs[a]
}

func (a Action) Description() string {
  return descriptions[a]
}

func (a Action) String() string {
  if v, ok := verbs[a]; ok {
    return v
  }
  return "unknown"
}

func AllActions() []Action {
  return []Action{ActionCreate, ActionUpdate, ActionDelete, ActionLogin, ActionLogout}
}
