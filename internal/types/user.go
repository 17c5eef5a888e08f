package types

type User struct {
  Base
  Name                string                    `gorm:"not null;column:name" json:"name"`
  Email               string                    `gorm:"uniqueIndex;not null;column:email" json:"email"`
  Password            string                    `gorm:"not null;column:password" json:"-"`
  Roles               []*Role                   `gorm:"many2many:user_roles;" json:"roles,omitempty"`
  Permissions         []*Permission             `gorm:"many2many:user_permissions;" json:"permissions,omitempty"`
}

func (User) TableName() string {
  return "users"
}

// RoleNames lists the names of the preloaded roles.
func (u User) RoleNames() []string {
  names := make([]string, 0, len(u.Roles))
  for _, r := range u.Roles {
    names = append(names, r.Name)
  }
  return names
}

// EffectivePermissions merges direct permissions with those granted through roles.
func (u User) EffectivePermissions() []string {
  seen := map[string]bool{}
  var out []string
  add := func(p *Permission) {
    if p != nil && !seen[p.Name] {
      seen[p.Name] = true
      out = append(out, p.Name)
    }
  }
  for _, p := range u.Permissions {
    add(p)
  }
  for _, r := range u.Roles {
    for _, p := range r.Permissions {
      add(p)
    }
  }
  return out
}
