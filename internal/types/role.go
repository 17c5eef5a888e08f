package types

type Role struct {
  Base
  Name                string                    `gorm:"uniqueIndex;not null;column:name" json:"name"`
  Description         *string                   `gorm:"column:description" json:"description"`
  Permissions         []*Permission             `gorm:"many2many:role_permissions;" json:"permissions,omitempty"`
}

func (Role) TableName() string {
  return "roles"
}
