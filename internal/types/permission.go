package types

type Permission struct {
  Base
  Name                string                    `gorm:"uniqueIndex;not null;column:name" json:"name"`
  Description         *string                   `gorm:"column:description" json:"description"`
}

func (Permission) TableName() string {
  return "permissions"
}
