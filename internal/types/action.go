package types

type Action struct {
  Base
  Name                string                    `gorm:"uniqueIndex;not null;column:name" json:"name"`
  Description         *string                   `gorm:"column:description" json:"description"`
}

func (Action) TableName() string {
  return "actions"
}
