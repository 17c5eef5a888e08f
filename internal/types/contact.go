package types

type Contact struct {
  Base
  Name                string                    `gorm:"not null;column:name" json:"name"`
  Email               string                    `gorm:"column:email" json:"email"`
  Phone               string                    `gorm:"column:phone" json:"phone"`
  Observation         *string                   `gorm:"column:observation" json:"observation"`
}

func (Contact) TableName() string {
  return "contacts"
}
