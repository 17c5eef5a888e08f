package types

type Company struct {
  Base
  Name                string                    `gorm:"not null;column:name" json:"name"`
  Stores              []*Store                  `gorm:"foreignKey:FKCompanie" json:"stores,omitempty"`
  Contacts            []*Contact                `gorm:"many2many:company_contacts;" json:"contacts,omitempty"`
}

func (Company) TableName() string {
  return "companies"
}

func (c Company) GetContacts() []*Contact {
  return c.Contacts
}
