package types

type Agency struct {
  Base
  Name                string                    `gorm:"not null;column:name" json:"name"`
  Description         *string                   `gorm:"column:description" json:"description"`
  Contacts            []*Contact                `gorm:"many2many:agency_contacts;" json:"contacts,omitempty"`
}

func (Agency) TableName() string {
  return "agencies"
}

func (a Agency) GetContacts() []*Contact {
  return a.Contacts
}

type Exhibitor struct {
  Base
  Name                string                    `gorm:"not null;column:name" json:"name"`
  Description         *string                   `gorm:"column:description" json:"description"`
  Contacts            []*Contact                `gorm:"many2many:exhibitor_contacts;" json:"contacts,omitempty"`
}

func (Exhibitor) TableName() string {
  return "exhibitors"
}

func (e Exhibitor) GetContacts() []*Contact {
  return e.Contacts
}

type Brand struct {
  Base
  Name                string                    `gorm:"not null;column:name" json:"name"`
  Description         *string                   `gorm:"column:description" json:"description"`
  Contacts            []*Contact                `gorm:"many2many:brand_contacts;" json:"contacts,omitempty"`
}

func (Brand) TableName() string {
  return "brands"
}

func (b Brand) GetContacts() []*Contact {
  return b.Contacts
}
