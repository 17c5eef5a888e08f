package types

type Store struct {
  Base
  FKCompanie          uint                      `gorm:"not null;index;column:fk_companie" json:"fk_companie"`
  Company             *Company                  `gorm:"foreignKey:FKCompanie;references:ID" json:"company,omitempty"`
  Contacts            []*Contact                `gorm:"many2many:store_contacts;" json:"contacts,omitempty"`
  Addresses           []*Address                `gorm:"many2many:store_addresses;" json:"addresses,omitempty"`
  Assets              []*Asset                  `gorm:"foreignKey:FKStore" json:"assets,omitempty"`

  Name                string                    `gorm:"not null;column:name" json:"name"`
  Cnpj                string                    `gorm:"size:14;column:cnpj" json:"cnpj"`
}

func (Store) TableName() string {
  return "stores"
}

func (s Store) GetContacts() []*Contact {
  return s.Contacts
}
