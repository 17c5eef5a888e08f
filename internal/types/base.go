package types

import (
  "time"

  "gorm.io/gorm"
)

// Base carries the identifier and lifecycle timestamps shared by every
// soft-deletable record. deleted_at serialises as null while the row is active.
type Base struct {
  ID                  uint                      `gorm:"primaryKey" json:"id"`
  CreatedAt           time.Time                 `json:"created_at"`
  UpdatedAt           time.Time                 `json:"updated_at"`
  DeletedAt           gorm.DeletedAt            `gorm:"index" json:"deleted_at"`
}

func (b Base) GetID() uint {
  return b.ID
}

func (b Base) Trashed() bool {
  return b.DeletedAt.Valid
}

// Entity is satisfied by every model value type.
type Entity interface {
  TableName() string
  GetID() uint
}

// ContactOwner is implemented by the records that hold a many-to-many contact
// set: Company, Store, Agency, Exhibitor and Brand.
type ContactOwner interface {
  Entity
  GetContacts() []*Contact
}
