package types

import (
  "time"

  "gorm.io/datatypes"
)

// SystemLog is an append-only audit row. FKUser and FKAction are nullable:
// self-registration has no actor, and an action verb missing from the
// actions table leaves the reference empty.
type SystemLog struct {
  ID                  uint                      `gorm:"primaryKey" json:"id"`
  FKUser              *uint                     `gorm:"index;column:fk_user" json:"fk_user"`
  User                *User                     `gorm:"foreignKey:FKUser;references:ID" json:"user,omitempty"`
  FKAction            *uint                     `gorm:"index;column:fk_action" json:"fk_action"`
  Action              *Action                   `gorm:"foreignKey:FKAction;references:ID" json:"action,omitempty"`

  Table               string                    `gorm:"not null;index;column:table_name" json:"table_name"`
  RecordID            uint                      `gorm:"column:record_id" json:"record_id"`
  Description         string                    `gorm:"type:text;column:description" json:"description"`
  Snapshot            datatypes.JSON            `gorm:"column:snapshot" json:"snapshot,omitempty"`

  CreatedAt           time.Time                 `json:"created_at"`
}

func (SystemLog) TableName() string {
  return "system_logs"
}
