package types

import (
  "time"
)

// UserToken is a persisted bearer token. Revocation deletes the row.
type UserToken struct {
  ID                  uint                      `gorm:"primaryKey" json:"id"`
  FKUser              uint                      `gorm:"index;not null;column:fk_user" json:"fk_user"`
  User                *User                     `gorm:"constraint:OnDelete:CASCADE;foreignKey:FKUser;references:ID" json:"-"`

  AccessToken         string                    `gorm:"uniqueIndex;not null;column:access_token" json:"-"`
  TokenID             string                    `gorm:"uniqueIndex;not null;column:token_id" json:"token_id"`
  ExpiresAt           time.Time                 `gorm:"column:expires_at" json:"expires_at"`

  CreatedAt           time.Time                 `json:"created_at"`
  UpdatedAt           time.Time                 `json:"updated_at"`
}

func (UserToken) TableName() string {
  return "user_tokens"
}
