package types

// Asset is a physical advertising placement inside a store.
type Asset struct {
  Base
  FKStore             uint                      `gorm:"not null;index;column:fk_store" json:"fk_store"`
  Store               *Store                    `gorm:"foreignKey:FKStore;references:ID" json:"store,omitempty"`
  FKSector            uint                      `gorm:"not null;index;column:fk_sector" json:"fk_sector"`
  Sector              *Sector                   `gorm:"foreignKey:FKSector;references:ID" json:"sector,omitempty"`
  FKAssetType         uint                      `gorm:"not null;index;column:fk_asset_type" json:"fk_asset_type"`
  AssetType           *AssetType                `gorm:"foreignKey:FKAssetType;references:ID" json:"asset_type,omitempty"`
  FKStatus            uint                      `gorm:"not null;index;column:fk_status" json:"fk_status"`
  Status              *Status                   `gorm:"foreignKey:FKStatus;references:ID" json:"status,omitempty"`

  Name                string                    `gorm:"not null;column:name" json:"name"`
  Observation         *string                   `gorm:"column:observation" json:"observation"`
  Quantity            int                       `gorm:"not null;default:1;column:quantity" json:"quantity"`
}

func (Asset) TableName() string {
  return "assets"
}
