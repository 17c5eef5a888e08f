package types

// Sector, Status and AssetType are the lookup tables an asset points at.

type Sector struct {
  Base
  Name                string                    `gorm:"not null;column:name" json:"name"`
  Description         *string                   `gorm:"column:description" json:"description"`
}

func (Sector) TableName() string {
  return "sectors"
}

type Status struct {
  Base
  Name                string                    `gorm:"not null;column:name" json:"name"`
  Description         *string                   `gorm:"column:description" json:"description"`
}

func (Status) TableName() string {
  return "status"
}

type AssetType struct {
  Base
  Name                string                    `gorm:"not null;column:name" json:"name"`
  Description         *string                   `gorm:"column:description" json:"description"`
}

func (AssetType) TableName() string {
  return "asset_types"
}
