package types

type Address struct {
  Base
  Street              string                    `gorm:"not null;column:street" json:"street"`
  Number              string                    `gorm:"column:number" json:"number"`
  Complement          *string                   `gorm:"column:complement" json:"complement"`
  Neighborhood        string                    `gorm:"column:neighborhood" json:"neighborhood"`
  City                string                    `gorm:"not null;column:city" json:"city"`
  State               string                    `gorm:"size:2;column:state" json:"state"`
  ZipCode             string                    `gorm:"size:8;column:zip_code" json:"zip_code"`
}

func (Address) TableName() string {
  return "addresses"
}
