package repos

import (
    "gorm.io/gorm"

    "github.com/gondola-org/gondola-backend/internal/logger"
    "github.com/gondola-org/gondola-backend/internal/types"
)

// Resources without behaviour beyond CRUD and the shared cascade policy.

type CompanyRepo = BaseRepo[types.Company]
type ContactRepo = BaseRepo[types.Contact]
type AddressRepo = BaseRepo[types.Address]
type SectorRepo = BaseRepo[types.Sector]
type StatusRepo = BaseRepo[types.Status]
type AssetTypeRepo = BaseRepo[types.AssetType]
type AgencyRepo = BaseRepo[types.Agency]
type ExhibitorRepo = BaseRepo[types.Exhibitor]
type BrandRepo = BaseRepo[types.Brand]

func NewCompanyRepo(db *gorm.DB, baseLog *logger.Logger) CompanyRepo {
    return newBaseRepo[types.Company](db, baseLog, "CompanyRepo", DefaultCascadePolicy)
}

func NewContactRepo(db *gorm.DB, baseLog *logger.Logger) ContactRepo {
    return newBaseRepo[types.Contact](db, baseLog, "ContactRepo", DefaultCascadePolicy)
}

func NewAddressRepo(db *gorm.DB, baseLog *logger.Logger) AddressRepo {
    return newBaseRepo[types.Address](db, baseLog, "AddressRepo", DefaultCascadePolicy)
}

func NewSectorRepo(db *gorm.DB, baseLog *logger.Logger) SectorRepo {
    return newBaseRepo[types.Sector](db, baseLog, "SectorRepo", DefaultCascadePolicy)
}

func NewStatusRepo(db *gorm.DB, baseLog *logger.Logger) StatusRepo {
    return newBaseRepo[types.Status](db, baseLog, "StatusRepo", DefaultCascadePolicy)
}

func NewAssetTypeRepo(db *gorm.DB, baseLog *logger.Logger) AssetTypeRepo {
    return newBaseRepo[types.AssetType](db, baseLog, "AssetTypeRepo", DefaultCascadePolicy)
}

func NewAgencyRepo(db *gorm.DB, baseLog *logger.Logger) AgencyRepo {
    return newBaseRepo[types.Agency](db, baseLog, "AgencyRepo", DefaultCascadePolicy)
}

func NewExhibitorRepo(db *gorm.DB, baseLog *logger.Logger) ExhibitorRepo {
    return newBaseRepo[types.Exhibitor](db, baseLog, "ExhibitorRepo", DefaultCascadePolicy)
}

func NewBrandRepo(db *gorm.DB, baseLog *logger.Logger) BrandRepo {
    return newBaseRepo[types.Brand](db, baseLog, "BrandRepo", DefaultCascadePolicy)
}
