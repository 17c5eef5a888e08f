package repos

import (
    "context"
    "errors"

    "gorm.io/gorm"

    "github.com/gondola-org/gondola-backend/internal/logger"
    "github.com/gondola-org/gondola-backend/internal/types"
)

type AssetRepo interface {
    BaseRepo[types.Asset]

    // READ
    GetByStoreAndID(ctx context.Context, tx *gorm.DB, storeID, assetID uint) (*types.Asset, error)
}

type assetRepo struct {
    *baseRepo[types.Asset]
}

func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
    return &assetRepo{baseRepo: newBaseRepo[types.Asset](db, baseLog, "AssetRepo", DefaultCascadePolicy)}
}

// GetByStoreAndID returns nil when the asset is missing, trashed, or owned by
// another store.
func (ar *assetRepo) GetByStoreAndID(ctx context.Context, tx *gorm.DB, storeID, assetID uint) (*types.Asset, error) {
    var asset types.Asset
    err := ar.conn(tx).WithContext(ctx).
        Preload("Sector").Preload("AssetType").Preload("Status").
        Where("id = ? AND fk_store = ?", assetID, storeID).
        First(&asset).Error
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, nil
        }
        ar.log.Error("Failed to fetch asset by store", "error", err, "storeID", storeID, "assetID", assetID)
        return nil, err
    }
    return &asset, nil
}
