package repos

import (
    "context"

    "gorm.io/gorm"

    "github.com/gondola-org/gondola-backend/internal/logger"
    "github.com/gondola-org/gondola-backend/internal/types"
)

type PermissionRepo interface {
    BaseRepo[types.Permission]

    // READ
    GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Permission, error)
}

type permissionRepo struct {
    *baseRepo[types.Permission]
}

func NewPermissionRepo(db *gorm.DB, baseLog *logger.Logger) PermissionRepo {
    return &permissionRepo{baseRepo: newBaseRepo[types.Permission](db, baseLog, "PermissionRepo", DefaultCascadePolicy)}
}

func (pr *permissionRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Permission, error) {
    var results []*types.Permission
    if err := pr.conn(tx).WithContext(ctx).Order("id").Find(&results).Error; err != nil {
        pr.log.Error("Failed to fetch all permissions", "error", err)
        return nil, err
    }
    return results, nil
}
