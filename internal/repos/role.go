package repos

import (
    "context"

    "gorm.io/gorm"

    "github.com/gondola-org/gondola-backend/internal/logger"
    "github.com/gondola-org/gondola-backend/internal/types"
)

type RoleRepo interface {
    BaseRepo[types.Role]

    // READ
    GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.Role, error)

    // PERMISSIONS
    AssociatePermissions(ctx context.Context, tx *gorm.DB, roles []*types.Role, permissions []*types.Permission) error
    SyncPermissionsByIDs(ctx context.Context, tx *gorm.DB, role *types.Role, permissionIDs []uint) error
}

type roleRepo struct {
    *baseRepo[types.Role]
}

func NewRoleRepo(db *gorm.DB, baseLog *logger.Logger) RoleRepo {
    return &roleRepo{baseRepo: newBaseRepo[types.Role](db, baseLog, "RoleRepo", DefaultCascadePolicy)}
}

func (rr *roleRepo) GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.Role, error) {
    var results []*types.Role
    if len(names) == 0 {
        return results, nil
    }
    if err := rr.conn(tx).WithContext(ctx).
        Preload("Permissions").
        Where("name IN ?", names).
        Find(&results).Error; err != nil {
        rr.log.Error("Failed to fetch roles by names", "error", err)
        return nil, err
    }
    return results, nil
}

// ----------------------------------------------------------------
// PERMISSIONS
// ----------------------------------------------------------------

func (rr *roleRepo) AssociatePermissions(ctx context.Context, tx *gorm.DB, roles []*types.Role, permissions []*types.Permission) error {
    if len(roles) == 0 || len(permissions) == 0 {
        rr.log.Debug("No roles or permissions provided, skipping association")
        return nil
    }
    rr.log.Info("Associating permissions with roles now...", "rolesCount", len(roles), "permsCount", len(permissions))
    for _, role := range roles {
        if err := appendAssociation(ctx, rr.conn(tx), role, "Permissions", permissions); err != nil {
            rr.log.Error("Failed to associate permissions with role", "roleID", role.ID, "error", err)
            return err
        }
    }
    return nil
}

func (rr *roleRepo) SyncPermissionsByIDs(ctx context.Context, tx *gorm.DB, role *types.Role, permissionIDs []uint) error {
    perms := make([]*types.Permission, 0, len(permissionIDs))
    for _, id := range permissionIDs {
        perms = append(perms, &types.Permission{Base: types.Base{ID: id}})
    }
    rr.log.Debug("Syncing role permissions", "roleID", role.ID, "permissionIDs", permissionIDs)
    return replaceAssociation(ctx, rr.conn(tx), role, "Permissions", perms)
}
