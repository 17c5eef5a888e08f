package repos

import (
    "context"

    "gorm.io/gorm"

    "github.com/gondola-org/gondola-backend/internal/logger"
    "github.com/gondola-org/gondola-backend/internal/types"
)

type UserRepo interface {
    BaseRepo[types.User]

    // READ
    GetByEmails(ctx context.Context, tx *gorm.DB, userEmails []string) ([]*types.User, error)
    EmailExists(ctx context.Context, tx *gorm.DB, userEmail string) (bool, error)
    GetWithAccess(ctx context.Context, tx *gorm.DB, userID uint) (*types.User, error)

    // ROLES / PERMISSIONS
    SyncRoles(ctx context.Context, tx *gorm.DB, user *types.User, roleIDs []uint) error
    SyncPermissions(ctx context.Context, tx *gorm.DB, user *types.User, permissionIDs []uint) error
}

type userRepo struct {
    *baseRepo[types.User]
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
    return &userRepo{baseRepo: newBaseRepo[types.User](db, baseLog, "UserRepo", DefaultCascadePolicy)}
}

// ----------------------------------------------------------------
// READ
// ----------------------------------------------------------------

// GetByEmails matches emails exactly, case included.
func (ur *userRepo) GetByEmails(ctx context.Context, tx *gorm.DB, userEmails []string) ([]*types.User, error) {
    var results []*types.User
    if len(userEmails) == 0 {
        ur.log.Debug("No emails provided, returning empty slice")
        return results, nil
    }
    if err := ur.conn(tx).WithContext(ctx).
        Preload("Roles").
        Where("email IN ?", userEmails).
        Find(&results).Error; err != nil {
        ur.log.Error("Failed to fetch users by emails", "error", err)
        return nil, err
    }
    ur.log.Debug("Fetched users by emails", "count", len(results))
    return results, nil
}

func (ur *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, userEmail string) (bool, error) {
    var count int64
    if err := ur.conn(tx).WithContext(ctx).
        Model(&types.User{}).
        Unscoped().
        Where("email = ?", userEmail).
        Count(&count).Error; err != nil {
        ur.log.Error("Failed to check email existence", "error", err)
        return false, err
    }
    return count > 0, nil
}

func (ur *userRepo) GetWithAccess(ctx context.Context, tx *gorm.DB, userID uint) (*types.User, error) {
    return ur.GetByID(ctx, tx, userID, "Roles", "Roles.Permissions", "Permissions")
}

// ----------------------------------------------------------------
// ROLES / PERMISSIONS
// ----------------------------------------------------------------

func (ur *userRepo) SyncRoles(ctx context.Context, tx *gorm.DB, user *types.User, roleIDs []uint) error {
    roles := make([]*types.Role, 0, len(roleIDs))
    for _, id := range roleIDs {
        roles = append(roles, &types.Role{Base: types.Base{ID: id}})
    }
    ur.log.Debug("Syncing user roles", "userID", user.ID, "roleIDs", roleIDs)
    return replaceAssociation(ctx, ur.conn(tx), user, "Roles", roles)
}

func (ur *userRepo) SyncPermissions(ctx context.Context, tx *gorm.DB, user *types.User, permissionIDs []uint) error {
    perms := make([]*types.Permission, 0, len(permissionIDs))
    for _, id := range permissionIDs {
        perms = append(perms, &types.Permission{Base: types.Base{ID: id}})
    }
    ur.log.Debug("Syncing user permissions", "userID", user.ID, "permissionIDs", permissionIDs)
    return replaceAssociation(ctx, ur.conn(tx), user, "Permissions", perms)
}
