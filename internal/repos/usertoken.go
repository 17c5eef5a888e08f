package repos

import (
    "context"

    "gorm.io/gorm"

    "github.com/gondola-org/gondola-backend/internal/logger"
    "github.com/gondola-org/gondola-backend/internal/types"
)

type UserTokenRepo interface {
    // CREATE
    Create(ctx context.Context, tx *gorm.DB, userTokens []*types.UserToken) ([]*types.UserToken, error)

    // READ
    GetByAccessTokens(ctx context.Context, tx *gorm.DB, accessTokens []string) ([]*types.UserToken, error)
    GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uint) ([]*types.UserToken, error)

    // FULL (HARD) DELETE
    FullDeleteByTokens(ctx context.Context, tx *gorm.DB, userTokens []*types.UserToken) error
    FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uint) error
}

type userTokenRepo struct {
    db  *gorm.DB
    log *logger.Logger
}

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
    repoLog := baseLog.With("repo", "UserTokenRepo")
    return &userTokenRepo{db: db, log: repoLog}
}

func (utr *userTokenRepo) conn(tx *gorm.DB) *gorm.DB {
    if tx == nil {
        return utr.db
    }
    return tx
}

// ----------------------------------------------------------------
// CREATE
// ----------------------------------------------------------------

func (utr *userTokenRepo) Create(ctx context.Context, tx *gorm.DB, userTokens []*types.UserToken) ([]*types.UserToken, error) {
    if len(userTokens) == 0 {
        return []*types.UserToken{}, nil
    }
    if err := utr.conn(tx).WithContext(ctx).Omit("User").Create(&userTokens).Error; err != nil {
        utr.log.Error("Failed to create user tokens", "error", err)
        return nil, err
    }
    utr.log.Info("Successfully created user tokens", "count", len(userTokens))
    return userTokens, nil
}

// ----------------------------------------------------------------
// READ
// ----------------------------------------------------------------

func (utr *userTokenRepo) GetByAccessTokens(ctx context.Context, tx *gorm.DB, accessTokens []string) ([]*types.UserToken, error) {
    var results []*types.UserToken
    if len(accessTokens) == 0 {
        return results, nil
    }
    if err := utr.conn(tx).WithContext(ctx).
        Where("access_token IN ?", accessTokens).
        Find(&results).Error; err != nil {
        utr.log.Error("Failed to fetch user tokens by access tokens", "error", err)
        return nil, err
    }
    return results, nil
}

func (utr *userTokenRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uint) ([]*types.UserToken, error) {
    var results []*types.UserToken
    if len(userIDs) == 0 {
        return results, nil
    }
    if err := utr.conn(tx).WithContext(ctx).
        Where("fk_user IN ?", userIDs).
        Find(&results).Error; err != nil {
        utr.log.Error("Failed to fetch user tokens by user IDs", "error", err)
        return nil, err
    }
    return results, nil
}

// ----------------------------------------------------------------
// FULL (HARD) DELETE
// ----------------------------------------------------------------

func (utr *userTokenRepo) FullDeleteByTokens(ctx context.Context, tx *gorm.DB, userTokens []*types.UserToken) error {
    if len(userTokens) == 0 {
        return nil
    }
    ids := make([]uint, 0, len(userTokens))
    for _, t := range userTokens {
        ids = append(ids, t.ID)
    }
    if err := utr.conn(tx).WithContext(ctx).
        Where("id IN ?", ids).
        Delete(&types.UserToken{}).Error; err != nil {
        utr.log.Error("Failed to FULL delete user tokens", "error", err)
        return err
    }
    utr.log.Info("Successfully FULL deleted user tokens", "count", len(ids))
    return nil
}

func (utr *userTokenRepo) FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uint) error {
    if len(userIDs) == 0 {
        return nil
    }
    if err := utr.conn(tx).WithContext(ctx).
        Where("fk_user IN ?", userIDs).
        Delete(&types.UserToken{}).Error; err != nil {
        utr.log.Error("Failed to FULL delete user tokens by user IDs", "error", err)
        return err
    }
    return nil
}
