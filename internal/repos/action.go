package repos

import (
    "context"
    "errors"

    "gorm.io/gorm"

    "github.com/gondola-org/gondola-backend/internal/logger"
    "github.com/gondola-org/gondola-backend/internal/types"
)

type ActionRepo interface {
    BaseRepo[types.Action]

    // READ
    GetByNameFold(ctx context.Context, tx *gorm.DB, name string) (*types.Action, error)
    GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Action, error)
}

type actionRepo struct {
    *baseRepo[types.Action]
}

func NewActionRepo(db *gorm.DB, baseLog *logger.Logger) ActionRepo {
    return &actionRepo{baseRepo: newBaseRepo[types.Action](db, baseLog, "ActionRepo", DefaultCascadePolicy)}
}

// GetByNameFold matches name case-insensitively and returns nil when no
// live action carries it.
func (ar *actionRepo) GetByNameFold(ctx context.Context, tx *gorm.DB, name string) (*types.Action, error) {
    var action types.Action
    err := ar.conn(tx).WithContext(ctx).
        Where("LOWER(name) = LOWER(?)", name).
        Order("id").
        First(&action).Error
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, nil
        }
        ar.log.Error("Failed to fetch action by name", "error", err, "name", name)
        return nil, err
    }
    return &action, nil
}

func (ar *actionRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Action, error) {
    var results []*types.Action
    if err := ar.conn(tx).WithContext(ctx).Order("id").Find(&results).Error; err != nil {
        ar.log.Error("Failed to fetch all actions", "error", err)
        return nil, err
    }
    return results, nil
}
