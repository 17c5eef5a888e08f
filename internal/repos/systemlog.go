package repos

import (
    "context"
    "errors"

    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/gondola-org/gondola-backend/internal/logger"
    "github.com/gondola-org/gondola-backend/internal/pagination"
    "github.com/gondola-org/gondola-backend/internal/types"
)

// SystemLogRepo is append-only: there is no update or delete path.
type SystemLogRepo interface {
    // CREATE
    Create(ctx context.Context, tx *gorm.DB, entries []*types.SystemLog) ([]*types.SystemLog, error)

    // READ
    GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.SystemLog, error)
    Paginate(ctx context.Context, tx *gorm.DB, params pagination.Params, filters map[string]any) ([]*types.SystemLog, int64, error)
}

type systemLogRepo struct {
    db  *gorm.DB
    log *logger.Logger
}

func NewSystemLogRepo(db *gorm.DB, baseLog *logger.Logger) SystemLogRepo {
    return &systemLogRepo{db: db, log: baseLog.With("repo", "SystemLogRepo")}
}

func (sr *systemLogRepo) conn(tx *gorm.DB) *gorm.DB {
    if tx == nil {
        return sr.db
    }
    return tx
}

func (sr *systemLogRepo) Create(ctx context.Context, tx *gorm.DB, entries []*types.SystemLog) ([]*types.SystemLog, error) {
    if len(entries) == 0 {
        return []*types.SystemLog{}, nil
    }
    if err := sr.conn(tx).WithContext(ctx).Omit(clause.Associations).Create(&entries).Error; err != nil {
        sr.log.Error("Failed to create system logs", "error", err)
        return nil, err
    }
    sr.log.Debug("Created system logs", "count", len(entries))
    return entries, nil
}

func (sr *systemLogRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.SystemLog, error) {
    var entry types.SystemLog
    unscoped := func(db *gorm.DB) *gorm.DB { return db.Unscoped() }
    err := sr.conn(tx).WithContext(ctx).
        Preload("User", unscoped).
        Preload("Action", unscoped).
        First(&entry, id).Error
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, nil
        }
        sr.log.Error("Failed to fetch system log", "error", err, "id", id)
        return nil, err
    }
    return &entry, nil
}

// Paginate lists newest first. Related users and actions are loaded even
// when trashed so historical rows stay readable.
func (sr *systemLogRepo) Paginate(ctx context.Context, tx *gorm.DB, params pagination.Params, filters map[string]any) ([]*types.SystemLog, int64, error) {
    build := func() *gorm.DB {
        query := sr.conn(tx).WithContext(ctx).Model(&types.SystemLog{})
        for _, col := range []string{"fk_user", "fk_action", "table_name"} {
            if v, ok := filters[col]; ok {
                query = query.Where(clause.Eq{Column: clause.Column{Name: col}, Value: v})
            }
        }
        return query
    }
    var total int64
    if err := build().Count(&total).Error; err != nil {
        sr.log.Error("Failed to count system logs", "error", err)
        return nil, 0, err
    }
    var results []*types.SystemLog
    unscoped := func(db *gorm.DB) *gorm.DB { return db.Unscoped() }
    if err := build().
        Preload("User", unscoped).
        Preload("Action", unscoped).
        Order("id DESC").
        Offset(params.Offset()).
        Limit(params.PerPage).
        Find(&results).Error; err != nil {
        sr.log.Error("Failed to fetch system logs", "error", err)
        return nil, 0, err
    }
    return results, total, nil
}
