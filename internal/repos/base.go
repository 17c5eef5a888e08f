package repos

import (
    "context"
    "errors"
    "sort"

    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/gondola-org/gondola-backend/internal/logger"
    "github.com/gondola-org/gondola-backend/internal/pagination"
    "github.com/gondola-org/gondola-backend/internal/types"
)

// TrashFilter selects which rows a listing sees with respect to soft deletes.
type TrashFilter int

const (
    TrashExcluded TrashFilter = iota
    TrashOnly
    TrashIncluded
)

// ParseActive maps the active query parameter: "true" keeps live rows,
// "false" keeps trashed rows, anything else falls back to def.
func ParseActive(raw string, def TrashFilter) TrashFilter {
    switch raw {
    case "true", "1":
        return TrashExcluded
    case "false", "0":
        return TrashOnly
    default:
        return def
    }
}

type ListQuery struct {
    Params        pagination.Params
    Trash         TrashFilter
    Filters       map[string]any
    OrderBy       string
    OrderDir      string
    AllowedOrder  []string
    Preloads      []string
    Scope         func(*gorm.DB) *gorm.DB
}

type BaseRepo[T types.Entity] interface {
    // CREATE
    Create(ctx context.Context, tx *gorm.DB, items []*T) ([]*T, error)

    // READ
    GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint, preloads ...string) ([]*T, error)
    GetByID(ctx context.Context, tx *gorm.DB, id uint, preloads ...string) (*T, error)
    GetByIDWithTrashed(ctx context.Context, tx *gorm.DB, id uint) (*T, error)
    Paginate(ctx context.Context, tx *gorm.DB, q ListQuery) ([]*T, int64, error)

    // UPDATE
    Update(ctx context.Context, tx *gorm.DB, items []*T) ([]*T, error)

    // SOFT DELETE
    SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uint) error

    // FULL (HARD) DELETE
    FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uint) error
}

type baseRepo[T types.Entity] struct {
    db       *gorm.DB
    log      *logger.Logger
    table    string
    cascade  CascadePolicy
}

func newBaseRepo[T types.Entity](db *gorm.DB, baseLog *logger.Logger, name string, cascade CascadePolicy) *baseRepo[T] {
    var zero T
    return &baseRepo[T]{
        db:      db,
        log:     baseLog.With("repo", name),
        table:   zero.TableName(),
        cascade: cascade,
    }
}

func (br *baseRepo[T]) conn(tx *gorm.DB) *gorm.DB {
    if tx == nil {
        return br.db
    }
    return tx
}

// ----------------------------------------------------------------
// CREATE
// ----------------------------------------------------------------

func (br *baseRepo[T]) Create(ctx context.Context, tx *gorm.DB, items []*T) ([]*T, error) {
    transaction := br.conn(tx)
    if len(items) == 0 {
        br.log.Debug("No items provided, returning empty slice")
        return []*T{}, nil
    }
    br.log.Debug("Creating rows now...", "count", len(items))
    if err := transaction.WithContext(ctx).Omit(clause.Associations).Create(&items).Error; err != nil {
        br.log.Error("Failed to create rows", "error", err)
        return nil, err
    }
    br.log.Info("Successfully created rows", "count", len(items))
    return items, nil
}

// ----------------------------------------------------------------
// READ
// ----------------------------------------------------------------

func (br *baseRepo[T]) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint, preloads ...string) ([]*T, error) {
    transaction := br.conn(tx)
    var results []*T
    if len(ids) == 0 {
        return results, nil
    }
    query := transaction.WithContext(ctx)
    for _, p := range preloads {
        query = query.Preload(p)
    }
    if err := query.Where("id IN ?", ids).Order("id").Find(&results).Error; err != nil {
        br.log.Error("Failed to fetch rows by IDs", "error", err, "ids", ids)
        return nil, err
    }
    br.log.Debug("Fetched rows by IDs", "count", len(results))
    return results, nil
}

// GetByIDWithTrashed also sees soft-deleted rows. Nil means the row is gone.
func (br *baseRepo[T]) GetByIDWithTrashed(ctx context.Context, tx *gorm.DB, id uint) (*T, error) {
    var item T
    if err := br.conn(tx).WithContext(ctx).Unscoped().First(&item, id).Error; err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, nil
        }
        br.log.Error("Failed to fetch row by ID including trashed", "error", err, "id", id)
        return nil, err
    }
    return &item, nil
}

// GetByID returns nil without error when the row is missing or trashed.
func (br *baseRepo[T]) GetByID(ctx context.Context, tx *gorm.DB, id uint, preloads ...string) (*T, error) {
    transaction := br.conn(tx)
    query := transaction.WithContext(ctx)
    for _, p := range preloads {
        query = query.Preload(p)
    }
    var item T
    if err := query.First(&item, id).Error; err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, nil
        }
        br.log.Error("Failed to fetch row by ID", "error", err, "id", id)
        return nil, err
    }
    return &item, nil
}

func (br *baseRepo[T]) Paginate(ctx context.Context, tx *gorm.DB, q ListQuery) ([]*T, int64, error) {
    transaction := br.conn(tx)
    build := func() *gorm.DB {
        query := transaction.WithContext(ctx).Model(new(T))
        switch q.Trash {
        case TrashOnly:
            query = query.Unscoped().Where(clause.Neq{Column: clause.Column{Table: br.table, Name: "deleted_at"}, Value: nil})
        case TrashIncluded:
            query = query.Unscoped()
        }
        keys := make([]string, 0, len(q.Filters))
        for k := range q.Filters {
            keys = append(keys, k)
        }
        sort.Strings(keys)
        for _, k := range keys {
            query = query.Where(clause.Eq{Column: clause.Column{Table: br.table, Name: k}, Value: q.Filters[k]})
        }
        if q.Scope != nil {
            query = q.Scope(query)
        }
        return query
    }

    var total int64
    if err := build().Count(&total).Error; err != nil {
        br.log.Error("Failed to count rows", "error", err)
        return nil, 0, err
    }

    query := build()
    for _, p := range q.Preloads {
        query = query.Preload(p)
    }
    query = query.Order(orderClause(br.table, q))

    var results []*T
    if err := query.Offset(q.Params.Offset()).Limit(q.Params.PerPage).Find(&results).Error; err != nil {
        br.log.Error("Failed to fetch page", "error", err)
        return nil, 0, err
    }
    br.log.Debug("Fetched page", "page", q.Params.Page, "perPage", q.Params.PerPage, "count", len(results), "total", total)
    return results, total, nil
}

// orderClause honours order_by only for whitelisted columns. Anything else
// falls back to insertion order instead of failing the request.
func orderClause(table string, q ListQuery) clause.OrderByColumn {
    fallback := clause.OrderByColumn{Column: clause.Column{Table: table, Name: "id"}}
    if q.OrderBy == "" {
        return fallback
    }
    for _, allowed := range q.AllowedOrder {
        if allowed == q.OrderBy {
            return clause.OrderByColumn{
                Column: clause.Column{Table: table, Name: allowed},
                Desc:   q.OrderDir == "desc",
            }
        }
    }
    return fallback
}

// ----------------------------------------------------------------
// UPDATE
// ----------------------------------------------------------------

// Update writes scalar columns only. Relations are managed through the
// association helpers.
func (br *baseRepo[T]) Update(ctx context.Context, tx *gorm.DB, items []*T) ([]*T, error) {
    transaction := br.conn(tx)
    if len(items) == 0 {
        return items, nil
    }
    for i := range items {
        if err := transaction.WithContext(ctx).Omit(clause.Associations).Save(items[i]).Error; err != nil {
            br.log.Error("Failed to update a row", "error", err, "id", (*items[i]).GetID())
            return nil, err
        }
    }
    br.log.Info("Successfully updated rows", "count", len(items))
    return items, nil
}

// ----------------------------------------------------------------
// SOFT DELETE
// ----------------------------------------------------------------

func (br *baseRepo[T]) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uint) error {
    transaction := br.conn(tx)
    if len(ids) == 0 {
        br.log.Debug("No IDs provided, skipping soft delete")
        return nil
    }
    if err := br.cascade.SoftDelete(ctx, transaction, br.table, ids); err != nil {
        br.log.Error("Failed to cascade soft delete", "error", err)
        return err
    }
    if err := transaction.WithContext(ctx).Where("id IN ?", ids).Delete(new(T)).Error; err != nil {
        br.log.Error("Failed to soft delete rows", "error", err)
        return err
    }
    br.log.Info("Successfully soft deleted rows", "count", len(ids))
    return nil
}

// ----------------------------------------------------------------
// FULL (HARD) DELETE
// ----------------------------------------------------------------

func (br *baseRepo[T]) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uint) error {
    transaction := br.conn(tx)
    if len(ids) == 0 {
        br.log.Debug("No IDs provided, skipping full delete")
        return nil
    }
    if err := br.cascade.ForceDelete(ctx, transaction, br.table, ids); err != nil {
        br.log.Error("Failed to cascade full delete", "error", err)
        return err
    }
    if err := transaction.WithContext(ctx).Unscoped().Where("id IN ?", ids).Delete(new(T)).Error; err != nil {
        br.log.Error("Failed to FULL delete rows", "error", err)
        return err
    }
    br.log.Info("Successfully FULL deleted rows", "count", len(ids))
    return nil
}
