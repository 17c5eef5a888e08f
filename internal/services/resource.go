package services

import (
  "context"
  "fmt"

  "gorm.io/gorm"

  "github.com/gondola-org/gondola-backend/internal/apperror"
  "github.com/gondola-org/gondola-backend/internal/audit"
  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/pagination"
  "github.com/gondola-org/gondola-backend/internal/repos"
  "github.com/gondola-org/gondola-backend/internal/types"
  "github.com/gondola-org/gondola-backend/internal/validation"
)

// ListRequest carries the raw listing knobs of an index request. Each
// resource decides through ListOptions which of them it honours.
type ListRequest struct {
  Params   pagination.Params
  Active   string
  OrderBy  string
  OrderDir string
  Filters  map[string]any
}

type ListOptions struct {
  // TrashAware resources honour the active parameter and list every row
  // when it is absent. Others only ever see live rows.
  TrashAware   bool
  AllowedOrder []string
  Filterable   []string
  Preloads     []string
}

// Hook runs inside the write transaction after the primary row was saved.
type Hook[T types.Entity] func(ctx context.Context, tx *gorm.DB, item *T, data map[string]any) error

// ResourceDef describes one audited CRUD resource.
type ResourceDef[T types.Entity] struct {
  Name         string
  NotFound     string
  Rules        func(currentID *uint) validation.RuleSet
  Normalize    func(data map[string]any)
  Apply        func(data map[string]any, item *T) error
  List         ListOptions
  Preloads     []string
  AfterCreate  Hook[T]
  AfterUpdate  Hook[T]
  BeforeDelete Hook[T]
}

type ResourceService[T types.Entity] interface {
  List(ctx context.Context, req ListRequest) (pagination.Page[*T], error)
  Get(ctx context.Context, id uint) (*T, error)
  Create(ctx context.Context, data map[string]any) (*T, error)
  Update(ctx context.Context, id uint, data map[string]any) (*T, error)
  Delete(ctx context.Context, id uint) error
}

type resourceService[T types.Entity] struct {
  log       *logger.Logger
  repo      repos.BaseRepo[T]
  validator *validation.Validator
  writer    *audit.Writer
  def       ResourceDef[T]
  table     string
}

func NewResourceService[T types.Entity](
  baseLog     *logger.Logger,
  repo        repos.BaseRepo[T],
  validator   *validation.Validator,
  writer      *audit.Writer,
  def         ResourceDef[T],
) ResourceService[T] {
  return newResourceService(baseLog, repo, validator, writer, def)
}

func newResourceService[T types.Entity](baseLog *logger.Logger, repo repos.BaseRepo[T], validator *validation.Validator, writer *audit.Writer, def ResourceDef[T]) *resourceService[T] {
  var zero T
  return &resourceService[T]{
    log:       baseLog.With("service", def.Name),
    repo:      repo,
    validator: validator,
    writer:    writer,
    def:       def,
    table:     zero.TableName(),
  }
}

//----------------------------------------------------------------------------------------------------------------------
// READ
//----------------------------------------------------------------------------------------------------------------------

func (rs *resourceService[T]) List(ctx context.Context, req ListRequest) (pagination.Page[*T], error) {
  q := repos.ListQuery{
    Params:   req.Params,
    Trash:    repos.TrashExcluded,
    Filters:  map[string]any{},
    Preloads: rs.def.List.Preloads,
  }
  if rs.def.List.TrashAware {
    q.Trash = repos.ParseActive(req.Active, repos.TrashIncluded)
  }
  for _, key := range rs.def.List.Filterable {
    if v, ok := req.Filters[key]; ok {
      q.Filters[key] = v
    }
  }
  if len(rs.def.List.AllowedOrder) > 0 {
    q.OrderBy, q.OrderDir, q.AllowedOrder = req.OrderBy, req.OrderDir, rs.def.List.AllowedOrder
  }
  items, total, err := rs.repo.Paginate(ctx, nil, q)
  if err != nil {
    rs.log.Error("Failed to list rows", "error", err)
    return pagination.Page[*T]{}, fmt.Errorf("list %s: %w", rs.table, err)
  }
  return pagination.New(items, total, q.Params), nil
}

func (rs *resourceService[T]) Get(ctx context.Context, id uint) (*T, error) {
  return rs.load(ctx, nil, id, rs.def.Preloads...)
}

func (rs *resourceService[T]) load(ctx context.Context, tx *gorm.DB, id uint, preloads ...string) (*T, error) {
  item, err := rs.repo.GetByID(ctx, tx, id, preloads...)
  if err != nil {
    return nil, fmt.Errorf("load %s #%d: %w", rs.table, id, err)
  }
  if item == nil {
    return nil, apperror.NewNotFound(rs.def.NotFound)
  }
  return item, nil
}

//----------------------------------------------------------------------------------------------------------------------
// CREATE
//----------------------------------------------------------------------------------------------------------------------

func (rs *resourceService[T]) Create(ctx context.Context, data map[string]any) (*T, error) {
  rs.log.Info("Starting Create now...")
  //1) Normalize + Validate before any transaction opens
  if rs.def.Normalize != nil {
    rs.def.Normalize(data)
  }
  if err := rs.validator.Validate(ctx, rs.def.Rules(nil), data); err != nil {
    return nil, err
  }

  //2) Build the record
  item := new(T)
  if err := rs.def.Apply(data, item); err != nil {
    return nil, fmt.Errorf("build %s: %w", rs.table, err)
  }

  //3) Audited write
  err := rs.writer.Write(ctx, audit.ActionCreate, func(tx *gorm.DB) (audit.Target, error) {
    if _, cErr := rs.repo.Create(ctx, tx, []*T{item}); cErr != nil {
      return audit.Target{}, fmt.Errorf("create %s: %w", rs.table, cErr)
    }
    if rs.def.AfterCreate != nil {
      if hErr := rs.def.AfterCreate(ctx, tx, item, data); hErr != nil {
        return audit.Target{}, hErr
      }
    }
    return rs.target(item), nil
  })
  if err != nil {
    return nil, err
  }
  rs.log.Info("Create Successful :)", "id", (*item).GetID())
  return rs.Get(ctx, (*item).GetID())
}

//----------------------------------------------------------------------------------------------------------------------
// UPDATE
//----------------------------------------------------------------------------------------------------------------------

func (rs *resourceService[T]) Update(ctx context.Context, id uint, data map[string]any) (*T, error) {
  rs.log.Info("Starting Update now...", "id", id)
  //1) Existence first, then validation
  item, err := rs.load(ctx, nil, id)
  if err != nil {
    return nil, err
  }
  if rs.def.Normalize != nil {
    rs.def.Normalize(data)
  }
  if err := rs.validator.Validate(ctx, rs.def.Rules(&id), data); err != nil {
    return nil, err
  }

  //2) Apply the present fields
  if err := rs.def.Apply(data, item); err != nil {
    return nil, fmt.Errorf("apply %s: %w", rs.table, err)
  }

  //3) Audited write
  err = rs.writer.Write(ctx, audit.ActionUpdate, func(tx *gorm.DB) (audit.Target, error) {
    if _, uErr := rs.repo.Update(ctx, tx, []*T{item}); uErr != nil {
      return audit.Target{}, fmt.Errorf("update %s: %w", rs.table, uErr)
    }
    if rs.def.AfterUpdate != nil {
      if hErr := rs.def.AfterUpdate(ctx, tx, item, data); hErr != nil {
        return audit.Target{}, hErr
      }
    }
    return rs.target(item), nil
  })
  if err != nil {
    return nil, err
  }
  return rs.Get(ctx, id)
}

//----------------------------------------------------------------------------------------------------------------------
// DELETE
//----------------------------------------------------------------------------------------------------------------------

func (rs *resourceService[T]) Delete(ctx context.Context, id uint) error {
  rs.log.Info("Starting Delete now...", "id", id)
  item, err := rs.load(ctx, nil, id)
  if err != nil {
    return err
  }
  return rs.writer.Write(ctx, audit.ActionDelete, func(tx *gorm.DB) (audit.Target, error) {
    if rs.def.BeforeDelete != nil {
      if hErr := rs.def.BeforeDelete(ctx, tx, item, nil); hErr != nil {
        return audit.Target{}, hErr
      }
    }
    if dErr := rs.repo.SoftDeleteByIDs(ctx, tx, []uint{id}); dErr != nil {
      return audit.Target{}, fmt.Errorf("delete %s #%d: %w", rs.table, id, dErr)
    }
    return rs.target(item), nil
  })
}

// forceDelete removes the row and its declared dependents for good. Rows
// already in the trash can still be purged.
func (rs *resourceService[T]) forceDelete(ctx context.Context, id uint) error {
  rs.log.Info("Starting Force Delete now...", "id", id)
  item, err := rs.repo.GetByIDWithTrashed(ctx, nil, id)
  if err != nil {
    return fmt.Errorf("load %s #%d: %w", rs.table, id, err)
  }
  if item == nil {
    return apperror.NewNotFound(rs.def.NotFound)
  }
  return rs.writer.Write(ctx, audit.ActionDelete, func(tx *gorm.DB) (audit.Target, error) {
    if dErr := rs.repo.FullDeleteByIDs(ctx, tx, []uint{id}); dErr != nil {
      return audit.Target{}, fmt.Errorf("force delete %s #%d: %w", rs.table, id, dErr)
    }
    target := rs.target(item)
    target.Description = fmt.Sprintf("%s definitivamente: %s #%d", audit.ActionDelete.Description(), rs.table, id)
    return target, nil
  })
}

func (rs *resourceService[T]) target(item *T) audit.Target {
  return audit.Target{Table: rs.table, RecordID: (*item).GetID(), Snapshot: item}
}
