package services

import (
  "context"
  "fmt"

  "github.com/gondola-org/gondola-backend/internal/apperror"
  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/pagination"
  "github.com/gondola-org/gondola-backend/internal/repos"
  "github.com/gondola-org/gondola-backend/internal/types"
)

// SystemLogService is read-only; entries are only ever written by audit.Writer.
type SystemLogService interface {
  List(ctx context.Context, req ListRequest) (pagination.Page[*types.SystemLog], error)
  Get(ctx context.Context, id uint) (*types.SystemLog, error)
}

type systemLogService struct {
  log           *logger.Logger
  systemLogRepo repos.SystemLogRepo
}

var systemLogFilters = []string{"fk_user", "fk_action", "table_name"}

func NewSystemLogService(baseLog *logger.Logger, systemLogRepo repos.SystemLogRepo) SystemLogService {
  return &systemLogService{log: baseLog.With("service", "SystemLogService"), systemLogRepo: systemLogRepo}
}

func (ss *systemLogService) List(ctx context.Context, req ListRequest) (pagination.Page[*types.SystemLog], error) {
  filters := map[string]any{}
  for _, key := range systemLogFilters {
    if v, ok := req.Filters[key]; ok {
      filters[key] = v
    }
  }
  items, total, err := ss.systemLogRepo.Paginate(ctx, nil, req.Params, filters)
  if err != nil {
    ss.log.Error("Failed to list system logs", "error", err)
    return pagination.Page[*types.SystemLog]{}, fmt.Errorf("list system logs: %w", err)
  }
  return pagination.New(items, total, req.Params), nil
}

func (ss *systemLogService) Get(ctx context.Context, id uint) (*types.SystemLog, error) {
  entry, err := ss.systemLogRepo.GetByID(ctx, nil, id)
  if err != nil {
    return nil, fmt.Errorf("load system log #%d: %w", id, err)
  }
  if entry == nil {
    return nil, apperror.NewNotFound("Registro de log não encontrado.")
  }
  return entry, nil
}
