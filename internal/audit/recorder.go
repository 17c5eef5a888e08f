package audit

import (
  "context"
  "encoding/json"
  "fmt"

  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/repos"
  "github.com/gondola-org/gondola-backend/internal/types"
)

// Target describes what a mutation touched.
type Target struct {
  Table       string
  RecordID    uint
  Description string
  Snapshot    any
  // Actor overrides the request actor, used by login where the request
  // itself is not yet authenticated.
  Actor       *uint
}

type Recorder struct {
  resolver       Resolver
  systemLogRepo  repos.SystemLogRepo
  log            *logger.Logger
}

func NewRecorder(resolver Resolver, systemLogRepo repos.SystemLogRepo, log *logger.Logger) *Recorder {
  return &Recorder{resolver: resolver, systemLogRepo: systemLogRepo, log: log.With("component", "AuditRecorder")}
}

// Record inserts one system_logs row using tx.
func (r *Recorder) Record(ctx context.Context, tx *gorm.DB, action Action, actor *uint, target Target) (*types.SystemLog, error) {
  actionID, err := r.resolver.Resolve(ctx, tx, action)
  if err != nil {
    return nil, err
  }
  if actionID == nil {
    r.log.Warn("Audit action not seeded, storing entry without action reference", "action", action.String())
  }

  var snapshot datatypes.JSON
  if target.Snapshot != nil {
    raw, mErr := json.Marshal(target.Snapshot)
    if mErr != nil {
      return nil, fmt.Errorf("marshal audit snapshot: %w", mErr)
    }
    snapshot = datatypes.JSON(raw)
  }

  description := target.Description
  if description == "" {
    description = fmt.Sprintf("%s: %s #%d", action.Description(), target.Table, target.RecordID)
  }

  entry := &types.SystemLog{
    FKUser:      actor,
    FKAction:    actionID,
    Table:       target.Table,
    RecordID:    target.RecordID,
    Description: description,
    Snapshot:    snapshot,
  }
  if _, err := r.systemLogRepo.Create(ctx, tx, []*types.SystemLog{entry}); err != nil {
    return nil, fmt.Errorf("write audit entry: %w", err)
  }
  return entry, nil
}
