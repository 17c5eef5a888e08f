package audit

import (
  "context"

  "github.com/prometheus/client_golang/prometheus"
  "github.com/prometheus/client_golang/prometheus/promauto"
  "gorm.io/gorm"

  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/requestdata"
  "github.com/gondola-org/gondola-backend/internal/types"
)

var auditEntries = promauto.NewCounterVec(
  prometheus.CounterOpts{
    Name: "gondola_audit_entries_total",
    Help: "Committed audit log entries by action and table.",
  },
  []string{"action", "table"},
)

// Publisher receives entries after their transaction committed.
type Publisher interface {
  Publish(ctx context.Context, entry *types.SystemLog) error
}

// MutationFunc performs the primary write inside tx and reports its target.
type MutationFunc func(tx *gorm.DB) (Target, error)

type Writer struct {
  db         *gorm.DB
  recorder   *Recorder
  publisher  Publisher
  log        *logger.Logger
}

func NewWriter(db *gorm.DB, recorder *Recorder, publisher Publisher, log *logger.Logger) *Writer {
  return &Writer{db: db, recorder: recorder, publisher: publisher, log: log.With("component", "AuditWriter")}
}

// Write runs fn and the audit insert in one transaction. Any failure rolls
// both back. The actor comes from the request context unless the target
// names one.
func (w *Writer) Write(ctx context.Context, action Action, fn MutationFunc) error {
  var entry *types.SystemLog
  err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    target, err := fn(tx)
    if err != nil {
      return err
    }
    actor := target.Actor
    if actor == nil {
      actor = requestdata.ActorID(ctx)
    }
    entry, err = w.recorder.Record(ctx, tx, action, actor, target)
    return err
  })
  if err != nil {
    w.log.Warn("Audited write rolled back", "action", action.String(), "error", err)
    return err
  }

  auditEntries.WithLabelValues(action.String(), entry.Table).Inc()
  if w.publisher != nil {
    if pErr := w.publisher.Publish(ctx, entry); pErr != nil {
      w.log.Warn("Failed to publish audit entry", "entryID", entry.ID, "error", pErr)
    }
  }
  return nil
}
