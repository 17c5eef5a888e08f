package events

import (
  "context"
  "encoding/json"
  "fmt"
  "time"

  "github.com/redis/go-redis/v9"

  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/types"
)

// AuditMessage is what subscribers of the audit channel receive.
type AuditMessage struct {
  ID          uint      `json:"id"`
  UserID      *uint     `json:"fk_user"`
  ActionID    *uint     `json:"fk_action"`
  Table       string    `json:"table_name"`
  RecordID    uint      `json:"record_id"`
  Description string    `json:"description"`
  CreatedAt   time.Time `json:"created_at"`
}

// RedisPublisher fans committed audit entries out on a Redis channel so other
// back-office processes can follow changes without polling system_logs.
type RedisPublisher struct {
  log     *logger.Logger
  client  *redis.Client
  channel string
}

func NewRedisPublisher(log *logger.Logger, address, password, channel string) (*RedisPublisher, error) {
  rdb := redis.NewClient(&redis.Options{
    Addr:     address,
    Password: password,
    DB:       0,
  })

  ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
  defer cancel()
  if err := rdb.Ping(ctx).Err(); err != nil {
    _ = rdb.Close()
    return nil, fmt.Errorf("redis ping failed: %w", err)
  }
  return &RedisPublisher{
    log:     log.With("component", "RedisPublisher"),
    client:  rdb,
    channel: channel,
  }, nil
}

func (rp *RedisPublisher) Publish(ctx context.Context, entry *types.SystemLog) error {
  payload, err := encodeAuditMessage(entry)
  if err != nil {
    rp.log.Warn("Failed to encode audit entry for redis", "error", err)
    return err
  }
  return rp.client.Publish(ctx, rp.channel, payload).Err()
}

func (rp *RedisPublisher) Close() error {
  return rp.client.Close()
}

func encodeAuditMessage(entry *types.SystemLog) (string, error) {
  raw, err := json.Marshal(AuditMessage{
    ID:          entry.ID,
    UserID:      entry.FKUser,
    ActionID:    entry.FKAction,
    Table:       entry.Table,
    RecordID:    entry.RecordID,
    Description: entry.Description,
    CreatedAt:   entry.CreatedAt,
  })
  if err != nil {
    return "", err
  }
  return string(raw), nil
}

func decodeAuditMessage(payload string) (AuditMessage, error) {
  var msg AuditMessage
  if err := json.Unmarshal([]byte(payload), &msg); err != nil {
    return msg, fmt.Errorf("json unmarshal failed: %w", err)
  }
  return msg, nil
}
