package config

import (
  "testing"
  "time"

  "github.com/gondola-org/gondola-backend/internal/logger"
)

func TestLoadReadsEnvironment(t *testing.T) {
  t.Setenv("DB_DRIVER", "sqlite")
  t.Setenv("ACCESS_TOKEN_TTL", "60")
  t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")

  cfg := Load(logger.NewNop())
  if cfg.DBDriver != "sqlite" {
    t.Errorf("DBDriver = %q", cfg.DBDriver)
  }
  if cfg.AccessTokenTTL != time.Minute {
    t.Errorf("AccessTokenTTL = %v", cfg.AccessTokenTTL)
  }
  if len(cfg.CORSOrigins) != 2 {
    t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
  }
  if cfg.RedisChannel != "gondola_audit" {
    t.Errorf("RedisChannel = %q", cfg.RedisChannel)
  }
}
