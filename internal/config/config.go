package config

import (
  "time"

  "github.com/joho/godotenv"

  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/utils"
)

type Config struct {
  LogMode     string
  Port        string

  DBDriver          string
  PostgresHost      string
  PostgresPort      string
  PostgresUser      string
  PostgresPassword  string
  PostgresName      string
  SQLitePath        string

  JWTSecretKey    string
  AccessTokenTTL  time.Duration

  RedisAddress    string
  RedisPassword   string
  RedisChannel    string

  CORSOrigins             []string
  PermissionSeedJSONPath  string

  AdminName     string
  AdminEmail    string
  AdminPassword string
}

// LoadDotEnv reads an optional .env file. A missing file is not an error.
func LoadDotEnv(log *logger.Logger, paths ...string) {
  if err := godotenv.Load(paths...); err != nil {
    log.Debug("No .env file loaded, relying on process environment", "error", err)
  }
}

func Load(log *logger.Logger) *Config {
  log.Info("Attempting to load configuration from environment now...")
  cfg := &Config{
    LogMode:                utils.GetEnv("LOG_MODE", "development", log),
    Port:                   utils.GetEnv("PORT", "8080", log),
    DBDriver:               utils.GetEnv("DB_DRIVER", "postgres", log),
    PostgresHost:           utils.GetEnv("POSTGRES_HOST", "localhost", log),
    PostgresPort:           utils.GetEnv("POSTGRES_PORT", "5432", log),
    PostgresUser:           utils.GetEnv("POSTGRES_USER", "postgres", log),
    PostgresPassword:       utils.GetEnv("POSTGRES_PASSWORD", "", log),
    PostgresName:           utils.GetEnv("POSTGRES_NAME", "gondola", log),
    SQLitePath:             utils.GetEnv("SQLITE_PATH", "gondola.db", log),
    JWTSecretKey:           utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
    AccessTokenTTL:         time.Duration(utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 86400, log)) * time.Second,
    RedisAddress:           utils.GetEnv("REDIS_ADDRESS", "", log),
    RedisPassword:          utils.GetEnv("REDIS_PASSWORD", "", log),
    RedisChannel:           utils.GetEnv("REDIS_CHANNEL", "gondola_audit", log),
    CORSOrigins:            utils.GetEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000"}, log),
    PermissionSeedJSONPath: utils.GetEnv("SEED_PERMISSION_JSON_PATH", "", log),
    AdminName:              utils.GetEnv("ADMIN_NAME", "Administrador", log),
    AdminEmail:             utils.GetEnv("ADMIN_EMAIL", "", log),
    AdminPassword:          utils.GetEnv("ADMIN_PASSWORD", "", log),
  }
  if cfg.JWTSecretKey == "defaultsecret" {
    log.Warn("JWT_SECRET_KEY not set, using the development default")
  }
  log.Info("Configuration loaded :)", "dbDriver", cfg.DBDriver, "port", cfg.Port, "redisEnabled", cfg.RedisAddress != "")
  return cfg
}
