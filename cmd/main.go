package main

import (
  "context"
  "fmt"
  "os"

  "github.com/gondola-org/gondola-backend/internal/audit"
  "github.com/gondola-org/gondola-backend/internal/config"
  "github.com/gondola-org/gondola-backend/internal/db"
  "github.com/gondola-org/gondola-backend/internal/events"
  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/seed"
  "github.com/gondola-org/gondola-backend/internal/server"
)

func main() {
  // Logger Setup
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Environment Variables
  config.LoadDotEnv(log)
  cfg := config.Load(log)

  // Database Setup
  log.Info("Setting Up Database from Main now...", "driver", cfg.DBDriver)
  var dbService db.Service
  switch cfg.DBDriver {
  case "sqlite":
    dbService, err = db.NewSQLiteService(cfg.SQLitePath, log)
  default:
    dbService, err = db.NewPostgresService(cfg, log)
  }
  if err != nil {
    log.Error("DB init failed", "error", err)
    os.Exit(1)
  }
  if err = dbService.AutoMigrateAll(); err != nil {
    log.Error("Auto migration failed", "error", err)
    os.Exit(1)
  }
  theDB := dbService.DB()
  log.Info("Database Setup From Main Successful :)")

  // Repositories Setup
  r := server.NewRepos(theDB, log)

  // Seed Setup
  log.Info("Attempting to Seed The Database From Main now...")
  err = seed.SeedAll(context.Background(), theDB, log, seed.Repos{
    Action:     r.Action,
    Permission: r.Permission,
    Role:       r.Role,
    User:       r.User,
  }, seed.Options{
    PermissionSeedJSONPath: cfg.PermissionSeedJSONPath,
    AdminName:              cfg.AdminName,
    AdminEmail:             cfg.AdminEmail,
    AdminPassword:          cfg.AdminPassword,
  })
  if err != nil {
    log.Warn("Failed to seed data :(", "error", err)
  } else {
    log.Info("Seeding of Database From Main Successful :)")
  }

  // Redis Audit Feed
  var publisher audit.Publisher
  var redisPublisher *events.RedisPublisher
  if cfg.RedisAddress != "" {
    log.Info("Setting Up Redis Audit Feed From Main Now...")
    redisPublisher, err = events.NewRedisPublisher(log, cfg.RedisAddress, cfg.RedisPassword, cfg.RedisChannel)
    if err != nil {
      log.Warn("Failed to init redis publisher, audit feed disabled", "error", err)
    } else {
      publisher = redisPublisher
      log.Info("Redis audit feed is active!")
    }
  }

  // Services, Handlers, Middleware, Router
  log.Info("Setting Up Router from Main now...")
  router := server.NewRouter(server.Wire(theDB, log, cfg, r, publisher))
  log.Info("Router Set Up From Main Successful :)")

  fmt.Printf("Server listening on :%s\n", cfg.Port)
  if err := router.Run(":" + cfg.Port); err != nil {
    log.Warn("Server failed", "error", err)
  }

  // On Shutdown
  if redisPublisher != nil {
    if err := redisPublisher.Close(); err != nil {
      log.Warn("Failed to close redis publisher", "error", err)
    }
  }
}
