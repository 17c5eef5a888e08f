package db

import (
  "fmt"

  "github.com/glebarez/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"

  "github.com/gondola-org/gondola-backend/internal/logger"
)

// SQLiteService backs local development and the test suite with an embedded
// database. SQLite allows one writer, so the pool is pinned to one connection.
type SQLiteService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSQLiteService(path string, log *logger.Logger) (*SQLiteService, error) {
  serviceLog := log.With("service", "SQLiteService")
  serviceLog.Info("Attempting to open SQLite DB now...", "path", path)
  db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
    Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
  })
  if err != nil {
    serviceLog.Error("Failed to open SQLite DB", "error", err)
    return nil, fmt.Errorf("failed to open SQLite DB: %w", err)
  }
  sqlDB, err := db.DB()
  if err != nil {
    return nil, fmt.Errorf("failed to get SQLite handle: %w", err)
  }
  sqlDB.SetMaxOpenConns(1)
  serviceLog.Info("Successfully opened SQLite DB :)")
  return &SQLiteService{db: db, log: serviceLog}, nil
}

func (s *SQLiteService) DB() *gorm.DB {
  return s.db
}

func (s *SQLiteService) AutoMigrateAll() error {
  return autoMigrateModels(s.db, s.log)
}
