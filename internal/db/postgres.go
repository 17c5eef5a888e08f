package db

import (
  "fmt"

  "gorm.io/driver/postgres"
  "gorm.io/gorm"

  "github.com/gondola-org/gondola-backend/internal/config"
  "github.com/gondola-org/gondola-backend/internal/logger"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(cfg *config.Config, log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  //1) Construct DSN From Config
  serviceLog.Info("Attempting to construct DSN for Postgres now...")
  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresName)
  serviceLog.Debug("Postgres DSN built :)", "host", cfg.PostgresHost, "port", cfg.PostgresPort, "dbname", cfg.PostgresName)

  //2) Attempt DB Connection
  serviceLog.Info("Attempting to connect to Postgres DB now...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    serviceLog.Error("Failed to connect to Postgres DB", "error", err)
    return nil, fmt.Errorf("failed to connect to Postgres DB: %w", err)
  }
  serviceLog.Info("Successfully Connected to Postgres DB :)")
  return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}

func (s *PostgresService) AutoMigrateAll() error {
  if err := autoMigrateModels(s.db, s.log); err != nil {
    return err
  }

  s.log.Info("Configuring Foreign Key Relationships for Base Tables now...")
  for _, fk := range foreignKeys {
    var count int64
    if err := s.db.Raw(`SELECT COUNT(*) FROM pg_constraint WHERE conname = ?`, fk.Name).Scan(&count).Error; err != nil {
      return fmt.Errorf("failed to check constraint %s: %w", fk.Name, err)
    }
    if count > 0 {
      s.log.Debug("Foreign key already present, skipping", "constraint", fk.Name)
      continue
    }
    if err := s.db.Exec(fk.statement()).Error; err != nil {
      return fmt.Errorf("failed to add %s: %w", fk.Name, err)
    }
    s.log.Debug("Foreign key added", "constraint", fk.Name)
  }
  s.log.Info("Foreign Key Relationships configured :)")
  return nil
}
