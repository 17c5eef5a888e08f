package db

import (
  "strings"
  "testing"

  "github.com/gondola-org/gondola-backend/internal/logger"
)

func TestSQLiteAutoMigrateCreatesTables(t *testing.T) {
  svc, err := NewSQLiteService(":memory:", logger.NewNop())
  if err != nil {
    t.Fatalf("open: %v", err)
  }
  if err := svc.AutoMigrateAll(); err != nil {
    t.Fatalf("migrate: %v", err)
  }
  for _, table := range []string{"companies", "stores", "company_contacts", "store_addresses", "system_logs", "user_tokens", "status"} {
    if !svc.DB().Migrator().HasTable(table) {
      t.Errorf("expected table %s", table)
    }
  }
  // A second run must be a no-op.
  if err := svc.AutoMigrateAll(); err != nil {
    t.Fatalf("second migrate: %v", err)
  }
}

func TestForeignKeyStatement(t *testing.T) {
  stmt := foreignKeys[0].statement()
  if !strings.Contains(stmt, `REFERENCES "companies"("id") ON DELETE CASCADE`) {
    t.Fatalf("unexpected statement %s", stmt)
  }
}
