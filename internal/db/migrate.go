package db

import (
  "fmt"

  "gorm.io/gorm"

  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/types"
)

// Service is the contract both database backends satisfy.
type Service interface {
  DB() *gorm.DB
  AutoMigrateAll() error
}

// Models lists every GORM model in migration order.
func Models() []any {
  return []any{
    &types.Permission{},
    &types.Role{},
    &types.User{},
    &types.UserToken{},
    &types.Action{},
    &types.Contact{},
    &types.Address{},
    &types.Company{},
    &types.Store{},
    &types.Sector{},
    &types.Status{},
    &types.AssetType{},
    &types.Asset{},
    &types.Agency{},
    &types.Exhibitor{},
    &types.Brand{},
    &types.SystemLog{},
  }
}

func autoMigrateModels(db *gorm.DB, log *logger.Logger) error {
  log.Info("Starting AutoMigrateAll for all GORM models now...")
  if err := db.AutoMigrate(Models()...); err != nil {
    log.Error("AutoMigrateAll failed for Base Tables :(", "error", err)
    return fmt.Errorf("auto migrate: %w", err)
  }
  log.Info("AutoMigrateAll completed successfully for Base Tables :)")
  return nil
}

type foreignKey struct {
  Name       string
  Table      string
  Column     string
  RefTable   string
  OnDelete   string
}

func (fk foreignKey) statement() string {
  return fmt.Sprintf(`ALTER TABLE %q ADD CONSTRAINT %q FOREIGN KEY (%q) REFERENCES %q("id") ON DELETE %s`,
    fk.Table, fk.Name, fk.Column, fk.RefTable, fk.OnDelete)
}

// Store and asset rows are also cascaded at the application level, which is
// what keeps soft deletes mirrored. These constraints cover hard deletes.
var foreignKeys = []foreignKey{
  {"fk_stores_companie", "stores", "fk_companie", "companies", "CASCADE"},
  {"fk_assets_store", "assets", "fk_store", "stores", "CASCADE"},
  {"fk_assets_sector", "assets", "fk_sector", "sectors", "RESTRICT"},
  {"fk_assets_asset_type", "assets", "fk_asset_type", "asset_types", "RESTRICT"},
  {"fk_assets_status", "assets", "fk_status", "status", "RESTRICT"},
  {"fk_user_tokens_user", "user_tokens", "fk_user", "users", "CASCADE"},
  {"fk_system_logs_user", "system_logs", "fk_user", "users", "SET NULL"},
  {"fk_system_logs_action", "system_logs", "fk_action", "actions", "SET NULL"},
  {"fk_company_contacts_company", "company_contacts", "company_id", "companies", "CASCADE"},
  {"fk_company_contacts_contact", "company_contacts", "contact_id", "contacts", "CASCADE"},
  {"fk_store_contacts_store", "store_contacts", "store_id", "stores", "CASCADE"},
  {"fk_store_contacts_contact", "store_contacts", "contact_id", "contacts", "CASCADE"},
  {"fk_store_addresses_store", "store_addresses", "store_id", "stores", "CASCADE"},
  {"fk_store_addresses_address", "store_addresses", "address_id", "addresses", "CASCADE"},
  {"fk_agency_contacts_agency", "agency_contacts", "agency_id", "agencies", "CASCADE"},
  {"fk_agency_contacts_contact", "agency_contacts", "contact_id", "contacts", "CASCADE"},
  {"fk_exhibitor_contacts_exhibitor", "exhibitor_contacts", "exhibitor_id", "exhibitors", "CASCADE"},
  {"fk_exhibitor_contacts_contact", "exhibitor_contacts", "contact_id", "contacts", "CASCADE"},
  {"fk_brand_contacts_brand", "brand_contacts", "brand_id", "brands", "CASCADE"},
  {"fk_brand_contacts_contact", "brand_contacts", "contact_id", "contacts", "CASCADE"},
  {"fk_role_permissions_role", "role_permissions", "role_id", "roles", "CASCADE"},
  {"fk_role_permissions_permission", "role_permissions", "permission_id", "permissions", "CASCADE"},
  {"fk_user_roles_user", "user_roles", "user_id", "users", "CASCADE"},
  {"fk_user_roles_role", "user_roles", "role_id", "roles", "CASCADE"},
  {"fk_user_permissions_user", "user_permissions", "user_id", "users", "CASCADE"},
  {"fk_user_permissions_permission", "user_permissions", "permission_id", "permissions", "CASCADE"},
}
