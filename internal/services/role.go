package services

import (
  "context"
  "fmt"

  "gorm.io/gorm"

  "github.com/gondola-org/gondola-backend/internal/audit"
  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/repos"
  "github.com/gondola-org/gondola-backend/internal/types"
  "github.com/gondola-org/gondola-backend/internal/validation"
)

type RoleService = ResourceService[types.Role]

// NewRoleService manages roles and their permission set. The permissions
// key, when sent, replaces the whole set.
func NewRoleService(baseLog *logger.Logger, roleRepo repos.RoleRepo, validator *validation.Validator, writer *audit.Writer) RoleService {
  syncPermissions := func(ctx context.Context, tx *gorm.DB, role *types.Role, data map[string]any) error {
    ids, present := idList(data, "permissions")
    if !present {
      return nil
    }
    if err := roleRepo.SyncPermissionsByIDs(ctx, tx, role, ids); err != nil {
      return fmt.Errorf("sync role permissions: %w", err)
    }
    return nil
  }
  return NewResourceService[types.Role](baseLog, roleRepo, validator, writer, ResourceDef[types.Role]{
    Name:     "RoleService",
    NotFound: "Perfil não encontrado.",
    Rules:    validation.RoleRules,
    Apply: func(data map[string]any, r *types.Role) error {
      applyNamed(data, &r.Name, &r.Description)
      return nil
    },
    List:        ListOptions{Preloads: []string{"Permissions"}},
    Preloads:    []string{"Permissions"},
    AfterCreate: syncPermissions,
    AfterUpdate: syncPermissions,
  })
}
