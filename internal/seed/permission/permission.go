package permission

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/gondola-org/gondola-backend/internal/logger"
	"github.com/gondola-org/gondola-backend/internal/repos"
	"github.com/gondola-org/gondola-backend/internal/types"
)

//go:embed permissions.json
var defaultPermissionsJSON []byte

// AdminRole holds every permission in the catalogue.
const AdminRole = "admin"

type seedPermission struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// LoadCatalogue reads the permission catalogue from path, or the built-in
// list when path is empty.
func LoadCatalogue(path string) ([]*types.Permission, error) {
	data := defaultPermissionsJSON
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed reading permission seed file: %w", err)
		}
		data = fileData
	}
	var seeds []seedPermission
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("failed unmarshaling permissions: %w", err)
	}
	perms := make([]*types.Permission, 0, len(seeds))
	for _, s := range seeds {
		if s.Name == "" {
			return nil, fmt.Errorf("permission seed entry without a name")
		}
		perms = append(perms, &types.Permission{Name: s.Name, Description: s.Description})
	}
	return perms, nil
}

// SyncPermissions creates missing catalogue permissions, refreshes changed
// descriptions and makes sure the admin role holds all of them. Permissions
// created through the API are left alone.
func SyncPermissions(
	ctx            context.Context,
	db             *gorm.DB,
	log            *logger.Logger,
	permissionRepo repos.PermissionRepo,
	roleRepo       repos.RoleRepo,
	catalogue      []*types.Permission,
) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//1) Diff against what is stored
		existing, err := permissionRepo.GetAll(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed fetching existing permissions: %w", err)
		}
		existingMap := make(map[string]*types.Permission)
		for _, ep := range existing {
			existingMap[ep.Name] = ep
		}
		var toCreate []*types.Permission
		var toUpdate []*types.Permission
		for _, fp := range catalogue {
			ep, ok := existingMap[fp.Name]
			if !ok {
				toCreate = append(toCreate, fp)
				continue
			}
			if !sameDescription(ep.Description, fp.Description) {
				ep.Description = fp.Description
				toUpdate = append(toUpdate, ep)
			}
		}

		//2) Write the difference
		if len(toCreate) > 0 {
			if _, err := permissionRepo.Create(ctx, tx, toCreate); err != nil {
				return fmt.Errorf("failed creating new permissions: %w", err)
			}
		}
		if len(toUpdate) > 0 {
			if _, err := permissionRepo.Update(ctx, tx, toUpdate); err != nil {
				return fmt.Errorf("failed updating changed permissions: %w", err)
			}
		}
		log.Info("Permissions synced", "created", len(toCreate), "updated", len(toUpdate))

		//3) Admin role gets everything
		admin, err := ensureAdminRole(ctx, tx, roleRepo)
		if err != nil {
			return err
		}
		all, err := permissionRepo.GetAll(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed re-fetching permissions: %w", err)
		}
		held := make(map[uint]bool)
		for _, p := range admin.Permissions {
			held[p.ID] = true
		}
		var missing []*types.Permission
		for _, p := range all {
			if !held[p.ID] {
				missing = append(missing, p)
			}
		}
		if err := roleRepo.AssociatePermissions(ctx, tx, []*types.Role{admin}, missing); err != nil {
			return fmt.Errorf("failed associating permissions with admin role: %w", err)
		}
		return nil
	})
}

func ensureAdminRole(ctx context.Context, tx *gorm.DB, roleRepo repos.RoleRepo) (*types.Role, error) {
	roles, err := roleRepo.GetByNames(ctx, tx, []string{AdminRole})
	if err != nil {
		return nil, fmt.Errorf("failed fetching admin role: %w", err)
	}
	if len(roles) > 0 {
		return roles[0], nil
	}
	description := "Acesso total"
	created, err := roleRepo.Create(ctx, tx, []*types.Role{{Name: AdminRole, Description: &description}})
	if err != nil {
		return nil, fmt.Errorf("failed creating admin role: %w", err)
	}
	return created[0], nil
}

func sameDescription(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
