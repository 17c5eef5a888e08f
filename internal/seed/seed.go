package seed

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/gondola-org/gondola-backend/internal/logger"
	"github.com/gondola-org/gondola-backend/internal/repos"
	"github.com/gondola-org/gondola-backend/internal/seed/action"
	"github.com/gondola-org/gondola-backend/internal/seed/permission"
	"github.com/gondola-org/gondola-backend/internal/types"
	"github.com/gondola-org/gondola-backend/internal/utils"
)

type Repos struct {
	Action     repos.ActionRepo
	Permission repos.PermissionRepo
	Role       repos.RoleRepo
	User       repos.UserRepo
}

type Options struct {
	PermissionSeedJSONPath string

	// The admin user is only bootstrapped when both email and password are set.
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// SeedAll is idempotent and runs on every start.
func SeedAll(ctx context.Context, db *gorm.DB, log *logger.Logger, r Repos, opts Options) error {
	seedLog := log.With("component", "Seed")
	seedLog.Info("Running SeedAll... seeding actions")
	if err := action.SyncActions(ctx, db, seedLog, r.Action); err != nil {
		return fmt.Errorf("failed to sync actions: %w", err)
	}

	seedLog.Info("Seeding permissions now...")
	catalogue, err := permission.LoadCatalogue(opts.PermissionSeedJSONPath)
	if err != nil {
		return err
	}
	if err := permission.SyncPermissions(ctx, db, seedLog, r.Permission, r.Role, catalogue); err != nil {
		return fmt.Errorf("failed to sync permissions: %w", err)
	}

	if opts.AdminEmail != "" && opts.AdminPassword != "" {
		if err := seedAdminUser(ctx, db, seedLog, r, opts); err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
	}
	seedLog.Info("SeedAll Complete!")
	return nil
}

func seedAdminUser(ctx context.Context, db *gorm.DB, log *logger.Logger, r Repos, opts Options) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := r.User.EmailExists(ctx, tx, opts.AdminEmail)
		if err != nil {
			return err
		}
		if exists {
			log.Debug("Admin user already present", "email", opts.AdminEmail)
			return nil
		}
		roles, err := r.Role.GetByNames(ctx, tx, []string{permission.AdminRole})
		if err != nil {
			return err
		}
		if len(roles) == 0 {
			return fmt.Errorf("admin role missing")
		}
		user := &types.User{Name: opts.AdminName, Email: opts.AdminEmail, Password: opts.AdminPassword}
		utils.NormalizeUserFields(ctx, user)
		if err := utils.HashPassword(ctx, log, user); err != nil {
			return err
		}
		if _, err := r.User.Create(ctx, tx, []*types.User{user}); err != nil {
			return err
		}
		if err := r.User.SyncRoles(ctx, tx, user, []uint{roles[0].ID}); err != nil {
			return err
		}
		log.Info("Admin user created", "email", user.Email)
		return nil
	})
}
