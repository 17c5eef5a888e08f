package action

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/gondola-org/gondola-backend/internal/audit"
	"github.com/gondola-org/gondola-backend/internal/logger"
	"github.com/gondola-org/gondola-backend/internal/repos"
	"github.com/gondola-org/gondola-backend/internal/types"
)

// SyncActions makes sure every audit verb has a row in actions. Existing rows
// are matched case-insensitively and never renamed.
func SyncActions(ctx context.Context, db *gorm.DB, log *logger.Logger, actionRepo repos.ActionRepo) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var toCreate []*types.Action
		for _, a := range audit.AllActions() {
			existing, err := actionRepo.GetByNameFold(ctx, tx, a.Verb())
			if err != nil {
				return fmt.Errorf("failed fetching action %q: %w", a.Verb(), err)
			}
			if existing != nil {
				continue
			}
			description := a.Description()
			toCreate = append(toCreate, &types.Action{Name: a.Verb(), Description: &description})
		}
		if len(toCreate) == 0 {
			return nil
		}
		if _, err := actionRepo.Create(ctx, tx, toCreate); err != nil {
			return fmt.Errorf("failed creating actions: %w", err)
		}
		log.Info("Actions seeded", "created", len(toCreate))
		return nil
	})
}
