package services

import (
  "context"
  "fmt"

  "gorm.io/gorm"

  "github.com/gondola-org/gondola-backend/internal/audit"
  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/repos"
  "github.com/gondola-org/gondola-backend/internal/types"
  "github.com/gondola-org/gondola-backend/internal/utils"
  "github.com/gondola-org/gondola-backend/internal/validation"
)

type UserService interface {
  ResourceService[types.User]
  // Assign replaces the user's roles and/or direct permissions.
  Assign(ctx context.Context, id uint, data map[string]any) (*types.User, error)
}

type userService struct {
  *resourceService[types.User]
  userRepo repos.UserRepo
}

func NewUserService(
  baseLog       *logger.Logger,
  userRepo      repos.UserRepo,
  userTokenRepo repos.UserTokenRepo,
  validator     *validation.Validator,
  writer        *audit.Writer,
) UserService {
  serviceLog := baseLog.With("service", "UserService")
  def := ResourceDef[types.User]{
    Name:     "UserService",
    NotFound: "Usuário não encontrado.",
    Rules:    validation.UserRules,
    Apply: func(data map[string]any, u *types.User) error {
      setString(data, "name", &u.Name)
      setString(data, "email", &u.Email)
      if pw, ok := data["password"].(string); ok {
        u.Password = pw
        return utils.HashPassword(context.Background(), serviceLog, u)
      }
      return nil
    },
    // Roles and permissions change only through Assign.
    Preloads: []string{"Roles", "Permissions"},
    // A removed user loses every session immediately.
    BeforeDelete: func(ctx context.Context, tx *gorm.DB, u *types.User, _ map[string]any) error {
      if err := userTokenRepo.FullDeleteByUserIDs(ctx, tx, []uint{u.ID}); err != nil {
        return fmt.Errorf("revoke user tokens: %w", err)
      }
      return nil
    },
  }
  return &userService{
    resourceService: newResourceService[types.User](baseLog, userRepo, validator, writer, def),
    userRepo:        userRepo,
  }
}

func (us *userService) Assign(ctx context.Context, id uint, data map[string]any) (*types.User, error) {
  us.log.Info("Starting Assign now...", "id", id)
  //1) User, then payload
  user, err := us.load(ctx, nil, id)
  if err != nil {
    return nil, err
  }
  if err := us.validator.Validate(ctx, validation.AssignRules(), data); err != nil {
    return nil, err
  }

  //2) Sync whichever sets were sent
  err = us.writer.Write(ctx, audit.ActionUpdate, func(tx *gorm.DB) (audit.Target, error) {
    if roleIDs, ok := idList(data, "roles"); ok {
      if sErr := us.userRepo.SyncRoles(ctx, tx, user, roleIDs); sErr != nil {
        return audit.Target{}, fmt.Errorf("sync user roles: %w", sErr)
      }
    }
    if permIDs, ok := idList(data, "permissions"); ok {
      if sErr := us.userRepo.SyncPermissions(ctx, tx, user, permIDs); sErr != nil {
        return audit.Target{}, fmt.Errorf("sync user permissions: %w", sErr)
      }
    }
    target := us.target(user)
    target.Description = fmt.Sprintf("Acessos atribuídos: users #%d", id)
    target.Snapshot = data
    return target, nil
  })
  if err != nil {
    return nil, err
  }
  return us.userRepo.GetWithAccess(ctx, nil, id)
}
