package utils

import (
  "context"
  "fmt"

  "golang.org/x/crypto/bcrypt"

  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/normalization"
  "github.com/gondola-org/gondola-backend/internal/types"
)

func HashPassword(ctx context.Context, log *logger.Logger, user *types.User) error {
  hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
  if err != nil {
    log.Warn("Failure to hash password for user. Returning error", "email", user.Email)
    return fmt.Errorf("failed to hash password for user: %w", err)
  }
  user.Password = string(hashedPassword)
  return nil
}

func CheckPassword(hash, password string) bool {
  return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NormalizeUserFields trims name and email. The password is left untouched.
func NormalizeUserFields(ctx context.Context, user *types.User) {
  user.Name = normalization.ParseInputString(user.Name)
  user.Email = normalization.ParseInputString(user.Email)
}
