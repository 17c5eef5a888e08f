package audit

import (
  "context"
  "fmt"

  "gorm.io/gorm"

  "github.com/gondola-org/gondola-backend/internal/repos"
)

// Resolver maps an Action to its actions.id inside the running transaction.
// A nil id with a nil error means the verb is not seeded; the write goes on
// with an empty reference. An error aborts the transaction.
type Resolver interface {
  Resolve(ctx context.Context, tx *gorm.DB, action Action) (*uint, error)
}

type ResolverFunc func(ctx context.Context, tx *gorm.DB, action Action) (*uint, error)

func (f ResolverFunc) Resolve(ctx context.Context, tx *gorm.DB, action Action) (*uint, error) {
  return f(ctx, tx, action)
}

type repoResolver struct {
  actionRepo repos.ActionRepo
}

// NewRepoResolver looks actions up by verb, ignoring case, so rows stored
// as "criou" or "CRIOU" still resolve.
func NewRepoResolver(actionRepo repos.ActionRepo) Resolver {
  return &repoResolver{actionRepo: actionRepo}
}

func (rr *repoResolver) Resolve(ctx context.Context, tx *gorm.DB, action Action) (*uint, error) {
  verb := action.Verb()
  if verb == "" {
    return nil, nil
  }
  found, err := rr.actionRepo.GetByNameFold(ctx, tx, verb)
  if err != nil {
    return nil, fmt.Errorf("resolve action %q: %w", verb, err)
  }
  if found == nil {
    return nil, nil
  }
  id := found.ID
  return &id, nil
}
