package repos

import (
    "context"

    "gorm.io/gorm"

    "github.com/gondola-org/gondola-backend/internal/logger"
    "github.com/gondola-org/gondola-backend/internal/types"
)

type StoreRepo interface {
    BaseRepo[types.Store]

    // ADDRESSES
    AssociateAddresses(ctx context.Context, tx *gorm.DB, store *types.Store, addresses []*types.Address) error
    ReplaceAddresses(ctx context.Context, tx *gorm.DB, store *types.Store, addresses []*types.Address) error
}

type storeRepo struct {
    *baseRepo[types.Store]
}

func NewStoreRepo(db *gorm.DB, baseLog *logger.Logger) StoreRepo {
    return &storeRepo{baseRepo: newBaseRepo[types.Store](db, baseLog, "StoreRepo", DefaultCascadePolicy)}
}

func (sr *storeRepo) AssociateAddresses(ctx context.Context, tx *gorm.DB, store *types.Store, addresses []*types.Address) error {
    sr.log.Debug("Associating addresses", "storeID", store.ID, "count", len(addresses))
    return appendAssociation(ctx, sr.conn(tx), store, "Addresses", addresses)
}

func (sr *storeRepo) ReplaceAddresses(ctx context.Context, tx *gorm.DB, store *types.Store, addresses []*types.Address) error {
    sr.log.Debug("Replacing address set", "storeID", store.ID, "count", len(addresses))
    return replaceAssociation(ctx, sr.conn(tx), store, "Addresses", addresses)
}
