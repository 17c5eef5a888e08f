package services

import (
  "context"
  "fmt"

  "gorm.io/gorm"

  "github.com/gondola-org/gondola-backend/internal/apperror"
  "github.com/gondola-org/gondola-backend/internal/audit"
  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/pagination"
  "github.com/gondola-org/gondola-backend/internal/repos"
  "github.com/gondola-org/gondola-backend/internal/types"
  "github.com/gondola-org/gondola-backend/internal/validation"
)

// AssetService manages the placements of one store. Every operation first
// resolves the store, and an asset of another store is reported as missing.
type AssetService interface {
  List(ctx context.Context, storeID uint, req ListRequest) (pagination.Page[*types.Asset], error)
  Get(ctx context.Context, storeID, assetID uint) (*types.Asset, error)
  Create(ctx context.Context, storeID uint, data map[string]any) (*types.Asset, error)
  Update(ctx context.Context, storeID, assetID uint, data map[string]any) (*types.Asset, error)
  Delete(ctx context.Context, storeID, assetID uint) error
}

type assetService struct {
  log       *logger.Logger
  assetRepo repos.AssetRepo
  storeRepo repos.StoreRepo
  validator *validation.Validator
  writer    *audit.Writer
}

var assetOrder = []string{"id", "name", "quantity", "created_at"}

var assetPreloads = []string{"Sector", "AssetType", "Status"}

func NewAssetService(baseLog *logger.Logger, assetRepo repos.AssetRepo, storeRepo repos.StoreRepo, validator *validation.Validator, writer *audit.Writer) AssetService {
  return &assetService{
    log:       baseLog.With("service", "AssetService"),
    assetRepo: assetRepo,
    storeRepo: storeRepo,
    validator: validator,
    writer:    writer,
  }
}

func (as *assetService) requireStore(ctx context.Context, storeID uint) error {
  store, err := as.storeRepo.GetByID(ctx, nil, storeID)
  if err != nil {
    return fmt.Errorf("load store #%d: %w", storeID, err)
  }
  if store == nil {
    return apperror.NewNotFound("Loja não encontrada.")
  }
  return nil
}

func (as *assetService) load(ctx context.Context, storeID, assetID uint) (*types.Asset, error) {
  if err := as.requireStore(ctx, storeID); err != nil {
    return nil, err
  }
  asset, err := as.assetRepo.GetByStoreAndID(ctx, nil, storeID, assetID)
  if err != nil {
    return nil, fmt.Errorf("load asset #%d: %w", assetID, err)
  }
  if asset == nil {
    return nil, apperror.NewNotFound("Ativo não encontrado nesta loja.")
  }
  return asset, nil
}

func (as *assetService) List(ctx context.Context, storeID uint, req ListRequest) (pagination.Page[*types.Asset], error) {
  if err := as.requireStore(ctx, storeID); err != nil {
    return pagination.Page[*types.Asset]{}, err
  }
  items, total, err := as.assetRepo.Paginate(ctx, nil, repos.ListQuery{
    Params:       req.Params,
    Trash:        repos.TrashExcluded,
    Filters:      map[string]any{"fk_store": storeID},
    OrderBy:      req.OrderBy,
    OrderDir:     req.OrderDir,
    AllowedOrder: assetOrder,
    Preloads:     assetPreloads,
  })
  if err != nil {
    as.log.Error("Failed to list assets", "storeID", storeID, "error", err)
    return pagination.Page[*types.Asset]{}, fmt.Errorf("list assets: %w", err)
  }
  return pagination.New(items, total, req.Params), nil
}

func (as *assetService) Get(ctx context.Context, storeID, assetID uint) (*types.Asset, error) {
  return as.load(ctx, storeID, assetID)
}

func (as *assetService) Create(ctx context.Context, storeID uint, data map[string]any) (*types.Asset, error) {
  as.log.Info("Starting Create Asset now...", "storeID", storeID)
  //1) Store, then payload
  if err := as.requireStore(ctx, storeID); err != nil {
    return nil, err
  }
  if err := as.validator.Validate(ctx, validation.AssetRules(nil), data); err != nil {
    return nil, err
  }

  //2) Build + audited write
  asset := &types.Asset{FKStore: storeID}
  applyAsset(data, asset)
  err := as.writer.Write(ctx, audit.ActionCreate, func(tx *gorm.DB) (audit.Target, error) {
    if _, cErr := as.assetRepo.Create(ctx, tx, []*types.Asset{asset}); cErr != nil {
      return audit.Target{}, fmt.Errorf("create asset: %w", cErr)
    }
    return audit.Target{Table: asset.TableName(), RecordID: asset.ID, Snapshot: asset}, nil
  })
  if err != nil {
    return nil, err
  }
  return as.load(ctx, storeID, asset.ID)
}

func (as *assetService) Update(ctx context.Context, storeID, assetID uint, data map[string]any) (*types.Asset, error) {
  as.log.Info("Starting Update Asset now...", "storeID", storeID, "assetID", assetID)
  asset, err := as.load(ctx, storeID, assetID)
  if err != nil {
    return nil, err
  }
  if err := as.validator.Validate(ctx, validation.AssetRules(&assetID), data); err != nil {
    return nil, err
  }
  applyAsset(data, asset)
  // Drop the loaded relations so the new foreign keys are what gets saved.
  asset.Sector, asset.AssetType, asset.Status = nil, nil, nil
  err = as.writer.Write(ctx, audit.ActionUpdate, func(tx *gorm.DB) (audit.Target, error) {
    if _, uErr := as.assetRepo.Update(ctx, tx, []*types.Asset{asset}); uErr != nil {
      return audit.Target{}, fmt.Errorf("update asset: %w", uErr)
    }
    return audit.Target{Table: asset.TableName(), RecordID: asset.ID, Snapshot: asset}, nil
  })
  if err != nil {
    return nil, err
  }
  return as.load(ctx, storeID, assetID)
}

func (as *assetService) Delete(ctx context.Context, storeID, assetID uint) error {
  as.log.Info("Starting Delete Asset now...", "storeID", storeID, "assetID", assetID)
  asset, err := as.load(ctx, storeID, assetID)
  if err != nil {
    return err
  }
  return as.writer.Write(ctx, audit.ActionDelete, func(tx *gorm.DB) (audit.Target, error) {
    if dErr := as.assetRepo.SoftDeleteByIDs(ctx, tx, []uint{assetID}); dErr != nil {
      return audit.Target{}, fmt.Errorf("delete asset: %w", dErr)
    }
    return audit.Target{Table: asset.TableName(), RecordID: asset.ID, Snapshot: asset}, nil
  })
}

func applyAsset(data map[string]any, a *types.Asset) {
  setString(data, "name", &a.Name)
  setUint(data, "fk_sector", &a.FKSector)
  setUint(data, "fk_asset_type", &a.FKAssetType)
  setUint(data, "fk_status", &a.FKStatus)
  setOptionalString(data, "observation", &a.Observation)
  setInt(data, "quantity", &a.Quantity)
}
