package services

import (
  "context"
  "fmt"

  "gorm.io/gorm"

  "github.com/gondola-org/gondola-backend/internal/apperror"
  "github.com/gondola-org/gondola-backend/internal/audit"
  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/repos"
  "github.com/gondola-org/gondola-backend/internal/types"
  "github.com/gondola-org/gondola-backend/internal/validation"
)

type StoreService interface {
  ContactOwnerService[types.Store]
  AttachAddresses(ctx context.Context, id uint, data map[string]any) (*types.Store, error)
}

type storeService struct {
  *contactOwnerService[types.Store]
  storeRepo   repos.StoreRepo
  addressRepo repos.AddressRepo
}

func NewStoreService(
  baseLog     *logger.Logger,
  storeRepo   repos.StoreRepo,
  contactRepo repos.ContactRepo,
  addressRepo repos.AddressRepo,
  associator  repos.ContactAssociator,
  validator   *validation.Validator,
  writer      *audit.Writer,
) StoreService {
  ss := &storeService{storeRepo: storeRepo, addressRepo: addressRepo}
  def := ResourceDef[types.Store]{
    Name:     "StoreService",
    NotFound: "Loja não encontrada.",
    Rules:    validation.StoreRules,
    Normalize: func(data map[string]any) {
      normalizeDigits(data, "cnpj")
      normalizeNestedDigits(data, "addresses", "zip_code")
    },
    Apply: func(data map[string]any, s *types.Store) error {
      setString(data, "name", &s.Name)
      setUint(data, "fk_companie", &s.FKCompanie)
      setString(data, "cnpj", &s.Cnpj)
      return nil
    },
    List:        ListOptions{TrashAware: true, Filterable: []string{"fk_companie"}, Preloads: []string{"Company"}},
    Preloads:    []string{"Company", "Contacts", "Addresses"},
    AfterCreate: func(ctx context.Context, tx *gorm.DB, s *types.Store, data map[string]any) error {
      return ss.addAddresses(ctx, tx, s, data)
    },
    AfterUpdate: func(ctx context.Context, tx *gorm.DB, s *types.Store, data map[string]any) error {
      return ss.replaceAddresses(ctx, tx, s, data)
    },
  }
  ss.contactOwnerService = newContactOwnerService[types.Store](baseLog, storeRepo, contactRepo, associator, validator, writer, def)
  return ss
}

func (ss *storeService) AttachAddresses(ctx context.Context, id uint, data map[string]any) (*types.Store, error) {
  ss.log.Info("Starting AttachAddresses now...", "id", id)
  store, err := ss.load(ctx, nil, id)
  if err != nil {
    return nil, err
  }
  normalizeNestedDigits(data, "addresses", "zip_code")
  if err := ss.validator.Validate(ctx, validation.AddressAttachRules(), data); err != nil {
    return nil, err
  }
  err = ss.writer.Write(ctx, audit.ActionCreate, func(tx *gorm.DB) (audit.Target, error) {
    if aErr := ss.addAddresses(ctx, tx, store, data); aErr != nil {
      return audit.Target{}, aErr
    }
    target := ss.target(store)
    target.Description = fmt.Sprintf("Endereços adicionados: %s #%d", ss.table, id)
    target.Snapshot = data["addresses"]
    return target, nil
  })
  if err != nil {
    return nil, err
  }
  return ss.Get(ctx, id)
}

func (ss *storeService) addAddresses(ctx context.Context, tx *gorm.DB, store *types.Store, data map[string]any) error {
  if !validation.Provided(data, "addresses") {
    return nil
  }
  payloads, err := addressPayloads(data)
  if err != nil {
    return err
  }
  addresses := make([]*types.Address, 0, len(payloads))
  for _, p := range payloads {
    addresses = append(addresses, p.address())
  }
  if _, err := ss.addressRepo.Create(ctx, tx, addresses); err != nil {
    return fmt.Errorf("create addresses: %w", err)
  }
  return ss.storeRepo.AssociateAddresses(ctx, tx, store, addresses)
}

func (ss *storeService) replaceAddresses(ctx context.Context, tx *gorm.DB, store *types.Store, data map[string]any) error {
  if !validation.Provided(data, "addresses") {
    return nil
  }
  payloads, err := addressPayloads(data)
  if err != nil {
    return err
  }
  processed := make([]*types.Address, 0, len(payloads))
  var fresh []*types.Address
  for _, p := range payloads {
    if p.ID == nil {
      a := p.address()
      fresh = append(fresh, a)
      processed = append(processed, a)
      continue
    }
    existing, gErr := ss.addressRepo.GetByID(ctx, tx, *p.ID)
    if gErr != nil {
      return fmt.Errorf("load address #%d: %w", *p.ID, gErr)
    }
    if existing == nil {
      return apperror.NewNotFound("Endereço não encontrado.")
    }
    p.applyTo(existing)
    if _, uErr := ss.addressRepo.Update(ctx, tx, []*types.Address{existing}); uErr != nil {
      return fmt.Errorf("update address #%d: %w", existing.ID, uErr)
    }
    processed = append(processed, existing)
  }
  if _, cErr := ss.addressRepo.Create(ctx, tx, fresh); cErr != nil {
    return fmt.Errorf("create addresses: %w", cErr)
  }
  return ss.storeRepo.ReplaceAddresses(ctx, tx, store, processed)
}

func (p addressPayload) address() *types.Address {
  a := &types.Address{}
  p.applyTo(a)
  return a
}

func (p addressPayload) applyTo(a *types.Address) {
  data := map[string]any{
    "street":       p.Street,
    "number":       p.Number,
    "neighborhood": p.Neighborhood,
    "city":         p.City,
    "state":        p.State,
    "zip_code":     p.ZipCode,
    "complement":   nil,
  }
  if p.Complement != nil {
    data["complement"] = *p.Complement
  }
  applyAddress(data, a)
}
