package services

import (
  "github.com/gondola-org/gondola-backend/internal/audit"
  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/normalization"
  "github.com/gondola-org/gondola-backend/internal/repos"
  "github.com/gondola-org/gondola-backend/internal/types"
  "github.com/gondola-org/gondola-backend/internal/validation"
)

type SectorService = ResourceService[types.Sector]
type StatusService = ResourceService[types.Status]
type AssetTypeService = ResourceService[types.AssetType]
type ActionService = ResourceService[types.Action]
type PermissionService = ResourceService[types.Permission]
type ContactService = ResourceService[types.Contact]
type AddressService = ResourceService[types.Address]

func applyNamed(data map[string]any, name *string, description **string) {
  setString(data, "name", name)
  setOptionalString(data, "description", description)
}

func NewSectorService(baseLog *logger.Logger, repo repos.SectorRepo, validator *validation.Validator, writer *audit.Writer) SectorService {
  return NewResourceService(baseLog, repo, validator, writer, ResourceDef[types.Sector]{
    Name:     "SectorService",
    NotFound: "Setor não encontrado.",
    Rules:    validation.SectorRules,
    Apply: func(data map[string]any, s *types.Sector) error {
      applyNamed(data, &s.Name, &s.Description)
      return nil
    },
  })
}

func NewStatusService(baseLog *logger.Logger, repo repos.StatusRepo, validator *validation.Validator, writer *audit.Writer) StatusService {
  return NewResourceService(baseLog, repo, validator, writer, ResourceDef[types.Status]{
    Name:     "StatusService",
    NotFound: "Status não encontrado.",
    Rules:    validation.StatusRules,
    Apply: func(data map[string]any, s *types.Status) error {
      applyNamed(data, &s.Name, &s.Description)
      return nil
    },
  })
}

func NewAssetTypeService(baseLog *logger.Logger, repo repos.AssetTypeRepo, validator *validation.Validator, writer *audit.Writer) AssetTypeService {
  return NewResourceService(baseLog, repo, validator, writer, ResourceDef[types.AssetType]{
    Name:     "AssetTypeService",
    NotFound: "Tipo de ativo não encontrado.",
    Rules:    validation.AssetTypeRules,
    Apply: func(data map[string]any, a *types.AssetType) error {
      applyNamed(data, &a.Name, &a.Description)
      return nil
    },
  })
}

func NewActionService(baseLog *logger.Logger, repo repos.ActionRepo, validator *validation.Validator, writer *audit.Writer) ActionService {
  return NewResourceService[types.Action](baseLog, repo, validator, writer, ResourceDef[types.Action]{
    Name:     "ActionService",
    NotFound: "Tipo de ação não encontrado.",
    Rules:    validation.ActionRules,
    Apply: func(data map[string]any, a *types.Action) error {
      applyNamed(data, &a.Name, &a.Description)
      return nil
    },
  })
}

func NewPermissionService(baseLog *logger.Logger, repo repos.PermissionRepo, validator *validation.Validator, writer *audit.Writer) PermissionService {
  return NewResourceService[types.Permission](baseLog, repo, validator, writer, ResourceDef[types.Permission]{
    Name:     "PermissionService",
    NotFound: "Permissão não encontrada.",
    Rules:    validation.PermissionRules,
    Apply: func(data map[string]any, p *types.Permission) error {
      applyNamed(data, &p.Name, &p.Description)
      return nil
    },
  })
}

func NewContactService(baseLog *logger.Logger, repo repos.ContactRepo, validator *validation.Validator, writer *audit.Writer) ContactService {
  return NewResourceService(baseLog, repo, validator, writer, ResourceDef[types.Contact]{
    Name:     "ContactService",
    NotFound: "Contato não encontrado.",
    Rules:    validation.ContactRules,
    Apply: func(data map[string]any, c *types.Contact) error {
      setString(data, "name", &c.Name)
      setString(data, "email", &c.Email)
      setString(data, "phone", &c.Phone)
      setOptionalString(data, "observation", &c.Observation)
      return nil
    },
  })
}

func NewAddressService(baseLog *logger.Logger, repo repos.AddressRepo, validator *validation.Validator, writer *audit.Writer) AddressService {
  return NewResourceService(baseLog, repo, validator, writer, ResourceDef[types.Address]{
    Name:      "AddressService",
    NotFound:  "Endereço não encontrado.",
    Rules:     validation.AddressRules,
    Normalize: func(data map[string]any) { normalizeDigits(data, "zip_code") },
    Apply: func(data map[string]any, a *types.Address) error {
      applyAddress(data, a)
      return nil
    },
  })
}

func applyAddress(data map[string]any, a *types.Address) {
  setString(data, "street", &a.Street)
  setString(data, "number", &a.Number)
  setOptionalString(data, "complement", &a.Complement)
  setString(data, "neighborhood", &a.Neighborhood)
  setString(data, "city", &a.City)
  setString(data, "state", &a.State)
  if zip, ok := data["zip_code"].(string); ok {
    a.ZipCode = normalization.DigitsOnly(zip)
  }
}
