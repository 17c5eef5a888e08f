package services

import (
  "github.com/gondola-org/gondola-backend/internal/audit"
  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/repos"
  "github.com/gondola-org/gondola-backend/internal/types"
  "github.com/gondola-org/gondola-backend/internal/validation"
)

// Agencies, exhibitors and brands are the commercial partners that buy or
// broker placements. They share the contact-owner behaviour.

type AgencyService = ContactOwnerService[types.Agency]
type ExhibitorService = ContactOwnerService[types.Exhibitor]
type BrandService = ContactOwnerService[types.Brand]

var partnerOrder = []string{"id", "name", "created_at", "updated_at"}

func NewAgencyService(baseLog *logger.Logger, agencyRepo repos.AgencyRepo, contactRepo repos.ContactRepo, associator repos.ContactAssociator, validator *validation.Validator, writer *audit.Writer) AgencyService {
  return NewContactOwnerService(baseLog, agencyRepo, contactRepo, associator, validator, writer, ResourceDef[types.Agency]{
    Name:     "AgencyService",
    NotFound: "Agência não encontrada.",
    Rules:    validation.AgencyRules,
    Apply: func(data map[string]any, a *types.Agency) error {
      setString(data, "name", &a.Name)
      setOptionalString(data, "description", &a.Description)
      return nil
    },
    List: ListOptions{TrashAware: true},
  })
}

func NewExhibitorService(baseLog *logger.Logger, exhibitorRepo repos.ExhibitorRepo, contactRepo repos.ContactRepo, associator repos.ContactAssociator, validator *validation.Validator, writer *audit.Writer) ExhibitorService {
  return NewContactOwnerService(baseLog, exhibitorRepo, contactRepo, associator, validator, writer, ResourceDef[types.Exhibitor]{
    Name:     "ExhibitorService",
    NotFound: "Expositor não encontrado.",
    Rules:    validation.ExhibitorRules,
    Apply: func(data map[string]any, e *types.Exhibitor) error {
      setString(data, "name", &e.Name)
      setOptionalString(data, "description", &e.Description)
      return nil
    },
    List: ListOptions{TrashAware: true, AllowedOrder: partnerOrder, Filterable: []string{"name"}},
  })
}

func NewBrandService(baseLog *logger.Logger, brandRepo repos.BrandRepo, contactRepo repos.ContactRepo, associator repos.ContactAssociator, validator *validation.Validator, writer *audit.Writer) BrandService {
  return NewContactOwnerService(baseLog, brandRepo, contactRepo, associator, validator, writer, ResourceDef[types.Brand]{
    Name:     "BrandService",
    NotFound: "Marca não encontrada.",
    Rules:    validation.BrandRules,
    Apply: func(data map[string]any, b *types.Brand) error {
      setString(data, "name", &b.Name)
      setOptionalString(data, "description", &b.Description)
      return nil
    },
    List: ListOptions{TrashAware: true, AllowedOrder: partnerOrder, Filterable: []string{"name"}},
  })
}
