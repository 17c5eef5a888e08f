package services

import (
  "context"

  "github.com/gondola-org/gondola-backend/internal/audit"
  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/repos"
  "github.com/gondola-org/gondola-backend/internal/types"
  "github.com/gondola-org/gondola-backend/internal/validation"
)

type CompanyService interface {
  ContactOwnerService[types.Company]
  // ForceDelete removes the company, its stores and their assets for good.
  ForceDelete(ctx context.Context, id uint) error
}

type companyService struct {
  *contactOwnerService[types.Company]
}

func NewCompanyService(
  baseLog     *logger.Logger,
  companyRepo repos.CompanyRepo,
  contactRepo repos.ContactRepo,
  associator  repos.ContactAssociator,
  validator   *validation.Validator,
  writer      *audit.Writer,
) CompanyService {
  def := ResourceDef[types.Company]{
    Name:     "CompanyService",
    NotFound: "Rede não encontrada.",
    Rules:    validation.CompanyRules,
    Apply: func(data map[string]any, c *types.Company) error {
      setString(data, "name", &c.Name)
      return nil
    },
    List:     ListOptions{TrashAware: true},
    Preloads: []string{"Contacts", "Stores"},
  }
  return &companyService{
    contactOwnerService: newContactOwnerService(baseLog, companyRepo, contactRepo, associator, validator, writer, def),
  }
}

func (cs *companyService) ForceDelete(ctx context.Context, id uint) error {
  return cs.forceDelete(ctx, id)
}
