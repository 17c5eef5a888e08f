package server

import (
  "gorm.io/gorm"

  "github.com/gondola-org/gondola-backend/internal/audit"
  "github.com/gondola-org/gondola-backend/internal/config"
  "github.com/gondola-org/gondola-backend/internal/handlers"
  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/middleware"
  "github.com/gondola-org/gondola-backend/internal/repos"
  "github.com/gondola-org/gondola-backend/internal/services"
  "github.com/gondola-org/gondola-backend/internal/types"
  "github.com/gondola-org/gondola-backend/internal/validation"
)

// Repos bundles every repository the API needs. Main hands the same set to
// the seeder.
type Repos struct {
  Company    repos.CompanyRepo
  Store      repos.StoreRepo
  Asset      repos.AssetRepo
  Contact    repos.ContactRepo
  Address    repos.AddressRepo
  Associator repos.ContactAssociator
  Sector     repos.SectorRepo
  Status     repos.StatusRepo
  AssetType  repos.AssetTypeRepo
  Agency     repos.AgencyRepo
  Exhibitor  repos.ExhibitorRepo
  Brand      repos.BrandRepo
  Action     repos.ActionRepo
  Permission repos.PermissionRepo
  Role       repos.RoleRepo
  User       repos.UserRepo
  UserToken  repos.UserTokenRepo
  SystemLog  repos.SystemLogRepo
}

func NewRepos(db *gorm.DB, log *logger.Logger) Repos {
  log.Info("Setting Up Repositories now...")
  r := Repos{
    Company:    repos.NewCompanyRepo(db, log),
    Store:      repos.NewStoreRepo(db, log),
    Asset:      repos.NewAssetRepo(db, log),
    Contact:    repos.NewContactRepo(db, log),
    Address:    repos.NewAddressRepo(db, log),
    Associator: repos.NewContactAssociator(db, log),
    Sector:     repos.NewSectorRepo(db, log),
    Status:     repos.NewStatusRepo(db, log),
    AssetType:  repos.NewAssetTypeRepo(db, log),
    Agency:     repos.NewAgencyRepo(db, log),
    Exhibitor:  repos.NewExhibitorRepo(db, log),
    Brand:      repos.NewBrandRepo(db, log),
    Action:     repos.NewActionRepo(db, log),
    Permission: repos.NewPermissionRepo(db, log),
    Role:       repos.NewRoleRepo(db, log),
    User:       repos.NewUserRepo(db, log),
    UserToken:  repos.NewUserTokenRepo(db, log),
    SystemLog:  repos.NewSystemLogRepo(db, log),
  }
  log.Info("Repositories Set Up Successful :)")
  return r
}

// Wire builds services, handlers and middleware on top of r. publisher may be
// nil.
func Wire(db *gorm.DB, log *logger.Logger, cfg *config.Config, r Repos, publisher audit.Publisher) RouterConfig {
  //1) Validation + audit
  validator := validation.New(db, log)
  recorder := audit.NewRecorder(audit.NewRepoResolver(r.Action), r.SystemLog, log)
  writer := audit.NewWriter(db, recorder, publisher, log)

  //2) Services
  log.Info("Setting up Services now...")
  authService := services.NewAuthService(db, log, r.User, r.UserToken, validator, writer, cfg.JWTSecretKey, cfg.AccessTokenTTL)
  companyService := services.NewCompanyService(log, r.Company, r.Contact, r.Associator, validator, writer)
  storeService := services.NewStoreService(log, r.Store, r.Contact, r.Address, r.Associator, validator, writer)
  assetService := services.NewAssetService(log, r.Asset, r.Store, validator, writer)
  agencyService := services.NewAgencyService(log, r.Agency, r.Contact, r.Associator, validator, writer)
  exhibitorService := services.NewExhibitorService(log, r.Exhibitor, r.Contact, r.Associator, validator, writer)
  brandService := services.NewBrandService(log, r.Brand, r.Contact, r.Associator, validator, writer)
  contactService := services.NewContactService(log, r.Contact, validator, writer)
  addressService := services.NewAddressService(log, r.Address, validator, writer)
  sectorService := services.NewSectorService(log, r.Sector, validator, writer)
  statusService := services.NewStatusService(log, r.Status, validator, writer)
  assetTypeService := services.NewAssetTypeService(log, r.AssetType, validator, writer)
  actionService := services.NewActionService(log, r.Action, validator, writer)
  permissionService := services.NewPermissionService(log, r.Permission, validator, writer)
  roleService := services.NewRoleService(log, r.Role, validator, writer)
  userService := services.NewUserService(log, r.User, r.UserToken, validator, writer)
  systemLogService := services.NewSystemLogService(log, r.SystemLog)
  log.Info("Services Set Up Successful :)")

  //3) Handlers + middleware
  pinned := handlers.HandlerOptions{HonorPerPage: false}
  named := handlers.HandlerOptions{HonorPerPage: true, Filters: []string{"name"}}
  return RouterConfig{
    Log:               log,
    CORSOrigins:       cfg.CORSOrigins,
    AuthMiddleware:    middleware.NewAuthMiddleware(log, authService),
    AuthHandler:       handlers.NewAuthHandler(authService),
    CompanyHandler:    handlers.NewCompanyHandler(companyService),
    StoreHandler:      handlers.NewStoreHandler(storeService),
    AssetHandler:      handlers.NewAssetHandler(assetService),
    AgencyHandler:     handlers.NewContactOwnerHandler[types.Agency](agencyService, handlers.DefaultHandlerOptions),
    ExhibitorHandler:  handlers.NewContactOwnerHandler[types.Exhibitor](exhibitorService, named),
    BrandHandler:      handlers.NewContactOwnerHandler[types.Brand](brandService, named),
    ContactHandler:    handlers.NewResourceHandler[types.Contact](contactService, handlers.DefaultHandlerOptions),
    AddressHandler:    handlers.NewResourceHandler[types.Address](addressService, handlers.DefaultHandlerOptions),
    SectorHandler:     handlers.NewResourceHandler[types.Sector](sectorService, pinned),
    AssetTypeHandler:  handlers.NewResourceHandler[types.AssetType](assetTypeService, handlers.DefaultHandlerOptions),
    StatusHandler:     handlers.NewResourceHandler[types.Status](statusService, pinned),
    ActionHandler:     handlers.NewResourceHandler[types.Action](actionService, handlers.DefaultHandlerOptions),
    RoleHandler:       handlers.NewResourceHandler[types.Role](roleService, handlers.DefaultHandlerOptions),
    PermissionHandler: handlers.NewResourceHandler[types.Permission](permissionService, handlers.DefaultHandlerOptions),
    UserHandler:       handlers.NewUserHandler(userService),
    SystemLogHandler:  handlers.NewSystemLogHandler(systemLogService),
  }
}
