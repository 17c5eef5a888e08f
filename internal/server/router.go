package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "github.com/prometheus/client_golang/prometheus/promhttp"

  "github.com/gondola-org/gondola-backend/internal/handlers"
  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/middleware"
  "github.com/gondola-org/gondola-backend/internal/types"
)

// ManageAccessPermission guards role, permission and user access management.
const ManageAccessPermission = "gerenciar-acessos"

type RouterConfig struct {
  Log            *logger.Logger
  CORSOrigins    []string
  AuthMiddleware *middleware.AuthMiddleware

  AuthHandler       *handlers.AuthHandler
  CompanyHandler    *handlers.CompanyHandler
  StoreHandler      *handlers.StoreHandler
  AssetHandler      *handlers.AssetHandler
  AgencyHandler     *handlers.ContactOwnerHandler[types.Agency]
  ExhibitorHandler  *handlers.ContactOwnerHandler[types.Exhibitor]
  BrandHandler      *handlers.ContactOwnerHandler[types.Brand]
  ContactHandler    *handlers.ResourceHandler[types.Contact]
  AddressHandler    *handlers.ResourceHandler[types.Address]
  SectorHandler     *handlers.ResourceHandler[types.Sector]
  AssetTypeHandler  *handlers.ResourceHandler[types.AssetType]
  StatusHandler     *handlers.ResourceHandler[types.Status]
  ActionHandler     *handlers.ResourceHandler[types.Action]
  RoleHandler       *handlers.ResourceHandler[types.Role]
  PermissionHandler *handlers.ResourceHandler[types.Permission]
  UserHandler       *handlers.UserHandler
  SystemLogHandler  *handlers.SystemLogHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.New()
  router.Use(gin.Recovery())

  //-----------------------------------------
  // Cors Setup
  //-----------------------------------------
  corsConfig := cors.Config{
    AllowOrigins:     cfg.CORSOrigins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }
  // cors.New panics on an empty origin list.
  if len(cfg.CORSOrigins) == 0 {
    corsConfig.AllowOrigins = nil
    corsConfig.AllowAllOrigins = true
    corsConfig.AllowCredentials = false
  }
  router.Use(cors.New(corsConfig))

  //-----------------------------------------
  // Request Context, Logging, Metrics
  //-----------------------------------------
  router.Use(middleware.AttachRequestContext())
  router.Use(middleware.Metrics())
  if cfg.Log != nil {
    router.Use(middleware.RequestLogger(cfg.Log))
  }

  //-----------------------------------------
  // Health + Metrics Routes
  //-----------------------------------------
  router.GET("/healthz", handlers.Healthz)
  router.GET("/metrics", gin.WrapH(promhttp.Handler()))

  //-----------------------------------------
  // Public Routes
  //-----------------------------------------
  api := router.Group("/api")
  {
    api.POST("/register", cfg.AuthHandler.Register)
    api.POST("/login", cfg.AuthHandler.Login)
  }

  //------------------------------------------
  // Protected Routes
  //------------------------------------------
  protected := api.Group("")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)
  protected.GET("/me", cfg.AuthHandler.Me)

  //Companies, stores and their assets
  cfg.CompanyHandler.Register(protected.Group("/companies"))
  stores := protected.Group("/stores")
  cfg.StoreHandler.Register(stores)
  cfg.AssetHandler.Register(stores)

  //Partners
  cfg.AgencyHandler.Register(protected.Group("/agencies"))
  cfg.ExhibitorHandler.Register(protected.Group("/exhibitors"))
  cfg.BrandHandler.Register(protected.Group("/brands"))

  //Catalogues
  cfg.ContactHandler.Register(protected.Group("/contacts"))
  cfg.AddressHandler.Register(protected.Group("/addresses"))
  cfg.SectorHandler.Register(protected.Group("/sectors"))
  cfg.AssetTypeHandler.Register(protected.Group("/asset-types"))
  cfg.StatusHandler.Register(protected.Group("/status"))
  cfg.ActionHandler.Register(protected.Group("/action"))

  //Access management
  manageAccess := cfg.AuthMiddleware.RequirePermission(ManageAccessPermission)
  cfg.RoleHandler.Register(protected.Group("/roles", manageAccess))
  cfg.PermissionHandler.Register(protected.Group("/permissions", manageAccess))
  users := protected.Group("/users", manageAccess)
  cfg.UserHandler.Register(users)
  users.PUT("/:id/assign", cfg.UserHandler.Assign)

  //Audit trail
  logs := protected.Group("/system-logs")
  logs.GET("", cfg.SystemLogHandler.Index)
  logs.GET("/:id", cfg.SystemLogHandler.Show)

  return router
}
