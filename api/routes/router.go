// api/routes/router.go
package routes

import (
	"net/http"
	"path/filepath"
	"time"

	_ "kinderadmin/docs"
	"kinderadmin/internal/enrollment"
	"kinderadmin/internal/errorlogs"
	"kinderadmin/internal/marketing"
	"kinderadmin/internal/migrations"
	"kinderadmin/internal/pageguides"
	"kinderadmin/internal/permissions"
	"kinderadmin/internal/personnel"
	"kinderadmin/internal/posters"
	"kinderadmin/internal/shared/apperrors"
	"kinderadmin/internal/shared/config"
	"kinderadmin/internal/shared/database"
	"kinderadmin/internal/shared/middleware"
	"kinderadmin/internal/shared/utils/response"
	"kinderadmin/pkg/cache"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	res       *response.Responder
	guards    middleware.Guards
	cache     cache.Service
	errorLogs errorlogs.Service
}

// NewRouter creates a new router instance. errorLogs is shared with the
// server-side error sink so both write through the same pipeline.
func NewRouter(cfg *config.Config, db *database.DB, res *response.Responder, errorLogs errorlogs.Service) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		res:       res,
		guards:    middleware.NewGuards(cfg, res),
		cache:     cache.NewService(db.Redis),
		errorLogs: errorLogs,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	engine.Static("/uploads", r.config.Upload.Path)

	engine.NoRoute(func(c *gin.Context) {
		r.res.HandleError(c, errNoRoute)
	})

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupPermissionRoutes(api)
		r.setupEnrollmentRoutes(api)
		r.setupMarketingRoutes(api)
		r.setupPersonnelRoutes(api)
		r.setupPosterRoutes(api)
		r.setupPageGuideRoutes(api)
		r.setupMigrationRoutes(api)
		r.setupErrorLogRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		checks := r.db.HealthCheck(c.Request.Context())
		status, code := "healthy", http.StatusOK
		if !database.Healthy(checks) {
			status, code = "unhealthy", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"checks":    checks,
			"timestamp": time.Now(),
			"service":   "kinderadmin-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET(r.config.GetAPIBasePath()+"/status", func(c *gin.Context) {
		r.res.HandleSuccess(c, gin.H{
			"status":     "operational",
			"apiVersion": r.config.APIVersion,
			"timestamp":  time.Now(),
		}, "")
	})
}

func (r *Router) setupPermissionRoutes(rg *gin.RouterGroup) {
	repo := permissions.NewRepository(r.db.PostgreSQL)
	service := permissions.NewService(repo, r.cache)
	permissions.SetupPermissionRoutes(rg, permissions.NewController(service, r.res), r.guards)
}

func (r *Router) setupEnrollmentRoutes(rg *gin.RouterGroup) {
	repo := enrollment.NewRepository(r.db.PostgreSQL)
	service := enrollment.NewService(repo)
	enrollment.SetupEnrollmentRoutes(rg, enrollment.NewController(service, r.res), r.guards)
}

func (r *Router) setupMarketingRoutes(rg *gin.RouterGroup) {
	repo := marketing.NewRepository(r.db.PostgreSQL)
	service := marketing.NewService(repo)
	marketing.SetupMarketingRoutes(rg, marketing.NewController(service, r.res), r.guards)
}

func (r *Router) setupPersonnelRoutes(rg *gin.RouterGroup) {
	repo := personnel.NewRepository(r.db.PostgreSQL)
	service := personnel.NewService(repo, r.cache)
	personnel.SetupPersonnelRoutes(rg, personnel.NewController(service, r.res), r.guards)
}

func (r *Router) setupPosterRoutes(rg *gin.RouterGroup) {
	repo := posters.NewRepository(r.db.PostgreSQL)
	storage := posters.NewLocalStorage(filepath.Clean(r.config.Upload.Path))
	service := posters.NewService(repo, storage, posters.Settings{
		MaxSize:      r.config.Upload.MaxSize,
		PublicURL:    r.config.Upload.PublicURL,
		AllowedTypes: r.config.Upload.AllowedTypes,
	})
	posters.SetupPosterRoutes(rg, posters.NewController(service, r.res, r.config.Upload.MaxSize), r.guards)
}

func (r *Router) setupPageGuideRoutes(rg *gin.RouterGroup) {
	repo := pageguides.NewRepository(r.db.PostgreSQL)
	service := pageguides.NewService(repo, r.cache)
	pageguides.SetupPageGuideRoutes(rg, pageguides.NewController(service, r.res), r.guards)
}

func (r *Router) setupMigrationRoutes(rg *gin.RouterGroup) {
	repo := migrations.NewRepository(r.db.PostgreSQL)
	service := migrations.NewService(repo, migrations.Registry())
	migrations.SetupMigrationRoutes(rg, migrations.NewController(service, r.res), r.guards)
}

func (r *Router) setupErrorLogRoutes(rg *gin.RouterGroup) {
	errorlogs.SetupErrorLogRoutes(rg, errorlogs.NewController(r.errorLogs, r.res), r.guards)
}

var errNoRoute = apperrors.NotFound("接口不存在")
