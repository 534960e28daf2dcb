package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/skillmint/skillmint-api/api/swagger"
	"github.com/skillmint/skillmint-api/internal/handler"
	"github.com/skillmint/skillmint-api/internal/middleware"
	"github.com/skillmint/skillmint-api/internal/models"
	"github.com/skillmint/skillmint-api/internal/repository"
	"github.com/skillmint/skillmint-api/internal/service"
	"github.com/skillmint/skillmint-api/internal/workspace"
	"github.com/skillmint/skillmint-api/pkg/cache"
	"github.com/skillmint/skillmint-api/pkg/config"
	"github.com/skillmint/skillmint-api/pkg/database"
	"github.com/skillmint/skillmint-api/pkg/logger"
	corsmiddleware "github.com/skillmint/skillmint-api/pkg/middleware/cors"
	reqidmiddleware "github.com/skillmint/skillmint-api/pkg/middleware/requestid"
)

// @title Skillmint API
// @version 1.0.0
// @description Course delivery platform: access requests, session content and code workspaces
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	accessRepo := repository.NewAccessRequestRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	fileRepo := repository.NewCodeFileRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	validate := validator.New()

	metricsSvc := service.NewMetricsService()

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "skillmint-api",
	})
	courseSvc := service.NewCourseService(courseRepo, cacheRepo, metricsSvc, logr, cfg.Content.CatalogCacheTTL)
	accessSvc := service.NewAccessService(accessRepo, courseRepo, userRepo, logr)
	contentSvc := service.NewContentService(sessionRepo, fileRepo, courseRepo, cacheRepo, userRepo, metricsSvc, logr, cfg.Content.TreeCacheTTL)
	exportSvc := service.NewExportService(accessRepo, contentSvc, courseSvc, logr)
	workspaces := workspace.NewManager()

	authHandler := handler.NewAuthHandler(authSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	accessHandler := handler.NewAccessHandler(accessSvc)
	contentHandler := handler.NewContentHandler(contentSvc, accessSvc, workspaces)
	workspaceHandler := handler.NewWorkspaceHandler(workspaces, contentSvc, accessSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))

	authed.GET("/courses", courseHandler.List)
	authed.GET("/courses/:id", courseHandler.Get)
	authed.GET("/courses/:id/access", accessHandler.Resolve)
	authed.POST("/courses/:id/access", accessHandler.Request)
	authed.GET("/courses/:id/tree", contentHandler.Tree)

	ws := authed.Group("/workspace")
	ws.GET("", workspaceHandler.State)
	ws.POST("/video", workspaceHandler.SelectVideo)
	ws.POST("/files", workspaceHandler.OpenFile)
	ws.POST("/files/:fileId/activate", workspaceHandler.ActivateFile)
	ws.PATCH("/files/:fileId", workspaceHandler.EditFile)
	ws.DELETE("/files/:fileId", workspaceHandler.CloseFile)
	ws.GET("/files/:fileId/download", workspaceHandler.DownloadFile)

	admin := authed.Group("/admin")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/access-requests", accessHandler.ListPending)
	admin.POST("/access-requests/:id/approve", accessHandler.Approve)
	admin.POST("/access-requests/:id/reject", accessHandler.Reject)
	admin.GET("/language", contentHandler.SuggestLanguage)
	admin.GET("/courses/:id/sessions", contentHandler.ListSessions)
	admin.POST("/courses/:id/sessions", contentHandler.CreateSession)
	admin.PUT("/sessions/:id", contentHandler.UpdateSession)
	admin.DELETE("/sessions/:id", contentHandler.DeleteSession)
	admin.GET("/sessions/:id/files", contentHandler.ListFiles)
	admin.POST("/sessions/:id/files", contentHandler.CreateFile)
	admin.PUT("/files/:id", contentHandler.UpdateFile)
	admin.DELETE("/files/:id", contentHandler.DeleteFile)

	if cfg.Exports.Enabled {
		admin.GET("/access-requests/export", exportHandler.AccessRequests)
		admin.GET("/courses/:id/outline.pdf", exportHandler.CourseOutline)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
