package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/scholaris-ph/sis-api/api/swagger"
	"github.com/scholaris-ph/sis-api/internal/handler"
	"github.com/scholaris-ph/sis-api/internal/middleware"
	"github.com/scholaris-ph/sis-api/internal/models"
	"github.com/scholaris-ph/sis-api/internal/repository"
	"github.com/scholaris-ph/sis-api/internal/service"
	rediscache "github.com/scholaris-ph/sis-api/pkg/cache"
	"github.com/scholaris-ph/sis-api/pkg/config"
	"github.com/scholaris-ph/sis-api/pkg/database"
	"github.com/scholaris-ph/sis-api/pkg/logger"
	corsmiddleware "github.com/scholaris-ph/sis-api/pkg/middleware/cors"
	reqidmiddleware "github.com/scholaris-ph/sis-api/pkg/middleware/requestid"
	"github.com/scholaris-ph/sis-api/pkg/storage"
)

// @title Scholaris SIS API
// @version 0.1.0
// @description School information system computational core
// @BasePath /api/v1
// @schemes http

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
		logr.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	var redisClient *redis.Client
	if cfg.Dashboard.CacheEnabled {
		redisClient, err = rediscache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	backupStore, err := storage.NewLocalStorage(cfg.Backups.StorageDir)
	if err != nil {
		logr.Fatal("backup storage init failed", zap.Error(err))
	}
	signer := storage.NewSignedURLSigner(cfg.Backups.SignedURLSecret, cfg.Backups.SignedURLTTL)

	metricsService := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	billingRepo := repository.NewBillingRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	var cacheService *service.CacheService
	if redisClient != nil {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheService = service.NewCacheService(cacheRepo, metricsService, cfg.Dashboard.CacheTTL, logr, true)
	}

	auditService := service.NewAuditService(auditRepo, metricsService, logr)
	authService := service.NewAuthService(service.AuthServiceParams{
		Users:    userRepo,
		Audit:    auditService,
		Secret:   cfg.JWT.Secret,
		TokenTTL: cfg.JWT.Expiration,
		Logger:   logr,
	})
	ledgerService := service.NewLedgerService(ledgerRepo, logr)
	billingService := service.NewBillingService(billingRepo, logr)
	gradeService := service.NewGradeService(gradeRepo, logr)
	dashboardService := service.NewDashboardService(service.DashboardServiceParams{
		Enrollments: enrollmentRepo,
		Ledger:      ledgerService,
		Billing:     billingService,
		Grades:      gradeService,
		Cache:       cacheService,
		Logger:      logr,
		Config: service.DashboardServiceConfig{
			CacheTTL: cfg.Dashboard.CacheTTL,
		},
	})
	billingInfoService := service.NewBillingInfoService(service.BillingInfoServiceParams{
		Enrollments: enrollmentRepo,
		Ledger:      ledgerService,
		Billing:     billingService,
		Logger:      logr,
	})
	exportService := service.NewExportService(billingInfoService, auditService, logr)
	backupService := service.NewBackupService(service.BackupServiceParams{
		Snapshots: snapshotRepo,
		Settings:  settingsRepo,
		Storage:   backupStore,
		Audit:     auditService,
		Metrics:   metricsService,
		Cache:     cacheService,
		Logger:    logr,
	})

	authHandler := handler.NewAuthHandler(authService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	billingHandler := handler.NewBillingHandler(billingInfoService, exportService)
	gradeHandler := handler.NewGradeHandler(gradeService, enrollmentRepo)
	backupHandler := handler.NewBackupHandler(backupService, signer)
	auditHandler := handler.NewAuditHandler(auditService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsService.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(authService))
	protected.GET("/auth/me", authHandler.Me)
	protected.GET("/students/:student_id/dashboard",
		middleware.RequireCapability(models.CapViewDashboard), dashboardHandler.Student)
	protected.GET("/students/:student_id/billing",
		middleware.RequireCapability(models.CapViewBilling), billingHandler.Information)
	protected.GET("/students/:student_id/billing/export",
		middleware.RequireCapability(models.CapExportBilling), billingHandler.ExportStatement)
	protected.GET("/enrollments/:enrollment_id/grades",
		middleware.RequireCapability(models.CapViewGrades), gradeHandler.Summary)
	protected.GET("/audit-logs",
		middleware.RequireCapability(models.CapViewAuditTrail), auditHandler.List)
	protected.POST("/backups",
		middleware.RequireCapability(models.CapManageBackups), backupHandler.Create)
	protected.GET("/backups",
		middleware.RequireCapability(models.CapManageBackups), backupHandler.List)
	protected.POST("/backups/restore",
		middleware.RequireCapability(models.CapManageBackups), backupHandler.Restore)
	api.GET("/backups/download", backupHandler.Download)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}
