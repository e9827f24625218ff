package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/trainhub/trainhub-api/internal/config"
	"github.com/trainhub/trainhub-api/internal/database"
	"github.com/trainhub/trainhub-api/internal/handler"
	"github.com/trainhub/trainhub-api/internal/middleware"
	"github.com/trainhub/trainhub-api/internal/models"
	"github.com/trainhub/trainhub-api/internal/observability"
	"github.com/trainhub/trainhub-api/internal/repository"
	"github.com/trainhub/trainhub-api/internal/router"
	"github.com/trainhub/trainhub-api/internal/service"
	"github.com/trainhub/trainhub-api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.CatalogEntry{},
		&models.Session{},
		&models.Enrollment{},
		&models.Feedback{},
		&models.Evaluation{},
		&models.Attachment{},
		&models.ComplianceRequirement{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Redis is optional; without it the dashboard recomputes on every call.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	store, err := storage.NewLocal(cfg.UploadsDir)
	if err != nil {
		log.Fatalf("failed to prepare uploads directory: %v", err)
	}

	observability.RegisterMetrics()

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	complianceRepo := repository.NewComplianceRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	txManager := repository.NewTxManager(db)

	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.JWTTTL, logger)
	userService := service.NewUserService(userRepo, auditRepo, txManager, validate, logger)
	departmentService := service.NewDepartmentService(departmentRepo, auditRepo, txManager, validate, logger)
	catalogService := service.NewCatalogService(catalogRepo, auditRepo, txManager, validate, logger)
	importService := service.NewCatalogImportService(catalogRepo, auditRepo, validate, logger)
	sessionService := service.NewSessionService(sessionRepo, catalogRepo, auditRepo, txManager, validate, logger)
	dashboardService := service.NewDashboardService(userRepo, catalogRepo, sessionRepo, enrollmentRepo, complianceRepo, redisClient, cfg.DashboardCacheTTL, cfg.ExpiryLookaheadDays, cfg.FallbackRequiredTrainings, logger)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, sessionRepo, auditRepo, txManager, validate, dashboardService, logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, enrollmentRepo, auditRepo, txManager, validate, logger)
	evaluationService := service.NewEvaluationService(evaluationRepo, enrollmentRepo, auditRepo, txManager, validate, logger)
	attachmentService := service.NewAttachmentService(attachmentRepo, enrollmentRepo, sessionRepo, auditRepo, txManager, store, cfg.MaxUploadBytes(), cfg.AllowedUploadExts, logger)
	complianceService := service.NewComplianceService(complianceRepo, catalogRepo, auditRepo, txManager, validate, logger)
	auditService := service.NewAuditService(auditRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    int(cfg.MaxUploadBytes()) + 1024*1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		UserHandler:       handler.NewUserHandler(userService, logger),
		DepartmentHandler: handler.NewDepartmentHandler(departmentService, logger),
		CatalogHandler:    handler.NewCatalogHandler(catalogService, importService, logger),
		SessionHandler:    handler.NewSessionHandler(sessionService, logger),
		EnrollmentHandler: handler.NewEnrollmentHandler(enrollmentService, logger),
		FeedbackHandler:   handler.NewFeedbackHandler(feedbackService, logger),
		EvaluationHandler: handler.NewEvaluationHandler(evaluationService, logger),
		AttachmentHandler: handler.NewAttachmentHandler(attachmentService, logger),
		AuditHandler:      handler.NewAuditHandler(auditService, logger),
		ComplianceHandler: handler.NewComplianceHandler(complianceService, logger),
		DashboardHandler:  handler.NewDashboardHandler(dashboardService, logger),
		HealthHandler:     handler.NewHealthHandler(cfg.AppName),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	logger.Info().Str("addr", cfg.HTTPAddress()).Msg("server started")
	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
