package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	httpapi "github.com/patientfirst/crm-backend/internal/api/http"
	"github.com/patientfirst/crm-backend/internal/api/http/handlers"
	"github.com/patientfirst/crm-backend/internal/auth"
	"github.com/patientfirst/crm-backend/internal/config"
	"github.com/patientfirst/crm-backend/internal/domain"
	"github.com/patientfirst/crm-backend/internal/events"
	"github.com/patientfirst/crm-backend/internal/observability"
	"github.com/patientfirst/crm-backend/internal/persistence"
	"github.com/patientfirst/crm-backend/internal/repository"
	"github.com/patientfirst/crm-backend/internal/service"
	"github.com/patientfirst/crm-backend/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	postgres, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer postgres.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, postgres.Pool, logger); err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	// The stage catalog is configuration data loaded once; ids differ
	// between deployments so everything resolves through it by name.
	statusRepo := repository.NewStatusRepository(postgres.Pool)
	statuses, err := statusRepo.ListAll(ctx)
	if err != nil {
		logger.Fatal("status catalog load failed", zap.Error(err))
	}
	catalog := domain.NewStatusCatalog(statuses)

	// A fresh run-instance marker per process: restarting the service
	// invalidates every outstanding session token.
	instance := uuid.NewString()
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHours, instance)
	logger.Info("run instance initialized", zap.String("instance", instance))

	userRepo := repository.NewUserRepository(postgres.Pool)
	leadRepo := repository.NewLeadRepository(postgres.Pool)
	trackingRepo := repository.NewLeadTrackingRepository(postgres.Pool)
	roleRepo := repository.NewRoleRepository(postgres.Pool)
	teamRepo := repository.NewTeamRepository(postgres.Pool)
	commentRepo := repository.NewCommentRepository(postgres.Pool)
	activityRepo := repository.NewActivityRepository(postgres.Pool)

	dispatcher := events.NewInMemoryDispatcher()
	activityWorker := worker.NewActivityWorker(activityRepo, logger)
	activityWorker.Register(dispatcher)

	monitor := service.NewLoginMonitor(redis.Client, logger)
	authService := service.NewAuthService(userRepo, tokens, monitor, dispatcher)
	scope := service.NewLeadScope(catalog, cfg.Access.LegacyRestrictedUserID)
	audit := service.NewAuditService(trackingRepo, logger)
	leadService := service.NewLeadService(leadRepo, catalog, scope, audit, dispatcher, logger)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)

	metrics := observability.NewMetrics()
	validate := validator.New()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.App.RequestTimeout(),
		WriteTimeout: cfg.App.RequestTimeout(),
		ErrorHandler: httpapi.ErrorHandler(logger, metrics),
	})
	app.Use(httpapi.Recover(logger))
	app.Use(observability.RequestLogger(logger, metrics))

	authMW := auth.NewMiddleware(tokens, userRepo)
	httpapi.RegisterRoutes(app, httpapi.Handlers{
		Health:    handlers.NewHealthHandler(postgres, redis, cfg.App.Version),
		Auth:      handlers.NewAuthHandler(authService, validate),
		Lead:      handlers.NewLeadHandler(leadService, catalog, validate),
		User:      handlers.NewUserHandler(userService, validate),
		Catalog:   handlers.NewCatalogHandler(statusRepo, roleRepo, teamRepo, validate),
		Comment:   handlers.NewCommentHandler(commentRepo, leadService, validate),
		Dashboard: handlers.NewDashboardHandler(leadService, activityRepo),
	}, authMW)

	go func() {
		logger.Info("server starting", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
