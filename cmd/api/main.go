package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/LuisSinastre/ServiceDesk-Backend/internal/api/http"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/api/http/handlers"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/auth"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/config"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/events"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/observability"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/persistence"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/repository"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/service"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	catalogRepo := repository.NewCatalogRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	reasonRepo := repository.NewReasonRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	txManager := repository.NewTxManager(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokenManager)

	authService := service.NewAuthService(service.AuthDependencies{
		AccountRepo:  accountRepo,
		TokenManager: tokenManager,
		BcryptCost:   cfg.Auth.BcryptCost,
	})
	lifecycleService := service.NewLifecycleService(service.LifecycleDependencies{
		TxManager:   txManager,
		CatalogRepo: catalogRepo,
		ProfileRepo: profileRepo,
		Dispatcher:  dispatcher,
	})
	queryService := service.NewQueryService(service.QueryDependencies{
		TicketRepo: ticketRepo,
	})
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		CatalogRepo: catalogRepo,
		ReasonRepo:  reasonRepo,
		Cache:       redis.Client,
		CacheTTL:    cfg.Catalog.CacheTTL(),
		Logger:      logger,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		Tickets:        handlers.NewTicketsHandler(lifecycleService, queryService),
		Approvals:      handlers.NewApprovalsHandler(lifecycleService, queryService),
		Treatment:      handlers.NewTreatmentHandler(lifecycleService, queryService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
