package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/shareit-app/lending-service/internal/api/http"
	"github.com/shareit-app/lending-service/internal/api/http/handlers"
	"github.com/shareit-app/lending-service/internal/config"
	"github.com/shareit-app/lending-service/internal/events"
	"github.com/shareit-app/lending-service/internal/observability"
	"github.com/shareit-app/lending-service/internal/persistence"
	"github.com/shareit-app/lending-service/internal/repository"
	"github.com/shareit-app/lending-service/internal/repository/memory"
	"github.com/shareit-app/lending-service/internal/service"
	"github.com/shareit-app/lending-service/internal/worker"
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

	var pg *persistence.Postgres
	var userRepo repository.UserRepository
	var itemRepo repository.ItemRepository
	var bookingRepo repository.BookingRepository
	var requestRepo repository.RequestRepository
	var commentRepo repository.CommentRepository

	if cfg.Storage.Backend == config.StorageBackendMemory {
		logger.Info("using in-memory storage backend")
		store := memory.NewStore()
		userRepo = store.Users()
		itemRepo = store.Items()
		bookingRepo = store.Bookings()
		requestRepo = store.Requests()
		commentRepo = store.Comments()
	} else {
		pg, err = persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()

		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}

		pool := pg.PoolHandle()
		userRepo = repository.NewUserRepository(pool)
		itemRepo = repository.NewItemRepository(pool)
		bookingRepo = repository.NewBookingRepository(pool)
		requestRepo = repository.NewRequestRepository(pool)
		commentRepo = repository.NewCommentRepository(pool)
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()

	userService := service.NewUserService(userRepo)
	itemService := service.NewItemService(service.ItemDependencies{
		ItemRepo:    itemRepo,
		UserRepo:    userRepo,
		BookingRepo: bookingRepo,
		CommentRepo: commentRepo,
		RequestRepo: requestRepo,
		Dispatcher:  dispatcher,
	})
	bookingService := service.NewBookingService(service.BookingDependencies{
		BookingRepo: bookingRepo,
		ItemRepo:    itemRepo,
		UserRepo:    userRepo,
		Dispatcher:  dispatcher,
	})
	requestService := service.NewRequestService(service.RequestDependencies{
		RequestRepo: requestRepo,
		UserRepo:    userRepo,
		ItemRepo:    itemRepo,
		Dispatcher:  dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:    handlers.NewUsersHandler(userService),
		Items:    handlers.NewItemsHandler(itemService),
		Bookings: handlers.NewBookingsHandler(bookingService),
		Requests: handlers.NewRequestsHandler(requestService),
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
