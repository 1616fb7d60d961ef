package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"taskboard/config"
	"taskboard/internal/events"
	"taskboard/internal/handler"
	"taskboard/internal/redis"
	"taskboard/internal/repository"
	"taskboard/internal/server"
	"taskboard/internal/services"
	"taskboard/pkg/clock"
	"taskboard/pkg/database"
	"taskboard/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	appLogger := logger.New(cfg.LogMode)
	logger.SetGlobalLogger(appLogger)
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := repository.InitSchema(db); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	var publisher events.Publisher = events.NewNoopPublisher()
	if cfg.EventsPublish {
		rdb := redis.NewClient(redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := redis.Ping(pingCtx, rdb); err != nil {
			// events are still recorded in postgres; only the notification is lost
			appLogger.Logger.Warn("redis unavailable, committed events will not be published", zap.Error(err))
		}
		cancel()
		publisher = redis.NewEventPublisher(rdb, cfg.EventsChannelPrefix)
	}

	clk := clock.NewMonotonic()
	tx := repository.NewTransactor(db, clk.Now)

	taskStore := services.NewTaskPersistenceService(repository.NewTaskRepository(db), tx, publisher, clk.Now, appLogger.With(zap.String("component", "task_persistence")))
	userStore := services.NewUserPersistenceService(repository.NewUserRepository(db), tx, publisher, clk.Now, appLogger.With(zap.String("component", "user_persistence")))

	srv := server.New(cfg, appLogger)
	srv.SetupRoutes(&server.Handlers{
		Tasks: handler.NewTaskHandler(services.NewTaskService(taskStore)),
		Users: handler.NewUserHandler(services.NewUserService(userStore)),
	}, func(ctx context.Context) error {
		return database.HealthCheck(ctx, db)
	})

	if err := srv.Run(ctx); err != nil {
		appLogger.Errorf("Server exited with error: %v", err)
	}
}
