package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"streetsaga-server/internal/config"
	"streetsaga-server/internal/handler"
	"streetsaga-server/internal/messaging"
	"streetsaga-server/internal/middleware"
	"streetsaga-server/internal/repository"
	"streetsaga-server/internal/service"
	"streetsaga-server/migrations"
	"streetsaga-server/pkg/logger"
	"streetsaga-server/pkg/migration"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; in containers everything comes from the environment.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		zap.NewExample().Fatal("Failed to load configuration", zap.Error(err))
	}

	appLogger, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: "json",
	})
	if err != nil {
		zap.NewExample().Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer appLogger.Sync()
	appLogger.Info("Starting streetsaga server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// PostgreSQL
	poolCfg, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to parse database config", zap.Error(err))
	}
	poolCfg.MaxConns = int32(cfg.DBMaxConns)
	poolCfg.MaxConnIdleTime = cfg.DBIdleTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		appLogger.Fatal("Failed to ping database", zap.Error(err))
	}
	appLogger.Info("Database connection established")

	migrator := migration.NewMigrator(migration.Config{
		MigrationsPath: ".",
		MigrationsFS:   migrations.FS,
	}, pool)
	if err := migrator.Up(ctx); err != nil {
		appLogger.Fatal("Failed to apply database migrations", zap.Error(err))
	}

	// Redis (read cache for saved progress)
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Redis connection established", zap.String("addr", cfg.RedisAddr))

	// RabbitMQ (player events)
	amqpConn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		appLogger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer amqpConn.Close()

	publisher, err := messaging.NewRabbitMQEventPublisher(amqpConn, cfg.PlayerEventsQueue)
	if err != nil {
		appLogger.Fatal("Failed to create event publisher", zap.Error(err))
	}
	appLogger.Info("RabbitMQ connection established", zap.String("queue", cfg.PlayerEventsQueue))

	// Repositories
	sessionRepo := repository.NewPgSessionRepository(pool, appLogger)
	progressRepo := repository.NewRedisProgressCache(
		repository.NewPgProgressRepository(pool, appLogger),
		redisClient,
		cfg.ProgressCacheTTL,
		appLogger,
	)
	profileRepo := repository.NewPgProfileRepository(pool, appLogger)

	// Services
	gameService := service.NewGameService(sessionRepo, progressRepo, publisher, appLogger)
	profileService := service.NewProfileService(profileRepo, appLogger)

	// HTTP server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.EchoZapLogger(appLogger))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	gameHandler := handler.NewGameHandler(gameService, profileService, appLogger, cfg.JWTSecret)
	gameHandler.RegisterRoutes(e)

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("Server exited")
}
