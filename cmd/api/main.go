// @title Training Quiz API
// @version 1.0
// @description Course progression and quiz assessment for employee training.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "training-quiz/cmd/api/docs"
	"training-quiz/internal/adapter"
	"training-quiz/internal/cache"
	"training-quiz/internal/config"
	"training-quiz/internal/database"
	"training-quiz/internal/domain"
	"training-quiz/internal/handler"
	"training-quiz/internal/logger"
	"training-quiz/internal/middleware"
	"training-quiz/internal/repository"
	"training-quiz/internal/service"
	"training-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	checks := map[string]handler.HealthCheck{}

	// Storage
	var catalog domain.CourseCatalog
	var store domain.EnrollmentStore
	switch cfg.Training.Storage {
	case config.StorageOracle:
		db, err := database.NewSQLXOracleDB(cfg.DB.Driver, cfg.GetDSN())
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		catalog = repository.NewCourseCatalogDatabaseAdapter(db)
		store = repository.NewEnrollmentDatabaseAdapter(db)
		checks["database"] = db.PingContext
	default:
		courses, err := repository.LoadSeedFile(cfg.Training.SeedFile)
		if err != nil {
			appLogger.Fatal("Failed to load course seed file", zap.String("path", cfg.Training.SeedFile), zap.Error(err))
		}
		static, err := repository.NewStaticCourseCatalog(courses)
		if err != nil {
			appLogger.Fatal("Invalid course catalog", zap.Error(err))
		}
		catalog = static
		store = repository.NewEnrollmentMemoryStore()
		appLogger.Info("Using in-memory enrollment store", zap.Int("courses", len(courses)))
	}

	// Redis: catalog cache and achievement channel
	var publisher domain.AchievementPublisher = adapter.NewLogAchievementPublisher(appLogger)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		appLogger.Info("Successfully connected to Redis")

		cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
		catalog = service.NewCachedCourseCatalog(catalog, cacheAdapter, cfg.Training.CatalogCacheTTL)
		publisher = adapter.NewRedisAchievementPublisher(redisClient, cfg.Training.AchievementChannel)
		checks["redis"] = cacheAdapter.Ping
	}

	dispatcher := service.NewAchievementDispatcher(publisher, cfg.Training.NotifyTimeout)
	controller := service.NewProgressionController(
		catalog,
		store,
		service.NewQuizEngine(cfg.Training.PassThreshold),
		service.NewCertificateIssuer(),
		dispatcher,
	)
	appLogger.Info("Progression controller initialized",
		zap.String("storage", cfg.Training.Storage),
		zap.Int("pass_threshold", cfg.Training.PassThreshold))

	validator := validation.NewValidator()
	trainingHandler := handler.NewTrainingHandler(controller, validator)
	healthHandler := handler.NewHealthHandler(cfg.Training.Storage, checks)

	var protect fiber.Handler
	if cfg.Auth.JWTSecret != "" {
		protect = middleware.Protected(middleware.NewTokenVerifier(cfg.Auth.JWTSecret))
	} else {
		appLogger.Warn("auth.jwt_secret is empty, employee routes are unauthenticated")
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/healthz", healthHandler.Health)

	handler.RegisterRoutes(app.Group("/api"), trainingHandler, middleware.NewValidationMiddleware(validator), protect)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := dispatcher.Wait(ctx); err != nil {
		appLogger.Warn("Pending achievement notifications were dropped", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
