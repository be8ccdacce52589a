package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/moa-team/moa-backend/pkg/validator"

	"github.com/moa-team/moa-backend/internal/adapter/handler"
	"github.com/moa-team/moa-backend/internal/adapter/repository"
	"github.com/moa-team/moa-backend/internal/infrastructure/cache"
	"github.com/moa-team/moa-backend/internal/infrastructure/database"
	"github.com/moa-team/moa-backend/internal/infrastructure/storage"
	"github.com/moa-team/moa-backend/internal/usecase/answer"
	"github.com/moa-team/moa-backend/internal/usecase/question"
	"github.com/moa-team/moa-backend/internal/usecase/report"
	"github.com/moa-team/moa-backend/internal/usecase/user"
	pkgai "github.com/moa-team/moa-backend/pkg/ai"
	"github.com/moa-team/moa-backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate in CI/CD.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		if err := database.AutoMigrate(db, logger); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	reportCache := cache.NewReportCache(redisClient, cfg.Redis.ReportTTL)

	// Initialize MinIO
	log.Println("📦 Connecting to MinIO...")
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	profileRepo := repository.NewProfileRepository(db)
	dayRecordRepo := repository.NewDayRecordRepository(db)

	// Initialize AI clients
	log.Println("🤖 Initializing AI components...")
	transcriber := pkgai.NewAssemblyAIClient(&cfg.Assembly)
	geminiClient := pkgai.NewGeminiClient(&cfg.Gemini)

	// Initialize services
	registry := question.NewRegistry()

	reportService := report.NewService(dayRecordRepo, geminiClient, reportCache, cfg.Gemini.RetryWindow, logger)

	assembler := answer.NewAssembler(minioClient, transcriber, registry, cfg.Assembly.SlotTimeout, logger)
	answerService := answer.NewService(dayRecordRepo, profileRepo, minioClient, assembler, reportService, registry, logger)

	userService := user.NewService(profileRepo, logger)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService, logger)
	answerHandler := handler.NewAnswerHandler(answerService, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, userHandler, answerHandler, reportHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
