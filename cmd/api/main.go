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

	pkgvalidator "github.com/johnquangdev/video-summarizer/pkg/validator"

	"github.com/johnquangdev/video-summarizer/internal/adapter/handler"
	"github.com/johnquangdev/video-summarizer/internal/adapter/repository"
	"github.com/johnquangdev/video-summarizer/internal/domain/repositories"
	"github.com/johnquangdev/video-summarizer/internal/infrastructure/cache"
	"github.com/johnquangdev/video-summarizer/internal/infrastructure/database"
	"github.com/johnquangdev/video-summarizer/internal/infrastructure/storage"
	aiuse "github.com/johnquangdev/video-summarizer/internal/usecase/ai"
	"github.com/johnquangdev/video-summarizer/internal/usecase/history"
	"github.com/johnquangdev/video-summarizer/internal/usecase/pipeline"
	"github.com/johnquangdev/video-summarizer/internal/usecase/resolver"
	"github.com/johnquangdev/video-summarizer/internal/usecase/session"
	"github.com/johnquangdev/video-summarizer/internal/usecase/transcript"
	pkgai "github.com/johnquangdev/video-summarizer/pkg/ai"
	"github.com/johnquangdev/video-summarizer/pkg/config"
	"github.com/johnquangdev/video-summarizer/pkg/youtube"
)

// @title           Video Summarizer API
// @version         1.0
// @description     Summarizes YouTube videos from their transcripts, answers questions about them and keeps a history of saved summaries

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Session-ID", "Cookie"},
		ExposeHeaders:    []string{echo.HeaderContentDisposition, "X-Session-ID", echo.HeaderXRequestID},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Printf("📦 Connecting to %s database...", cfg.Database.Driver)
	db, err := database.NewDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Migrations are idempotent; disable to manage the schema with cmd/migrate
	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; run cmd/migrate to manage the schema")
	}

	// Initialize session store
	log.Printf("🗂️  Initializing %s session store...", cfg.Session.Backend)
	var sessionStore repositories.SessionStore
	switch cfg.Session.Backend {
	case "redis":
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		sessionStore = cache.NewRedisStore(redisClient, cfg.Session.TTL)
	default:
		memoryStore := cache.NewMemoryStore(cfg.Session.TTL)
		defer memoryStore.Close()
		sessionStore = memoryStore
	}

	// Initialize export publisher
	var publisher handler.ExportPublisher
	if cfg.Storage.Enabled {
		log.Println("🪣 Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
		publisher = minioClient
	} else {
		log.Println("⚠️  Object storage disabled; export publishing is unavailable")
	}

	// Initialize use cases
	log.Println("⚙️  Initializing services...")
	historyService := history.NewHistoryService(repository.NewHistoryRepository(db), logger)
	sessionService := session.NewSessionService(sessionStore, logger)

	log.Println("🤖 Initializing AI components...")
	completion := pkgai.NewClient(&cfg.AI)
	generator := aiuse.NewAIService(completion, logger)
	acquirer := transcript.NewAcquirer(youtube.NewClient(&cfg.YouTube), logger)

	p := pipeline.NewPipeline(resolver.New(), acquirer, generator, historyService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, sessionService,
		handler.NewSummaryHandler(p, sessionService, logger),
		handler.NewSessionHandler(p, sessionService, logger),
		handler.NewHistoryHandler(historyService, p, sessionService, logger),
		handler.NewExportHandler(historyService, publisher, logger),
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
			zap.String("model", completion.Model()),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
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

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
