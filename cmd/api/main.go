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

	pkgvalidator "github.com/hospitalvoice/booking-agent/pkg/validator"

	"github.com/hospitalvoice/booking-agent/internal/adapter/handler"
	"github.com/hospitalvoice/booking-agent/internal/adapter/repository"
	"github.com/hospitalvoice/booking-agent/internal/infrastructure/cache"
	"github.com/hospitalvoice/booking-agent/internal/infrastructure/database"
	"github.com/hospitalvoice/booking-agent/internal/infrastructure/storage"
	"github.com/hospitalvoice/booking-agent/internal/task"
	"github.com/hospitalvoice/booking-agent/internal/usecase/auth"
	"github.com/hospitalvoice/booking-agent/internal/usecase/booking"
	"github.com/hospitalvoice/booking-agent/internal/usecase/conversation"
	"github.com/hospitalvoice/booking-agent/internal/usecase/directory"
	"github.com/hospitalvoice/booking-agent/internal/usecase/transcription"
	pkgai "github.com/hospitalvoice/booking-agent/pkg/ai"
	"github.com/hospitalvoice/booking-agent/pkg/config"
	"github.com/hospitalvoice/booking-agent/pkg/jwt"
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
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
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
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run AutoMigrate only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running GORM AutoMigrate (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run AutoMigrate: %v", err)
		}
	} else {
		log.Println("🔄 Skipping GORM AutoMigrate; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize cache store, falling back to process memory when Redis is
	// unreachable so a dev box without Redis still answers calls
	log.Println("📦 Connecting to Redis...")
	var store cache.Store
	redisStore, err := cache.NewRedisStore(cfg.GetRedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Printf("⚠️  Redis unavailable (%v), using in-memory cache", err)
		store = cache.NewMemoryStore()
	} else {
		defer redisStore.Close()
		store = redisStore
	}

	// Initialize recording storage
	log.Println("🗄️  Initializing recording storage...")
	recordingStore, err := storage.NewRecordingStore(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize recording storage: %v", err)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	hospitalRepo := repository.NewHospitalRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	callLogRepo := repository.NewCallLogRepository(db)

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize services
	log.Println("✨ Initializing services...")
	authService := auth.NewAuthService(hospitalRepo, jwtManager, logger)
	directoryService := directory.NewDirectoryService(hospitalRepo, store, logger)
	bookingService := booking.NewBookingService(reservationRepo, hospitalRepo, customerRepo, callLogRepo, logger)
	transcriber := pkgai.NewAssemblyAIClient(&cfg.Transcription)
	transcriptionService := transcription.NewService(callLogRepo, recordingStore, transcriber, logger)

	// Initialize conversation components
	log.Println("🤖 Initializing conversation components...")
	completer := pkgai.NewOpenAIClient(&cfg.OpenAI)
	dispatcher := conversation.NewDispatcher(directoryService, bookingService, logger)
	registry := conversation.NewRegistry()
	conversationService := conversation.NewService(completer, dispatcher, registry, directoryService, cfg.OpenAI.MaxRounds, logger)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	authHandler := handler.NewAuth(authService, logger)
	hospitalHandler := handler.NewHospital(directoryService, logger)
	bookingHandler := handler.NewBooking(bookingService, transcriptionService, recordingStore, logger)
	telephonyHandler := handler.NewTelephony(conversationService, &cfg.Telephony, logger)

	// Start reminder task
	log.Println("⏰ Starting reservation reminder task...")
	reminderTask := task.NewReminderTask(reservationRepo, logger)
	if err := reminderTask.Start(); err != nil {
		log.Fatalf("Failed to start reminder task: %v", err)
	}
	defer reminderTask.Stop()

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, jwtManager, authHandler, hospitalHandler, bookingHandler, telephonyHandler)
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
