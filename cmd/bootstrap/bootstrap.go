package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telehealth-api/config"
	"telehealth-api/internal/delivery/graphql"
	deliveryHttp "telehealth-api/internal/delivery/http"
	"telehealth-api/internal/delivery/http/handler"
	"telehealth-api/internal/delivery/http/middleware"
	"telehealth-api/internal/infrastructure/cache"
	"telehealth-api/internal/infrastructure/database"
	"telehealth-api/internal/repository"
	"telehealth-api/internal/service"
	"telehealth-api/internal/usecase"
	"telehealth-api/pkg/jwt"
	"telehealth-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const migrationsPath = "migrations"

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Apply schema migrations before opening the pool
	if err := database.RunMigrations(cfg.DB.URL, migrationsPath); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Rebuild slot quota counters so booking starts from a clean state
	quotaService := service.NewSlotQuotaService(db, redisClient, logrus.StandardLogger())
	if err := quotaService.SyncOnStartup(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to sync slot quotas: %w", err)
	}

	// Initialize all layers
	server, err := initializeServer(cfg, db, redisClient, quotaService)
	if err != nil {
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, quotaService *service.SlotQuotaService) (*http.Server, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	labOrderRepo := repository.NewLabOrderRepository()
	bookedSlotRepo := repository.NewBookedSlotRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	pharmacyOrderRepo := repository.NewPharmacyOrderRepository()
	availabilitySlotRepo := repository.NewAvailabilitySlotRepository()
	videoSessionRepo := repository.NewVideoSessionRepository()
	planRepo := repository.NewPlanRepository()
	subscriptionRepo := repository.NewSubscriptionRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(db, log, auditLogRepo)
	slaClassifier := service.NewSLAClassifier(cfg.SLA.ApproachingWindow)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, doctorProfileRepo, patientProfileRepo, auditService, jwtService, redisClient)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientProfileRepo, userRepo)
	labOrderUsecase := usecase.NewLabOrderUsecase(db, log, labOrderRepo, bookedSlotRepo, patientProfileRepo, userRepo, auditService, slaClassifier)
	pharmacyOrderUsecase := usecase.NewPharmacyOrderUsecase(db, log, prescriptionRepo, pharmacyOrderRepo, patientProfileRepo, auditService)
	videoSessionUsecase := usecase.NewVideoSessionUsecase(db, log, availabilitySlotRepo, videoSessionRepo, doctorProfileRepo, quotaService, auditService)
	subscriptionUsecase := usecase.NewSubscriptionUsecase(db, log, planRepo, subscriptionRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	labOrderHandler := handler.NewLabOrderHandler(labOrderUsecase, customValidator)
	pharmacyOrderHandler := handler.NewPharmacyOrderHandler(pharmacyOrderUsecase, customValidator)
	videoSessionHandler := handler.NewVideoSessionHandler(videoSessionUsecase, customValidator)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize GraphQL
	resolver := graphql.NewResolver(authUsecase, patientUsecase, labOrderUsecase, pharmacyOrderUsecase, videoSessionUsecase, subscriptionUsecase)
	schema, err := graphql.NewSchema(resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to build graphql schema: %w", err)
	}
	graphqlHandler := graphql.NewHandler(schema, log, cfg.App.Env)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	csrfMiddleware := middleware.NewCSRFMiddleware()
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		patientHandler,
		labOrderHandler,
		pharmacyOrderHandler,
		videoSessionHandler,
		subscriptionHandler,
		auditLogHandler,
		graphqlHandler,
		authMiddleware,
		csrfMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%d", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %d", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
