package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"freelink_backend/database"
	"freelink_backend/internal/auth"
	"freelink_backend/internal/config"
	"freelink_backend/internal/email"
	"freelink_backend/internal/handlers"
	"freelink_backend/internal/imageprocessor"
	"freelink_backend/internal/logger"
	"freelink_backend/internal/middleware"
	"freelink_backend/internal/payment"
	"freelink_backend/internal/repositories"
	"freelink_backend/internal/routes"
	"freelink_backend/internal/services"
	"freelink_backend/internal/storage"
	"freelink_backend/internal/validator"
	"freelink_backend/pkg/apperrors"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "freelink_backend/docs"
)

const shutdownTimeout = 10 * time.Second

// Dependencies are the outbound adapters. Tests pass fakes here.
type Dependencies struct {
	Storage  storage.Storage
	Notifier email.Notifier
	Gateway  payment.Gateway
	Deduper  payment.Deduper
	Images   *imageprocessor.Processor
}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)
	apperrors.SetDebug(cfg.IsDevelopment())
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, cfg.IsDevelopment())
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.Reset {
		if err := database.Reset(gormDB); err != nil {
			logger.Fatal("Failed to reset database", "error", err)
		}
	}
	if err := database.Migrate(gormDB, cfg.Database.Driver); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, cleanup, err := NewDependencies(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize dependencies", "error", err)
	}
	defer cleanup()

	ginRouter := SetupRouter(cfg, gormDB, deps)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
}

// NewDependencies builds the adapters selected in config. The returned func releases them.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	store, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		return nil, cleanup, fmt.Errorf("storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	var notifier email.Notifier
	if cfg.SMTPEnabled() {
		templates, err := email.NewTemplateManager()
		if err != nil {
			return nil, cleanup, fmt.Errorf("email templates: %w", err)
		}
		smtp, err := email.NewSMTPNotifier(email.SMTPConfig{
			Host:          cfg.Email.SMTPHost,
			Port:          cfg.Email.SMTPPort,
			Username:      cfg.Email.SMTPUsername,
			Password:      cfg.Email.SMTPPassword,
			FromEmail:     cfg.Email.FromEmail,
			FromName:      cfg.Email.FromName,
			ResetValidity: cfg.Auth.ResetTokenTTL,
		}, templates)
		if err != nil {
			return nil, cleanup, fmt.Errorf("smtp: %w", err)
		}
		notifier = smtp
	} else {
		logger.Warn("SMTP is not configured, emails are written to the log")
		notifier = email.NewLogNotifier()
	}

	var gateway payment.Gateway
	switch cfg.Payment.Gateway {
	case "stripe":
		gateway = payment.NewStripeGateway(cfg.Payment.SecretKey, cfg.Payment.PublishableKey, cfg.Payment.WebhookSecret)
	default:
		logger.Warn("Using the sandbox payment gateway")
		gateway = payment.NewSandboxGateway(cfg.Payment.WebhookSecret)
	}

	var deduper payment.Deduper = payment.NoopDeduper{}
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			// the database still guarantees idempotence
			logger.Warn("Redis unavailable, webhook dedup cache disabled", "error", err)
			_ = client.Close()
		} else {
			closers = append(closers, func() { _ = client.Close() })
			deduper = payment.NewRedisDeduper(client)
		}
	}

	return &Dependencies{
		Storage:  store,
		Notifier: notifier,
		Gateway:  gateway,
		Deduper:  deduper,
		Images:   imageprocessor.NewProcessor(cfg.Upload.ImageQuality, cfg.Upload.MaxImageDimension),
	}, cleanup, nil
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, deps *Dependencies) *gin.Engine {
	userRepo := repositories.NewUserRepository()
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)

	// 1. Services
	serviceContainer := initializeServices(cfg, deps, tokens)

	// 2. Handlers
	appHandlers := initializeHandlers(serviceContainer)

	// 3. Gin
	ginRouter := initializeGinRouter(cfg, gormDB)

	// 4. Routes
	routes.RegisterRoutes(ginRouter, appHandlers, middleware.AuthMiddleware(tokens, userRepo))

	return ginRouter
}

func initializeServices(cfg *config.Config, deps *Dependencies, tokens *auth.TokenManager) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	vacancyRepo := repositories.NewVacancyRepository()
	applicationRepo := repositories.NewApplicationRepository()
	ratingRepo := repositories.NewRatingRepository()
	paymentRepo := repositories.NewPaymentRepository()

	images := deps.Images
	if images == nil {
		images = imageprocessor.NewProcessor(cfg.Upload.ImageQuality, cfg.Upload.MaxImageDimension)
	}
	uploadService := services.NewUploadService(deps.Storage, images, cfg.Upload.MaxSize)

	authService := services.NewAuthService(userRepo, tokens, deps.Notifier, services.AuthSettings{
		FrontendURL:   cfg.Auth.FrontendURL,
		ResetTokenTTL: cfg.Auth.ResetTokenTTL,
	})
	accountService := services.NewAccountService(userRepo, profileRepo, vacancyRepo, applicationRepo, ratingRepo, paymentRepo, uploadService)
	profileService := services.NewProfileService(userRepo, profileRepo, paymentRepo, ratingRepo, uploadService, cfg.Payment.WelcomeTokens)
	vacancyService := services.NewVacancyService(profileRepo, vacancyRepo, applicationRepo, ratingRepo, paymentRepo)
	applicationService := services.NewApplicationService(profileRepo, vacancyRepo, applicationRepo, deps.Notifier)
	ratingService := services.NewRatingService(profileRepo, applicationRepo, ratingRepo)
	paymentService := services.NewPaymentService(profileRepo, paymentRepo, deps.Gateway, deps.Deduper, services.PaymentSettings{
		TokenPriceUSD: cfg.Payment.TokenPriceUSD,
		USDToCOPRate:  cfg.Payment.USDToCOPRate,
		Currency:      cfg.Payment.Currency,
		WelcomeTokens: cfg.Payment.WelcomeTokens,
	})

	return &services.ServiceContainer{
		AuthService:        authService,
		AccountService:     accountService,
		ProfileService:     profileService,
		VacancyService:     vacancyService,
		ApplicationService: applicationService,
		RatingService:      ratingService,
		PaymentService:     paymentService,
		UploadService:      uploadService,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		SystemHandler:      handlers.NewSystemHandler(baseHandler, services.ProfileService),
		AuthHandler:        handlers.NewAuthHandler(baseHandler, services.AuthService),
		AccountHandler:     handlers.NewAccountHandler(baseHandler, services.AccountService),
		ProfileHandler:     handlers.NewProfileHandler(baseHandler, services.ProfileService),
		VacancyHandler:     handlers.NewVacancyHandler(baseHandler, services.VacancyService),
		ApplicationHandler: handlers.NewApplicationHandler(baseHandler, services.ApplicationService),
		RatingHandler:      handlers.NewRatingHandler(baseHandler, services.RatingService),
		PaymentHandler:     handlers.NewPaymentHandler(baseHandler, services.PaymentService),
		FileHandler:        handlers.NewFileHandler(baseHandler, services.UploadService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(otelgin.Middleware(cfg.Server.Name))
	router.Use(cors.New(cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		AllowOrigins:  cfg.CORS.AllowedOrigins,
		MaxAge:        12 * time.Hour,
	}))

	// HTTP metrics live in a registry per router so several routers can coexist in one process
	httpRegistry := prometheus.NewRegistry()
	p := ginprom.New(
		ginprom.Registry(httpRegistry),
		ginprom.Subsystem("gin"),
		ginprom.Ignore("/swagger/*any", "/metrics"),
	)
	router.Use(p.Instrument())
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
		prometheus.Gatherers{prometheus.DefaultGatherer, httpRegistry},
		promhttp.HandlerOpts{},
	)))

	router.Use(middleware.DBMiddleware(db))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return router
}
