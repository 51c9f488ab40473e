// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	router "wallet-ledger/internal/api"
	"wallet-ledger/internal/api/handler"
	apimw "wallet-ledger/internal/api/middleware"
	"wallet-ledger/internal/config"
	"wallet-ledger/internal/repository"
	"wallet-ledger/internal/repository/postgres"
	"wallet-ledger/internal/service"
	"wallet-ledger/internal/util"
	"wallet-ledger/pkg/cache"
	"wallet-ledger/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB
	Redis  *redis.Client // nil when REDIS_URL is unset

	// Repositories
	UserRepository       repository.UserRepository
	PackRepository       repository.PackRepository
	WalletRepository     repository.WalletRepository
	MethodRepository     repository.MethodRepository
	DepositRepository    repository.DepositRepository
	WithdrawalRepository repository.WithdrawalRepository
	HistoryRepository    repository.HistoryRepository

	// Services
	Ledger            service.Ledger
	RequestService    service.RequestService
	ValidationService service.ValidationService
	MethodService     service.MethodService
	HistoryService    service.HistoryService
	ValidatorAuth     service.ValidatorAuth

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	if cfg.RunMigrations {
		if err := db.RunMigrations(app.DB); err != nil {
			return err
		}
		app.Logger.Info("Database migrations applied.")
	}

	// 4. Connect to Redis when configured
	methodCache := cache.Cache(cache.Noop{})
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.Redis = client
		methodCache = cache.NewRedisCache(client, cache.KeyPrefix, cfg.MethodsCacheTTL)
		app.Logger.Info("Redis connection established.")
	} else {
		app.Logger.Warn("REDIS_URL not set; idempotency keys and method caching are disabled.")
	}

	// 5. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository()
	app.PackRepository = postgres.NewPackRepository()
	app.WalletRepository = postgres.NewWalletRepository()
	app.MethodRepository = postgres.NewMethodRepository()
	app.DepositRepository = postgres.NewDepositRepository()
	app.WithdrawalRepository = postgres.NewWithdrawalRepository()
	app.HistoryRepository = postgres.NewHistoryRepository()
	app.Logger.Info("Repositories initialized.")

	// 6. Initialize Services
	app.Ledger = service.NewLedger(app.DB, app.WalletRepository)
	app.RequestService = service.NewRequestService(
		app.DB,
		app.UserRepository,
		app.PackRepository,
		app.WalletRepository,
		app.MethodRepository,
		app.DepositRepository,
		app.WithdrawalRepository,
	)
	app.ValidationService = service.NewValidationService(
		app.DB, // This is the DBTxBeginner
		app.Ledger,
		app.UserRepository,
		app.DepositRepository,
		app.WithdrawalRepository,
		app.HistoryRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Logger,
	)
	app.MethodService = service.NewMethodService(
		app.DB,
		app.DB,
		app.MethodRepository,
		methodCache,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Logger,
	)
	app.HistoryService = service.NewHistoryService(app.DB, app.HistoryRepository)
	app.ValidatorAuth = service.NewValidatorAuth(service.ValidatorCredentials{
		Email:            cfg.Validator.Email,
		Password:         cfg.Validator.Password,
		TelegramUsername: cfg.Validator.TelegramUsername,
		OTPSecret:        cfg.Validator.OTPSecret,
	})
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	app.HTTPHandler = router.NewRouter(router.Handlers{
		Requests:  handler.NewRequestHandler(app.RequestService, app.ValidationService, app.Logger),
		Methods:   handler.NewMethodHandler(app.MethodService, app.Logger),
		History:   handler.NewHistoryHandler(app.HistoryService, cfg.DefaultLocale, app.Logger),
		Wallets:   handler.NewWalletHandler(app.Ledger, app.Logger),
		Validator: handler.NewValidatorHandler(app.ValidatorAuth, app.Logger),
	}, router.RouterOptions{
		AllowedOrigins: cfg.FrontendURLs,
		Idempotency:    apimw.Idempotency(app.Redis, cfg.IdempotencyTTL, app.Logger),
	}, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	logger := app.Logger
	if logger == nil {
		logger = util.GetLogger()
	}
	logger.Info("Shutting down application...")
	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			logger.Error("Failed to close redis connection", "error", err)
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		logger.Info("Database connection closed.")
	}
	logger.Info("Application shut down gracefully.")
	return nil
}
